package services

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const mb = 1 << 20

type fileKind struct {
	maxSize int64
	mimes   []string
}

var fileKinds = map[string]fileKind{
	"image": {
		maxSize: 10 * mb,
		mimes:   []string{"image/png", "image/jpeg", "image/gif", "image/bmp", "image/webp"},
	},
	"video": {
		maxSize: 50 * mb,
		mimes:   []string{"video/mp4", "video/avi", "video/quicktime", "video/webm", "video/ogg"},
	},
	"audio": {
		maxSize: 20 * mb,
		mimes:   []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/webm", "audio/x-m4a", "audio/aac"},
	},
	"application": {
		maxSize: 10 * mb,
		mimes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.ms-excel",
			"application/vnd.ms-powerpoint",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/vnd.openxmlformats-officedocument.presentationml.presentation",
			"text/plain",
		},
	},
}

// MaxUploadSize is the largest file any kind accepts.
const MaxUploadSize = 50 * mb

type UploadedFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
}

// UploadService stores uploaded files on local disk under
// <dir>/<kind>/<YYYY-MM-DD>/.
type UploadService struct {
	dir string
	now func() time.Time
}

func NewUploadService(dir string) *UploadService {
	return &UploadService{dir: dir, now: time.Now}
}

// classify returns the storage kind for mimetype, checking the size limit.
// text/plain is stored with application documents.
func classify(mimetype string, size int64) (string, error) {
	mimetype = strings.ToLower(strings.TrimSpace(strings.SplitN(mimetype, ";", 2)[0]))
	for name, kind := range fileKinds {
		if !slices.Contains(kind.mimes, mimetype) {
			continue
		}
		if size > kind.maxSize {
			return "", ErrFileTooLarge
		}
		return name, nil
	}
	return "", ErrUnsupportedFile
}

func (s *UploadService) Save(header *multipart.FileHeader) (*UploadedFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	mimetype := header.Header.Get("Content-Type")
	if mimetype == "" || mimetype == "application/octet-stream" {
		sniff := make([]byte, 512)
		n, _ := io.ReadFull(src, sniff)
		mimetype = http.DetectContentType(sniff[:n])
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind upload: %w", err)
		}
	}
	mimetype = strings.SplitN(mimetype, ";", 2)[0]

	kind, err := classify(mimetype, header.Size)
	if err != nil {
		return nil, err
	}

	now := s.now()
	day := now.Format(dayLayout)
	filename := storedName(header.Filename, now)

	dir := filepath.Join(s.dir, kind, day)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, fileKinds[kind].maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if written > fileKinds[kind].maxSize {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return nil, ErrFileTooLarge
	}

	return &UploadedFile{
		Filename: filename,
		URL:      "/" + path.Join("uploads", kind, day, filename),
		Mimetype: mimetype,
		Size:     written,
	}, nil
}

// storedName derives a collision-resistant file name keeping the extension.
func storedName(original string, now time.Time) string {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	sum := md5.Sum([]byte(fmt.Sprintf("%s-%d", name, now.UnixNano())))
	return hex.EncodeToString(sum[:]) + strings.ToLower(ext)
}

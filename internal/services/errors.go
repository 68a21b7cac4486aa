package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds. Every *Error unwraps to exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a domain failure carrying a caller-facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(msg string) *Error     { return &Error{Kind: ErrNotFound, Msg: msg} }
func forbidden(msg string) *Error    { return &Error{Kind: ErrForbidden, Msg: msg} }
func badRequest(msg string) *Error   { return &Error{Kind: ErrBadRequest, Msg: msg} }
func unauthorized(msg string) *Error { return &Error{Kind: ErrUnauthorized, Msg: msg} }

var (
	ErrUserNotFound        = notFound("user not found")
	ErrTeamNotFound        = notFound("team not found")
	ErrProjectNotFound     = notFound("project not found")
	ErrTaskNotFound        = notFound("task not found")
	ErrProcessTypeNotFound = notFound("process type not found")

	ErrNotTeamMember  = forbidden("not a member of this team")
	ErrNotTeamCreator = forbidden("only the team creator can do this")

	ErrProjectArchived   = badRequest("project archived")
	ErrStatusEscalation  = badRequest("status escalation not permitted")
	ErrInvalidTimeRange  = badRequest("start time must not be after end time")
	ErrInvalidPriority   = badRequest("priority must be between 0 and 4")
	ErrInvalidStatus     = badRequest("invalid status")
	ErrInvalidName       = badRequest("invalid name")
	ErrInvalidSex        = badRequest("invalid sex")
	ErrInvalidTitle      = badRequest("title is required and must be at most 50 characters")
	ErrInvalidFilter     = badRequest("invalid task filter")
	ErrPhoneTaken        = badRequest("phone already registered")
	ErrInvalidPhone      = badRequest("invalid phone number")
	ErrInvalidPassword   = badRequest("password must be 8 to 16 characters")
	ErrUnknownMember     = badRequest("member is not a registered user")
	ErrUnsupportedFile   = badRequest("unsupported file type")
	ErrFileTooLarge      = badRequest("file too large")
	ErrInvalidSearchType = badRequest("invalid search type")

	ErrInvalidCredentials = unauthorized("invalid phone or password")
	ErrUserBanned         = unauthorized("user is banned")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

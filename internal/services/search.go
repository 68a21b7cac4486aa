package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
)

const (
	SearchAll      = ""
	SearchProjects = "1"
	SearchTasks    = "2"
)

type SearchResult struct {
	Projects []models.Project
	Tasks    []models.Task
}

// SearchService finds projects and tasks by keyword among the teams the
// caller belongs to.
type SearchService struct {
	db *database.DB
}

func NewSearchService(db *database.DB) *SearchService {
	return &SearchService{db: db}
}

func (s *SearchService) Search(ctx context.Context, uid uuid.UUID, keyword, kind string) (*SearchResult, error) {
	if kind != SearchAll && kind != SearchProjects && kind != SearchTasks {
		return nil, ErrInvalidSearchType
	}
	result := &SearchResult{Projects: []models.Project{}, Tasks: []models.Task{}}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return result, nil
	}

	if kind != SearchTasks {
		projects, err := s.projects(ctx, uid, keyword)
		if err != nil {
			return nil, err
		}
		result.Projects = projects
	}
	if kind != SearchProjects {
		tasks, err := s.tasks(ctx, uid, keyword)
		if err != nil {
			return nil, err
		}
		result.Tasks = tasks
	}
	return result, nil
}

func (s *SearchService) projects(ctx context.Context, uid uuid.UUID, keyword string) ([]models.Project, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		JOIN teams t ON t.id = p.team_id
		WHERE p.status <> $1 AND t.status = $2
			AND (t.creator_id = $3 OR $3 = ANY(t.members))
			AND p.name ILIKE '%' || $4 || '%' ESCAPE '\'
		ORDER BY p.created_at DESC
		LIMIT $5
	`, models.ProjectBanned, models.TeamActive, uid, escapeLike(keyword), defaultSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(projectDest(&p)...); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *SearchService) tasks(ctx context.Context, uid uuid.UUID, keyword string) ([]models.Task, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks k
		JOIN projects p ON p.id = k.project_id
		JOIN teams t ON t.id = p.team_id
		WHERE k.status <> $1 AND p.status <> $2 AND t.status = $3
			AND (t.creator_id = $4 OR $4 = ANY(t.members))
			AND k.title ILIKE '%' || $5 || '%' ESCAPE '\'
		ORDER BY k.created_at DESC
		LIMIT $6
	`, models.TaskBan, models.ProjectBanned, models.TeamActive, uid, escapeLike(keyword), defaultSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var k models.Task
		if err := rows.Scan(taskDest(&k)...); err != nil {
			return nil, err
		}
		tasks = append(tasks, k)
	}
	return tasks, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the keyword match literally inside an ILIKE pattern.
func escapeLike(keyword string) string {
	return likeEscaper.Replace(keyword)
}

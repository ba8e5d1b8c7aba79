package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
)

// ErrProjectNotFound indicates the requested project was not found.
var ErrProjectNotFound = errors.New("project not found")

const projectColumns = `id, title, summary, description, tech_stacks,
	repo_url, demo_url, status, featured, display_order, created_at, updated_at`

// ProjectService manages portfolio projects.
type ProjectService struct {
	db *database.DB
}

// NewProjectService creates a new ProjectService instance.
func NewProjectService(db *database.DB) *ProjectService {
	return &ProjectService{db: db}
}

// ProjectInput carries the writable project fields.
type ProjectInput struct {
	Title        string
	Summary      string
	Description  string
	TechStacks   string
	RepoURL      string
	DemoURL      string
	Status       string
	Featured     bool
	DisplayOrder int
}

// Create inserts a new project.
func (s *ProjectService) Create(in ProjectInput) (*models.Project, error) {
	id := uuid.NewString()
	status := in.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}

	_, err := s.db.Exec(
		`INSERT INTO projects (id, title, summary, description, tech_stacks,
		 repo_url, demo_url, status, featured, display_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.Title, in.Summary, in.Description, in.TechStacks,
		in.RepoURL, in.DemoURL, status, in.Featured, in.DisplayOrder,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// GetByID retrieves a project by id.
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	var p models.Project
	var repoURL, demoURL sql.NullString
	err := s.db.QueryRow("SELECT "+projectColumns+" FROM projects WHERE id = ?", id).Scan(
		&p.ID, &p.Title, &p.Summary, &p.Description, &p.TechStacks,
		&repoURL, &demoURL, &p.Status, &p.Featured, &p.DisplayOrder,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	p.RepoURL = repoURL.String
	p.DemoURL = demoURL.String
	return &p, nil
}

// ProjectFilter narrows List results.
type ProjectFilter struct {
	Status   string
	Search   string
	Featured *bool
}

// List returns a page of projects ordered by display order, plus the
// total match count.
func (s *ProjectService) List(filter ProjectFilter, limit, offset int) ([]models.Project, int, error) {
	where := "1=1"
	args := []any{}
	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Featured != nil {
		where += " AND featured = ?"
		args = append(args, *filter.Featured)
	}
	if filter.Search != "" {
		where += " AND (title LIKE ? OR summary LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM projects WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(
		"SELECT "+projectColumns+" FROM projects WHERE "+where+
			" ORDER BY display_order, created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var p models.Project
		var repoURL, demoURL sql.NullString
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Summary, &p.Description, &p.TechStacks,
			&repoURL, &demoURL, &p.Status, &p.Featured, &p.DisplayOrder,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		p.RepoURL = repoURL.String
		p.DemoURL = demoURL.String
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

// Update overwrites a project's writable fields.
func (s *ProjectService) Update(id string, in ProjectInput) (*models.Project, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}
	_, err := s.db.Exec(
		`UPDATE projects SET title = ?, summary = ?, description = ?,
		 tech_stacks = ?, repo_url = ?, demo_url = ?, status = ?,
		 featured = ?, display_order = ?, updated_at = ? WHERE id = ?`,
		in.Title, in.Summary, in.Description, in.TechStacks,
		in.RepoURL, in.DemoURL, status, in.Featured, in.DisplayOrder,
		time.Now(), id,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes a project.
func (s *ProjectService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Count returns the number of projects, optionally only published ones.
func (s *ProjectService) Count(publishedOnly bool) (int, error) {
	query := "SELECT COUNT(*) FROM projects"
	args := []any{}
	if publishedOnly {
		query += " WHERE status = ?"
		args = append(args, models.ProjectStatusPublished)
	}
	var n int
	err := s.db.QueryRow(query, args...).Scan(&n)
	return n, err
}

package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
)

var (
	// ErrTechStackNotFound indicates the requested entry was not found.
	ErrTechStackNotFound = errors.New("tech stack not found")
	// ErrTechStackExists indicates a name uniqueness violation.
	ErrTechStackExists = errors.New("tech stack already exists")
)

const techStackColumns = `id, name, category, proficiency, icon_url,
	display_order, created_at, updated_at`

// TechStackService manages the technology list.
type TechStackService struct {
	db *database.DB
}

// NewTechStackService creates a new TechStackService instance.
func NewTechStackService(db *database.DB) *TechStackService {
	return &TechStackService{db: db}
}

// TechStackInput carries the writable fields.
type TechStackInput struct {
	Name         string
	Category     string
	IconURL      string
	Proficiency  int
	DisplayOrder int
}

// Create inserts a new tech stack entry.
func (s *TechStackService) Create(in TechStackInput) (*models.TechStack, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO tech_stacks (id, name, category, proficiency, icon_url, display_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, in.Name, in.Category, in.Proficiency, in.IconURL, in.DisplayOrder,
	)
	if err != nil {
		return nil, ErrTechStackExists
	}
	return s.GetByID(id)
}

// GetByID retrieves an entry by id.
func (s *TechStackService) GetByID(id string) (*models.TechStack, error) {
	var t models.TechStack
	var iconURL sql.NullString
	err := s.db.QueryRow("SELECT "+techStackColumns+" FROM tech_stacks WHERE id = ?", id).Scan(
		&t.ID, &t.Name, &t.Category, &t.Proficiency, &iconURL,
		&t.DisplayOrder, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTechStackNotFound
	}
	if err != nil {
		return nil, err
	}
	t.IconURL = iconURL.String
	return &t, nil
}

// List returns all entries grouped by category then display order.
func (s *TechStackService) List(category string) ([]models.TechStack, error) {
	query := "SELECT " + techStackColumns + " FROM tech_stacks"
	args := []any{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY category, display_order, name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	stacks := make([]models.TechStack, 0)
	for rows.Next() {
		var t models.TechStack
		var iconURL sql.NullString
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Category, &t.Proficiency, &iconURL,
			&t.DisplayOrder, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.IconURL = iconURL.String
		stacks = append(stacks, t)
	}
	return stacks, rows.Err()
}

// Update overwrites an entry's writable fields.
func (s *TechStackService) Update(id string, in TechStackInput) (*models.TechStack, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	_, err := s.db.Exec(
		`UPDATE tech_stacks SET name = ?, category = ?, proficiency = ?,
		 icon_url = ?, display_order = ?, updated_at = ? WHERE id = ?`,
		in.Name, in.Category, in.Proficiency, in.IconURL, in.DisplayOrder, time.Now(), id,
	)
	if err != nil {
		return nil, ErrTechStackExists
	}
	return s.GetByID(id)
}

// Delete removes an entry.
func (s *TechStackService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM tech_stacks WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTechStackNotFound
	}
	return nil
}

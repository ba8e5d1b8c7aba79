package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
)

// ErrTestimonialNotFound indicates the requested entry was not found.
var ErrTestimonialNotFound = errors.New("testimonial not found")

const testimonialColumns = `id, author, position, company, quote, avatar_url,
	approved, created_at, updated_at`

// TestimonialService manages testimonials; only approved ones are public.
type TestimonialService struct {
	db *database.DB
}

// NewTestimonialService creates a new TestimonialService instance.
func NewTestimonialService(db *database.DB) *TestimonialService {
	return &TestimonialService{db: db}
}

// TestimonialInput carries the writable fields.
type TestimonialInput struct {
	Author    string
	Position  string
	Company   string
	Quote     string
	AvatarURL string
	Approved  bool
}

// Create inserts a new testimonial.
func (s *TestimonialService) Create(in TestimonialInput) (*models.Testimonial, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO testimonials (id, author, position, company, quote, avatar_url, approved)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, in.Author, in.Position, in.Company, in.Quote, in.AvatarURL, in.Approved,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// GetByID retrieves a testimonial by id.
func (s *TestimonialService) GetByID(id string) (*models.Testimonial, error) {
	var t models.Testimonial
	var position, company, avatarURL sql.NullString
	err := s.db.QueryRow("SELECT "+testimonialColumns+" FROM testimonials WHERE id = ?", id).Scan(
		&t.ID, &t.Author, &position, &company, &t.Quote, &avatarURL,
		&t.Approved, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTestimonialNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Position = position.String
	t.Company = company.String
	t.AvatarURL = avatarURL.String
	return &t, nil
}

// List returns testimonials, optionally approved-only.
func (s *TestimonialService) List(approvedOnly bool) ([]models.Testimonial, error) {
	query := "SELECT " + testimonialColumns + " FROM testimonials"
	if approvedOnly {
		query += " WHERE approved = TRUE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := make([]models.Testimonial, 0)
	for rows.Next() {
		var t models.Testimonial
		var position, company, avatarURL sql.NullString
		if err := rows.Scan(
			&t.ID, &t.Author, &position, &company, &t.Quote, &avatarURL,
			&t.Approved, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.Position = position.String
		t.Company = company.String
		t.AvatarURL = avatarURL.String
		items = append(items, t)
	}
	return items, rows.Err()
}

// Update overwrites a testimonial's writable fields.
func (s *TestimonialService) Update(id string, in TestimonialInput) (*models.Testimonial, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	_, err := s.db.Exec(
		`UPDATE testimonials SET author = ?, position = ?, company = ?,
		 quote = ?, avatar_url = ?, approved = ?, updated_at = ? WHERE id = ?`,
		in.Author, in.Position, in.Company, in.Quote, in.AvatarURL, in.Approved, time.Now(), id,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// SetApproved flips the approval flag.
func (s *TestimonialService) SetApproved(id string, approved bool) error {
	res, err := s.db.Exec(
		"UPDATE testimonials SET approved = ?, updated_at = ? WHERE id = ?",
		approved, time.Now(), id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

// Delete removes a testimonial.
func (s *TestimonialService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM testimonials WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/validation"
)

// ErrAcademicNotFound indicates the requested record was not found.
var ErrAcademicNotFound = errors.New("academic record not found")

const academicColumns = `id, institution, degree, field, start_date, end_date,
	gpa, notes, created_at, updated_at`

// AcademicService manages academic history records.
type AcademicService struct {
	db *database.DB
}

// NewAcademicService creates a new AcademicService instance.
func NewAcademicService(db *database.DB) *AcademicService {
	return &AcademicService{db: db}
}

// AcademicInput carries the writable academic fields.
type AcademicInput struct {
	Institution string
	Degree      string
	Field       string
	StartDate   time.Time
	EndDate     *time.Time
	GPA         float64
	Notes       string
}

func (in *AcademicInput) validate() error {
	return validation.ValidateDateRange(in.StartDate, in.EndDate)
}

// Create inserts a new academic record.
func (s *AcademicService) Create(in AcademicInput) (*models.Academic, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO academics (id, institution, degree, field, start_date, end_date, gpa, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.Institution, in.Degree, in.Field, in.StartDate, in.EndDate, in.GPA, in.Notes,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// GetByID retrieves an academic record by id.
func (s *AcademicService) GetByID(id string) (*models.Academic, error) {
	var a models.Academic
	var endDate sql.NullTime
	var gpa sql.NullFloat64
	var notes sql.NullString
	err := s.db.QueryRow("SELECT "+academicColumns+" FROM academics WHERE id = ?", id).Scan(
		&a.ID, &a.Institution, &a.Degree, &a.Field, &a.StartDate, &endDate,
		&gpa, &notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAcademicNotFound
	}
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		t := endDate.Time
		a.EndDate = &t
	}
	a.GPA = gpa.Float64
	a.Notes = notes.String
	return &a, nil
}

// List returns all academic records, most recent first.
func (s *AcademicService) List() ([]models.Academic, error) {
	rows, err := s.db.Query("SELECT " + academicColumns + " FROM academics ORDER BY start_date DESC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]models.Academic, 0)
	for rows.Next() {
		var a models.Academic
		var endDate sql.NullTime
		var gpa sql.NullFloat64
		var notes sql.NullString
		if err := rows.Scan(
			&a.ID, &a.Institution, &a.Degree, &a.Field, &a.StartDate, &endDate,
			&gpa, &notes, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if endDate.Valid {
			t := endDate.Time
			a.EndDate = &t
		}
		a.GPA = gpa.Float64
		a.Notes = notes.String
		records = append(records, a)
	}
	return records, rows.Err()
}

// Update overwrites an academic record's writable fields.
func (s *AcademicService) Update(id string, in AcademicInput) (*models.Academic, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	_, err := s.db.Exec(
		`UPDATE academics SET institution = ?, degree = ?, field = ?,
		 start_date = ?, end_date = ?, gpa = ?, notes = ?, updated_at = ? WHERE id = ?`,
		in.Institution, in.Degree, in.Field, in.StartDate, in.EndDate,
		in.GPA, in.Notes, time.Now(), id,
	)
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes an academic record.
func (s *AcademicService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM academics WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAcademicNotFound
	}
	return nil
}

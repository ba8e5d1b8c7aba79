package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/validation"
)

func TestAcademicCRUD(t *testing.T) {
	svc := services.NewAcademicService(setupTestDB(t))

	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(services.AcademicInput{
		Institution: "UTS",
		Degree:      "BSc",
		Field:       "Computer Science",
		StartDate:   start,
		GPA:         3.8,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.EndDate != nil {
		t.Error("missing end date should stay nil, meaning in progress")
	}

	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(created.ID, services.AcademicInput{
		Institution: "UTS",
		Degree:      "BSc",
		Field:       "Computer Science",
		StartDate:   start,
		EndDate:     &end,
		GPA:         3.9,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.EndDate == nil || !updated.EndDate.Equal(end) {
		t.Errorf("end date = %v, want %v", updated.EndDate, end)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(created.ID); !errors.Is(err, services.ErrAcademicNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrAcademicNotFound", err)
	}
}

func TestAcademicDateValidation(t *testing.T) {
	svc := services.NewAcademicService(setupTestDB(t))

	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(-1, 0, 0)

	_, err := svc.Create(services.AcademicInput{
		Institution: "UTS",
		Degree:      "BSc",
		StartDate:   start,
		EndDate:     &before,
	})
	if !errors.Is(err, validation.ErrEndBeforeStart) {
		t.Fatalf("end before start = %v, want ErrEndBeforeStart", err)
	}

	_, err = svc.Create(services.AcademicInput{
		Institution: "UTS",
		Degree:      "BSc",
	})
	if !errors.Is(err, validation.ErrStartDateRequired) {
		t.Fatalf("zero start date = %v, want ErrStartDateRequired", err)
	}
}

func TestAcademicListOrder(t *testing.T) {
	svc := services.NewAcademicService(setupTestDB(t))

	older := time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Create(services.AcademicInput{Institution: "First", Degree: "BSc", StartDate: older}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(services.AcademicInput{Institution: "Second", Degree: "MSc", StartDate: newer}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	academics, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(academics) != 2 {
		t.Fatalf("len = %d, want 2", len(academics))
	}
	if academics[0].Institution != "Second" {
		t.Errorf("first entry = %q, want most recent start date first", academics[0].Institution)
	}
}

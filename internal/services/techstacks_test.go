package services_test

import (
	"errors"
	"testing"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

func TestTechStackCRUD(t *testing.T) {
	svc := services.NewTechStackService(setupTestDB(t))

	created, err := svc.Create(services.TechStackInput{
		Name:        "Go",
		Category:    "backend",
		Proficiency: 90,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Names are unique.
	if _, err := svc.Create(services.TechStackInput{Name: "Go", Category: "backend"}); !errors.Is(err, services.ErrTechStackExists) {
		t.Fatalf("duplicate name = %v, want ErrTechStackExists", err)
	}

	updated, err := svc.Update(created.ID, services.TechStackInput{
		Name:        "Go",
		Category:    "backend",
		Proficiency: 95,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Proficiency != 95 {
		t.Errorf("proficiency = %d, want 95", updated.Proficiency)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(created.ID); !errors.Is(err, services.ErrTechStackNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrTechStackNotFound", err)
	}
}

func TestTechStackListByCategory(t *testing.T) {
	svc := services.NewTechStackService(setupTestDB(t))

	for _, in := range []services.TechStackInput{
		{Name: "Go", Category: "backend"},
		{Name: "SQLite", Category: "database"},
		{Name: "Gin", Category: "backend"},
	} {
		if _, err := svc.Create(in); err != nil {
			t.Fatalf("Create %s: %v", in.Name, err)
		}
	}

	backend, err := svc.List("backend")
	if err != nil {
		t.Fatalf("List backend: %v", err)
	}
	if len(backend) != 2 {
		t.Errorf("backend = %d entries, want 2", len(backend))
	}

	all, err := svc.List("")
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d entries, want 3", len(all))
	}
}

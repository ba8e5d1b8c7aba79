package services_test

import (
	"errors"
	"testing"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

func TestProjectCRUD(t *testing.T) {
	svc := services.NewProjectService(setupTestDB(t))

	created, err := svc.Create(services.ProjectInput{
		Title:      "Portfolio API",
		Summary:    "Backend for the portfolio site",
		TechStacks: "Go,SQLite",
		RepoURL:    "https://example.com/repo",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != models.ProjectStatusDraft {
		t.Errorf("status = %q, new projects default to draft", created.Status)
	}

	updated, err := svc.Update(created.ID, services.ProjectInput{
		Title:    "Portfolio API",
		Summary:  "Backend for the portfolio site",
		Status:   models.ProjectStatusPublished,
		Featured: true,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != models.ProjectStatusPublished || !updated.Featured {
		t.Errorf("update did not stick: %+v", updated)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(created.ID); !errors.Is(err, services.ErrProjectNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrProjectNotFound", err)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, services.ErrProjectNotFound) {
		t.Errorf("second Delete = %v, want ErrProjectNotFound", err)
	}
}

func TestProjectListFilter(t *testing.T) {
	svc := services.NewProjectService(setupTestDB(t))

	mustCreate := func(title, status string, featured bool, order int) {
		_, err := svc.Create(services.ProjectInput{
			Title:        title,
			Status:       status,
			Featured:     featured,
			DisplayOrder: order,
		})
		if err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}

	mustCreate("Alpha", models.ProjectStatusPublished, true, 2)
	mustCreate("Beta", models.ProjectStatusPublished, false, 1)
	mustCreate("Hidden", models.ProjectStatusDraft, false, 3)

	published, total, err := svc.List(services.ProjectFilter{Status: models.ProjectStatusPublished}, 10, 0)
	if err != nil {
		t.Fatalf("List published: %v", err)
	}
	if total != 2 || len(published) != 2 {
		t.Fatalf("published = %d/%d, want 2/2", len(published), total)
	}
	// Ordered by display order.
	if published[0].Title != "Beta" || published[1].Title != "Alpha" {
		t.Errorf("order = %q, %q; want Beta, Alpha", published[0].Title, published[1].Title)
	}

	featured := true
	got, total, err := svc.List(services.ProjectFilter{Featured: &featured}, 10, 0)
	if err != nil {
		t.Fatalf("List featured: %v", err)
	}
	if total != 1 || got[0].Title != "Alpha" {
		t.Errorf("featured = %v (total %d), want just Alpha", got, total)
	}

	_, total, err = svc.List(services.ProjectFilter{Search: "bet"}, 10, 0)
	if err != nil {
		t.Fatalf("List search: %v", err)
	}
	if total != 1 {
		t.Errorf("search total = %d, want 1", total)
	}
}

func TestProjectCount(t *testing.T) {
	svc := services.NewProjectService(setupTestDB(t))

	if _, err := svc.Create(services.ProjectInput{Title: "A", Status: models.ProjectStatusPublished}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(services.ProjectInput{Title: "B"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := svc.Count(false)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if all != 2 {
		t.Errorf("count all = %d, want 2", all)
	}

	published, err := svc.Count(true)
	if err != nil {
		t.Fatalf("Count published: %v", err)
	}
	if published != 1 {
		t.Errorf("count published = %d, want 1", published)
	}
}

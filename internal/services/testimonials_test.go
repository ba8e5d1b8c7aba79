package services_test

import (
	"errors"
	"testing"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

func TestTestimonialApprovalFlow(t *testing.T) {
	svc := services.NewTestimonialService(setupTestDB(t))

	created, err := svc.Create(services.TestimonialInput{
		Author: "Colleague",
		Quote:  "Great to work with.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Approved {
		t.Error("new testimonials start unapproved")
	}

	// Unapproved entries are hidden from the public listing.
	public, err := svc.List(true)
	if err != nil {
		t.Fatalf("List approved: %v", err)
	}
	if len(public) != 0 {
		t.Errorf("public list = %d entries, want 0", len(public))
	}

	if err := svc.SetApproved(created.ID, true); err != nil {
		t.Fatalf("SetApproved: %v", err)
	}
	public, err = svc.List(true)
	if err != nil {
		t.Fatalf("List approved: %v", err)
	}
	if len(public) != 1 {
		t.Errorf("public list after approval = %d entries, want 1", len(public))
	}

	if err := svc.SetApproved("missing", true); !errors.Is(err, services.ErrTestimonialNotFound) {
		t.Errorf("SetApproved missing = %v, want ErrTestimonialNotFound", err)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(created.ID); !errors.Is(err, services.ErrTestimonialNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrTestimonialNotFound", err)
	}
}

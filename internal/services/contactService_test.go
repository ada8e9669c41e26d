package services

import (
	"context"
	"errors"
	"testing"

	"github.com/arzan03/EduSphere/internal/models"
	"github.com/arzan03/EduSphere/internal/store"
)

func TestContactSubmitReturnsFreshIDs(t *testing.T) {
	contact := NewContactService(store.NewMemory("test"))
	ctx := context.Background()

	msg := models.ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		id, err := contact.Submit(ctx, msg)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if len(id) != 24 {
			t.Fatalf("unexpected id %q", id)
		}
		if seen[id] {
			t.Fatalf("id %s returned twice", id)
		}
		seen[id] = true
	}
}

func TestContactSubmitValidation(t *testing.T) {
	contact := NewContactService(store.NewMemory("test"))

	_, err := contact.Submit(context.Background(), models.ContactMessage{Name: "Ada", Email: "nope", Message: "Hello"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	rules := map[string]string{}
	for _, f := range verr.Fields {
		rules[f.Field] = f.Rule
	}
	if rules["email"] != "email" || rules["subject"] != "required" {
		t.Fatalf("unexpected field errors: %+v", verr.Fields)
	}
}

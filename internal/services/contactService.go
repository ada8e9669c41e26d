package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arzan03/EduSphere/internal/models"
	"github.com/arzan03/EduSphere/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactService struct {
	store store.Store
	now   func() time.Time
}

func NewContactService(s store.Store) *ContactService {
	return &ContactService{store: s, now: time.Now}
}

// Submit stores a contact message and returns its id. Messages are write-only.
func (s *ContactService) Submit(ctx context.Context, msg models.ContactMessage) (string, error) {
	msg.Email = strings.TrimSpace(msg.Email)
	if err := validateStruct(msg); err != nil {
		return "", err
	}

	now := s.now().UTC()
	msg.ID = primitive.NilObjectID
	msg.CreatedAt = now
	msg.UpdatedAt = now

	id, err := s.store.InsertOne(ctx, models.ContactCollection, msg)
	if err != nil {
		return "", fmt.Errorf("insert contact message: %w", err)
	}
	return id.Hex(), nil
}

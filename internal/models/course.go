package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CourseCollection = "course"

// Course levels are informal; any string is stored.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

type Course struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title" validate:"required"`
	Description  string             `bson:"description" json:"description" validate:"required"`
	Price        *float64           `bson:"price" json:"price" validate:"required,gte=0"`
	ThumbnailURL *string            `bson:"thumbnail_url" json:"thumbnail_url"`
	VideoURL     *string            `bson:"video_url" json:"video_url"`
	Level        *string            `bson:"level" json:"level"`
	Tags         []string           `bson:"tags" json:"tags"`
	Duration     string             `bson:"duration" json:"duration"`
	LessonsCount int                `bson:"lessons_count" json:"lessons_count" validate:"gte=0"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

func (c *Course) Prepare(now time.Time) {
	c.ID = primitive.NilObjectID
	c.Normalize()
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *Course) Normalize() {
	if c.Tags == nil {
		c.Tags = []string{}
	}
}

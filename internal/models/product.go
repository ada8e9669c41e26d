package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ProductCollection = "product"

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Price       *float64           `bson:"price" json:"price" validate:"required,gte=0"`
	ImageURL    *string            `bson:"image_url" json:"image_url"`
	FileURL     *string            `bson:"file_url" json:"file_url"`
	Category    *string            `bson:"category" json:"category"`
	InStock     *bool              `bson:"in_stock" json:"in_stock"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

func (p *Product) Prepare(now time.Time) {
	p.ID = primitive.NilObjectID
	if p.InStock == nil {
		inStock := true
		p.InStock = &inStock
	}
	p.CreatedAt = now
	p.UpdatedAt = now
}

func (p *Product) Normalize() {}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UserCollection = "user"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	APIToken     string             `bson:"api_token,omitempty" json:"-"`
	AvatarURL    *string            `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	IsActive     *bool              `bson:"is_active,omitempty" json:"is_active,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Active treats documents written without is_active as active.
func (u User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// PublicUser is the only shape of a user that leaves the API.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arzan03/EduSphere/internal/models"
	"github.com/arzan03/EduSphere/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserIndexes back email uniqueness and token lookup at the store level.
var UserIndexes = []store.Index{
	{Collection: models.UserCollection, Field: "email", Unique: true},
	{Collection: models.UserCollection, Field: "api_token", Sparse: true},
}

type AuthConfig struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

type AuthService struct {
	store  store.Store
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func NewAuthService(s store.Store, cfg AuthConfig) *AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &AuthService{
		store:  s,
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		cost:   cost,
		now:    time.Now,
	}
}

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user unless the email is already taken.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (models.PublicUser, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return models.PublicUser{}, err
	}
	// validator counts runes, bcrypt counts bytes.
	if len(req.Password) > MaxPasswordBytes {
		return models.PublicUser{}, invalidField("password", "max", fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes))
	}

	var existing models.User
	err := s.store.FindOne(ctx, models.UserCollection, bson.M{"email": req.Email}, &existing)
	if err == nil {
		return models.PublicUser{}, ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.PublicUser{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	active := true
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     &active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The pre-check above is not atomic; the unique index catches the race.
	if _, err := s.store.InsertOne(ctx, models.UserCollection, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return models.PublicUser{}, ErrDuplicateEmail
		}
		return models.PublicUser{}, fmt.Errorf("insert user: %w", err)
	}

	return user.Public(), nil
}

// Login verifies credentials and issues a fresh token, replacing any earlier one.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return LoginResult{}, err
	}

	var user models.User
	err := s.store.FindOne(ctx, models.UserCollection, bson.M{"email": req.Email}, &user)
	if errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if !user.Active() || !VerifyPassword(req.Password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return LoginResult{}, err
	}

	update := bson.M{"$set": bson.M{"api_token": token, "updated_at": s.now().UTC()}}
	if err := s.store.UpdateOne(ctx, models.UserCollection, bson.M{"_id": user.ID}, update); err != nil {
		return LoginResult{}, fmt.Errorf("save token: %w", err)
	}

	return LoginResult{Token: token, User: user.Public()}, nil
}

// Authenticate resolves a token to the user currently holding it.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.User{}, ErrMissingToken
	}

	if err := s.verifyToken(token); err != nil {
		return models.User{}, ErrInvalidToken
	}

	var user models.User
	err := s.store.FindOne(ctx, models.UserCollection, bson.M{"api_token": token}, &user)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrInvalidToken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup token: %w", err)
	}
	if !user.Active() {
		return models.User{}, ErrInvalidToken
	}

	return user, nil
}

// AuthorizeWrite gates creation endpoints: any logged-in user may write.
func (s *AuthService) AuthorizeWrite(ctx context.Context, token string) error {
	_, err := s.Authenticate(ctx, token)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken):
		return ErrUnauthorized
	default:
		return err
	}
}

func (s *AuthService) issueToken(userID primitive.ObjectID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:  userID.Hex(),
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *AuthService) verifyToken(raw string) error {
	_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	return err
}

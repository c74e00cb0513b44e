package services

import (
	"context"
	"strings"
	"time"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"

	"github.com/google/uuid"
)

var userRoles = map[string]bool{
	models.RoleIntern:  true,
	models.RoleMentor:  true,
	models.RoleManager: true,
}

type UserService struct {
	store  *store.Store
	tokens TokenService
}

func NewUserService(s *store.Store, tokens TokenService) *UserService {
	return &UserService{store: s, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, email, password, fullName, role string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return models.User{}, ErrBadRequest("Email and password are required")
	}
	if role == "" {
		role = models.RoleIntern
	}
	role = strings.ToUpper(strings.TrimSpace(role))
	if !userRoles[role] {
		return models.User{}, ErrBadRequest("Unknown role")
	}
	if _, err := s.ByEmail(ctx, email); err == nil {
		return models.User{}, ErrBadRequest("User already exists")
	}
	hash, err := s.tokens.HashPassword(password)
	if err != nil {
		return models.User{}, WrapError(err, "hash password")
	}
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		FullName:     strings.TrimSpace(fullName),
		Status:       "ACTIVE",
	}
	rec, err := store.Encode(user)
	if err != nil {
		return models.User{}, err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return models.User{}, err
	}
	if err := store.Decode(created, &user); err != nil {
		return models.User{}, err
	}
	return sanitizeUser(user), nil
}

// Authenticate checks credentials and stamps last_login_at on success.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return models.User{}, ErrUnauthorized("Authentication failed")
	}
	user, err := s.byEmailRaw(ctx, email)
	if err != nil {
		return models.User{}, ErrUnauthorized("Authentication failed")
	}
	if user.Status != "ACTIVE" {
		return models.User{}, ErrForbidden("Authentication failed")
	}
	if !s.tokens.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, ErrUnauthorized("Authentication failed")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.store.Update(ctx, user.ID, store.Record{"last_login_at": now}); err != nil {
		return models.User{}, err
	}
	user.LastLoginAt = &now
	return sanitizeUser(user), nil
}

func (s *UserService) ByID(ctx context.Context, id string) (models.User, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.User{}, ErrNotFound("User not found")
	}
	var user models.User
	if err := store.Decode(rec, &user); err != nil {
		return models.User{}, err
	}
	return sanitizeUser(user), nil
}

func (s *UserService) ByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := s.byEmailRaw(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	return sanitizeUser(user), nil
}

func (s *UserService) byEmailRaw(ctx context.Context, email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	recs, err := s.store.Filter(ctx, store.Query{"email": store.Eq(email)}, "", 1)
	if err != nil {
		return models.User{}, err
	}
	if len(recs) == 0 {
		return models.User{}, ErrNotFound("User not found")
	}
	var user models.User
	if err := store.Decode(recs[0], &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) ByRole(ctx context.Context, role string) ([]models.User, error) {
	recs, err := s.store.Filter(ctx, store.Query{"role": store.Eq(strings.ToUpper(role))}, "full_name", 0)
	if err != nil {
		return nil, err
	}
	users, err := store.DecodeAll[models.User](recs)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = sanitizeUser(users[i])
	}
	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, fullName, avatarURL *string) (models.User, error) {
	patch := store.Record{}
	if fullName != nil {
		patch["full_name"] = strings.TrimSpace(*fullName)
	}
	if avatarURL != nil {
		patch["avatar_url"] = *avatarURL
	}
	rec, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	if err := store.Decode(rec, &user); err != nil {
		return models.User{}, err
	}
	return sanitizeUser(user), nil
}

func (s *UserService) ChangePassword(ctx context.Context, id, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return ErrBadRequest("New password is required")
	}
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return ErrNotFound("User not found")
	}
	var user models.User
	if err := store.Decode(rec, &user); err != nil {
		return err
	}
	if !s.tokens.VerifyPassword(current, user.PasswordHash) {
		return ErrUnauthorized("Authentication failed")
	}
	hash, err := s.tokens.HashPassword(next)
	if err != nil {
		return WrapError(err, "hash password")
	}
	_, err = s.store.Update(ctx, id, store.Record{"password_hash": hash})
	return err
}

func sanitizeUser(user models.User) models.User {
	user.PasswordHash = ""
	return user
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/bookstore/internal/events"
	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/repo"
	"github.com/Skotchmaster/bookstore/internal/transport"
	pkg_hash "github.com/Skotchmaster/bookstore/pkg/hash"
	"github.com/Skotchmaster/bookstore/pkg/logging"
	"github.com/Skotchmaster/bookstore/pkg/tokens"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 24 * time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
	Events    events.Publisher
}

func (s *AuthService) issue(u *models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	token, _, err := tokens.Issue(s.JWTSecret, u.ID.String(), u.Email, u.Role, ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Register creates the user together with an empty cart and wishlist.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, fail(ErrValidation, "Please provide name, email and password")
	}

	taken, err := s.Repo.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fail(ErrConflict, "User with this email already exists")
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}

	err = s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		if err := tx.CreateCart(ctx, &models.Cart{UserID: user.ID}); err != nil {
			return err
		}
		return tx.CreateWishlist(ctx, &models.Wishlist{UserID: user.ID})
	})
	if err != nil {
		if repo.IsDuplicate(err) {
			return nil, fail(ErrConflict, "User with this email already exists")
		}
		return nil, err
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUsers, user.ID.String(), events.UserRegistered, map[string]any{
		"id":    user.ID,
		"email": user.Email,
	})
	return &transport.AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, fail(ErrValidation, "Please provide email and password")
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrUnauthorized, "Invalid credentials")
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fail(ErrUnauthorized, "Invalid credentials")
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &transport.AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

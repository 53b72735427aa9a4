package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/hash"
	"github.com/Skotchmaster/marketplace/pkg/tokens"
)

const DefaultTokenTTL = 10 * time.Hour

type UserService struct {
	Users     UserStore
	Events    Publisher
	JWTSecret []byte
	TokenTTL  time.Duration
	Now       func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *UserService) Register(ctx context.Context, req transport.RegisterRequest) (*domain.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: pwHash,
		Phone:        req.Phone,
		Gender:       req.Gender,
		Birth:        req.Birth,
		Address:      req.Address,
		Avatar:       req.Avatar,
	}
	if err := s.Users.CreateUser(ctx, u); err != nil {
		return nil, storeErr("email "+req.Email, err)
	}

	publish(ctx, s.Events, mykafka.TopicUsers, u.ID.String(), "user_registered", map[string]any{
		"user_id": u.ID,
		"email":   u.Email,
	})
	return u, nil
}

// Login checks the credentials and issues an access token. Unknown email and
// wrong password are reported the same way.
func (s *UserService) Login(ctx context.Context, req transport.LoginRequest) (string, time.Time, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateRequest(req); err != nil {
		return "", time.Time{}, err
	}

	u, err := s.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		err = storeErr("user", err)
		if errors.Is(err, ErrNotFound) {
			return "", time.Time{}, fmt.Errorf("wrong email or password: %w", ErrUnauthenticated)
		}
		return "", time.Time{}, err
	}
	if !hash.CheckPassword(u.PasswordHash, req.Password) {
		return "", time.Time{}, fmt.Errorf("wrong email or password: %w", ErrUnauthenticated)
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	token, exp, err := tokens.SignAccessToken(tokens.AccessClaims{
		Email:            u.Email,
		Name:             u.Name,
		Phone:            u.Phone,
		RegisteredClaims: jwt.RegisteredClaims{Subject: u.ID.String()},
	}, s.JWTSecret, ttl, s.now())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, exp, nil
}

// VerifyIdentity resolves a bearer token to the user id it was issued for.
func (s *UserService) VerifyIdentity(token string) (uuid.UUID, error) {
	claims, err := tokens.AccessClaimsFromToken(token, s.JWTSecret)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%v: %w", err, ErrUnauthenticated)
	}
	id, err := parseID("subject", claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject: %w", ErrUnauthenticated)
	}
	return id, nil
}

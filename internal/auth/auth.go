package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("email is not valid")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidToken       = errors.New("invalid token")
)

// Identity is the authenticated caller, injected into request context
// by the server middleware.
type Identity struct {
	UserID uuid.UUID
	Admin  bool
}

type Service struct {
	users    store.UserStore
	profiles store.ProfileStore
	secret   []byte
	tokenTTL time.Duration
	log      *logrus.Logger
}

func NewService(users store.UserStore, profiles store.ProfileStore, secret []byte, tokenTTL time.Duration, log *logrus.Logger) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// SignUp registers a user and returns it with a fresh token. An empty
// profile row is written so the user shows up in the admin list with
// name fields ready to fill.
func (s *Service) SignUp(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	if err := s.profiles.UpsertProfile(ctx, &domain.Profile{ID: user.ID}); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("initial profile write failed")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignIn verifies credentials and issues a token. Unknown email and
// wrong password return the same error.
func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) issueToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": u.ID.String(),
		"adm": u.IsAdmin,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ParseToken validates a bearer token and returns the identity it
// carries.
func (s *Service) ParseToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	admin, _ := claims["adm"].(bool)
	return Identity{UserID: userID, Admin: admin}, nil
}

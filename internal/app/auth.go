package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hotel_directory/internal/domain"
)

// Claims carries the user id as subject plus the role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

var errNoSecret = errors.New("no token secret configured")

func NewToken(secret []byte, userID int64, role string, expiry time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errNoSecret
	}
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ValidateToken(tokenString string, secret []byte) (*Claims, error) {
	if len(secret) == 0 {
		return nil, errNoSecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

type AuthService struct {
	users  domain.UserRepository
	secret []byte
	expiry time.Duration
}

func NewAuthService(users domain.UserRepository, secret string, expiry time.Duration) *AuthService {
	if expiry <= 0 {
		expiry = 30 * 24 * time.Hour
	}
	return &AuthService{users: users, secret: []byte(secret), expiry: expiry}
}

func (s *AuthService) TokenTTL() time.Duration { return s.expiry }

// Register creates a user with role user or publisher and returns a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	if err := check(in); err != nil {
		return domain.User{}, "", err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return domain.User{}, "", err
	}
	u := domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         roleOrDefault(in.Role),
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, &u); err != nil {
		return domain.User{}, "", err
	}
	tok, err := s.issue(u)
	return u, tok, err
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (domain.User, string, error) {
	if err := check(in); err != nil {
		return domain.User{}, "", fmt.Errorf("%w: please provide an email and password", domain.ErrValidation)
	}
	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	tok, err := s.issue(u)
	return u, tok, err
}

// Authenticate resolves a bearer token to the current user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	claims, err := ValidateToken(token, s.secret)
	if err != nil {
		return domain.User{}, domain.ErrUnauthorized
	}
	id, err := claims.UserID()
	if err != nil {
		return domain.User{}, domain.ErrUnauthorized
	}
	u, err := s.users.GetUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.ErrUnauthorized
	}
	return u, err
}

func (s *AuthService) Me(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetUser(ctx, id)
}

func (s *AuthService) UpdateDetails(ctx context.Context, id int64, in DetailsInput) (domain.User, error) {
	if err := check(in); err != nil {
		return domain.User{}, err
	}
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	u.Name = strings.TrimSpace(in.Name)
	u.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// UpdatePassword checks the current password, stores the new one and returns
// a fresh token.
func (s *AuthService) UpdatePassword(ctx context.Context, id int64, in PasswordInput) (string, error) {
	if err := check(in); err != nil {
		return "", err
	}
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return "", fmt.Errorf("%w: password is incorrect", domain.ErrUnauthorized)
	}
	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return "", err
	}
	return s.issue(u)
}

func (s *AuthService) issue(u domain.User) (string, error) {
	return NewToken(s.secret, u.ID, u.Role, s.expiry)
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

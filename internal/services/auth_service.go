package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/eems-edu/exam-marking-service/internal/models"
	"github.com/eems-edu/exam-marking-service/internal/store"
	"github.com/eems-edu/exam-marking-service/internal/utils"
	"github.com/eems-edu/exam-marking-service/internal/validator"
)

// Claims is the identity embedded in a bearer token.
type Claims struct {
	UserID int             `json:"id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"omitempty,user_role"`
}

// AuthService verifies credentials and issues/verifies bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Register(ctx context.Context, req RegisterRequest) (models.User, error)
	VerifyToken(tokenString string) (*Claims, error)
}

type authService struct {
	store     *store.Store
	validator *validator.Validator
	logger    utils.Logger
	secret    []byte
	tokenTTL  time.Duration
}

func NewAuthService(st *store.Store, v *validator.Validator, logger utils.Logger, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		store:     st,
		validator: v,
		logger:    logger,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies a plaintext password against a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login verifies the supplied credentials and issues a signed token. Unknown
// email and wrong password collapse into the same ErrInvalidCredentials so
// responses do not leak which emails are registered.
func (s *authService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, ok := s.store.FindUserByEmail(email)
	if !ok || !CheckPasswordHash(password, user.PasswordHash) {
		return models.User{}, "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "exam-marking-service",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.LogError(err, "failed to sign token", "email", email)
		return models.User{}, "", err
	}

	s.logger.Info("user logged in", "email", user.Email, "role", user.Role)
	return user, signed, nil
}

// Register creates a new account. The role defaults to student.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	if err := s.validator.Validate(&req); err != nil {
		return models.User{}, err
	}
	if req.Role == "" {
		req.Role = models.RoleStudent
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.store.AddUser(models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	})
	if err != nil {
		return models.User{}, ErrDuplicateEmail
	}

	s.logger.Info("user registered", "email", user.Email, "role", user.Role)
	return user, nil
}

// VerifyToken parses and verifies a bearer token. Malformed, expired and
// badly-signed tokens all collapse into ErrInvalidToken.
func (s *authService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

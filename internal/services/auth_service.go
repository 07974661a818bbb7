package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"friendchat/config"
	"friendchat/internal/domain/user"
	"friendchat/internal/repository"
	friendchat_errors "friendchat/pkg/errors"
	"friendchat/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
	hashCost  int
	log       *logger.Logger
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, log *logger.Logger) *AuthService {
	ttl := time.Duration(cfg.JWTExpiryMin) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: ttl,
		hashCost:  bcrypt.DefaultCost,
		log:       log,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

type LoginInput struct {
	Email    string
	Password string
}

type AccessClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Image = strings.TrimSpace(in.Image)
	if err := validateRegister(in); err != nil {
		return uuid.Nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now().UTC()
	newUser := &user.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Image:        in.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if !errors.Is(err, friendchat_errors.ErrAlreadyExists) {
			s.log.Error(ctx, "failed to create user", zap.Error(err))
		}
		return uuid.Nil, err
	}

	s.log.Info(ctx, "user registered", zap.String("user_id", newUser.ID.String()))
	return newUser.ID, nil
}

// Login returns a signed access token. An unknown email is NotFound, a
// wrong password is InvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" || in.Password == "" {
		return "", friendchat_errors.Invalid("email and password are required")
	}

	u, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return "", friendchat_errors.ErrInvalidCredentials
	}

	return s.newAccessToken(u.ID)
}

func (s *AuthService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, friendchat_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, friendchat_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, friendchat_errors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, friendchat_errors.ErrUnauthorized
	}
	return userID, nil
}

func (s *AuthService) newAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func validateRegister(in RegisterInput) error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return friendchat_errors.Invalid("name, email and password are required")
	}
	if !strings.Contains(in.Email, "@") {
		return friendchat_errors.Invalid("email is malformed")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

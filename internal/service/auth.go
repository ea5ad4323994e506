package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/letteringshop/storefront/internal/models"
	"github.com/letteringshop/storefront/internal/repo"
	"github.com/letteringshop/storefront/pkg/hash"
	"github.com/letteringshop/storefront/pkg/jwtutil"
	"github.com/letteringshop/storefront/pkg/logging"
	"github.com/letteringshop/storefront/pkg/tokens"
)

var (
	ErrConflict            = errors.New("conflict")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	IsAdmin      bool
}

func (s *AuthService) CreateAccessToken(role, id string, accessExp time.Time) (string, error) {
	accessClaims := tokens.AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.JWTSecret)
}

func (s *AuthService) CreateRefreshToken(id string, refreshExp time.Time) (string, string, error) {
	jti := jwtutil.NewJTI()
	refreshClaims := tokens.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.RefreshSecret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" || name == "" {
		return fmt.Errorf("email and name are required: %w", ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return err
	}

	account := models.Account{
		Email:        email,
		PasswordHash: pwHash,
		Name:         name,
		Role:         "user",
	}
	if err := s.Repo.CreateAccountIfNotExists(ctx, &account); err != nil {
		if errors.Is(err, repo.ErrAccountExists) {
			l.Warn("register_conflict", "email", email)
			return fmt.Errorf("account already exists: %w", ErrConflict)
		}
		l.Error("register_error", "error", err)
		return err
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	account, err := s.Repo.VerifyCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_failed", "reason", "invalid email or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	return s.issueTokens(ctx, account.ID, account.Role)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	account, err := s.Repo.GetAccountByID(ctx, userID)
	if err != nil {
		l.Warn("refresh_failed", "reason", "account lookup", "error", err)
		return nil, ErrInvalidRefreshToken
	}

	refreshExp := time.Now().Add(refreshTokenTTL)
	newRefresh, jti, err := s.CreateRefreshToken(account.ID.String(), refreshExp)
	if err != nil {
		return nil, err
	}

	newModel := models.RefreshToken{
		JTI:       jti,
		Token:     jwtutil.Sha256Hex(newRefresh),
		UserID:    account.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, newModel); err != nil {
		l.Warn("refresh_failed", "error", err)
		return nil, ErrInvalidRefreshToken
	}

	accessExp := time.Now().Add(accessTokenTTL)
	accessToken, err := s.CreateAccessToken(account.Role, account.ID.String(), accessExp)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      account.Role == "admin",
	}, nil
}

func (s *AuthService) LogOut(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID, role string) (*LoginResult, error) {
	accessExp := time.Now().Add(accessTokenTTL)
	accessToken, err := s.CreateAccessToken(role, userID.String(), accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(refreshTokenTTL)
	refreshToken, jti, err := s.CreateRefreshToken(userID.String(), refreshExp)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.StoreRefreshToken(ctx, jti, refreshToken, userID, refreshExp); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      role == "admin",
	}, nil
}

package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"fleetrent/internal/caching"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenResponse is the login/refresh payload handed to the client.
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	RefreshToken string          `json:"refresh_token"`
	User         *models.AppUser `json:"user"`
}

// TokenClaims are the JWT claims carried by the access token.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

type authService struct {
	userRepo   repositories.AppUserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   int // seconds
	refreshTTL int // seconds
}

func NewAuthService(userRepo repositories.AppUserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTLSeconds, refreshTTLSeconds int) AuthService {
	return &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTLSeconds,
		refreshTTL: refreshTTLSeconds,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	if err := common.ValidateEmail(email, "email"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(password, "password"); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if user.Status != models.UserStatusActive {
		return nil, fmt.Errorf("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.AppUser) (*TokenResponse, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   user.ID.String(),
		TenantID: user.OwnerUID.String(),
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fleetrent-auth",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.tokenTTL) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken := generateSecureToken()
	refreshTokenHash := hashToken(refreshToken)
	tokenData := fmt.Sprintf("%s:%d", user.ID.String(), now.Unix()+int64(s.refreshTTL))
	cacheKey := fmt.Sprintf("fleetrent:refresh_token:%s", refreshTokenHash)
	if err := s.cacheSvc.SetString(ctx, cacheKey, tokenData, time.Duration(s.refreshTTL)*time.Second); err != nil {
		log.Printf("Failed to store refresh token: %v", err)
		// Continue - the access token is still valid
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenTTL,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	cacheKey := fmt.Sprintf("fleetrent:refresh_token:%s", hashToken(refreshToken))
	tokenData, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil || tokenData == "" {
		return nil, fmt.Errorf("invalid refresh token")
	}

	parts := strings.Split(tokenData, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid token data")
	}

	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token expiry")
	}
	if time.Now().Unix() > expiry {
		s.cacheSvc.Delete(ctx, cacheKey)
		return nil, fmt.Errorf("refresh token expired")
	}

	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	user, err := s.userRepo.GetByIDAny(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	if user.Status != models.UserStatusActive {
		return nil, fmt.Errorf("account is disabled")
	}

	// Rotate: old refresh token is single-use.
	s.cacheSvc.Delete(ctx, cacheKey)

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	if refreshToken != "" {
		cacheKey := fmt.Sprintf("fleetrent:refresh_token:%s", hashToken(refreshToken))
		if err := s.cacheSvc.Delete(ctx, cacheKey); err != nil {
			log.Printf("Failed to delete refresh token: %v", err)
		}
	}
	return s.cacheSvc.DeleteSessionUser(ctx, userID)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	jwtToken, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if claims, ok := jwtToken.Claims.(*TokenClaims); ok && jwtToken.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}

// RequestPasswordReset issues a short-lived reset token. The token is
// returned to the caller so the email-sending layer can deliver it; an
// unknown email still gets a token back so callers cannot probe for
// registered addresses.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if err := common.ValidateEmail(email, "email"); err != nil {
		return "", err
	}

	resetToken := generateSecureToken()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return resetToken, nil
	}

	cacheKey := fmt.Sprintf("fleetrent:password_reset:%s", hashToken(resetToken))
	if err := s.cacheSvc.SetString(ctx, cacheKey, user.ID.String(), 30*time.Minute); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return resetToken, nil
}

func (s *authService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if err := common.ValidateRequiredString(newPassword, "password"); err != nil {
		return err
	}

	cacheKey := fmt.Sprintf("fleetrent:password_reset:%s", hashToken(resetToken))
	userIDStr, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil || userIDStr == "" {
		return fmt.Errorf("invalid or expired reset token")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fmt.Errorf("invalid reset token data")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.cacheSvc.Delete(ctx, cacheKey)
	s.cacheSvc.DeleteSessionUser(ctx, userID)
	return nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if err := common.ValidateRequiredString(newPassword, "password"); err != nil {
		return err
	}

	user, err := s.userRepo.GetByIDAny(ctx, userID)
	if err != nil {
		return common.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.cacheSvc.DeleteSessionUser(ctx, userID)
}

func generateSecureToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

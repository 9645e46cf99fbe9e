package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"fleetrent/internal/caching"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionUserCacheTTL = 5 * time.Minute

// SessionMiddleware validates the bearer token and resolves the
// effective owner id for the request: the caller's own id when the
// account is an owner, the stored owner_uid otherwise. The resolved
// session rides on the request context for every downstream call.
func SessionMiddleware(userRepo repositories.AppUserRepository, cacheSvc caching.CacheService, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing subject in token")
			}

			userID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid subject format")
			}

			user, err := resolveUser(c, userRepo, cacheSvc, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}
			if user.Status != models.UserStatusActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account disabled")
			}

			sess := common.Session{
				UserID:   user.ID,
				TenantID: user.OwnerUID,
				Role:     user.Role,
			}
			c.SetRequest(c.Request().WithContext(common.WithSession(c.Request().Context(), sess)))

			return next(c)
		}
	}
}

func resolveUser(c echo.Context, userRepo repositories.AppUserRepository, cacheSvc caching.CacheService, userID uuid.UUID) (*models.AppUser, error) {
	ctx := c.Request().Context()

	if cached, err := cacheSvc.GetSessionUser(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	user, err := userRepo.GetByIDAny(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cacheSvc.SetSessionUser(ctx, user, sessionUserCacheTTL); err != nil {
		log.Printf("Failed to cache session user %s: %v", userID, err)
	}
	return user, nil
}

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/komunity_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates session tokens.
// Both the "Token" and "Bearer" schemes are accepted.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || tokenString == "" || !isSupportedScheme(scheme) {
			logger.Warn("Authorization header format invalid", slog.String("scheme", scheme))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Token {token}"})
			return
		}

		userID, err := utils.ParseAndValidateJWT(strings.TrimSpace(tokenString), jwtSecret, issuer)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token."
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired."
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		ctx := WithUserID(c.Request.Context(), userID)
		ctx = WithLogger(ctx, logger.With(slog.Int64("user_id", userID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func isSupportedScheme(scheme string) bool {
	return strings.EqualFold(scheme, "token") || strings.EqualFold(scheme, "bearer")
}

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// userIDKey is the gin context key carrying the authenticated user's ID.
const userIDKey = "auth_user_id"

// JWTAuthMiddleware validates a Bearer token signed with HMAC-SHA256 and
// stores the subject claim as the caller's user ID. The API itself never
// issues tokens; the auth service does.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "missing authorization header",
			})

			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "authorization header must use Bearer scheme",
			})

			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))

		if err != nil || !token.Valid {
			slog.Warn("rejected invalid token",
				"path", c.Request.URL.Path,
				"error", err,
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "invalid or expired token",
			})

			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "token has no subject",
			})

			return
		}

		c.Set(userIDKey, subject)
		c.Next()
	}
}

// AuthenticatedUserID returns the user ID set by JWTAuthMiddleware.
func AuthenticatedUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

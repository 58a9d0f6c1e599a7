package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenQueryParam lets browser websocket clients, which cannot set
// headers, present their access token in the URL.
const AccessTokenQueryParam = "access_token"

// AuthMiddleware creates a Gin middleware handler that validates JWT access tokens.
// The token is read from the Authorization header; when allowQueryToken is set
// the access_token query parameter is accepted as well.
func AuthMiddleware(jwtSecret string, allowQueryToken ...bool) gin.HandlerFunc {
	queryAllowed := len(allowQueryToken) > 0 && allowQueryToken[0]
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, msg := bearerToken(c, queryAllowed)
		if tokenString == "" {
			logger.Warn("Access token missing or malformed", "reason", msg)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID, err := ParseAccessToken(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		enriched := logger.With(slog.String("user_id", userID))
		ctx := WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(WithLogger(ctx, enriched))
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}

// ParseAccessToken validates an HMAC-signed token and returns its subject.
func ParseAccessToken(tokenString, jwtSecret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return "", errors.New("subject missing from token")
	}
	return claims.Subject, nil
}

func bearerToken(c *gin.Context, queryAllowed bool) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if queryAllowed {
			if t := c.Query(AccessTokenQueryParam); t != "" {
				return t, ""
			}
		}
		return "", "Authorization header required"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", "Authorization header format must be Bearer {token}"
	}
	return parts[1], ""
}

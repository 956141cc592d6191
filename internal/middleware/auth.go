package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "userID"

// Attribution extracts the submitting user id from a signed bearer token
// and stores it in the request context. It does not gate requests; it only
// attributes them. Full authentication flows live outside this service.
func Attribution(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, err := claims.GetSubject(); err == nil && sub != "" {
				c.Set(userIDKey, sub)
			}
		}

		c.Next()
	}
}

// UserID returns the attributed user id, or "" for anonymous requests
func UserID(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

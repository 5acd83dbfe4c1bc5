package middleware

import (
	"net/http"
	"strings"
	"time"

	"boardroom-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextRoleKey    = "role"
	ContextAdminIDKey = "adminId"
)

// Claims carried by staff session tokens.
type Claims struct {
	AdminID uint   `json:"adminId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a session JWT for a staff account.
func IssueToken(secret string, adminID uint, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		AdminID: adminID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Auth parses the Bearer token and injects the caller's role into the
// context. Lifecycle role enforcement happens in the services against the
// transition table; this middleware only authenticates.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.missingAuthorization", "message": "missing authorization header"},
			})
			return
		}
		parts := strings.Fields(auth)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.invalidAuthorization", "message": "invalid authorization format"},
			})
			return
		}

		claims := &Claims{}
		_, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		}, jwt.WithLeeway(5*time.Second))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.invalidToken", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextRoleKey, claims.Role)
		c.Set(ContextAdminIDKey, claims.AdminID)
		c.Next()
	}
}

// RoleFrom reads the authenticated role from the context. Unauthenticated
// requests report the plain user role.
func RoleFrom(c *gin.Context) string {
	if v, ok := c.Get(ContextRoleKey); ok {
		if s, ok2 := v.(string); ok2 && s != "" {
			return s
		}
	}
	return models.RoleUser
}

// RequireRoles guards non-lifecycle admin endpoints (user management,
// renewal, settings) at the router level.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleFrom(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": gin.H{"code": "error.forbidden", "message": "insufficient role for this operation"},
		})
	}
}

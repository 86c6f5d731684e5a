package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vastraverse/storefront-api/internal/dto"
	"github.com/vastraverse/storefront-api/internal/model"
)

const (
	ctxUserID    = "userID"
	ctxUserEmail = "userEmail"
	ctxUserRole  = "userRole"
)

// AuthMiddleware extracts and verifies the bearer token. A missing token is
// 401; a present but bad or expired one is 403.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") || header[7:] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{
				Success: false, Message: "Access token required",
			})
			return
		}

		token, err := jwt.Parse(header[7:], func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Response{
				Success: false, Message: "Invalid or expired token",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Response{
				Success: false, Message: "Invalid or expired token",
			})
			return
		}

		id, ok := claims["userId"].(float64)
		if !ok || id < 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Response{
				Success: false, Message: "Invalid or expired token",
			})
			return
		}
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)

		c.Set(ctxUserID, int64(id))
		c.Set(ctxUserEmail, email)
		c.Set(ctxUserRole, role)
		c.Next()
	}
}

// AdminOnly gates the product-creation route on the role claim.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Response{
				Success: false, Message: "Admin access required",
			})
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) int64 {
	id, _ := c.Get(ctxUserID)
	uid, _ := id.(int64)
	return uid
}

func GetUserEmail(c *gin.Context) string {
	email, _ := c.Get(ctxUserEmail)
	e, _ := email.(string)
	return e
}

func GetUserRole(c *gin.Context) string {
	role, _ := c.Get(ctxUserRole)
	r, _ := role.(string)
	return r
}

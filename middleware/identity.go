package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims is the token payload issued by the identity provider. The
// external user id in it is trusted as the actor for all mutations.
type IdentityClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

const identityKey = "userId"

// ActorID returns the external user id attached to the request, if any.
func ActorID(c *gin.Context) string {
	return c.GetString(identityKey)
}

// Identity parses an optional Bearer token and attaches the external user id
// to the context. Requests without a token pass through anonymously so list
// reads can still serve unauthenticated clients; a present-but-invalid token
// is rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			c.Abort()
			return
		}

		claims := &IdentityClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		id := claims.UserID
		if id == "" {
			id = claims.Subject
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

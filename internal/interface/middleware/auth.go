package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-api/pkg/helpers"
	"github.com/oksasatya/go-todo-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth reads the Authorization bearer token, validates it, and injects the
// user ID into the Gin context. Missing header and invalid token both
// answer 401 with the same message; the internal cause is only logged.
func Auth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			if logger != nil {
				logger.WithField("path", c.FullPath()).Debug("missing or malformed authorization header")
			}
			response.Error[any](c, http.StatusUnauthorized, "unauthenticated", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("path", c.FullPath()).Debug("token verification failed")
			}
			response.Error[any](c, http.StatusUnauthorized, "unauthenticated", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sigpat/sigpat/internal/actor"
	iauth "github.com/sigpat/sigpat/internal/auth"
	"github.com/sigpat/sigpat/pkg/errors"
	"github.com/sigpat/sigpat/pkg/response"
)

// CtxClaimsKey exposes the validated JWT claims on the gin context.
const CtxClaimsKey = "authClaims"

// Auth enforces JWT authentication and binds the authenticated operator into
// the request context so every downstream mutation is attributed to them.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := jwt.ValidateAccessToken(strings.TrimSpace(authz[7:]))
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(CtxClaimsKey, claims)
		ctx := actor.WithActor(c.Request.Context(), actor.Actor{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

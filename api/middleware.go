package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rideaway/vehicle-rental/internal/apperr"
	"github.com/rideaway/vehicle-rental/internal/auth"
	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/repository"
)

const principalKey = "principal"

// Authenticate validates the bearer token and re-resolves its user. Tokens
// for deleted users are rejected even before expiry.
func Authenticate(users repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWith(c, apperr.New(apperr.Unauthenticated, "You are not authorized!"))
			return
		}

		token, err := auth.TokenFromHeader(header)
		if err != nil {
			abortWith(c, err)
			return
		}

		claims, err := auth.ParseToken(token, jwtSecret)
		if err != nil {
			abortWith(c, err)
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			abortWith(c, apperr.New(apperr.Unauthenticated, "This user is not found!"))
			return
		}

		c.Set(principalKey, auth.Principal{ID: user.ID, Email: user.Email, Role: user.Role})
		c.Next()
	}
}

// RequireRoles gates a route to the given roles. Runs after Authenticate.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		p := principalFrom(c)
		if _, ok := allowed[p.Role]; !ok {
			abortWith(c, apperr.New(apperr.Unauthorized, "You have no access to this route"))
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) auth.Principal {
	p, _ := c.Get(principalKey)
	principal, _ := p.(auth.Principal)
	return principal
}

func abortWith(c *gin.Context, err error) {
	message := apperr.MessageOf(err)
	c.AbortWithStatusJSON(statusOf(apperr.KindOf(err)), Response{
		Success:       false,
		Message:       message,
		ErrorMessages: []ErrorDetail{{Path: "", Message: message}},
	})
}

// RequestLogger logs one line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// NotFoundHandler answers unmatched routes with the standard envelope.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Success:       false,
		Message:       "API Not Found",
		ErrorMessages: []ErrorDetail{{Path: c.Request.URL.Path, Message: "API Not Found"}},
	})
}

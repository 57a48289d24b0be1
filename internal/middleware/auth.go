package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"

	"github.com/monocle-dev/opsdesk/internal/auth"
	"github.com/monocle-dev/opsdesk/internal/repository"
	"github.com/monocle-dev/opsdesk/internal/types"
)

type AuthenticatedUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Authenticate requires a valid bearer token naming an existing user.
func Authenticate(tokens *auth.Tokens, users *repository.Users) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abortUnauthorized(ctx, "Authorization token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(ctx, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			abortUnauthorized(ctx, "Invalid or expired token")
			return
		}

		user, err := users.FindByID(ctx.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, errors.NotFound) {
				abortUnauthorized(ctx, "User not found")
				return
			}
			_ = ctx.Error(err)
			ctx.Abort()
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			UserID:   user.UserID,
			Username: user.Username,
			Role:     user.Role,
		})
		ctx.Next()
	}
}

func abortUnauthorized(ctx *gin.Context, message string) {
	resp := types.Failure(message, nil, http.StatusUnauthorized)
	ctx.AbortWithStatusJSON(resp.StatusCode, resp)
}

// CurrentUser returns the user set by Authenticate.
func CurrentUser(ctx *gin.Context) (AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)
	if !exists {
		return AuthenticatedUser{}, errors.Unauthorizedf("user not authenticated")
	}

	user, ok := value.(AuthenticatedUser)
	if !ok {
		return AuthenticatedUser{}, errors.Errorf("invalid user type in context: %T", value)
	}
	return user, nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monocle-dev/opsdesk/internal/middleware"
	"github.com/monocle-dev/opsdesk/internal/services"
	"github.com/monocle-dev/opsdesk/internal/types"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req types.LoginRequest
	if err := middleware.BindBody(ctx, &req); err != nil {
		HandleServiceResponse(ctx, invalid(err))
		return
	}

	HandleServiceResponse(ctx, h.service.Login(ctx.Request.Context(), req))
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	user, err := middleware.CurrentUser(ctx)
	if err != nil {
		HandleServiceResponse(ctx, types.FromError(err, "An error occurred while reading the current user"))
		return
	}

	HandleServiceResponse(ctx, types.Success("Get current user success", user, http.StatusOK))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monocle-dev/opsdesk/internal/middleware"
	"github.com/monocle-dev/opsdesk/internal/models"
	"github.com/monocle-dev/opsdesk/internal/services"
	"github.com/monocle-dev/opsdesk/internal/types"
)

func HandleServiceResponse(ctx *gin.Context, resp types.ServiceResponse) {
	ctx.JSON(resp.StatusCode, resp)
}

// CRUD serves the five routes of one entity. Requests reaching it have
// passed validation, so binding here only re-reads the cached body.
type CRUD[T models.Record, C, U any] struct {
	service *services.Service[T, C, U]
	param   string
	idOf    func(U) string
}

// NewCRUD takes the path parameter carrying the id and how to read the id
// from an update body.
func NewCRUD[T models.Record, C, U any](service *services.Service[T, C, U], param string, idOf func(U) string) *CRUD[T, C, U] {
	return &CRUD[T, C, U]{
		service: service,
		param:   param,
		idOf:    idOf,
	}
}

func (h *CRUD[T, C, U]) Param() string { return h.param }

func (h *CRUD[T, C, U]) List(ctx *gin.Context) {
	HandleServiceResponse(ctx, h.service.FindAll(ctx.Request.Context()))
}

func (h *CRUD[T, C, U]) Get(ctx *gin.Context) {
	HandleServiceResponse(ctx, h.service.FindByID(ctx.Request.Context(), ctx.Param(h.param)))
}

func (h *CRUD[T, C, U]) Create(ctx *gin.Context) {
	var req C
	if err := middleware.BindBody(ctx, &req); err != nil {
		HandleServiceResponse(ctx, invalid(err))
		return
	}

	HandleServiceResponse(ctx, h.service.Create(ctx.Request.Context(), req))
}

func (h *CRUD[T, C, U]) Update(ctx *gin.Context) {
	var req U
	if err := middleware.BindBody(ctx, &req); err != nil {
		HandleServiceResponse(ctx, invalid(err))
		return
	}

	HandleServiceResponse(ctx, h.service.Update(ctx.Request.Context(), h.idOf(req), req))
}

func (h *CRUD[T, C, U]) Delete(ctx *gin.Context) {
	HandleServiceResponse(ctx, h.service.Delete(ctx.Request.Context(), ctx.Param(h.param)))
}

func invalid(err error) types.ServiceResponse {
	return types.Failure("Invalid input: "+middleware.Describe(err), nil, http.StatusBadRequest)
}

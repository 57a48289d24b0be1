package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"

	"github.com/monocle-dev/opsdesk/internal/app"
	"github.com/monocle-dev/opsdesk/internal/config"
	"github.com/monocle-dev/opsdesk/internal/handlers"
	"github.com/monocle-dev/opsdesk/internal/middleware"
	"github.com/monocle-dev/opsdesk/internal/models"
	"github.com/monocle-dev/opsdesk/internal/repository"
	"github.com/monocle-dev/opsdesk/internal/services"
	"github.com/monocle-dev/opsdesk/internal/types"
)

func NewRouter(a *app.App) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.Recovery(a.Logger),
		middleware.Logger(a.Logger),
		cors.New(a.Config.CORS()),
		secure.New(secureConfig(a.Config.Env)),
		middleware.ErrorHandler(a.Logger),
	)
	r.NoRoute(middleware.NotFound)

	r.GET("/health", handlers.HealthCheck(a.DB, a.Clock, a.Logger))

	userRepo := repository.NewUsers(a.DB)
	authenticate := middleware.Authenticate(a.Tokens, userRepo)
	policy := middleware.AuthPolicy(a.Config.AuthRoutes)
	guard := func(entity, op string) []gin.HandlerFunc {
		if policy.Requires(entity, op) {
			return []gin.HandlerFunc{authenticate}
		}
		return nil
	}

	v1 := r.Group("/v1")

	authHandler := handlers.NewAuthHandler(services.NewAuthService(userRepo, a.Tokens, a.Logger))
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", middleware.ValidateBody[types.LoginRequest](), authHandler.Login)
		authGroup.GET("/me", authenticate, authHandler.Me)
	}

	mount[types.CategoryURI](v1, types.EntityCategory, guard, handlers.NewCRUD(
		services.NewCategories(a.DB, a.Logger), "category_id",
		func(req types.UpdateCategoryRequest) string { return req.CategoryID },
	))
	mount[types.ProjectURI](v1, types.EntityProject, guard, handlers.NewCRUD(
		services.NewProjects(a.DB, a.Logger), "project_id",
		func(req types.UpdateProjectRequest) string { return req.ProjectID },
	))
	mount[types.UserURI](v1, types.EntityUser, guard, handlers.NewCRUD(
		services.NewUsers(userRepo, a.Logger), "user_id",
		func(req types.UpdateUserRequest) string { return req.UserID },
	))
	mount[types.TaskURI](v1, types.EntityTask, guard, handlers.NewCRUD(
		services.NewTasks(a.DB, a.Logger), "task_id",
		func(req types.UpdateTaskRequest) string { return req.TaskID },
	))
	mount[types.ResourceURI](v1, types.EntityResource, guard, handlers.NewCRUD(
		services.NewResources(a.DB, a.Logger), "resource_id",
		func(req types.UpdateResourceRequest) string { return req.ResourceID },
	))

	return r
}

// mount registers the entity's route table under /v1/{entity}. P is the
// path parameter struct validated on the id routes.
func mount[P any, T models.Record, C, U any](
	v1 *gin.RouterGroup,
	entity string,
	guard func(entity, op string) []gin.HandlerFunc,
	h *handlers.CRUD[T, C, U],
) {
	g := v1.Group("/" + entity)
	id := "/:" + h.Param()

	g.GET("/get", chain(guard(entity, types.OpGet), h.List)...)
	g.GET("/get"+id, chain(guard(entity, types.OpGet), middleware.ValidateURI[P](), h.Get)...)
	g.POST("/create", chain(guard(entity, types.OpCreate), middleware.ValidateBody[C](), h.Create)...)
	g.PUT("/update", chain(guard(entity, types.OpUpdate), middleware.ValidateBody[U](), h.Update)...)
	g.DELETE("/delete"+id, chain(guard(entity, types.OpDelete), middleware.ValidateURI[P](), h.Delete)...)
}

func chain(pre []gin.HandlerFunc, rest ...gin.HandlerFunc) []gin.HandlerFunc {
	return append(append([]gin.HandlerFunc{}, pre...), rest...)
}

func secureConfig(env string) secure.Config {
	cfg := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		IENoOpen:              true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; frame-ancestors 'none'",
	}

	// local runs over plain http
	if env != config.EnvLocal {
		cfg.STSSeconds = 15552000
		cfg.STSIncludeSubdomains = true
	}
	return cfg
}

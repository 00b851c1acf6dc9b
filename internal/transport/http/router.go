package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_board/internal/handlers"
	authmw "github.com/Skotchmaster/job_board/internal/middleware/auth"
)

type Deps struct {
	Auth            *authmw.Middleware
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	CategoryHandler *handlers.CategoryHandler
	JobHandler      *handlers.JobHandler
	CommentHandler  *handlers.CommentHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	users := e.Group("/users")
	users.POST("", d.AuthHandler.Register)
	users.POST("/login", d.AuthHandler.Login)
	users.POST("/token", d.AuthHandler.Token)
	users.POST("/logout", d.AuthHandler.LogOut)
	users.GET("/:id", d.UserHandler.GetUser, d.Auth.RequireAuth)
	users.PUT("/:id", d.UserHandler.UpdateUser, d.Auth.RequireAuth)

	categories := e.Group("/categories")
	categories.GET("", d.CategoryHandler.ListCategories)
	categories.GET("/:id/jobs", d.CategoryHandler.JobsByCategory)
	categories.POST("", d.CategoryHandler.CreateCategory, d.Auth.RequireAuth, d.Auth.RequireAdmin)
	categories.PUT("/:id", d.CategoryHandler.UpdateCategory, d.Auth.RequireAuth, d.Auth.RequireAdmin)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory, d.Auth.RequireAuth, d.Auth.RequireAdmin)

	jobs := e.Group("/jobs")
	jobs.GET("", d.JobHandler.ListJobs)
	jobs.GET("/search", d.SearchHandler.SearchJobs)
	jobs.GET("/:id", d.JobHandler.GetJob)
	jobs.POST("", d.JobHandler.CreateJob, d.Auth.RequireAuth)
	jobs.PUT("/:id", d.JobHandler.UpdateJob, d.Auth.RequireAuth)
	jobs.DELETE("/:id", d.JobHandler.DeleteJob, d.Auth.RequireAuth)
	jobs.GET("/:id/comments", d.CommentHandler.ListByJob)
	jobs.POST("/:id/comments", d.CommentHandler.CreateComment, d.Auth.RequireAuth)

	comments := e.Group("/comments")
	comments.GET("/:id", d.CommentHandler.GetComment)
	comments.PUT("/:id", d.CommentHandler.UpdateComment, d.Auth.RequireAuth)
	comments.DELETE("/:id", d.CommentHandler.DeleteComment, d.Auth.RequireAuth)
}

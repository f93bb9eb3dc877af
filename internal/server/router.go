// Package server is the thin presentation boundary: HTTP routes over the
// lifecycle controller and stores. No scheduling logic lives here.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avsivakumar/tada/internal/auth"
	"github.com/avsivakumar/tada/internal/service"
)

// New assembles the gin engine with all routes registered.
func New(
	authSvc *auth.Service,
	taskSvc *service.TaskService,
	noteSvc *service.NoteService,
	reminderSvc *service.ReminderService,
	backupSvc *service.BackupService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	authHandler := NewAuthHandler(authSvc)
	taskHandler := NewTaskHandler(taskSvc, reminderSvc)
	noteHandler := NewNoteHandler(noteSvc)
	backupHandler := NewBackupHandler(backupSvc)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", AuthMiddleware(authSvc), authHandler.Me)
		}

		tasks := api.Group("/tasks")
		tasks.Use(AuthMiddleware(authSvc))
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PUT("/:id", taskHandler.Replace)
			tasks.DELETE("/:id", taskHandler.Delete)
			tasks.PATCH("/:id/toggle", taskHandler.Toggle)
			tasks.POST("/:id/snooze", taskHandler.Snooze)
			tasks.POST("/:id/dismiss", taskHandler.Dismiss)
			tasks.PATCH("/:id/reschedule", taskHandler.Reschedule)
		}

		api.GET("/reminders/due", AuthMiddleware(authSvc), taskHandler.DueReminders)
		api.GET("/stats", AuthMiddleware(authSvc), taskHandler.Stats)

		notes := api.Group("/notes")
		notes.Use(AuthMiddleware(authSvc))
		{
			notes.GET("", noteHandler.List)
			notes.POST("", noteHandler.Create)
			notes.PUT("/:id", noteHandler.Replace)
			notes.DELETE("/:id", noteHandler.Delete)
		}

		backup := api.Group("/backup")
		backup.Use(AuthMiddleware(authSvc))
		{
			backup.GET("/export", backupHandler.Export)
			backup.POST("/import", backupHandler.Import)
		}
	}

	return r
}

package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avsivakumar/tada/internal/model"
	"github.com/avsivakumar/tada/internal/service"
)

// BackupHandler handles export and import of full snapshots.
type BackupHandler struct {
	backup *service.BackupService
}

func NewBackupHandler(backup *service.BackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

// GET /api/backup/export?format=json|csv
func (h *BackupHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()
	stamp := model.FormatDate(now)

	switch c.DefaultQuery("format", "json") {
	case "csv":
		data, err := h.backup.ExportCSV(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		name := fmt.Sprintf("tada-backup-%s.csv", stamp)
		c.Header("Content-Disposition", "attachment; filename="+name)
		c.Data(http.StatusOK, "text/csv", data)
	case "json":
		data, err := h.backup.ExportJSON(ctx, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		name := fmt.Sprintf("tada-backup-%s.json", stamp)
		c.Header("Content-Disposition", "attachment; filename="+name)
		c.Data(http.StatusOK, "application/json", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or csv"})
	}
}

// POST /api/backup/import — JSON backup in the request body.
func (h *BackupHandler) Import(c *gin.Context) {
	tasks, notes, err := h.backup.Import(c.Request.Context(), c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasksImported": tasks, "notesImported": notes})
}

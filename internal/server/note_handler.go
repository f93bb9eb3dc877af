package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avsivakumar/tada/internal/model"
	"github.com/avsivakumar/tada/internal/service"
)

// NoteHandler handles note-related HTTP requests.
type NoteHandler struct {
	notes *service.NoteService
}

func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// GET /api/notes?q=...
func (h *NoteHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		notes []model.Note
		err   error
	)
	if q := c.Query("q"); q != "" {
		notes, err = h.notes.SearchNotes(ctx, q)
	} else {
		notes, err = h.notes.ListNotes(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes, "total": len(notes)})
}

// POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var input service.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note, err := h.notes.CreateNote(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, note)
}

// PUT /api/notes/:id
func (h *NoteHandler) Replace(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	var input service.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.notes.ReplaceNote(c.Request.Context(), id, input)
	if err != nil {
		respondNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// DELETE /api/notes/:id — soft delete.
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	if err := h.notes.DeleteNote(c.Request.Context(), id); err != nil {
		respondNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func noteID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return 0, false
	}
	return uint(id), true
}

func respondNoteError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
	"github.com/dedik2urniawan/fct-engine/internal/session"
)

// SessionHandler manages per-session menu and ingredient state.
type SessionHandler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewSessionHandler constructs the session CRUD handler.
func NewSessionHandler(sessions *session.Manager, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{sessions: sessions, logger: logger}
}

// Create starts a new empty session.
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"session_id": s.ID, "created_at": s.CreatedAt})
}

// Get returns the session's current menus.
func (h *SessionHandler) Get(c *gin.Context) {
	menus, err := h.sessions.Snapshot(c.Param("id"))
	if err != nil {
		h.respondStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("id"), "menus": menus})
}

// Delete removes the session outright.
func (h *SessionHandler) Delete(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// AddMenu appends an empty named menu.
func (h *SessionHandler) AddMenu(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu name is required"})
		return
	}

	if err := h.sessions.AddMenu(c.Param("id"), req.Name); err != nil {
		h.respondStateError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// RenameMenu changes a menu's name.
func (h *SessionHandler) RenameMenu(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new menu name is required"})
		return
	}

	if err := h.sessions.RenameMenu(c.Param("id"), c.Param("menu"), req.Name); err != nil {
		h.respondStateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteMenu removes a menu and its ingredients.
func (h *SessionHandler) DeleteMenu(c *gin.Context) {
	if err := h.sessions.DeleteMenu(c.Param("id"), c.Param("menu")); err != nil {
		h.respondStateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddIngredient appends an ingredient row to a menu.
func (h *SessionHandler) AddIngredient(c *gin.Context) {
	var entry models.IngredientEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.AddIngredient(c.Param("id"), c.Param("menu"), entry); err != nil {
		h.respondStateError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// ReplaceIngredient swaps the ingredient at a position; edits replace the
// entry rather than mutate it.
func (h *SessionHandler) ReplaceIngredient(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "position must be an integer"})
		return
	}

	var entry models.IngredientEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.ReplaceIngredient(c.Param("id"), c.Param("menu"), position, entry); err != nil {
		h.respondStateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteIngredient removes the ingredient at a position.
func (h *SessionHandler) DeleteIngredient(c *gin.Context) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "position must be an integer"})
		return
	}

	if err := h.sessions.DeleteIngredient(c.Param("id"), c.Param("menu"), position); err != nil {
		h.respondStateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) respondStateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrMenuNotFound),
		errors.Is(err, session.ErrIngredientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrMenuExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("session operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

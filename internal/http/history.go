package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	store HistoryStore
}

func NewHistoryController(store HistoryStore) *HistoryController {
	return &HistoryController{store: store}
}

// ListHistory handles GET /api/history
// Entries are newest first.
func (hc *HistoryController) ListHistory(c *gin.Context) {
	entries, err := hc.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// ClearHistory handles DELETE /api/history
func (hc *HistoryController) ClearHistory(c *gin.Context) {
	if err := hc.store.Clear(c.Request.Context()); err != nil {
		respondStoreError(c, err, "clear history")
		return
	}
	respondSuccess(c, "history cleared")
}

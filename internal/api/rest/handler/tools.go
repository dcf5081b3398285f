package handler

import (
	"github.com/gin-gonic/gin"

	apperr "github.com/palemoky/tinci/internal/errors"
	"github.com/palemoky/tinci/internal/tools"
)

// ToolsHandler dispatches tool calls by name
type ToolsHandler struct {
	svc *tools.Service
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(svc *tools.Service) *ToolsHandler {
	return &ToolsHandler{svc: svc}
}

// List handles GET /tools
func (h *ToolsHandler) List(c *gin.Context) {
	names := tools.Names()
	respondOK(c, gin.H{"tools": names, "count": len(names)})
}

// Call handles POST /tools/:name with a JSON argument object as body.
func (h *ToolsHandler) Call(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondError(c, apperr.InvalidRequest("failed to read request body"))
		return
	}

	res, err := h.svc.Call(c.Param("name"), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

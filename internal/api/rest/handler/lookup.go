package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/palemoky/tinci/internal/tools"
)

// LookupHandler serves the lookup endpoints
type LookupHandler struct {
	svc *tools.Service
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(svc *tools.Service) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// Jyutping handles GET /jyutping?text=
func (h *LookupHandler) Jyutping(c *gin.Context) {
	res, err := h.svc.GetJyutping(tools.JyutpingArgs{Text: c.Query("text")})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// TonePattern handles GET /tone-pattern?text=&system=
func (h *LookupHandler) TonePattern(c *gin.Context) {
	res, err := h.svc.GetTonePattern(tools.TonePatternArgs{
		Text:   c.Query("text"),
		System: c.Query("system"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// Rhymes handles GET /rhymes
func (h *LookupHandler) Rhymes(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}
	targetTone, err := queryInt(c, "target_tone")
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.svc.GetRhymingCharacters(tools.RhymesArgs{
		Character:   c.Query("character"),
		ToneFilter:  c.Query("tone_filter"),
		System:      c.Query("system"),
		Limit:       limit,
		TargetTone:  targetTone,
		TargetGroup: queryString(c, "target_group"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// Finals handles GET /finals
func (h *LookupHandler) Finals(c *gin.Context) {
	res, err := h.svc.ListFinals()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// CharactersByFinal handles GET /finals/:final?tone=&limit=
func (h *LookupHandler) CharactersByFinal(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, err)
		return
	}
	tn, err := queryInt(c, "tone")
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.svc.GetCharactersByFinal(tools.FinalArgs{
		Final:  c.Param("final"),
		Tone:   tn,
		System: c.Query("system"),
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// ToneSystems handles GET /tone-systems
func (h *LookupHandler) ToneSystems(c *gin.Context) {
	respondOK(c, h.svc.ToneSystems())
}

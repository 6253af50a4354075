// Package api exposes the question pipeline over HTTP. It is a thin
// façade: handlers bind JSON, call the orchestrator, and translate
// every outcome into the success/error envelope.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/examgen/internal/questiongen"
)

// Handler serves the question generation endpoints.
type Handler struct {
	svc    *questiongen.Service
	logger *zap.Logger
}

func NewHandler(svc *questiongen.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Generate handles POST /api/questions/generate. Large requests are
// fanned out into concurrent sub-batches server-side; the client sees a
// single response either way.
func (h *Handler) Generate(c *gin.Context) {
	var req questiongen.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	questions, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	respondOK(c, gin.H{"questions": questions})
}

type regenerateRequest struct {
	Question         questiongen.Question   `json:"question"`
	TargetDifficulty questiongen.Difficulty `json:"targetDifficulty,omitempty"`
	TargetLanguage   questiongen.Language   `json:"targetLanguage,omitempty"`
}

// Regenerate handles POST /api/questions/regenerate: rewrites one
// question's wording while preserving its correct answer.
func (h *Handler) Regenerate(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	question, err := h.svc.RegenerateOne(c.Request.Context(), req.Question, questiongen.RegenerateOptions{
		TargetDifficulty: req.TargetDifficulty,
		TargetLanguage:   req.TargetLanguage,
	})
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	respondOK(c, gin.H{"question": question})
}

// respondPipelineError maps the pipeline error taxonomy onto HTTP
// statuses: input errors are the caller's fault, everything else is a
// server-side failure. The envelope carries one descriptive string.
func (h *Handler) respondPipelineError(c *gin.Context, err error) {
	var inputErr *questiongen.InputError
	if errors.As(err, &inputErr) {
		respondError(c, http.StatusBadRequest, inputErr.Error())
		return
	}

	h.logger.Error("generation request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))

	var shortfall *questiongen.ShortfallError
	switch {
	case errors.As(err, &shortfall):
		respondError(c, http.StatusUnprocessableEntity, shortfall.Error())
	case errors.Is(err, questiongen.ErrNoQuestions):
		respondError(c, http.StatusBadGateway, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

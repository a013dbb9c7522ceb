package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realenhance/structural-validator/internal/fetch"
	"github.com/realenhance/structural-validator/internal/validate"
)

// validateStructureRequest is the body of POST /validate-structure.
// Sensitivity is optional; the server default applies when omitted.
type validateStructureRequest struct {
	OriginalURL string   `json:"originalUrl" binding:"required,url"`
	EnhancedURL string   `json:"enhancedUrl" binding:"required,url"`
	Sensitivity *float64 `json:"sensitivity"`
}

// errorResponse is the body of every failure response.
type errorResponse struct {
	Detail string `json:"detail"`
}

// handleRoot reports service metadata.
func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": ServiceName,
		"version": s.version,
		"status":  "running",
	})
}

// handleHealth is the monitoring health check.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handleValidateStructure compares the structural lines of two images.
//
// Fetch and decode failures map to 400, malformed request bodies to 422,
// anything else inside the pipeline to 500. The response bodies carry a
// single "detail" field in every failure case.
func (s *Server) handleValidateStructure(c *gin.Context) {
	var req validateStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
		return
	}

	sensitivity := s.defaultSensitivity
	if req.Sensitivity != nil {
		sensitivity = *req.Sensitivity
	}

	result, err := s.validator.Validate(c.Request.Context(), validate.Request{
		OriginalURL: req.OriginalURL,
		EnhancedURL: req.EnhancedURL,
		Sensitivity: sensitivity,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondError maps pipeline failures onto the error contract.
func (s *Server) respondError(c *gin.Context, err error) {
	var fetchErr *fetch.FetchError
	var decodeErr *fetch.DecodeError
	if errors.As(err, &fetchErr) || errors.As(err, &decodeErr) {
		s.log.Error().Err(err).Msg("image download failed")
		c.JSON(http.StatusBadRequest, errorResponse{Detail: "Failed to download image: " + err.Error()})
		return
	}

	s.log.Error().Err(err).Msg("validation failed")
	c.JSON(http.StatusInternalServerError, errorResponse{Detail: "Validation failed: " + err.Error()})
}

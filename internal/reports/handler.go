package reports

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/assessment"
	"career-backend/internal/career"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/storage/artifact"
)

const maxSubmissionSize = 1 << 20 // 1MB

// Handler wires HTTP handlers to the report service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/submit-assessment", h.submit)
	rg.GET("/download-report/:name", h.download)
}

func (h *Handler) submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSubmissionSize)
	sub, err := assessment.DecodeSubmission(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Request body too large", "")
		case errors.Is(err, assessment.ErrMissingAnswers):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Missing answers data", "")
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid answers format", "")
		}
		return
	}

	result, err := h.Svc.Submit(c.Request.Context(), sub)
	if err != nil {
		stage := StageOf(err)
		if stage != "" {
			c.Set("stage", stage)
		}
		switch {
		case errors.Is(err, assessment.ErrMissingAnswers):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Missing answers data", "")
		case errors.Is(err, assessment.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid answers format", "")
		case errors.Is(err, career.ErrNoGoal):
			respond.Error(c, http.StatusInternalServerError, "extraction_failed", "Failed to extract career goal", "")
		case errors.Is(err, ErrGeneration):
			respond.Error(c, http.StatusInternalServerError, "generation_failed", "Failed to generate report sections", "")
		default:
			details := "pipeline failed"
			if stage != "" {
				details = stage + " stage failed"
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Assessment processing failed", details)
		}
		return
	}

	c.Set("artifact", result.Name)
	respond.OK(c, SubmitResponse{
		Message:   "Report generated successfully",
		ReportURL: DownloadPath + result.Name,
	})
}

func (h *Handler) download(c *gin.Context) {
	name := c.Param("name")
	c.Set("artifact", name)

	data, err := h.Svc.Download(c.Request.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, artifact.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", "")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to retrieve report", "")
		}
		return
	}

	respond.Attachment(c, name, artifact.ContentType, data)
}

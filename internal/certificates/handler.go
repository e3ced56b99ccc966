package certificates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"academia/admin-portal/admin-portal-backend/internal/issuance"
)

// Handler exposes the generation engine over HTTP.
type Handler struct {
	service  *Service
	issuance *issuance.Service
	logger   *zap.Logger
}

// NewHandler creates a certificates handler. issuanceSvc may be nil when the
// audit log is not configured.
func NewHandler(service *Service, issuanceSvc *issuance.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, issuance: issuanceSvc, logger: logger}
}

// RegisterRoutes registers certificate generation routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	certs := router.Group("/certificates")
	{
		certs.POST("/:id/generate", h.generate)
		certs.GET("/issued", h.listIssued)
	}
}

// GenerateRequest is the HTTP payload for one generation.
type GenerateRequest struct {
	Type                 string `json:"type" binding:"required"`
	ReferenceCode        string `json:"reference_code" binding:"required"`
	GivenName            string `json:"given_name" binding:"required"`
	FamilyName           string `json:"family_name" binding:"required"`
	IdentificationType   string `json:"identification_type"`
	IdentificationNumber string `json:"identification_number"`
}

// generate handles POST /api/v1/certificates/:id/generate?mode=download|preview
func (h *Handler) generate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certificate ID"})
		return
	}

	var body GenerateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := ModeDownload
	if c.Query("mode") == string(ModePreview) {
		mode = ModePreview
	}

	req := CertificateRequest{
		ID:                   id,
		Type:                 body.Type,
		ReferenceCode:        body.ReferenceCode,
		GivenName:            body.GivenName,
		FamilyName:           body.FamilyName,
		IdentificationType:   body.IdentificationType,
		IdentificationNumber: body.IdentificationNumber,
	}

	out, err := h.service.Generate(c.Request.Context(), req, mode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.recordIssuance(c, req, out, mode)

	if mode == ModePreview {
		c.Header("Content-Disposition", `inline; filename="`+out.FileName+`"`)
		c.Data(http.StatusOK, out.View.ContentType, out.View.Data)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", out.Bytes)
}

// listIssued handles GET /api/v1/certificates/issued?reference_code=XXX
func (h *Handler) listIssued(c *gin.Context) {
	if h.issuance == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "issuance log not configured"})
		return
	}

	referenceCode := c.Query("reference_code")
	if referenceCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference_code is required"})
		return
	}

	certs, err := h.issuance.ListByReference(c.Request.Context(), referenceCode)
	if err != nil {
		h.logger.Error("failed to list issued certificates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"issued": certs})
}

// recordIssuance appends to the audit log; a failure is logged, never
// surfaced, since the document was already produced.
func (h *Handler) recordIssuance(c *gin.Context, req CertificateRequest, out *RenderOutput, mode OutputMode) {
	if h.issuance == nil {
		return
	}
	variant, _ := ParseVariant(req.Type)
	_, err := h.issuance.Record(c.Request.Context(), issuance.RecordInput{
		RequestID:     req.ID,
		Variant:       string(variant),
		ReferenceCode: req.ReferenceCode,
		StudentName:   req.FullName(),
		FileName:      out.FileName,
		OutputMode:    string(mode),
	})
	if err != nil {
		h.logger.Warn("failed to record issuance",
			zap.String("request_id", req.ID.String()),
			zap.Error(err))
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var unsupported *UnsupportedVariantError
	var fetchErr *DataFetchError
	var renderErr *RenderError

	switch {
	case errors.As(err, &unsupported):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.As(err, &renderErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

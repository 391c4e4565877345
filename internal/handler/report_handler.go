package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/kinemathika-api/internal/dto"
	"github.com/noah-isme/kinemathika-api/internal/service"
	appErrors "github.com/noah-isme/kinemathika-api/pkg/errors"
	"github.com/noah-isme/kinemathika-api/pkg/response"
)

// ClassReporter renders downloadable class reports.
type ClassReporter interface {
	ClassReport(ctx context.Context, classID, format string, window time.Duration) (*service.ReportFile, error)
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	reports   ClassReporter
	validator *validator.Validate
}

// NewReportHandler constructs handler.
func NewReportHandler(reports ClassReporter, validate *validator.Validate) *ReportHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &ReportHandler{reports: reports, validator: validate}
}

// ClassReport godoc
// @Summary Download a class performance report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param classId path string true "Class ID"
// @Param format query string false "csv (default) or pdf"
// @Param window query string false "Lookback window, e.g. 30d"
// @Success 200 {file} file
// @Router /reports/classes/{classId} [get]
func (h *ReportHandler) ClassReport(c *gin.Context) {
	if h.reports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query dto.ClassReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	if err := h.validator.Struct(query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	window, err := dto.ParseWindow(query.Window)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	file, err := h.reports.ClassReport(c.Request.Context(), c.Param("classId"), query.Format, window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

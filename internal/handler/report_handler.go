package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookhive/bookhive-api/internal/service"
	appErrors "github.com/bookhive/bookhive-api/pkg/errors"
	"github.com/bookhive/bookhive-api/pkg/export"
	"github.com/bookhive/bookhive-api/pkg/response"
	"github.com/bookhive/bookhive-api/pkg/storage"
)

// ReportHandler serves inventory report downloads.
type ReportHandler struct {
	catalog *service.CatalogService
	archive *storage.ReportArchive
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewReportHandler creates a new handler. The archive is optional; when set,
// a copy of every generated report is kept on disk.
func NewReportHandler(catalog *service.CatalogService, archive *storage.ReportArchive) *ReportHandler {
	return &ReportHandler{
		catalog: catalog,
		archive: archive,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// Inventory godoc
// @Summary Download the inventory report
// @Tags Reports
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/reports/inventory [get]
func (h *ReportHandler) Inventory(c *gin.Context) {
	dataset, err := h.catalog.InventoryDataset(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	var (
		payload     []byte
		contentType string
	)
	switch format {
	case "csv":
		payload, err = h.csv.Render(dataset)
		contentType = "text/csv"
	case "pdf":
		payload, err = h.pdf.Render(dataset, "Inventory Report")
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to render report"))
		return
	}

	filename := fmt.Sprintf("inventory-%s.%s", uuid.NewString(), format)
	if h.archive != nil {
		// Archive failures do not block the download.
		_, _ = h.archive.Save(filename, payload)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

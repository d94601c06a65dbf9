package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HThanh-how/LBG/pkg/export"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
	"github.com/HThanh-how/LBG/pkg/response"
)

// TemplateHandler serves downloadable CSV templates for the import
// endpoints.
type TemplateHandler struct {
	csv *export.CSVExporter
}

// NewTemplateHandler creates a new handler.
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{csv: export.NewCSVExporter()}
}

// Timetable godoc
// @Summary Timetable import template
// @Description Download a CSV template for the timetable import
// @Tags Templates
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Router /templates/tkb [get]
func (h *TemplateHandler) Timetable(c *gin.Context) {
	data, err := h.csv.Render(export.Dataset{
		Headers: []string{"day_of_week", "period_index", "subject_name"},
		Rows: [][]string{
			{"2", "1", "TOÁN"},
			{"2", "2", "TIẾNG VIỆT"},
		},
	})
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render template"))
		return
	}
	serveCSV(c, "mau_tkb.csv", data)
}

// Curriculum godoc
// @Summary Teaching program import template
// @Description Download a CSV template for the teaching program import
// @Tags Templates
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Router /templates/ctgd [get]
func (h *TemplateHandler) Curriculum(c *gin.Context) {
	data, err := h.csv.Render(export.Dataset{
		Headers: []string{"subject_name", "lesson_index", "lesson_name"},
		Rows: [][]string{
			{"TOÁN", "1", "Bài 1"},
			{"TOÁN", "2", "Bài 2"},
		},
	})
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render template"))
		return
	}
	serveCSV(c, "mau_ctgd.csv", data)
}

func serveCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

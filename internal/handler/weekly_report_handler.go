package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HThanh-how/LBG/internal/dto"
	"github.com/HThanh-how/LBG/internal/models"
	"github.com/HThanh-how/LBG/internal/service"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
	"github.com/HThanh-how/LBG/pkg/response"
)

// WeeklyReportHandler exposes resolved weekly reports and their
// override set.
type WeeklyReportHandler struct {
	service *service.ReportService
}

// NewWeeklyReportHandler creates a new handler.
func NewWeeklyReportHandler(svc *service.ReportService) *WeeklyReportHandler {
	return &WeeklyReportHandler{service: svc}
}

// Get godoc
// @Summary Resolve weekly report
// @Description Return the full 25-row report for one week
// @Tags Reports
// @Produce json
// @Param week path int true "Week number (1..40)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/{week} [get]
func (h *WeeklyReportHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	week, err := weekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.service.GetWeek(c.Request.Context(), claims.UserID, week)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Save godoc
// @Summary Save weekly overrides
// @Description Replace the override set of one week and return the re-resolved report
// @Tags Reports
// @Accept json
// @Produce json
// @Param week path int true "Week number (1..40)"
// @Param payload body dto.SaveWeekRequest true "Week overrides"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/{week} [put]
func (h *WeeklyReportHandler) Save(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	week, err := weekParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SaveWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid weekly log payload"))
		return
	}

	logs := make([]models.WeeklyLog, 0, len(req.Data))
	for _, in := range req.Data {
		logs = append(logs, models.WeeklyLog{
			UserID:      claims.UserID,
			WeekNumber:  week,
			DayOfWeek:   in.DayOfWeek,
			PeriodIndex: in.PeriodIndex,
			SubjectName: in.SubjectName,
			LessonName:  in.LessonName,
			Notes:       in.Notes,
		})
	}

	report, err := h.service.SaveWeek(c.Request.Context(), claims.UserID, week, logs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

func weekParam(c *gin.Context) (int, error) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "week must be a number")
	}
	return week, nil
}

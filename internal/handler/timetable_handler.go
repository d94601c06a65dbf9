package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HThanh-how/LBG/internal/dto"
	"github.com/HThanh-how/LBG/internal/models"
	"github.com/HThanh-how/LBG/internal/service"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
	"github.com/HThanh-how/LBG/pkg/response"
)

// TimetableHandler exposes the recurring weekly timetable.
type TimetableHandler struct {
	service *service.TimetableService
}

// NewTimetableHandler creates a new handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// List godoc
// @Summary List timetable
// @Description Return every timetable slot in day/period order
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable [get]
func (h *TimetableHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	slots, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Replace godoc
// @Summary Replace timetable
// @Description Swap the whole timetable for the provided slots
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.ReplaceTimetableRequest true "Timetable slots"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable [put]
func (h *TimetableHandler) Replace(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ReplaceTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable payload"))
		return
	}

	slots := make([]models.TimetableSlot, 0, len(req.Data))
	for _, in := range req.Data {
		slots = append(slots, models.TimetableSlot{
			UserID:      claims.UserID,
			DayOfWeek:   in.DayOfWeek,
			PeriodIndex: in.PeriodIndex,
			SubjectName: in.SubjectName,
		})
	}

	saved, err := h.service.Replace(c.Request.Context(), claims.UserID, slots)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved, nil)
}

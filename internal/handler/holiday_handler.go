package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HThanh-how/LBG/internal/dto"
	"github.com/HThanh-how/LBG/internal/models"
	"github.com/HThanh-how/LBG/internal/service"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
	"github.com/HThanh-how/LBG/pkg/response"
)

const dateLayout = "2006-01-02"

// HolidayHandler exposes holiday rule management.
type HolidayHandler struct {
	service *service.HolidayService
}

// NewHolidayHandler creates a new handler.
func NewHolidayHandler(svc *service.HolidayService) *HolidayHandler {
	return &HolidayHandler{service: svc}
}

// List godoc
// @Summary List holiday rules
// @Description Return the user's holiday rules in creation order
// @Tags Holidays
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /holidays [get]
func (h *HolidayHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	rules, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// Create godoc
// @Summary Create holiday rule
// @Description Add one holiday rule (single date or range)
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body dto.HolidayCreateRequest true "Holiday rule"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /holidays [post]
func (h *HolidayHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.HolidayCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid holiday payload"))
		return
	}

	rule, err := holidayFromRequest(req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), rule)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Delete godoc
// @Summary Delete holiday rule
// @Description Remove one holiday rule by ID
// @Tags Holidays
// @Produce json
// @Param id path string true "Holiday rule ID"
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /holidays/{id} [delete]
func (h *HolidayHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CreateDefaults godoc
// @Summary Seed default holidays
// @Description Create the Vietnamese national holidays of one year, skipping dates already covered
// @Tags Holidays
// @Accept json
// @Produce json
// @Param payload body dto.DefaultHolidaysRequest true "Target year"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /holidays/defaults [post]
func (h *HolidayHandler) CreateDefaults(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.DefaultHolidaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid defaults payload"))
		return
	}

	created, err := h.service.CreateDefaults(c.Request.Context(), claims.UserID, req.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func holidayFromRequest(req dto.HolidayCreateRequest, userID string) (*models.Holiday, error) {
	rule := &models.Holiday{
		UserID:      userID,
		HolidayName: req.HolidayName,
		WeekNumber:  req.WeekNumber,
		IsOddDay:    req.IsOddDay,
		IsEvenDay:   req.IsEvenDay,
		IsMoved:     req.IsMoved,
	}

	var err error
	if rule.HolidayDate, err = parseOptionalDate(req.HolidayDate, "holiday_date"); err != nil {
		return nil, err
	}
	if rule.StartDate, err = parseOptionalDate(req.StartDate, "start_date"); err != nil {
		return nil, err
	}
	if rule.EndDate, err = parseOptionalDate(req.EndDate, "end_date"); err != nil {
		return nil, err
	}
	if rule.MovedToDate, err = parseOptionalDate(req.MovedToDate, "moved_to_date"); err != nil {
		return nil, err
	}
	return rule, nil
}

func parseOptionalDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, field+" must use the YYYY-MM-DD format")
	}
	return &t, nil
}

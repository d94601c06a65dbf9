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

// CurriculumHandler exposes the per-subject teaching program.
type CurriculumHandler struct {
	service *service.CurriculumService
}

// NewCurriculumHandler creates a new handler.
func NewCurriculumHandler(svc *service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{service: svc}
}

// List godoc
// @Summary List teaching program
// @Description Return every teaching-program entry ordered by subject and lesson index
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /curriculum [get]
func (h *CurriculumHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entries, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Replace godoc
// @Summary Replace teaching program
// @Description Swap the whole teaching program for the provided entries
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body dto.ReplaceCurriculumRequest true "Teaching program entries"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /curriculum [put]
func (h *CurriculumHandler) Replace(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ReplaceCurriculumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teaching program payload"))
		return
	}

	entries := make([]models.CurriculumEntry, 0, len(req.Data))
	for _, in := range req.Data {
		entries = append(entries, models.CurriculumEntry{
			UserID:      claims.UserID,
			SubjectName: in.SubjectName,
			LessonIndex: in.LessonIndex,
			LessonName:  in.LessonName,
		})
	}

	saved, err := h.service.Replace(c.Request.Context(), claims.UserID, entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved, nil)
}

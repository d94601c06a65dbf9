package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HThanh-how/LBG/internal/service"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
	"github.com/HThanh-how/LBG/pkg/response"
)

// UploadHandler accepts .xls workbooks for the timetable and the
// teaching program.
type UploadHandler struct {
	service     *service.ImportService
	maxFileSize int64
}

// NewUploadHandler creates a new handler.
func NewUploadHandler(svc *service.ImportService, maxFileSize int64) *UploadHandler {
	if maxFileSize <= 0 {
		maxFileSize = 5 << 20
	}
	return &UploadHandler{service: svc, maxFileSize: maxFileSize}
}

// UploadTimetable godoc
// @Summary Import timetable workbook
// @Description Parse an uploaded .xls timetable and replace the stored timetable
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Timetable .xls file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /uploads/tkb [post]
func (h *UploadHandler) UploadTimetable(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file field is required"))
		return
	}
	if header.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file exceeds the upload size limit"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	slots, err := h.service.ImportTimetable(c.Request.Context(), claims.UserID, header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// UploadCurriculum godoc
// @Summary Import teaching program workbook
// @Description Parse an uploaded .xls teaching program and replace the stored program
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Teaching program .xls file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Security BearerAuth
// @Router /uploads/ctgd [post]
func (h *UploadHandler) UploadCurriculum(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file field is required"))
		return
	}
	if header.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file exceeds the upload size limit"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	entries, err := h.service.ImportCurriculum(c.Request.Context(), claims.UserID, header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

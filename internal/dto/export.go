package dto

import "github.com/HThanh-how/LBG/internal/models"

// ExportRequest queues an asynchronous weekly report export.
type ExportRequest struct {
	WeekNumber int                 `json:"week_number" validate:"required,min=1,max=40"`
	Format     models.ExportFormat `json:"format" validate:"required"`
}

// ExportJobResponse acknowledges a queued export.
type ExportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ExportStatusResponse reports job progress and, once finished, the
// signed download URL.
type ExportStatusResponse struct {
	ID        string              `json:"id"`
	Status    models.ExportStatus `json:"status"`
	Progress  int                 `json:"progress"`
	ResultURL *string             `json:"result_url,omitempty"`
	Error     *string             `json:"error,omitempty"`
}

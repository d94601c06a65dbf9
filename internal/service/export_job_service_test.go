package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HThanh-how/LBG/internal/dto"
	"github.com/HThanh-how/LBG/internal/models"
	"github.com/HThanh-how/LBG/internal/repository"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
	"github.com/HThanh-how/LBG/pkg/jobs"
)

type fakeJobStore struct {
	jobs    map[string]*models.ExportJob
	updates []repository.UpdateExportJobParams
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]*models.ExportJob)}
}

func (f *fakeJobStore) Create(ctx context.Context, job *models.ExportJob) error {
	job.ID = "job-1"
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobStore) GetByID(ctx context.Context, id string) (*models.ExportJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobStore) Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error {
	f.updates = append(f.updates, params)
	job, ok := f.jobs[id]
	if !ok {
		return sql.ErrNoRows
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.ResultPath != nil {
		job.ResultPath = params.ResultPath
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.ErrorMessage != nil {
		job.ErrorMessage = params.ErrorMessage
	}
	return nil
}

func (f *fakeJobStore) ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error) {
	var out []models.ExportJob
	for _, job := range f.jobs {
		if job.Status == models.ExportStatusQueued {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeJobStore) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error) {
	return nil, nil
}

type fakeDispatcher struct {
	enqueued []jobs.Job
	err      error
}

func (f *fakeDispatcher) Enqueue(job jobs.Job) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, job)
	return nil
}

type fakeGenerator struct {
	result *ExportResult
	err    error
	calls  int
}

func (f *fakeGenerator) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeJobMetrics struct {
	observed [][2]string
}

func (f *fakeJobMetrics) ObserveExportJob(format, status string) {
	f.observed = append(f.observed, [2]string{format, status})
}

func TestExportJobServiceCreateJob(t *testing.T) {
	store := newFakeJobStore()
	queue := &fakeDispatcher{}
	svc := NewExportJobService(store, queue, nil, nil, ExportJobConfig{})

	resp, err := svc.CreateJob(context.Background(), "user-1", dto.ExportRequest{WeekNumber: 3, Format: models.ExportFormatPDF})
	require.NoError(t, err)

	assert.Equal(t, "job-1", resp.ID)
	assert.Equal(t, models.ExportStatusQueued, resp.Status)
	assert.Equal(t, 0, resp.Progress)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, "job-1", queue.enqueued[0].ID)
}

func TestExportJobServiceCreateJobInvalidWeek(t *testing.T) {
	svc := NewExportJobService(newFakeJobStore(), &fakeDispatcher{}, nil, nil, ExportJobConfig{})

	_, err := svc.CreateJob(context.Background(), "user-1", dto.ExportRequest{WeekNumber: 99, Format: models.ExportFormatPDF})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidWeek, err)
}

func TestExportJobServiceCreateJobBadFormat(t *testing.T) {
	svc := NewExportJobService(newFakeJobStore(), &fakeDispatcher{}, nil, nil, ExportJobConfig{})

	_, err := svc.CreateJob(context.Background(), "user-1", dto.ExportRequest{WeekNumber: 1, Format: models.ExportFormat("DOCX")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFormat.Code, appErrors.FromError(err).Code)
}

func TestExportJobServiceCreateJobEnqueueFailure(t *testing.T) {
	store := newFakeJobStore()
	queue := &fakeDispatcher{err: errors.New("queue full")}
	svc := NewExportJobService(store, queue, nil, nil, ExportJobConfig{})

	_, err := svc.CreateJob(context.Background(), "user-1", dto.ExportRequest{WeekNumber: 1, Format: models.ExportFormatCSV})
	require.Error(t, err)
	assert.Equal(t, models.ExportStatusFailed, store.jobs["job-1"].Status)
	assert.Equal(t, 100, store.jobs["job-1"].Progress)
}

func TestExportJobServiceGetStatusOwnership(t *testing.T) {
	store := newFakeJobStore()
	store.jobs["job-1"] = &models.ExportJob{ID: "job-1", UserID: "user-1", Status: models.ExportStatusRunning, Progress: 10}
	svc := NewExportJobService(store, &fakeDispatcher{}, nil, nil, ExportJobConfig{})

	resp, err := svc.GetStatus(context.Background(), "job-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusRunning, resp.Status)

	_, err = svc.GetStatus(context.Background(), "job-1", "user-2")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden, err)

	_, err = svc.GetStatus(context.Background(), "missing", "user-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound, err)
}

func TestExportWorkerHandleSuccess(t *testing.T) {
	store := newFakeJobStore()
	store.jobs["job-1"] = &models.ExportJob{ID: "job-1", UserID: "user-1", WeekNumber: 2, Format: models.ExportFormatPDF, Status: models.ExportStatusQueued}
	gen := &fakeGenerator{result: &ExportResult{
		RelativePath: "user-1/tuan_2.pdf",
		URL:          "/api/v1/export/tok123",
		Format:       models.ExportFormatPDF,
	}}
	metrics := &fakeJobMetrics{}
	worker := NewExportWorker(store, gen, metrics, 3, nil)

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 1})
	require.NoError(t, err)

	job := store.jobs["job-1"]
	assert.Equal(t, models.ExportStatusDone, job.Status)
	assert.Equal(t, 100, job.Progress)
	require.NotNil(t, job.ResultURL)
	assert.Equal(t, "/api/v1/export/tok123", *job.ResultURL)
	require.Len(t, metrics.observed, 1)
	assert.Equal(t, string(models.ExportStatusDone), metrics.observed[0][1])
}

func TestExportWorkerHandleRequeuesOnRetryableFailure(t *testing.T) {
	store := newFakeJobStore()
	store.jobs["job-1"] = &models.ExportJob{ID: "job-1", UserID: "user-1", WeekNumber: 2, Format: models.ExportFormatCSV, Status: models.ExportStatusQueued}
	gen := &fakeGenerator{err: errors.New("render failed")}
	worker := NewExportWorker(store, gen, nil, 3, nil)

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 1})
	require.Error(t, err)

	job := store.jobs["job-1"]
	assert.Equal(t, models.ExportStatusQueued, job.Status)
	assert.Equal(t, 0, job.Progress)
	require.NotNil(t, job.ErrorMessage)
	assert.Equal(t, "render failed", *job.ErrorMessage)
}

func TestExportWorkerHandleFailsAfterMaxRetries(t *testing.T) {
	store := newFakeJobStore()
	store.jobs["job-1"] = &models.ExportJob{ID: "job-1", UserID: "user-1", WeekNumber: 2, Format: models.ExportFormatCSV, Status: models.ExportStatusQueued}
	gen := &fakeGenerator{err: errors.New("render failed")}
	metrics := &fakeJobMetrics{}
	worker := NewExportWorker(store, gen, metrics, 3, nil)

	err := worker.Handle(context.Background(), jobs.Job{ID: "job-1", Attempt: 3})
	require.Error(t, err)

	job := store.jobs["job-1"]
	assert.Equal(t, models.ExportStatusFailed, job.Status)
	assert.Equal(t, 100, job.Progress)
	require.Len(t, metrics.observed, 1)
	assert.Equal(t, string(models.ExportStatusFailed), metrics.observed[0][1])
}

func TestExportJobServiceRecoverPendingJobs(t *testing.T) {
	store := newFakeJobStore()
	store.jobs["job-1"] = &models.ExportJob{ID: "job-1", Format: models.ExportFormatPDF, Status: models.ExportStatusQueued}
	store.jobs["job-2"] = &models.ExportJob{ID: "job-2", Format: models.ExportFormatCSV, Status: models.ExportStatusDone}
	queue := &fakeDispatcher{}
	svc := NewExportJobService(store, queue, nil, nil, ExportJobConfig{})

	svc.RecoverPendingJobs(context.Background())

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, "job-1", queue.enqueued[0].ID)
}

package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HThanh-how/LBG/internal/models"
	"github.com/HThanh-how/LBG/pkg/export"
	"github.com/HThanh-how/LBG/pkg/storage"
)

type weeklyReportResolver interface {
	GetWeek(ctx context.Context, userID string, weekNumber int) (*models.WeeklyReport, error)
}

type exportUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(doc export.WeeklyReportDoc) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix     string
	ResultTTL     time.Duration
	ReferenceYear int
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ExportFormat
	ExpiresAt    time.Time
}

// ExportService renders weekly reports into files and persists them.
type ExportService struct {
	reports weeklyReportResolver
	users   exportUserRepository
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(reports weeklyReportResolver, users exportUserRepository, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		reports: reports,
		users:   users,
		storage: store,
		csv:     csv,
		pdf:     pdf,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
	}
}

// Generate resolves the job's week, renders it in the requested format
// and stores the file, returning a signed download reference.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}

	report, err := s.reports.GetWeek(ctx, job.UserID, job.WeekNumber)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, job.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	var payload []byte
	switch job.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(buildWeekDataset(report, s.cfg.ReferenceYear))
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(buildWeekDoc(report, user, s.cfg.ReferenceYear))
	default:
		err = fmt.Errorf("unsupported format %s", job.Format)
	}
	if err != nil {
		return nil, err
	}

	filename := s.buildFilename(job)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		Format:       job.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildFilename(job *models.ExportJob) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("lich_bao_giang_tuan_%d_%s.%s",
		job.WeekNumber, timestamp, strings.ToLower(string(job.Format)))
}

// buildWeekDoc maps a resolved report onto the PDF layout. Day dates
// follow the day labels: both appear only on the first period of a day.
func buildWeekDoc(report *models.WeeklyReport, user *models.User, referenceYear int) export.WeeklyReportDoc {
	doc := export.WeeklyReportDoc{
		WeekNumber: report.WeekNumber,
		DateRange: fmt.Sprintf("Từ ngày %s đến ngày %s",
			FormatVietnameseDate(report.StartDate), FormatVietnameseDate(report.EndDate)),
		TeacherName: user.FullName,
		SignPlace:   user.SchoolName,
		SignYear:    report.EndDate.Year(),
		Rows:        make([]export.ReportRow, 0, len(report.Rows)),
	}

	day := models.WeekdayMonday - 1
	for _, row := range report.Rows {
		out := export.ReportRow{
			Period:  fmt.Sprintf("%d", row.PeriodIndex),
			Subject: row.SubjectName,
			Lesson:  row.LessonName,
			Notes:   row.Notes,
		}
		if row.DayLabel != "" {
			day++
			out.DayLabel = row.DayLabel
			out.DayDate = FormatVietnameseDate(WeekdayDate(referenceYear, report.WeekNumber, day))
		}
		doc.Rows = append(doc.Rows, out)
	}
	return doc
}

func buildWeekDataset(report *models.WeeklyReport, referenceYear int) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Thứ / Ngày", "Tiết", "Môn học", "Tên bài dạy", "Lồng ghép"},
		Rows:    make([][]string, 0, len(report.Rows)),
	}

	day := models.WeekdayMonday - 1
	for _, row := range report.Rows {
		dayCell := ""
		if row.DayLabel != "" {
			day++
			dayCell = fmt.Sprintf("%s - %s", row.DayLabel,
				FormatVietnameseDate(WeekdayDate(referenceYear, report.WeekNumber, day)))
		}
		data.Rows = append(data.Rows, []string{
			dayCell,
			fmt.Sprintf("%d", row.PeriodIndex),
			row.SubjectName,
			row.LessonName,
			row.Notes,
		})
	}
	return data
}

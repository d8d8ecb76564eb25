package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/repository"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/export"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/jobs"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/storage"
)

type exportRepository interface {
	Create(ctx context.Context, job *models.ExportJob) error
	GetByID(ctx context.Context, id string) (*models.ExportJob, error)
	Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ExportJob, error)
}

type exportRosterSource interface {
	Roster(ctx context.Context, courseID string) ([]models.StudentProgress, error)
}

type exportCourseSource interface {
	FindByID(ctx context.Context, id string) (*models.CourseDetail, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error)
}

// ExportService renders admin exports in the background. Requesting an
// export writes a QUEUED row and enqueues a render job; workers move the
// row through PROCESSING to FINISHED or FAILED, and finished files are
// served through short-lived signed URLs.
type ExportService struct {
	exports   exportRepository
	roster    exportRosterSource
	courses   exportCourseSource
	analytics *AnalyticsService

	queue  *jobs.Queue
	files  *storage.LocalStorage
	signer *storage.SignedURLSigner

	csv  *export.CSVExporter
	pdf  *export.PDFExporter
	xlsx *export.XLSXExporter

	cfg    config.ExportsConfig
	logger *zap.Logger

	cleanupStop chan struct{}
}

// NewExportService constructs an ExportService and its worker queue. Call
// Start before enqueueing and Stop on shutdown.
func NewExportService(
	exports exportRepository,
	roster exportRosterSource,
	courses exportCourseSource,
	analytics *AnalyticsService,
	files *storage.LocalStorage,
	signer *storage.SignedURLSigner,
	cfg config.ExportsConfig,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExportService{
		exports:     exports,
		roster:      roster,
		courses:     courses,
		analytics:   analytics,
		files:       files,
		signer:      signer,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		xlsx:        export.NewXLSXExporter(),
		cfg:         cfg,
		logger:      logger,
		cleanupStop: make(chan struct{}),
	}
	s.queue = jobs.NewQueue("exports", s.process, jobs.Options{
		Workers:     cfg.WorkerConcurrency,
		MaxAttempts: cfg.WorkerRetries,
		Logger:      logger,
	})
	return s
}

// Start launches the worker pool and the stale-file cleanup loop.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	if s.cfg.CleanupInterval > 0 {
		go s.cleanupLoop()
	}
}

// Stop drains the workers and halts cleanup.
func (s *ExportService) Stop() {
	s.queue.Stop()
	close(s.cleanupStop)
}

// ExportRequest describes an export to generate.
type ExportRequest struct {
	Type       models.ExportType
	Format     models.ExportFormat
	CourseID   string
	CategoryID string
}

// Request records and enqueues a new export job.
func (s *ExportService) Request(ctx context.Context, userID string, req ExportRequest) (*models.ExportJob, error) {
	switch req.Type {
	case models.ExportTypeRoster:
		if req.CourseID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "course id is required for roster exports")
		}
	case models.ExportTypeCatalog, models.ExportTypeAnalytics:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown export type")
	}
	switch req.Format {
	case models.ExportFormatCSV, models.ExportFormatPDF, models.ExportFormatXLSX:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown export format")
	}

	job := &models.ExportJob{
		Type:      req.Type,
		Status:    models.ExportStatusQueued,
		CreatedBy: userID,
		Params: models.ExportJobParams{
			CourseID:   req.CourseID,
			CategoryID: req.CategoryID,
			Format:     req.Format,
		},
	}
	if err := s.exports.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, "EXPORT_CREATE_FAILED", http.StatusInternalServerError, "failed to create export job")
	}

	if err := s.queue.Push(jobs.Task{Ref: job.ID, Kind: string(req.Type)}); err != nil {
		s.failJob(ctx, job.ID, "export queue unavailable")
		return nil, appErrors.Wrap(err, "EXPORT_ENQUEUE_FAILED", http.StatusServiceUnavailable, "export queue unavailable")
	}
	s.logger.Info("export queued",
		zap.String("export_id", job.ID),
		zap.String("type", string(req.Type)),
		zap.String("format", string(req.Format)))
	return job, nil
}

// Get returns one export job. Non-admin callers only see their own jobs.
func (s *ExportService) Get(ctx context.Context, id, userID string, admin bool) (*models.ExportJob, error) {
	job, err := s.exports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
		}
		return nil, appErrors.Wrap(err, "EXPORT_FETCH_FAILED", http.StatusInternalServerError, "failed to fetch export")
	}
	if !admin && job.CreatedBy != userID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	return job, nil
}

// ListMine returns the caller's recent export jobs, newest first.
func (s *ExportService) ListMine(ctx context.Context, userID string, limit int) ([]models.ExportJob, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	list, err := s.exports.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, "EXPORT_LIST_FAILED", http.StatusInternalServerError, "failed to list exports")
	}
	return list, nil
}

// ResolveDownload validates a signed download token and returns the local
// path of the generated file.
func (s *ExportService) ResolveDownload(token string) (string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", appErrors.Wrap(err, "EXPORT_TOKEN_INVALID", http.StatusForbidden, "download link is invalid or expired")
	}
	return s.files.Path(relPath), nil
}

// process is the queue handler: it renders one export end to end.
func (s *ExportService) process(ctx context.Context, task jobs.Task) error {
	job, err := s.exports.GetByID(ctx, task.Ref)
	if err != nil {
		return fmt.Errorf("load export %s: %w", task.Ref, err)
	}
	processing := models.ExportStatusProcessing
	if err := s.exports.Update(ctx, job.ID, repository.UpdateExportJobParams{Status: &processing}); err != nil {
		return fmt.Errorf("mark export processing: %w", err)
	}

	dataset, title, err := s.buildDataset(ctx, job)
	if err != nil {
		s.failJob(ctx, job.ID, err.Error())
		return err
	}

	payload, filename, err := s.render(job, dataset, title)
	if err != nil {
		s.failJob(ctx, job.ID, err.Error())
		return err
	}

	relPath, err := s.files.Save(filename, payload)
	if err != nil {
		s.failJob(ctx, job.ID, "failed to store export file")
		return fmt.Errorf("store export %s: %w", job.ID, err)
	}

	token, _, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		s.failJob(ctx, job.ID, "failed to sign download link")
		return fmt.Errorf("sign export %s: %w", job.ID, err)
	}
	url := "/api/v1/exports/download?token=" + token

	finished := models.ExportStatusFinished
	now := time.Now().UTC()
	if err := s.exports.Update(ctx, job.ID, repository.UpdateExportJobParams{
		Status:     &finished,
		ResultURL:  &url,
		FinishedAt: &now,
	}); err != nil {
		return fmt.Errorf("finish export %s: %w", job.ID, err)
	}
	s.logger.Info("export finished", zap.String("export_id", job.ID), zap.String("file", relPath))
	return nil
}

func (s *ExportService) buildDataset(ctx context.Context, job *models.ExportJob) (export.Dataset, string, error) {
	switch job.Type {
	case models.ExportTypeRoster:
		return s.rosterDataset(ctx, job.Params.CourseID)
	case models.ExportTypeCatalog:
		return s.catalogDataset(ctx, job.Params.CategoryID)
	case models.ExportTypeAnalytics:
		return s.analyticsDataset(ctx)
	default:
		return export.Dataset{}, "", fmt.Errorf("unknown export type %q", job.Type)
	}
}

func (s *ExportService) rosterDataset(ctx context.Context, courseID string) (export.Dataset, string, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return export.Dataset{}, "", fmt.Errorf("load course: %w", err)
	}
	roster, err := s.roster.Roster(ctx, courseID)
	if err != nil {
		return export.Dataset{}, "", fmt.Errorf("load roster: %w", err)
	}
	dataset := export.Dataset{
		Headers: []string{"Student", "Email", "Account", "Enrolled", "Progress %"},
	}
	for _, student := range roster {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":    student.StudentName,
			"Email":      student.StudentEmail,
			"Account":    student.AccountType,
			"Enrolled":   student.EnrolledAt.Format("2006-01-02"),
			"Progress %": strconv.Itoa(student.Percentage),
		})
	}
	return dataset, "Roster - " + course.Name, nil
}

func (s *ExportService) catalogDataset(ctx context.Context, categoryID string) (export.Dataset, string, error) {
	filter := models.CourseFilter{
		Status:     models.CourseStatusPublished,
		CategoryID: categoryID,
		Page:       1,
		PageSize:   1000,
	}
	courses, _, err := s.courses.List(ctx, filter)
	if err != nil {
		return export.Dataset{}, "", fmt.Errorf("load catalog: %w", err)
	}
	dataset := export.Dataset{
		Headers: []string{"Course", "Category", "Instructor", "Price", "Rating", "Enrolled"},
	}
	for _, course := range courses {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Course":     course.Name,
			"Category":   course.CategoryName,
			"Instructor": course.InstructorName,
			"Price":      strconv.FormatFloat(course.Price, 'f', 2, 64),
			"Rating":     strconv.FormatFloat(course.Rating, 'f', 1, 64),
			"Enrolled":   strconv.Itoa(course.EnrolledCount),
		})
	}
	return dataset, "Course Catalog", nil
}

func (s *ExportService) analyticsDataset(ctx context.Context) (export.Dataset, string, error) {
	analytics, _, _, err := s.analytics.Platform(ctx)
	if err != nil {
		return export.Dataset{}, "", fmt.Errorf("load analytics: %w", err)
	}
	dataset := export.Dataset{
		Headers: []string{"Category", "Courses", "Enrollments", "Students", "Share %"},
	}
	for _, rollup := range analytics.Categories {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Category":    rollup.CategoryName,
			"Courses":     strconv.Itoa(rollup.CourseCount),
			"Enrollments": strconv.Itoa(rollup.EnrolledCount),
			"Students":    strconv.Itoa(rollup.StudentCount),
			"Share %":     strconv.Itoa(rollup.EnrolledShare),
		})
	}
	return dataset, "Platform Analytics", nil
}

func (s *ExportService) render(job *models.ExportJob, dataset export.Dataset, title string) ([]byte, string, error) {
	base := fmt.Sprintf("%s-%s", job.Type, job.ID)
	switch job.Params.Format {
	case models.ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		return payload, base + ".csv", err
	case models.ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		return payload, base + ".pdf", err
	case models.ExportFormatXLSX:
		// sheet names are capped at 31 chars, use the type instead of the title
		payload, err := s.xlsx.Render(dataset, string(job.Type))
		return payload, base + ".xlsx", err
	default:
		return nil, "", fmt.Errorf("unknown export format %q", job.Params.Format)
	}
}

func (s *ExportService) failJob(ctx context.Context, id, message string) {
	failed := models.ExportStatusFailed
	now := time.Now().UTC()
	if err := s.exports.Update(ctx, id, repository.UpdateExportJobParams{
		Status:       &failed,
		ErrorMessage: &message,
		FinishedAt:   &now,
	}); err != nil {
		s.logger.Error("failed to mark export failed", zap.String("export_id", id), zap.Error(err))
	}
}

func (s *ExportService) cleanupLoop() {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.cleanupStop:
			return
		case <-ticker.C:
			removed, err := s.files.CleanupOlderThan(s.cfg.SignedURLTTL)
			if err != nil {
				s.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				s.logger.Info("expired export files removed", zap.Int("count", len(removed)))
			}
		}
	}
}

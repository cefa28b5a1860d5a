package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/view"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/export"
	"github.com/noah-isme/campus-portal-api/pkg/jobs"
	"github.com/noah-isme/campus-portal-api/pkg/storage"
)

// Report job lifecycle states.
const (
	ReportStatusPending    = "pending"
	ReportStatusProcessing = "processing"
	ReportStatusCompleted  = "completed"
	ReportStatusFailed     = "failed"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type summaryProvider interface {
	AllStudentSummaries(ctx context.Context, year, semester string) ([]models.StudentGradeSummary, int, error)
}

type reportJob struct {
	ID          string
	Status      string
	Format      string
	Year        string
	Semester    string
	FilePath    string
	Error       string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// ReportConfig tunes asynchronous export behaviour.
type ReportConfig struct {
	Enabled       bool
	APIPrefix     string
	ResultTTL     time.Duration
	Workers       int
	MaxRetries    int
	PassThreshold float64
}

// ReportService generates grade-summary exports off the request path. Job
// state lives in memory; a restart forgets unfinished jobs, which is
// acceptable for operator-triggered exports.
type ReportService struct {
	gradebook summaryProvider
	storage   fileStorage
	signer    *storage.SignedURLSigner
	csv       csvRenderer
	pdf       pdfRenderer
	queue     *jobs.Queue
	logger    *zap.Logger
	cfg       ReportConfig

	mu   sync.RWMutex
	jobs map[string]*reportJob
}

// NewReportService constructs a ReportService and its worker queue.
func NewReportService(gradebook summaryProvider, store fileStorage, signer *storage.SignedURLSigner, cfg ReportConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.PassThreshold <= 0 {
		cfg.PassThreshold = 75
	}

	s := &ReportService{
		gradebook: gradebook,
		storage:   store,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		cfg:       cfg,
		jobs:      make(map[string]*reportJob),
	}
	s.queue = jobs.NewQueue("reports", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Enabled reports whether report generation is switched on.
func (s *ReportService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// Start launches the worker pool.
func (s *ReportService) Start(ctx context.Context) {
	if s.Enabled() {
		s.queue.Start(ctx)
	}
}

// Stop drains the worker pool.
func (s *ReportService) Stop() {
	if s.Enabled() {
		s.queue.Stop()
	}
}

// Create registers a new export job and queues it for processing.
func (s *ReportService) Create(ctx context.Context, req dto.CreateReportRequest) (*dto.ReportJobResponse, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "reports are disabled")
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	job := &reportJob{
		ID:        uuid.NewString(),
		Status:    ReportStatusPending,
		Format:    format,
		Year:      strings.TrimSpace(req.Year),
		Semester:  strings.TrimSpace(req.Semester),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "grade-summary"}); err != nil {
		s.mu.Lock()
		job.Status = ReportStatusFailed
		job.Error = "queue unavailable"
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue report")
	}

	return s.response(job), nil
}

// Get returns the lifecycle state of one job, including a signed download
// URL once the file exists.
func (s *ReportService) Get(ctx context.Context, id string) (*dto.ReportJobResponse, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
	}
	return s.response(job), nil
}

// Download validates a signed token and returns the stored file contents
// plus a filename for the Content-Disposition header.
func (s *ReportService) Download(ctx context.Context, token string) ([]byte, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}

	s.mu.RLock()
	job, ok := s.jobs[jobID]
	s.mu.RUnlock()
	if !ok || job.Status != ReportStatusCompleted {
		return nil, "", appErrors.Clone(appErrors.ErrReportNotReady, "report is not ready")
	}

	data, err := s.storage.Read(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read report file")
	}
	return data, relPath, nil
}

// Cleanup removes expired report files.
func (s *ReportService) Cleanup() ([]string, error) {
	return s.storage.CleanupOlderThan(s.cfg.ResultTTL)
}

func (s *ReportService) response(job *reportJob) *dto.ReportJobResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := &dto.ReportJobResponse{
		ID:          job.ID,
		Status:      job.Status,
		Format:      job.Format,
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
		Error:       job.Error,
	}
	if job.Status == ReportStatusCompleted && job.FilePath != "" {
		token, _, err := s.signer.Generate(job.ID, job.FilePath)
		if err != nil {
			s.logger.Warn("failed to sign download url", zap.String("job_id", job.ID), zap.Error(err))
			return resp
		}
		prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
		if prefix == "" {
			prefix = "/api/v1"
		}
		resp.DownloadURL = fmt.Sprintf("%s/reports/download/%s", prefix, token)
	}
	return resp
}

func (s *ReportService) process(ctx context.Context, queued jobs.Job) error {
	s.mu.Lock()
	job, ok := s.jobs[queued.ID]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	job.Status = ReportStatusProcessing
	format, year, semester := job.Format, job.Year, job.Semester
	s.mu.Unlock()

	dataset, title, err := s.buildDataset(ctx, year, semester)
	if err != nil {
		return s.fail(queued.ID, err)
	}

	var payload []byte
	switch format {
	case "csv":
		payload, err = s.csv.Render(dataset)
	case "pdf":
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return s.fail(queued.ID, err)
	}

	filename := fmt.Sprintf("grade_summary_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return s.fail(queued.ID, err)
	}

	now := time.Now().UTC()
	s.mu.Lock()
	job.Status = ReportStatusCompleted
	job.FilePath = relPath
	job.CompletedAt = &now
	s.mu.Unlock()

	s.logger.Info("report generated", zap.String("job_id", queued.ID), zap.String("file", relPath))
	return nil
}

func (s *ReportService) fail(jobID string, cause error) error {
	s.mu.Lock()
	if job, ok := s.jobs[jobID]; ok {
		job.Status = ReportStatusFailed
		job.Error = cause.Error()
	}
	s.mu.Unlock()
	s.logger.Error("report generation failed", zap.String("job_id", jobID), zap.Error(cause))
	return cause
}

func (s *ReportService) buildDataset(ctx context.Context, year, semester string) (export.Dataset, string, error) {
	summaries, skipped, err := s.gradebook.AllStudentSummaries(ctx, year, semester)
	if err != nil {
		return export.Dataset{}, "", err
	}
	if skipped > 0 {
		s.logger.Warn("grade rows excluded from report", zap.Int("count", skipped))
	}

	rows := make([]map[string]string, 0, len(summaries))
	for _, summary := range summaries {
		average := ""
		standing := view.StandingNoData
		if summary.OverallAverage != nil {
			average = view.FormatAverage(*summary.OverallAverage)
			if *summary.OverallAverage >= s.cfg.PassThreshold {
				standing = view.StandingPassing
			} else {
				standing = view.StandingNeedsAttention
			}
		}
		gradedCount := 0
		for _, sem := range summary.Semesters {
			gradedCount += sem.GradedCount
		}
		rows = append(rows, map[string]string{
			"Username": summary.Username,
			"Name":     summary.DisplayName,
			"Year":     view.FormatYearLabel(summary.Year),
			"Subjects": fmt.Sprintf("%d", summary.SubjectsRecorded),
			"Graded":   fmt.Sprintf("%d", gradedCount),
			"Average":  average,
			"Standing": standing,
		})
	}

	dataset := export.Dataset{
		Headers: []string{"Username", "Name", "Year", "Subjects", "Graded", "Average", "Standing"},
		Rows:    rows,
	}

	title := "Grade Summary Report"
	if year != "" {
		title = fmt.Sprintf("%s %s", title, view.FormatYearLabel(year))
	}
	if semester != "" {
		title = fmt.Sprintf("%s %s", title, view.FormatSemesterLabel(semester))
	}
	return dataset, title, nil
}

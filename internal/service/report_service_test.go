package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/pkg/jobs"
	"github.com/noah-isme/campus-portal-api/pkg/storage"
)

type memoryStorage struct {
	files map[string][]byte
}

func (m *memoryStorage) Save(filename string, data []byte) (string, error) {
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[filename] = data
	return filename, nil
}

func (m *memoryStorage) Read(filename string) ([]byte, error) {
	data, ok := m.files[filename]
	if !ok {
		return nil, assert.AnError
	}
	return data, nil
}

func (m *memoryStorage) CleanupOlderThan(_ time.Duration) ([]string, error) {
	return nil, nil
}

type fakeSummaries struct {
	summaries []models.StudentGradeSummary
	skipped   int
}

func (f *fakeSummaries) AllStudentSummaries(_ context.Context, _, _ string) ([]models.StudentGradeSummary, int, error) {
	return f.summaries, f.skipped, nil
}

func newReportService(store *memoryStorage) *ReportService {
	avg := 86.25
	provider := &fakeSummaries{summaries: []models.StudentGradeSummary{
		{
			Username:         "jcruz",
			DisplayName:      "Juan Cruz",
			Year:             "3",
			SubjectsRecorded: 3,
			Semesters:        []models.SemesterGradeSummary{{Semester: "First Semester", SubjectCount: 3, GradedCount: 2, Average: &avg}},
			OverallAverage:   &avg,
		},
		{Username: "msantos", DisplayName: "Maria Santos", SubjectsRecorded: 1},
	}}
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewReportService(provider, store, signer, ReportConfig{
		Enabled:       true,
		APIPrefix:     "/api/v1",
		PassThreshold: 75,
	}, zap.NewNop())
}

func TestReportLifecycle(t *testing.T) {
	store := &memoryStorage{}
	svc := newReportService(store)

	// register without the queue so processing is deterministic
	job := &reportJob{ID: "job-1", Status: ReportStatusPending, Format: "csv", CreatedAt: time.Now().UTC()}
	svc.jobs[job.ID] = job

	require.NoError(t, svc.process(context.Background(), jobs.Job{ID: "job-1"}))

	resp, err := svc.Get(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, ReportStatusCompleted, resp.Status)
	require.NotNil(t, resp.CompletedAt)
	require.NotEmpty(t, resp.DownloadURL)
	assert.True(t, strings.HasPrefix(resp.DownloadURL, "/api/v1/reports/download/"))

	require.Len(t, store.files, 1)
	for name, data := range store.files {
		assert.True(t, strings.HasSuffix(name, ".csv"))
		content := string(data)
		assert.Contains(t, content, "Username,Name,Year,Subjects,Graded,Average,Standing")
		assert.Contains(t, content, "jcruz,Juan Cruz,3rd Year,3,2,86.25,Passing")
		assert.Contains(t, content, "msantos,Maria Santos,,1,0,,No Data")
	}

	token := strings.TrimPrefix(resp.DownloadURL, "/api/v1/reports/download/")
	data, filename, err := svc.Download(context.Background(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, filename)
	assert.Contains(t, string(data), "jcruz")
}

func TestReportPDFFormat(t *testing.T) {
	store := &memoryStorage{}
	svc := newReportService(store)

	job := &reportJob{ID: "job-2", Status: ReportStatusPending, Format: "pdf", CreatedAt: time.Now().UTC()}
	svc.jobs[job.ID] = job

	require.NoError(t, svc.process(context.Background(), jobs.Job{ID: "job-2"}))
	require.Len(t, store.files, 1)
	for name, data := range store.files {
		assert.True(t, strings.HasSuffix(name, ".pdf"))
		assert.True(t, strings.HasPrefix(string(data), "%PDF"))
	}
}

func TestReportCreateDisabled(t *testing.T) {
	svc := NewReportService(&fakeSummaries{}, &memoryStorage{}, storage.NewSignedURLSigner("s", time.Hour), ReportConfig{Enabled: false}, zap.NewNop())
	_, err := svc.Create(context.Background(), dto.CreateReportRequest{Format: "csv"})
	require.Error(t, err)
}

func TestReportDownloadBadToken(t *testing.T) {
	svc := newReportService(&memoryStorage{})
	_, _, err := svc.Download(context.Background(), "not-a-token")
	require.Error(t, err)
}

func TestReportGetUnknownJob(t *testing.T) {
	svc := newReportService(&memoryStorage{})
	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
}

package dto

import "time"

// CreateReportRequest asks for an exported grade-summary report.
type CreateReportRequest struct {
	Format   string `json:"format" binding:"required,oneof=csv pdf"`
	Year     string `json:"year"`
	Semester string `json:"semester"`
}

// ReportJobResponse describes an export job's lifecycle state.
type ReportJobResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Format      string     `json:"format"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	DownloadURL string     `json:"download_url,omitempty"`
}

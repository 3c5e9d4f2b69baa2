package dto

import "github.com/finance-dashboard/backend/internal/application/usecase/report"

// WellnessReportRequest asks for the wellness report to be emailed.
type WellnessReportRequest struct {
	AnalyticsRequest
	Email string `json:"email" binding:"required"`
	Name  string `json:"name" binding:"omitempty,max=100"`
}

// WellnessReportResponse acknowledges a queued report.
type WellnessReportResponse struct {
	JobID       string `json:"job_id"`
	ScheduledAt string `json:"scheduled_at"`
	Score       int    `json:"score"`
	DTILabel    string `json:"dti_label"`
}

// ToWellnessReportResponse converts the use case output to its DTO.
func ToWellnessReportResponse(out *report.QueueWellnessReportOutput) WellnessReportResponse {
	return WellnessReportResponse{
		JobID:       out.JobID,
		ScheduledAt: out.ScheduledAt,
		Score:       out.Score,
		DTILabel:    string(out.DTILabel),
	}
}

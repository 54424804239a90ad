package httpapi

import "jobhunt-workbench/internal/domain"

// CreateApplicationsRequest is the body of POST /api/applications.
type CreateApplicationsRequest struct {
	JobDataList []domain.JobRecord `json:"jobDataList"`
}

package services

import (
	"context"

	"github.com/gcbaptista/go-textscan/config"
	"github.com/gcbaptista/go-textscan/model"
)

// Scanner runs a single scan to completion
type Scanner interface {
	Scan(ctx context.Context, cfg config.SearchConfig) (model.ScanResult, error)
}

// JobManager defines operations for managing background scans
type JobManager interface {
	CreateJob(jobType model.JobType, target string, metadata map[string]string) string
	ExecuteJob(jobID string, jobFunc func(ctx context.Context, job *model.Job) error) error
	UpdateJobProgress(jobID string, current, total int, message string)
	SetJobMetadata(jobID, key, value string)
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
}

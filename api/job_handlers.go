package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	scanerrors "github.com/gcbaptista/go-textscan/internal/errors"
	"github.com/gcbaptista/go-textscan/internal/jobs"
	"github.com/gcbaptista/go-textscan/model"
)

// metricsSource is implemented by job managers that expose performance metrics.
type metricsSource interface {
	GetMetrics() jobs.JobMetricsData
	GetJobSuccessRate() float64
	GetCurrentWorkload() int64
}

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.jobs.GetJob(jobID)
	if err != nil {
		if errors.Is(err, scanerrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "job lookup", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs, optionally filtered by ?status=
func (api *API) ListJobsHandler(c *gin.Context) {
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		if result := ValidateJobStatus(statusParam); result.HasErrors() {
			SendValidationError(c, result)
			return
		}
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobList := api.jobs.ListJobs(statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobList,
		"total": len(jobList),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	source, ok := api.jobs.(metricsSource)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job metrics not supported by this job manager"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":          source.GetMetrics(),
		"success_rate":     source.GetJobSuccessRate(),
		"current_workload": source.GetCurrentWorkload(),
	})
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-textscan/config"
	"github.com/gcbaptista/go-textscan/model"
	"github.com/gcbaptista/go-textscan/services"
)

// maxRequestBytes bounds scan request bodies; they only carry paths and terms.
const maxRequestBytes = 1 << 20

// scanRecorder is implemented by job managers that aggregate scan volume.
type scanRecorder interface {
	RecordScanResult(result model.ScanResult)
}

// API holds dependencies for API handlers.
type API struct {
	scanner services.Scanner
	jobs    services.JobManager
}

// NewAPI creates a new API handler structure.
func NewAPI(scanner services.Scanner, jobs services.JobManager) *API {
	return &API{
		scanner: scanner,
		jobs:    jobs,
	}
}

// SetupRoutes defines all the API routes for the scanner service.
func SetupRoutes(router *gin.Engine, scanner services.Scanner, jobs services.JobManager) {
	apiHandler := NewAPI(scanner, jobs)

	router.Use(RequestIDMiddleware(), CORSMiddleware(), RequestSizeLimitMiddleware(maxRequestBytes))

	router.GET("/health", apiHandler.HealthCheckHandler)

	router.POST("/scans", apiHandler.CreateScanHandler)

	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs, optionally by status
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "go-textscan",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// CreateScanHandler starts a scan in the background.
// Request Body: config.RawArgs; omitted fields take the CLI defaults.
func (api *API) CreateScanHandler(c *gin.Context) {
	var req config.RawArgs
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateScanRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	cfg, err := config.Resolve(req)
	if err != nil {
		SendValidationError(c, ValidationResultFromError(err))
		return
	}

	jobID := api.jobs.CreateJob(model.JobTypeForMode(cfg.Mode), cfg.InputPath, map[string]string{
		"outfile": cfg.OutputPath,
		"mode":    string(cfg.Mode),
		"terms":   strings.Join(cfg.Terms, " "),
	})

	err = api.jobs.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return api.runScan(ctx, job.ID, cfg)
	})
	if err != nil {
		SendJobExecutionError(c, "scan", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Scan of '" + cfg.InputPath + "' started",
		"job_id":  jobID,
		"config":  cfg,
	})
}

// runScan is the body of a scan job; results land in the job's metadata.
func (api *API) runScan(ctx context.Context, jobID string, cfg config.SearchConfig) error {
	result, err := api.scanner.Scan(ctx, cfg)
	if err != nil {
		return err
	}

	api.jobs.UpdateJobProgress(jobID, result.LinesRead, result.LinesRead,
		fmt.Sprintf("%d matches written to %s", result.Matches, cfg.OutputPath))
	api.jobs.SetJobMetadata(jobID, "lines_read", strconv.Itoa(result.LinesRead))
	api.jobs.SetJobMetadata(jobID, "matches", strconv.Itoa(result.Matches))
	if recorder, ok := api.jobs.(scanRecorder); ok {
		recorder.RecordScanResult(result)
	}
	return nil
}

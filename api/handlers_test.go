package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-textscan/internal/jobs"
	testutil "github.com/gcbaptista/go-textscan/internal/testing"
	"github.com/gcbaptista/go-textscan/model"
)

func setupTestRouter(t *testing.T, fs afero.Fs) (*gin.Engine, *jobs.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := jobs.NewManager(2)
	manager.Start()
	t.Cleanup(manager.Stop)

	s, _ := testutil.CreateTestScanner(t, fs)
	router := gin.New()
	SetupRoutes(router, s, manager)
	return router, manager
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func waitForJob(t *testing.T, router *gin.Engine, jobID string) model.Job {
	t.Helper()
	var job model.Job
	require.Eventually(t, func() bool {
		w := doJSON(router, http.MethodGet, "/jobs/"+jobID, nil)
		if w.Code != http.StatusOK {
			return false
		}
		if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
			return false
		}
		return job.Status == model.JobStatusCompleted || job.Status == model.JobStatusFailed
	}, 2*time.Second, 5*time.Millisecond)
	return job
}

func TestHealthCheckHandler(t *testing.T) {
	router, _ := setupTestRouter(t, afero.NewMemMapFs())

	w := doJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateScanHandler_RunsScan(t *testing.T) {
	fs := testutil.CreateTestFS(t, map[string]string{
		"origin.txt": testutil.CorpusText(testutil.Corpus...),
	})
	router, manager := setupTestRouter(t, fs)

	w := doJSON(router, http.MethodPost, "/scans", map[string]interface{}{"terms": "herit"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var resp struct {
		Status string `json:"status"`
		JobID  string `json:"job_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp.Status)
	require.NotEmpty(t, resp.JobID)

	job := waitForJob(t, router, resp.JobID)
	assert.Equal(t, model.JobStatusCompleted, job.Status, job.Error)
	assert.Equal(t, model.JobTypeScanLines, job.Type)
	assert.Equal(t, "origin.txt", job.Target)
	assert.Equal(t, "3", job.Metadata["lines_read"])
	assert.Equal(t, "2", job.Metadata["matches"])

	assert.Equal(t, "Line: 0 Word: inherited\nLine: 2 Word: HERITABLE\n",
		testutil.ReadTestFile(t, fs, "origin_output.txt"))
	assert.Equal(t, int64(2), manager.GetMetrics().MatchesWritten)
}

func TestCreateScanHandler_WordsMode(t *testing.T) {
	fs := testutil.CreateTestFS(t, map[string]string{
		"corpus.txt": "banana Inheritance apple\n",
	})
	router, _ := setupTestRouter(t, fs)

	w := doJSON(router, http.MethodPost, "/scans", map[string]interface{}{
		"infile":  "corpus.txt",
		"outfile": "words.txt",
		"mode":    "words",
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	job := waitForJob(t, router, resp["job_id"].(string))

	assert.Equal(t, model.JobTypeScanWords, job.Type)
	assert.Equal(t, "Inheritance\n", testutil.ReadTestFile(t, fs, "words.txt"))
}

func TestCreateScanHandler_MissingInputFailsJob(t *testing.T) {
	router, _ := setupTestRouter(t, afero.NewMemMapFs())

	w := doJSON(router, http.MethodPost, "/scans", map[string]interface{}{"infile": "missing.txt"})
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	job := waitForJob(t, router, resp["job_id"].(string))

	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Contains(t, job.Error, "input file 'missing.txt' not found")
}

func TestCreateScanHandler_BadRequests(t *testing.T) {
	router, _ := setupTestRouter(t, afero.NewMemMapFs())

	tests := []struct {
		name          string
		body          interface{}
		expectedCode  ErrorCode
		expectedField string
	}{
		{"invalid JSON", "not json", ErrorCodeInvalidJSON, ""},
		{"unknown mode", map[string]interface{}{"mode": "chars"}, ErrorCodeValidationFailed, "mode"},
		{"output overwrites input", map[string]interface{}{"infile": "a.txt", "outfile": "a.txt"}, ErrorCodeValidationFailed, "outfile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/scans", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var apiErr APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
			assert.Equal(t, tt.expectedCode, apiErr.Code)
			assert.NotEmpty(t, apiErr.RequestID)
			if tt.expectedField != "" {
				require.NotEmpty(t, apiErr.Details)
				assert.Equal(t, tt.expectedField, apiErr.Details[0].Field)
			}
		})
	}
}

func TestGetJobHandler_NotFound(t *testing.T) {
	router, _ := setupTestRouter(t, afero.NewMemMapFs())

	req, _ := http.NewRequest(http.MethodGet, "/jobs/unknown-job", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, ErrorCodeJobNotFound, apiErr.Code)
	assert.Equal(t, "req-123", apiErr.RequestID)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestListJobsHandler(t *testing.T) {
	router, manager := setupTestRouter(t, afero.NewMemMapFs())
	manager.CreateJob(model.JobTypeScanLines, "a.txt", nil)

	w := doJSON(router, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = doJSON(router, http.MethodGet, "/jobs?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = doJSON(router, http.MethodGet, "/jobs?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)

	w = doJSON(router, http.MethodGet, "/jobs?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetJobMetricsHandler(t *testing.T) {
	router, manager := setupTestRouter(t, afero.NewMemMapFs())
	manager.CreateJob(model.JobTypeScanWords, "a.txt", nil)

	w := doJSON(router, http.MethodGet, "/jobs/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Metrics         jobs.JobMetricsData `json:"metrics"`
		SuccessRate     float64             `json:"success_rate"`
		CurrentWorkload int64               `json:"current_workload"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Metrics.JobsCreated)
	assert.Equal(t, 1.0, resp.SuccessRate)
	assert.Equal(t, int64(1), resp.CurrentWorkload)
}

func TestValidateScanRequest(t *testing.T) {
	valid := ValidateScanRequest(nil)
	assert.True(t, valid.HasErrors())

	result := ValidationResultFromError(nil)
	assert.False(t, result.HasErrors())
}

package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/DanielPopoola/fusion-cleaner/internal/config"
	"github.com/DanielPopoola/fusion-cleaner/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type fakeBackends struct {
	mu      sync.Mutex
	aborted []string
}

func (f *fakeBackends) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/restful/standard/taskengine-mgr/v1/projects/get-trace-list", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"response":{"data":[{"serialNumber":"P-1"},{"serialNumber":""},{"serialNumber":"P-2"}]}}`)
	})
	mux.HandleFunc("/restful/standard/taskengine-mgr/v1/projects/abort-project", func(w http.ResponseWriter, r *http.Request) {
		f.record(t, r)
	})
	mux.HandleFunc("/restful/standard/workflow/mgr/v1/api/process/inst/list", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"response":{"data":{"records":[{"serialNumber":"W-1","completeState":0},{"serialNumber":"W-2","completeState":1}]}}}`)
	})
	mux.HandleFunc("/restful/standard/workflow/api/process/abort", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("token") != "iam-token" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		f.record(t, r)
	})
	return mux
}

func (f *fakeBackends) record(t *testing.T, r *http.Request) {
	var body struct {
		SerialNumber string `json:"serialNumber"`
	}
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.aborted = append(f.aborted, body.SerialNumber)
}

func setBackendEnv(t *testing.T, url string) {
	t.Helper()
	t.Setenv("CLEANER_TASK_ENGINE__BASE_URL", url)
	t.Setenv("CLEANER_TASK_ENGINE__TOKEN", "engine-token")
	t.Setenv("CLEANER_TASK_ENGINE__PERSON_IN_CHARGE", "ops@example.com")
	t.Setenv("CLEANER_WORKFLOW__BASE_URL", url)
	t.Setenv("CLEANER_WORKFLOW__TOKEN", "iam-token")
	t.Setenv("CLEANER_WORKFLOW__PERFORMER_ID", "ops001")
	t.Setenv("CLEANER_LOGGER__LEVEL", "error")
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func testApp() *cli.App {
	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func TestApp_Sweep(t *testing.T) {
	backends := &fakeBackends{}
	server := httptest.NewServer(backends.handler(t))
	defer server.Close()

	setBackendEnv(t, server.URL)
	t.Setenv("CLEANER_CLEANUP__PROJECT_CODES", "PU_1")
	t.Setenv("CLEANER_CLEANUP__PROCESS_CODES", "PC_1")

	err := testApp().Run([]string{"fusion-cleaner", "--fail-on-error", "sweep"})

	require.NoError(t, err)
	assert.Equal(t, []string{"P-1", "P-2", "W-1"}, backends.aborted)
}

func TestApp_Processes_FailOnError(t *testing.T) {
	backends := &fakeBackends{}
	server := httptest.NewServer(backends.handler(t))
	defer server.Close()

	setBackendEnv(t, server.URL)
	t.Setenv("CLEANER_WORKFLOW__TOKEN", "stale-token")

	err := testApp().Run([]string{"fusion-cleaner", "--fail-on-error", "processes", "--code", "PC_1"})

	require.Error(t, err)
	exitErr, ok := err.(cli.ExitCoder)
	require.True(t, ok)
	assert.Equal(t, exitFailures, exitErr.ExitCode())
	assert.Empty(t, backends.aborted)
}

func TestApp_Processes_FailuresTolerantByDefault(t *testing.T) {
	backends := &fakeBackends{}
	server := httptest.NewServer(backends.handler(t))
	defer server.Close()

	setBackendEnv(t, server.URL)
	t.Setenv("CLEANER_WORKFLOW__TOKEN", "stale-token")

	err := testApp().Run([]string{"fusion-cleaner", "processes", "--code", "PC_1"})

	assert.NoError(t, err)
}

func TestApp_SweepWithoutCodes(t *testing.T) {
	setBackendEnv(t, "http://127.0.0.1:1")

	err := testApp().Run([]string{"fusion-cleaner", "sweep"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no project or process codes")
}

func TestRun_ReportsPerCode(t *testing.T) {
	backends := &fakeBackends{}
	server := httptest.NewServer(backends.handler(t))
	defer server.Close()

	setBackendEnv(t, server.URL)
	cfg := loadTestConfig(t)

	reports, err := run(context.Background(), cfg, []string{"PU_1"}, []string{"PC_1"})

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, domain.KindProject, reports[0].Kind)
	assert.Equal(t, 3, reports[0].Found)
	assert.Equal(t, 1, reports[0].Skipped)
	assert.Equal(t, []string{"W-1"}, reports[1].Succeeded)
}

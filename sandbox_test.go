package tmv1_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-tmv1"
)

func TestSandboxService_SubmitFile(t *testing.T) {
	t.Run("multipart upload", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v3.0/sandbox/files/analyze", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))

			assert.Equal(t, "dGVzdFN0cmluZw==", r.FormValue("documentPassword"))
			assert.Equal(t, "YXJjaGl2ZQ==", r.FormValue("archivePassword"))
			assert.Empty(t, r.MultipartForm.Value["arguments"])

			f, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			assert.Equal(t, "sample.exe", header.Filename)
			content, err := io.ReadAll(f)
			require.NoError(t, err)
			assert.Equal(t, "MZ\x90\x00", string(content))

			w.Header().Set("Operation-Location", "http://"+r.Host+"/v3.0/sandbox/tasks/123")
			writeJSON(t, w, http.StatusAccepted, `{"id":"123","digest":{"md5":"m","sha1":"s1","sha256":"s256"}}`)
		})

		res := client.Sandbox.SubmitFile(context.Background(), tmv1.SandboxFile{
			Name:             "sample.exe",
			Content:          []byte("MZ\x90\x00"),
			DocumentPassword: "testString",
			ArchivePassword:  "archive",
		})
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		assert.Equal(t, "123", res.Response.ID)
		assert.Equal(t, "s256", res.Response.Digest.SHA256)
	})

	t.Run("missing name", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})
		res := client.Sandbox.SubmitFile(context.Background(), tmv1.SandboxFile{Content: []byte("x")})
		require.NotNil(t, res.Error)
		assert.Equal(t, "ValidationError", res.Error.Code)
	})
}

func TestSandboxService_SubmitURLs(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3.0/sandbox/urls/analyze", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"url":"https://www.example.com"},{"url":"https://www.example.org"}]`, string(body))

		writeJSON(t, w, http.StatusMultiStatus, fmt.Sprintf(`[
			{"status":202,"headers":[{"name":"Operation-Location","value":"http://%[1]s/v3.0/sandbox/tasks/a"}],
			 "body":{"id":"a","url":"https://www.example.com","digest":{"md5":"m","sha1":"s1","sha256":"s256"}}},
			{"status":202,"headers":[{"name":"Operation-Location","value":"http://%[1]s/v3.0/sandbox/tasks/b"}],
			 "body":{"id":"b","url":"https://www.example.org"}}
		]`, r.Host))
	})

	res := client.Sandbox.SubmitURLs(context.Background(), []string{"https://www.example.com", "https://www.example.org"})
	require.True(t, res.OK(), "unexpected errors: %v", res.Errors)
	require.Len(t, res.Response.Items, 2)
	assert.Equal(t, "a", res.Response.Items[0].TaskID)
	assert.Equal(t, "https://www.example.com", res.Response.Items[0].URL)
	require.NotNil(t, res.Response.Items[0].Digest)
	assert.Nil(t, res.Response.Items[1].Digest)
}

// sandboxServer reports the submission as running for pending polls, then
// serves the analysis endpoints.
func sandboxServer(t *testing.T, pending int32, polls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3.0/sandbox/tasks/123":
			status := "succeeded"
			if polls.Add(1) <= pending {
				status = "running"
			}
			writeJSON(t, w, http.StatusOK, fmt.Sprintf(
				`{"id":"123","action":"analyzeFile","status":%q,"createdDateTime":"2023-01-01T00:00:00Z","lastActionDateTime":"2023-01-01T00:00:00Z","isCached":false}`,
				status))
		case "/v3.0/sandbox/analysisResults/123":
			writeJSON(t, w, http.StatusOK, `{
				"id":"123","type":"file","analysisCompletionDateTime":"2023-01-01T00:05:00Z",
				"riskLevel":"high","trueFileType":"exe","detectionNames":["VAN_DROPPER.UMXX"],"threatTypes":["Dropper"]
			}`)
		case "/v3.0/sandbox/analysisResults/123/suspiciousObjects":
			writeJSON(t, w, http.StatusOK, `{"items":[{"riskLevel":"high","url":"https://bad.example","rootSha1":"r"}]}`)
		case "/v3.0/sandbox/analysisResults/123/report":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.7"))
		case "/v3.0/sandbox/analysisResults/123/investigationPackage":
			w.Header().Set("Content-Type", "application/zip")
			_, _ = w.Write([]byte("PK\x03\x04"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestSandboxService_AnalysisResult(t *testing.T) {
	t.Run("polls until finished", func(t *testing.T) {
		var polls atomic.Int32
		client := setupTestServer(t, sandboxServer(t, 2, &polls))

		res := client.Sandbox.AnalysisResult(context.Background(), "123")
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		assert.Equal(t, tmv1.RiskHigh, res.Response.RiskLevel)
		assert.Equal(t, []string{"VAN_DROPPER.UMXX"}, res.Response.DetectionNames)
		assert.Equal(t, int32(3), polls.Load())
	})

	t.Run("polling disabled", func(t *testing.T) {
		var polls atomic.Int32
		client := setupTestServer(t, sandboxServer(t, 2, &polls))

		res := client.Sandbox.AnalysisResult(context.Background(), "123", tmv1.WithPoll(false))
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		assert.Zero(t, polls.Load())
	})

	t.Run("status lookup failure", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v3.0/sandbox/tasks/404", r.URL.Path)
			writeJSON(t, w, http.StatusNotFound, `{"error":{"code":"TaskNotFound","message":"Task not found"}}`)
		})

		res := client.Sandbox.AnalysisResult(context.Background(), "404")
		require.NotNil(t, res.Error)
		assert.Equal(t, "TaskNotFound", res.Error.Code)
	})
}

func TestSandboxService_Downloads(t *testing.T) {
	var polls atomic.Int32
	client := setupTestServer(t, sandboxServer(t, 0, &polls))
	ctx := context.Background()

	report := client.Sandbox.DownloadReport(ctx, "123")
	require.True(t, report.OK(), "unexpected error: %v", report.Error)
	assert.Equal(t, []byte("%PDF-1.7"), report.Response.Content)

	pkg := client.Sandbox.DownloadInvestigationPackage(ctx, "123")
	require.True(t, pkg.OK(), "unexpected error: %v", pkg.Error)
	assert.Equal(t, []byte("PK\x03\x04"), pkg.Response.Content)

	objects := client.Sandbox.SuspiciousObjects(ctx, "123")
	require.True(t, objects.OK(), "unexpected error: %v", objects.Error)
	require.Len(t, objects.Response.Items, 1)
	assert.Equal(t, tmv1.ObjectURL, objects.Response.Items[0].Type)
	assert.Equal(t, "https://bad.example", objects.Response.Items[0].Value)

	status := client.Sandbox.SubmissionStatus(ctx, "123")
	require.True(t, status.OK(), "unexpected error: %v", status.Error)
	assert.Equal(t, tmv1.StatusSucceeded, status.Response.Status)
	require.NotNil(t, status.Response.IsCached)
	assert.False(t, *status.Response.IsCached)

	assert.Equal(t, int32(4), polls.Load())
}

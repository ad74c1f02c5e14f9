package tmv1_test

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-tmv1"
)

// taskServer answers task lookups with status running for the first pending
// calls and succeeded afterwards. extra is appended to the task document.
func taskServer(t *testing.T, pending int32, extra string, calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v3.0/response/tasks/00000001", r.URL.Path)
		status := "succeeded"
		if calls.Add(1) <= pending {
			status = "running"
		}
		writeJSON(t, w, http.StatusOK, fmt.Sprintf(`{
			"id":"00000001","status":%q,"action":"collectFile",
			"createdDateTime":"2023-01-01T00:00:00Z","lastActionDateTime":"2023-01-01T00:01:00Z",
			"account":"test"%s
		}`, status, extra))
	}
}

func TestTaskService_Get(t *testing.T) {
	t.Run("polls until finished", func(t *testing.T) {
		var calls atomic.Int32
		client := setupTestServer(t, taskServer(t, 2, "", &calls))

		res := client.Tasks.Get(context.Background(), "00000001")
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		assert.Equal(t, tmv1.StatusSucceeded, res.Response.Status)
		assert.Equal(t, tmv1.ActionCollectFile, res.Response.Action)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("single fetch without polling", func(t *testing.T) {
		var calls atomic.Int32
		client := setupTestServer(t, taskServer(t, 2, "", &calls))

		res := client.Tasks.Get(context.Background(), "00000001", tmv1.WithPoll(false))
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		assert.Equal(t, tmv1.StatusRunning, res.Response.Status)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("zero timeout returns pending state", func(t *testing.T) {
		var calls atomic.Int32
		client := setupTestServer(t, taskServer(t, 100, "", &calls))

		res := client.Tasks.Get(context.Background(), "00000001", tmv1.WithPollTimeout(0))
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		assert.Equal(t, tmv1.StatusRunning, res.Response.Status)
	})

	t.Run("cancelled while polling", func(t *testing.T) {
		var calls atomic.Int32
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		client := setupTestServer(t, taskServer(t, 1<<30, "", &calls))

		res := client.Tasks.Get(ctx, "00000001")
		require.NotNil(t, res.Error)
		assert.Equal(t, "TransportError", res.Error.Code)
		assert.Greater(t, calls.Load(), int32(0))
	})

	t.Run("empty id", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})
		res := client.Tasks.Get(context.Background(), "")
		require.NotNil(t, res.Error)
		assert.Equal(t, "ValidationError", res.Error.Code)
	})
}

func TestGetTaskResult(t *testing.T) {
	t.Run("typed collect file result", func(t *testing.T) {
		var calls atomic.Int32
		client := setupTestServer(t, taskServer(t, 1, `,
			"agentGuid":"g","endpointName":"client1","filePath":"/tmp/sample.exe",
			"fileSha1":"s1","fileSize":1024,"resourceLocation":"https://blob.example/file.zip",
			"expiredDateTime":"2023-01-08T00:00:00Z","password":"7TNk49Mz"`, &calls))

		res := tmv1.GetTaskResult[tmv1.CollectFileTaskResponse](context.Background(), client, "00000001")
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		assert.Equal(t, tmv1.StatusSucceeded, res.Response.Status)
		assert.Equal(t, "client1", res.Response.EndpointName)
		assert.Equal(t, int64(1024), res.Response.FileSize)
		assert.Equal(t, "https://blob.example/file.zip", res.Response.ResourceLocation)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("typed block list result", func(t *testing.T) {
		var calls atomic.Int32
		client := setupTestServer(t, taskServer(t, 0, `,"type":"domain","domain":"bad.example"`, &calls))

		res := tmv1.GetTaskResult[tmv1.BlockListTaskResponse](context.Background(), client, "00000001")
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		assert.Equal(t, tmv1.ObjectDomain, res.Response.Type)
		assert.Equal(t, "bad.example", res.Response.Value)
	})

	t.Run("typed account result", func(t *testing.T) {
		var calls atomic.Int32
		client := setupTestServer(t, taskServer(t, 0,
			`,"tasks":[{"accountName":"TM\\user","iam":"OPAD","status":"succeeded","lastActionDateTime":"2023-01-01T00:01:00Z"}]`, &calls))

		res := tmv1.GetTaskResult[tmv1.AccountTaskResponse](context.Background(), client, "00000001")
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		require.Len(t, res.Response.Tasks, 1)
		assert.Equal(t, `TM\user`, res.Response.Tasks[0].AccountName)
	})

	t.Run("missing status fails validation", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, `{"id":"00000001"}`)
		})

		res := tmv1.GetTaskResult[tmv1.EndpointTaskResponse](context.Background(), client, "00000001")
		require.NotNil(t, res.Error)
		assert.Equal(t, "ValidationError", res.Error.Code)
	})
}

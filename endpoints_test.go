package tmv1_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-tmv1"
)

func multiStatus(host string, ids ...string) string {
	items := make([]string, 0, len(ids))
	for _, id := range ids {
		items = append(items, fmt.Sprintf(
			`{"status":202,"headers":[{"name":"Operation-Location","value":"http://%s/v3.0/response/tasks/%s"}]}`, host, id))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestEndpointService_Isolate(t *testing.T) {
	t.Run("accepted tasks", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v3.0/response/endpoints/isolate", r.URL.Path)

			var body []map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, []map[string]string{
				{"endpointName": "client1", "description": "isolate"},
				{"agentGuid": "35fa11da-a24e-40cf-8b56-baf8828cc151"},
			}, body)

			writeJSON(t, w, http.StatusMultiStatus, multiStatus(r.Host, "00000001", "00000002"))
		})

		res := client.Endpoints.Isolate(context.Background(), []tmv1.EndpointTask{
			{EndpointName: "client1", Description: "isolate"},
			{AgentGUID: "35fa11da-a24e-40cf-8b56-baf8828cc151"},
		})
		require.True(t, res.OK(), "unexpected errors: %v", res.Errors)
		require.Len(t, res.Response.Items, 2)
		assert.Equal(t, tmv1.MultiItem{Status: 202, TaskID: "00000001"}, res.Response.Items[0])
		assert.Equal(t, "00000002", res.Response.Items[1].TaskID)
	})

	t.Run("partial failure", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusMultiStatus, fmt.Sprintf(`[
				{"status":202,"headers":[{"name":"Operation-Location","value":"http://%s/v3.0/response/tasks/00000001"}]},
				{"status":400,"body":{"error":{"code":"BadRequest","message":"Endpoint not found"}}}
			]`, r.Host))
		})

		res := client.Endpoints.Isolate(context.Background(), []tmv1.EndpointTask{
			{EndpointName: "client1"}, {EndpointName: "missing"},
		})
		assert.Equal(t, tmv1.ResultError, res.ResultCode)
		assert.Nil(t, res.Response)
		require.Len(t, res.Errors, 2)
		assert.Equal(t, "00000001", res.Errors[0].TaskID)
		assert.Equal(t, 400, res.Errors[1].Status)
		assert.Equal(t, "BadRequest", res.Errors[1].Code)
		assert.Equal(t, "Endpoint not found", res.Errors[1].Message)
	})

	t.Run("invalid task is not sent", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		res := client.Endpoints.Isolate(context.Background(), []tmv1.EndpointTask{{Description: "nothing"}})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "ValidationError", res.Errors[0].Code)

		res = client.Endpoints.Isolate(context.Background(), nil)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "ValidationError", res.Errors[0].Code)
	})
}

func TestEndpointService_Actions(t *testing.T) {
	var gotPaths []string
	var gotBodies []string
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		var body json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotBodies = append(gotBodies, string(body))
		writeJSON(t, w, http.StatusMultiStatus, multiStatus(r.Host, "1"))
	})
	ctx := context.Background()

	assert.True(t, client.Endpoints.Restore(ctx, []tmv1.EndpointTask{{EndpointName: "client1"}}).OK())
	assert.True(t, client.Endpoints.CollectFile(ctx, []tmv1.FileTask{
		{EndpointTask: tmv1.EndpointTask{EndpointName: "client1"}, FilePath: "/tmp/sample.exe"},
	}).OK())
	assert.True(t, client.Endpoints.TerminateProcess(ctx, []tmv1.ProcessTask{
		{EndpointTask: tmv1.EndpointTask{AgentGUID: "g"}, FileSHA1: "984afc7aaa2718984e15e3b5ab095b519a081321"},
	}).OK())

	assert.Equal(t, []string{
		"/v3.0/response/endpoints/restore",
		"/v3.0/response/endpoints/collectFile",
		"/v3.0/response/endpoints/terminateProcess",
	}, gotPaths)
	require.Len(t, gotBodies, 3)
	assert.JSONEq(t, `[{"endpointName":"client1","filePath":"/tmp/sample.exe"}]`, gotBodies[1])
	assert.JSONEq(t, `[{"agentGuid":"g","fileSha1":"984afc7aaa2718984e15e3b5ab095b519a081321"}]`, gotBodies[2])

	res := client.Endpoints.CollectFile(ctx, []tmv1.FileTask{{EndpointTask: tmv1.EndpointTask{EndpointName: "client1"}}})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "ValidationError", res.Errors[0].Code)
}

const endpointJSON = `{
	"agentGuid": "35fa11da-a24e-40cf-8b56-baf8828cc151",
	"loginAccount": {"updatedDateTime": "2023-01-01T00:00:00Z", "value": ["MSEDGEWIN10\\IEUser"]},
	"endpointName": {"updatedDateTime": "2023-01-01T00:00:00Z", "value": "MSEDGEWIN10"},
	"macAddress": {"updatedDateTime": "2023-01-01T00:00:00Z", "value": ["00:1c:42:be:22:5f"]},
	"ip": {"updatedDateTime": "2023-01-01T00:00:00Z", "value": ["10.211.55.36"]},
	"osName": "Windows",
	"osVersion": "10.0.17763",
	"osDescription": "Windows 10 Enterprise Evaluation (64 bit) build 17763",
	"productCode": "xes",
	"installedProductCodes": ["xes"]
}`

func TestEndpointService_Query(t *testing.T) {
	t.Run("filter header", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v3.0/eiqs/endpoints", r.URL.Path)
			assert.Equal(t,
				"(ip eq '10.211.55.36') or (endpointName eq 'MSEDGEWIN10' or loginAccount eq 'MSEDGEWIN10')",
				r.Header.Get("TMV1-Query"))
			writeJSON(t, w, http.StatusOK, `{"items":[`+endpointJSON+`]}`)
		})

		res := client.Endpoints.Query(context.Background(), tmv1.QueryOr, []string{"10.211.55.36", "MSEDGEWIN10"})
		require.True(t, res.OK(), "unexpected error: %v", res.Error)
		require.Len(t, res.Response.Items, 1)
		ep := res.Response.Items[0]
		assert.Equal(t, "MSEDGEWIN10", ep.EndpointName.Value)
		assert.Equal(t, []string{"10.211.55.36"}, ep.IP.Value)
		assert.Equal(t, tmv1.OSWindows, ep.OSName)
		assert.Equal(t, []tmv1.ProductCode{tmv1.ProductXES}, ep.InstalledProductCodes)
	})

	t.Run("no values", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		res := client.Endpoints.Query(context.Background(), tmv1.QueryOr, nil)
		require.NotNil(t, res.Error)
		assert.Equal(t, "ValidationError", res.Error.Code)

		_, err := tmv1.Collect(client.Endpoints.All(context.Background(), tmv1.QueryOr, nil), 0)
		var valErr *tmv1.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})
}

func TestEndpointService_Consume(t *testing.T) {
	var requests int
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch r.URL.Query().Get("skipToken") {
		case "":
			assert.NotEmpty(t, r.Header.Get("TMV1-Query"))
			writeJSON(t, w, http.StatusOK, fmt.Sprintf(`{"items":[%s],"nextLink":"http://%s/v3.0/eiqs/endpoints?skipToken=next"}`,
				endpointJSON, r.Host))
		case "next":
			assert.Empty(t, r.Header.Get("TMV1-Query"))
			writeJSON(t, w, http.StatusOK, `{"items":[`+endpointJSON+`]}`)
		}
	})

	count := 0
	res := client.Endpoints.Consume(context.Background(), func(*tmv1.Endpoint) { count++ },
		tmv1.QueryAnd, []string{"xes"})
	require.True(t, res.OK(), "unexpected error: %v", res.Error)
	assert.Equal(t, 2, res.Response.TotalConsumed)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, requests)
}

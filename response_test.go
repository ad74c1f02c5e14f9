package tmv1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-tmv1/internal/api"
)

func newResponse(status int, contentType, body string) *api.Response {
	h := make(http.Header)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &api.Response{StatusCode: status, Body: []byte(body), Headers: h}
}

func TestValidateResponse(t *testing.T) {
	t.Run("html page", func(t *testing.T) {
		err := validateResponse(newResponse(500, "text/html; charset=utf-8", "<html><div><p>test</p></div></html>"))
		var htmlErr *ServerHTMLError
		require.ErrorAs(t, err, &htmlErr)
		assert.Equal(t, 500, htmlErr.StatusCode)
		assert.Equal(t, "test", htmlErr.Text)
	})

	t.Run("html page with success status", func(t *testing.T) {
		err := validateResponse(newResponse(200, "text/html", "<p>login</p>"))
		var htmlErr *ServerHTMLError
		require.ErrorAs(t, err, &htmlErr)
		assert.Equal(t, "login", htmlErr.Text)
	})

	t.Run("json error envelope", func(t *testing.T) {
		err := validateResponse(newResponse(400, "application/json",
			`{"error":{"code":"BadRequest","message":"Invalid id","number":3}}`))
		var jsonErr *ServerJSONError
		require.ErrorAs(t, err, &jsonErr)
		assert.Equal(t, ErrorDetail{Status: 400, Code: "BadRequest", Message: "Invalid id", Number: 3}, jsonErr.Detail)
	})

	t.Run("json error without envelope", func(t *testing.T) {
		err := validateResponse(newResponse(404, "application/json", `{"message":"not here"}`))
		var jsonErr *ServerJSONError
		require.ErrorAs(t, err, &jsonErr)
		assert.Equal(t, 404, jsonErr.Detail.Status)
		assert.Equal(t, `{"message":"not here"}`, jsonErr.Detail.Message)
	})

	t.Run("text error", func(t *testing.T) {
		err := validateResponse(newResponse(503, "text/plain", "Service Unavailable"))
		var textErr *ServerTextError
		require.ErrorAs(t, err, &textErr)
		assert.Equal(t, 503, textErr.StatusCode)
		assert.Equal(t, "Service Unavailable", textErr.Body)
	})

	t.Run("status 399 is an error", func(t *testing.T) {
		err := validateResponse(newResponse(399, "", ""))
		var textErr *ServerTextError
		assert.ErrorAs(t, err, &textErr)
	})

	t.Run("multi status all success", func(t *testing.T) {
		err := validateResponse(newResponse(207, "application/json",
			`[{"status":202,"headers":[{"name":"Operation-Location","value":"https://host/v3.0/response/tasks/00000001"}]},{"status":202}]`))
		assert.NoError(t, err)
	})

	t.Run("multi status with failure", func(t *testing.T) {
		body := `[
			{"status":202,"headers":[{"name":"Operation-Location","value":"https://host/v3.0/response/tasks/00000001"}]},
			{"status":400,"body":{"error":{"code":"BadRequest","message":"Endpoint not found","number":3}}},
			{"status":400,"error":{"code":"TaskError","message":"Bad url","number":7},"body":{"url":"https://bad.example"}},
			{"headers":[]}
		]`
		err := validateResponse(newResponse(207, "application/json", body))
		var multiErr *ServerMultiJSONError
		require.ErrorAs(t, err, &multiErr)
		require.Len(t, multiErr.Details, 4)

		assert.Equal(t, ErrorDetail{Status: 202, TaskID: "00000001"}, multiErr.Details[0])
		assert.Equal(t, ErrorDetail{
			Status:  400,
			Code:    "BadRequest",
			Message: "Endpoint not found",
			Number:  3,
		}, multiErr.Details[1])
		assert.Equal(t, ErrorDetail{
			Status:  400,
			Code:    "TaskError",
			Message: "Bad url",
			Number:  7,
			Extra:   map[string]string{"url": "https://bad.example"},
		}, multiErr.Details[2])
		assert.Equal(t, 500, multiErr.Details[3].Status)
	})

	t.Run("success", func(t *testing.T) {
		assert.NoError(t, validateResponse(newResponse(200, "application/json", `{}`)))
		assert.NoError(t, validateResponse(newResponse(204, "", "")))
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("multi items", func(t *testing.T) {
		var out MultiResponse
		err := parseResponse(newResponse(207, "application/json",
			`[{"status":202,"headers":[{"name":"Operation-Location","value":"https://host/v3.0/response/tasks/00000003"}]}]`), &out)
		require.NoError(t, err)
		require.Len(t, out.Items, 1)
		assert.Equal(t, MultiItem{Status: 202, TaskID: "00000003"}, out.Items[0])
	})

	t.Run("multi url items flatten body", func(t *testing.T) {
		var out MultiURLResponse
		err := parseResponse(newResponse(207, "application/json",
			`[{"status":202,"headers":[{"name":"Operation-Location","value":"https://host/v3.0/sandbox/tasks/abc"}],
			  "body":{"id":"abc","url":"https://www.example.com","digest":{"md5":"m","sha1":"s1","sha256":"s256"}}}]`), &out)
		require.NoError(t, err)
		require.Len(t, out.Items, 1)
		item := out.Items[0]
		assert.Equal(t, 202, item.Status)
		assert.Equal(t, "abc", item.TaskID)
		assert.Equal(t, "abc", item.ID)
		assert.Equal(t, "https://www.example.com", item.URL)
		require.NotNil(t, item.Digest)
		assert.Equal(t, "s256", item.Digest.SHA256)
	})

	t.Run("alert details with etag", func(t *testing.T) {
		resp := newResponse(200, "application/json", `{"id":"WB-1","alertProvider":"SAE","description":"desc"}`)
		resp.Headers.Set("ETag", `"33a64df5"`)

		var out AlertDetails
		require.NoError(t, parseResponse(resp, &out))
		assert.Equal(t, `"33a64df5"`, out.ETag)
		require.NotNil(t, out.Alert.SAE)
		assert.Equal(t, "desc", out.Alert.SAE.Description)
	})

	t.Run("binary", func(t *testing.T) {
		var out BytesResponse
		require.NoError(t, parseResponse(newResponse(200, "application/pdf", "%PDF-1.4"), &out))
		assert.Equal(t, []byte("%PDF-1.4"), out.Content)
	})

	t.Run("binary target with json content", func(t *testing.T) {
		var out BytesResponse
		err := parseResponse(newResponse(200, "application/json", `{}`), &out)
		var parseErr *ParseModelError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "BytesResponse", parseErr.Model)
	})

	t.Run("note location", func(t *testing.T) {
		resp := newResponse(201, "", "")
		resp.Headers.Set("Location", "https://host/v3.0/workbench/alerts/WB-1/notes/42")

		var out AddAlertNoteResponse
		require.NoError(t, parseResponse(resp, &out))
		assert.Equal(t, "42", out.NoteID())
	})

	t.Run("no content", func(t *testing.T) {
		var out NoContentResponse
		assert.NoError(t, parseResponse(newResponse(204, "", ""), &out))
	})

	t.Run("json model", func(t *testing.T) {
		var out ConnectivityResponse
		require.NoError(t, parseResponse(newResponse(200, "application/json; charset=utf-8", `{"status":"available"}`), &out))
		assert.Equal(t, "available", out.Status)
	})

	t.Run("json decode failure", func(t *testing.T) {
		var out ConnectivityResponse
		err := parseResponse(newResponse(200, "application/json", `{"status":`), &out)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Message, "ConnectivityResponse")
	})

	t.Run("json validation failure", func(t *testing.T) {
		var out BaseTaskResponse
		err := parseResponse(newResponse(200, "application/json", `{"status":"running"}`), &out)
		var valErr *ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("unmatched shape", func(t *testing.T) {
		var out NoContentResponse
		err := parseResponse(newResponse(200, "application/zip", "PK\x03\x04"), &out)
		var parseErr *ParseModelError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "NoContentResponse", parseErr.Model)
		assert.Equal(t, "application/zip", parseErr.ContentType)
		assert.Equal(t, api.BinaryPlaceholder, parseErr.Body)
	})
}

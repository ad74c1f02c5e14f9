package tmv1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tphakala/go-tmv1/internal/api"
	"github.com/tphakala/go-tmv1/internal/htmltext"
)

const operationLocation = "Operation-Location"

var errMissingID = errors.New("missing id")

// validator is implemented by models that check their own invariants after
// decoding.
type validator interface {
	validate() error
}

// ConnectivityResponse is the result of the connectivity check.
type ConnectivityResponse struct {
	Status string `json:"status"`
}

// NoContentResponse is returned by operations answered with 204.
type NoContentResponse struct{}

// BytesResponse holds a binary download such as a PDF report or a zip
// archive.
type BytesResponse struct {
	Content []byte
}

// ConsumeResponse reports how many items a consume operation delivered.
type ConsumeResponse struct {
	TotalConsumed int `json:"totalConsumed"`
}

// MultiItem is the per-item outcome of a batch task submission.
type MultiItem struct {
	Status int    `json:"status"`
	TaskID string `json:"taskId,omitempty"`
}

// UnmarshalJSON reads the status and the task ID found in the
// Operation-Location header of the item.
func (m *MultiItem) UnmarshalJSON(data []byte) error {
	item := gjson.ParseBytes(data)
	m.Status = itemStatus(item)
	m.TaskID = operationTaskID(item)
	return nil
}

// MultiResponse is the outcome of a batch task submission, one item per
// request item.
type MultiResponse struct {
	Items []MultiItem `json:"items"`
}

// MultiURLItem is the per-URL outcome of a sandbox URL submission.
type MultiURLItem struct {
	Status int     `json:"status"`
	TaskID string  `json:"taskId,omitempty"`
	URL    string  `json:"url,omitempty"`
	ID     string  `json:"id,omitempty"`
	Digest *Digest `json:"digest,omitempty"`
}

// UnmarshalJSON flattens the item body into the item.
func (m *MultiURLItem) UnmarshalJSON(data []byte) error {
	item := gjson.ParseBytes(data)
	m.Status = itemStatus(item)
	m.TaskID = operationTaskID(item)
	m.URL = lookup(item, "url").String()
	m.ID = lookup(item, "id").String()
	if d := lookup(item, "digest"); d.IsObject() {
		var digest Digest
		if err := json.Unmarshal([]byte(d.Raw), &digest); err != nil {
			return err
		}
		m.Digest = &digest
	}
	return nil
}

// MultiURLResponse is the outcome of a sandbox URL submission.
type MultiURLResponse struct {
	Items []MultiURLItem `json:"items"`
}

// validateResponse turns error responses into typed errors. Checks run in
// order: HTML pages, non-success statuses, then failed multi-status items.
func validateResponse(resp *api.Response) error {
	ct := resp.ContentType()

	if strings.Contains(ct, "text/html") {
		return &ServerHTMLError{StatusCode: resp.StatusCode, Text: htmltext.Extract(string(resp.Body))}
	}

	if !isHTTPSuccess(resp.StatusCode) {
		if strings.Contains(ct, "application/json") {
			return &ServerJSONError{Detail: decodeErrorEnvelope(resp.StatusCode, resp.Body)}
		}
		return &ServerTextError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	if resp.StatusCode == http.StatusMultiStatus && strings.Contains(ct, "json") {
		items := gjson.ParseBytes(resp.Body)
		if !items.IsArray() {
			return nil
		}
		failed := false
		details := make([]ErrorDetail, 0, len(items.Array()))
		for _, item := range items.Array() {
			detail := multiErrorDetail(item)
			if !isHTTPSuccess(detail.Status) {
				failed = true
			}
			details = append(details, detail)
		}
		if failed {
			return &ServerMultiJSONError{Details: details}
		}
	}

	return nil
}

// decodeErrorEnvelope reads {"error": {"code", "message", "number"}}. Bodies
// without the envelope keep their raw text as the message.
func decodeErrorEnvelope(status int, body []byte) ErrorDetail {
	e := gjson.GetBytes(body, "error")
	if !e.IsObject() {
		return ErrorDetail{Status: status, Code: "ServerJSONError", Message: string(body)}
	}
	return ErrorDetail{
		Status:  status,
		Code:    e.Get("code").String(),
		Message: e.Get("message").String(),
		Number:  int(e.Get("number").Int()),
	}
}

func multiErrorDetail(item gjson.Result) ErrorDetail {
	detail := ErrorDetail{
		Status:  itemStatus(item),
		Code:    lookup(item, "code").String(),
		Message: lookup(item, "message").String(),
		Number:  int(lookup(item, "number").Int()),
		TaskID:  operationTaskID(item),
	}
	if u := lookup(item, "url"); u.Exists() {
		detail.Extra = map[string]string{"url": u.String()}
	}
	return detail
}

// lookup finds key in the error object, then the error object of the body,
// then the body, then the item itself.
func lookup(item gjson.Result, key string) gjson.Result {
	for _, path := range []string{"error." + key, "body.error." + key, "body." + key, key} {
		if r := item.Get(path); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// itemStatus returns the item status, 500 when absent.
func itemStatus(item gjson.Result) int {
	if s := item.Get("status"); s.Exists() {
		return int(s.Int())
	}
	return http.StatusInternalServerError
}

// operationTaskID extracts the task ID from the Operation-Location header
// entry of a multi-status item.
func operationTaskID(item gjson.Result) string {
	for _, h := range item.Get("headers").Array() {
		if strings.EqualFold(h.Get("name").String(), operationLocation) {
			return lastSegment(h.Get("value").String())
		}
	}
	return ""
}

func lastSegment(location string) string {
	location = strings.TrimSuffix(location, "/")
	if i := strings.LastIndex(location, "/"); i >= 0 {
		return location[i+1:]
	}
	return location
}

// parseResponse decodes a validated response into target.
func parseResponse(resp *api.Response, target any) error {
	ct := resp.ContentType()
	isJSON := strings.Contains(ct, "json")

	switch t := target.(type) {
	case *MultiResponse:
		if isJSON {
			return decodeJSON(resp.Body, &t.Items)
		}
	case *MultiURLResponse:
		if isJSON {
			return decodeJSON(resp.Body, &t.Items)
		}
	case *AlertDetails:
		if isJSON {
			if err := decodeJSON(resp.Body, &t.Alert); err != nil {
				return err
			}
			t.ETag = resp.Headers.Get("ETag")
			return nil
		}
	case *BytesResponse:
		if api.IsBinary(ct) {
			t.Content = resp.Body
			return nil
		}
	case *AddAlertNoteResponse:
		if resp.StatusCode == http.StatusCreated {
			t.Location = resp.Headers.Get("Location")
			return nil
		}
	case *NoContentResponse:
		if resp.StatusCode == http.StatusNoContent {
			return nil
		}
	default:
		if isJSON {
			return decodeJSON(resp.Body, target)
		}
	}

	body := string(resp.Body)
	if api.IsBinary(ct) {
		body = api.BinaryPlaceholder
	}
	return &ParseModelError{
		Model:       modelName(target),
		StatusCode:  resp.StatusCode,
		ContentType: ct,
		Body:        body,
	}
}

func decodeJSON(body []byte, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return &ValidationError{Message: "decoding " + modelName(target), Err: err}
	}
	if v, ok := target.(validator); ok {
		if err := v.validate(); err != nil {
			return &ValidationError{Message: "invalid " + modelName(target), Err: err}
		}
	}
	return nil
}

func modelName(target any) string {
	name := fmt.Sprintf("%T", target)
	name = strings.TrimLeft(name, "*[]")
	return strings.TrimPrefix(name, "tmv1.")
}

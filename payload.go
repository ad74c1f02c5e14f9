package tmv1

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/tidwall/sjson"
)

// objectPayload builds one JSON object per task with the value keyed by the
// object type. Empty fields are left out.
func objectPayload(tasks []ObjectTask) ([]json.RawMessage, error) {
	if len(tasks) == 0 {
		return nil, errNoTasks
	}
	out := make([]json.RawMessage, 0, len(tasks))
	for i, task := range tasks {
		if err := task.validate(); err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("task %d", i), Err: err}
		}
		doc, err := objectDocument(task)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// suspiciousPayload is objectPayload with risk level, scan action and
// expiration added when set.
func suspiciousPayload(tasks []SuspiciousObjectTask) ([]json.RawMessage, error) {
	if len(tasks) == 0 {
		return nil, errNoTasks
	}
	out := make([]json.RawMessage, 0, len(tasks))
	for i, task := range tasks {
		if err := task.validate(); err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("task %d", i), Err: err}
		}
		doc, err := objectDocument(task.ObjectTask)
		if err != nil {
			return nil, err
		}
		if doc, err = setIf(doc, "riskLevel", string(task.RiskLevel)); err != nil {
			return nil, err
		}
		if doc, err = setIf(doc, "scanAction", string(task.ScanAction)); err != nil {
			return nil, err
		}
		if task.DaysToExpiration > 0 {
			if doc, err = sjson.SetBytes(doc, "daysToExpiration", task.DaysToExpiration); err != nil {
				return nil, err
			}
		}
		out = append(out, doc)
	}
	return out, nil
}

func objectDocument(task ObjectTask) ([]byte, error) {
	doc, err := sjson.SetBytes([]byte(`{}`), string(task.Type), task.Value)
	if err != nil {
		return nil, err
	}
	return setIf(doc, "description", task.Description)
}

func setIf(doc []byte, key, value string) ([]byte, error) {
	if value == "" {
		return doc, nil
	}
	return sjson.SetBytes(doc, key, value)
}

// sandboxFileForm returns the optional form fields of a file submission,
// each base64 encoded. Empty values are left out.
func sandboxFileForm(file SandboxFile) map[string]string {
	form := make(map[string]string, 3)
	for key, value := range map[string]string{
		"documentPassword": file.DocumentPassword,
		"archivePassword":  file.ArchivePassword,
		"arguments":        file.Arguments,
	} {
		if encoded, ok := encodeBase64(value); ok {
			form[key] = encoded
		}
	}
	return form
}

// encodeBase64 encodes value with standard padding. It reports false for an
// empty value.
func encodeBase64(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	return base64.StdEncoding.EncodeToString([]byte(value)), true
}

var errNoTasks = &ValidationError{Message: "at least one task is required"}

// urlPayload builds the body of a sandbox URL submission.
func urlPayload(urls []string) ([]map[string]string, error) {
	if len(urls) == 0 {
		return nil, errNoTasks
	}
	out := make([]map[string]string, 0, len(urls))
	for i, u := range urls {
		if u == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("url %d must not be empty", i)}
		}
		out = append(out, map[string]string{"url": u})
	}
	return out, nil
}

// taskPayload validates every task before it is sent as a JSON array.
func taskPayload[T validator](tasks []T) ([]T, error) {
	if len(tasks) == 0 {
		return nil, errNoTasks
	}
	for i, task := range tasks {
		if any(task) == nil {
			return nil, &ValidationError{Message: fmt.Sprintf("task %d is nil", i)}
		}
		if err := task.validate(); err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("task %d", i), Err: err}
		}
	}
	return tasks, nil
}

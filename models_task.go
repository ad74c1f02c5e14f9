package tmv1

import (
	"encoding/json"
	"fmt"
)

// EndpointTask targets an endpoint by name or agent GUID.
type EndpointTask struct {
	EndpointName string `json:"endpointName,omitempty"`
	AgentGUID    string `json:"agentGuid,omitempty"`
	Description  string `json:"description,omitempty"`
}

func (t EndpointTask) validate() error {
	if t.EndpointName == "" && t.AgentGUID == "" {
		return fmt.Errorf("endpoint task needs an endpoint name or agent GUID")
	}
	return nil
}

// FileTask collects a file from an endpoint.
type FileTask struct {
	EndpointTask
	FilePath string `json:"filePath"`
}

func (t FileTask) validate() error {
	if t.FilePath == "" {
		return fmt.Errorf("file task needs a file path")
	}
	return t.EndpointTask.validate()
}

// ProcessTask terminates a process on an endpoint.
type ProcessTask struct {
	EndpointTask
	FileSHA1 string `json:"fileSha1"`
	FileName string `json:"fileName,omitempty"`
}

func (t ProcessTask) validate() error {
	if t.FileSHA1 == "" {
		return fmt.Errorf("process task needs a file SHA-1")
	}
	return t.EndpointTask.validate()
}

// AccountTask targets a domain account.
type AccountTask struct {
	AccountName string `json:"accountName"`
	Description string `json:"description,omitempty"`
}

func (t AccountTask) validate() error {
	if t.AccountName == "" {
		return fmt.Errorf("account task needs an account name")
	}
	return nil
}

// EmailMessageTask identifies an email message. It is implemented by
// EmailMessageIDTask and EmailMessageUIDTask.
type EmailMessageTask interface {
	validate() error
	emailMessageTask()
}

// EmailMessageIDTask identifies a message by message ID and optional mailbox.
type EmailMessageIDTask struct {
	MessageID   string `json:"messageId"`
	MailBox     string `json:"mailBox,omitempty"`
	Description string `json:"description,omitempty"`
}

func (EmailMessageIDTask) emailMessageTask() {}

func (t EmailMessageIDTask) validate() error {
	if t.MessageID == "" {
		return fmt.Errorf("email task needs a message ID")
	}
	return nil
}

// EmailMessageUIDTask identifies a message by its unique ID.
type EmailMessageUIDTask struct {
	UniqueID    string `json:"uniqueId"`
	Description string `json:"description,omitempty"`
}

func (EmailMessageUIDTask) emailMessageTask() {}

func (t EmailMessageUIDTask) validate() error {
	if t.UniqueID == "" {
		return fmt.Errorf("email task needs a unique ID")
	}
	return nil
}

// StatusResponse is the common shape of every pollable resource.
type StatusResponse struct {
	ID                 string `json:"id"`
	Status             Status `json:"status"`
	CreatedDateTime    string `json:"createdDateTime"`
	LastActionDateTime string `json:"lastActionDateTime"`
}

// TaskStatus returns the current status.
func (r *StatusResponse) TaskStatus() Status { return r.Status }

func (r *StatusResponse) validate() error {
	if r.ID == "" {
		return fmt.Errorf("missing id")
	}
	if r.Status == "" {
		return fmt.Errorf("missing status")
	}
	return nil
}

// BaseTaskResponse is the status of a response task.
type BaseTaskResponse struct {
	StatusResponse
	Action      TaskAction `json:"action"`
	Description string     `json:"description,omitempty"`
	Account     string     `json:"account,omitempty"`
}

// EndpointTaskResponse is the status of an isolate or restore task.
type EndpointTaskResponse struct {
	BaseTaskResponse
	AgentGUID    string `json:"agentGuid"`
	EndpointName string `json:"endpointName"`
}

// CollectFileTaskResponse is the status of a file collection task.
type CollectFileTaskResponse struct {
	BaseTaskResponse
	AgentGUID        string `json:"agentGuid"`
	EndpointName     string `json:"endpointName"`
	FilePath         string `json:"filePath,omitempty"`
	FileSHA1         string `json:"fileSha1,omitempty"`
	FileSHA256       string `json:"fileSha256,omitempty"`
	FileSize         int64  `json:"fileSize,omitempty"`
	ResourceLocation string `json:"resourceLocation,omitempty"`
	ExpiredDateTime  string `json:"expiredDateTime,omitempty"`
	Password         string `json:"password,omitempty"`
}

// TerminateProcessTaskResponse is the status of a process termination task.
type TerminateProcessTaskResponse struct {
	BaseTaskResponse
	AgentGUID    string `json:"agentGuid"`
	EndpointName string `json:"endpointName"`
	FileSHA1     string `json:"fileSha1"`
	FileName     string `json:"fileName,omitempty"`
}

// Account is the per-account state of an account task.
type Account struct {
	AccountName        string `json:"accountName"`
	IAM                Iam    `json:"iam"`
	LastActionDateTime string `json:"lastActionDateTime"`
	Status             Status `json:"status"`
}

// AccountTaskResponse is the status of an account task.
type AccountTaskResponse struct {
	BaseTaskResponse
	Tasks []Account `json:"tasks"`
}

// EmailMessage is the per-message state of an email task.
type EmailMessage struct {
	LastActionDateTime string `json:"lastActionDateTime"`
	MessageID          string `json:"messageId,omitempty"`
	MailBox            string `json:"mailBox,omitempty"`
	MessageSubject     string `json:"messageSubject,omitempty"`
	UniqueID           string `json:"uniqueId,omitempty"`
	OrganizationID     string `json:"organizationId,omitempty"`
	Status             Status `json:"status"`
}

// EmailMessageTaskResponse is the status of an email task.
type EmailMessageTaskResponse struct {
	BaseTaskResponse
	Tasks []EmailMessage `json:"tasks"`
}

// BlockListTaskResponse is the status of a block or restore-block task. The
// object value arrives under a key named after its type.
type BlockListTaskResponse struct {
	BaseTaskResponse
	Type  ObjectType `json:"-"`
	Value string     `json:"-"`
}

// UnmarshalJSON decodes the task fields and the keyed object value.
func (r *BlockListTaskResponse) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.BaseTaskResponse); err != nil {
		return err
	}
	var err error
	r.Type, r.Value, err = keyedObject(data)
	return err
}

// MarshalJSON writes the keyed object value next to the task fields.
func (r BlockListTaskResponse) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(r.BaseTaskResponse)
	if err != nil {
		return nil, err
	}
	return withKeyedObject(data, r.Type, r.Value)
}

// SandboxSubmitURLTaskResponse is the status of a URL submission task.
type SandboxSubmitURLTaskResponse struct {
	BaseTaskResponse
	URL           string `json:"url"`
	SandboxTaskID string `json:"sandboxTaskId"`
}

// CustomScriptTaskResponse is the status of a custom script task.
type CustomScriptTaskResponse struct {
	BaseTaskResponse
	FileName         string `json:"fileName"`
	AgentGUID        string `json:"agentGuid"`
	EndpointName     string `json:"endpointName"`
	Parameter        string `json:"parameter,omitempty"`
	ResourceLocation string `json:"resourceLocation,omitempty"`
	ExpiredDateTime  string `json:"expiredDateTime,omitempty"`
	Password         string `json:"password,omitempty"`
}

package tmv1

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ObjectTask adds or removes an object from a block, exception or suspicious
// list.
type ObjectTask struct {
	Type        ObjectType
	Value       string
	Description string
}

func (t ObjectTask) validate() error {
	if t.Type == "" || t.Value == "" {
		return fmt.Errorf("object task needs a type and a value")
	}
	return nil
}

// SuspiciousObjectTask adds an object to the suspicious list. Zero values
// are omitted and the server defaults apply.
type SuspiciousObjectTask struct {
	ObjectTask
	RiskLevel        RiskLevel
	ScanAction       ScanAction
	DaysToExpiration int
}

// ExceptionObject is an entry of the exception list.
type ExceptionObject struct {
	Type                 ObjectType `json:"type"`
	Value                string     `json:"-"`
	LastModifiedDateTime string     `json:"lastModifiedDateTime"`
	Description          string     `json:"description,omitempty"`
}

// UnmarshalJSON reads the value from the key named by the type field.
func (o *ExceptionObject) UnmarshalJSON(data []byte) error {
	type plain ExceptionObject
	if err := json.Unmarshal(data, (*plain)(o)); err != nil {
		return err
	}
	return typedValue(data, o.Type, &o.Value)
}

// MarshalJSON writes the value under the key named by the type.
func (o ExceptionObject) MarshalJSON() ([]byte, error) {
	type plain ExceptionObject
	data, err := json.Marshal(plain(o))
	if err != nil {
		return nil, err
	}
	return withKeyedObject(data, o.Type, o.Value)
}

// SuspiciousObject is an entry of the suspicious object list.
type SuspiciousObject struct {
	Type                 ObjectType `json:"type"`
	Value                string     `json:"-"`
	LastModifiedDateTime string     `json:"lastModifiedDateTime"`
	Description          string     `json:"description,omitempty"`
	ScanAction           ScanAction `json:"scanAction"`
	RiskLevel            RiskLevel  `json:"riskLevel"`
	InExceptionList      bool       `json:"inExceptionList"`
	ExpiredDateTime      string     `json:"expiredDateTime"`
}

// UnmarshalJSON reads the value from the key named by the type field.
func (o *SuspiciousObject) UnmarshalJSON(data []byte) error {
	type plain SuspiciousObject
	if err := json.Unmarshal(data, (*plain)(o)); err != nil {
		return err
	}
	return typedValue(data, o.Type, &o.Value)
}

// MarshalJSON writes the value under the key named by the type.
func (o SuspiciousObject) MarshalJSON() ([]byte, error) {
	type plain SuspiciousObject
	data, err := json.Marshal(plain(o))
	if err != nil {
		return nil, err
	}
	return withKeyedObject(data, o.Type, o.Value)
}

// SandboxSuspiciousObject is an object extracted by sandbox analysis.
type SandboxSuspiciousObject struct {
	Type                       ObjectType `json:"-"`
	Value                      string     `json:"-"`
	RiskLevel                  RiskLevel  `json:"riskLevel"`
	AnalysisCompletionDateTime string     `json:"analysisCompletionDateTime"`
	ExpiredDateTime            string     `json:"expiredDateTime"`
	RootSHA1                   string     `json:"rootSha1"`
}

// UnmarshalJSON takes the type and value from whichever object type key is
// present.
func (o *SandboxSuspiciousObject) UnmarshalJSON(data []byte) error {
	type plain SandboxSuspiciousObject
	if err := json.Unmarshal(data, (*plain)(o)); err != nil {
		return err
	}
	var err error
	o.Type, o.Value, err = keyedObject(data)
	return err
}

// MarshalJSON writes the value under the key named by the type.
func (o SandboxSuspiciousObject) MarshalJSON() ([]byte, error) {
	type plain SandboxSuspiciousObject
	data, err := json.Marshal(plain(o))
	if err != nil {
		return nil, err
	}
	return withKeyedObject(data, o.Type, o.Value)
}

// typedValue stores the string under key typ into dst.
func typedValue(data []byte, typ ObjectType, dst *string) error {
	if typ == "" {
		return fmt.Errorf("object is missing type")
	}
	r := gjson.GetBytes(data, string(typ))
	if !r.Exists() {
		return fmt.Errorf("object of type %s has no %q field", typ, typ)
	}
	*dst = r.String()
	return nil
}

// keyedObject returns the first object type key present in data.
func keyedObject(data []byte) (ObjectType, string, error) {
	for _, typ := range ObjectTypes {
		if r := gjson.GetBytes(data, string(typ)); r.Exists() {
			return typ, r.String(), nil
		}
	}
	return "", "", fmt.Errorf("object has no value field")
}

func withKeyedObject(data []byte, typ ObjectType, value string) ([]byte, error) {
	if typ == "" {
		return data, nil
	}
	return sjson.SetBytes(data, string(typ), value)
}

// Value is a single endpoint attribute with its last update time.
type Value struct {
	UpdatedDateTime string `json:"updatedDateTime"`
	Value           string `json:"value"`
}

// ValueList is a multi-valued endpoint attribute with its last update time.
type ValueList struct {
	UpdatedDateTime string   `json:"updatedDateTime"`
	Value           []string `json:"value"`
}

// Endpoint is an endpoint known to Vision One.
type Endpoint struct {
	AgentGUID             string          `json:"agentGuid"`
	LoginAccount          ValueList       `json:"loginAccount"`
	EndpointName          Value           `json:"endpointName"`
	MACAddress            ValueList       `json:"macAddress"`
	IP                    ValueList       `json:"ip"`
	OSName                OperatingSystem `json:"osName"`
	OSVersion             string          `json:"osVersion"`
	OSDescription         string          `json:"osDescription"`
	ProductCode           ProductCode     `json:"productCode"`
	InstalledProductCodes []ProductCode   `json:"installedProductCodes"`
}

// EndpointPage is one page of endpoint query results.
type EndpointPage struct {
	Page[Endpoint]
}

// ExceptionPage is one page of the exception list.
type ExceptionPage struct {
	Page[ExceptionObject]
}

// SuspiciousPage is one page of the suspicious object list.
type SuspiciousPage struct {
	Page[SuspiciousObject]
}

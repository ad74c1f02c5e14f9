package tmv1

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// HostInfo describes a host referenced by an entity or indicator.
type HostInfo struct {
	Name string   `json:"name"`
	IPs  []string `json:"ips"`
	GUID string   `json:"guid"`
}

// EntityValue is either plain text or a host description.
type EntityValue struct {
	Text string
	Host *HostInfo
}

// String returns the text value or the host name.
func (v EntityValue) String() string {
	if v.Host != nil {
		return v.Host.Name
	}
	return v.Text
}

// UnmarshalJSON accepts a JSON string or a host object.
func (v *EntityValue) UnmarshalJSON(data []byte) error {
	*v = EntityValue{}
	r := gjson.ParseBytes(data)
	switch {
	case r.IsObject():
		var host HostInfo
		if err := json.Unmarshal(data, &host); err != nil {
			return err
		}
		v.Host = &host
	case r.Type == gjson.Null:
	default:
		v.Text = r.String()
	}
	return nil
}

// MarshalJSON writes the host object or the text value.
func (v EntityValue) MarshalJSON() ([]byte, error) {
	if v.Host != nil {
		return json.Marshal(v.Host)
	}
	return json.Marshal(v.Text)
}

// Entity is a host, account or mailbox in the impact scope of an alert.
type Entity struct {
	EntityID            string      `json:"entityId"`
	EntityType          EntityType  `json:"entityType"`
	EntityValue         EntityValue `json:"entityValue"`
	RelatedEntities     []string    `json:"relatedEntities"`
	RelatedIndicatorIDs []int       `json:"relatedIndicatorIds"`
	Provenance          []string    `json:"provenance"`
}

// ImpactScope summarizes what an alert affects.
type ImpactScope struct {
	DesktopCount      int      `json:"desktopCount"`
	ServerCount       int      `json:"serverCount"`
	AccountCount      int      `json:"accountCount"`
	EmailAddressCount int      `json:"emailAddressCount"`
	Entities          []Entity `json:"entities"`
}

// Indicator is an observable attached to an alert. The provider-specific
// fields are empty for the other provider.
type Indicator struct {
	ID              int         `json:"id"`
	Type            string      `json:"type"`
	Value           EntityValue `json:"value"`
	RelatedEntities []string    `json:"relatedEntities"`
	Provenance      []string    `json:"provenance"`

	Field     string   `json:"field,omitempty"`
	FilterIDs []string `json:"filterIds,omitempty"`

	Fields                     [][]string `json:"fields,omitempty"`
	MatchedIndicatorPatternIDs []string   `json:"matchedIndicatorPatternIds,omitempty"`
	FirstSeenDateTimes         []string   `json:"firstSeenDateTimes,omitempty"`
	LastSeenDateTimes          []string   `json:"lastSeenDateTimes,omitempty"`
}

// AlertCommon holds the fields shared by every alert provider.
type AlertCommon struct {
	ID                  string              `json:"id"`
	SchemaVersion       string              `json:"schemaVersion"`
	InvestigationStatus InvestigationStatus `json:"investigationStatus"`
	WorkbenchLink       string              `json:"workbenchLink"`
	AlertProvider       Provider            `json:"alertProvider"`
	Model               string              `json:"model"`
	Score               int                 `json:"score"`
	Severity            Severity            `json:"severity"`
	ImpactScope         ImpactScope         `json:"impactScope"`
	CreatedDateTime     string              `json:"createdDateTime"`
	UpdatedDateTime     string              `json:"updatedDateTime,omitempty"`
	Indicators          []Indicator         `json:"indicators"`
}

// MatchedEvent is an event that matched an SAE filter.
type MatchedEvent struct {
	UUID            string `json:"uuid"`
	MatchedDateTime string `json:"matchedDateTime"`
	Type            string `json:"type"`
}

// MatchedFilter is a detection filter that fired for an SAE alert.
type MatchedFilter struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	MatchedDateTime   string         `json:"matchedDateTime"`
	MitreTechniqueIDs []string       `json:"mitreTechniqueIds"`
	MatchedEvents     []MatchedEvent `json:"matchedEvents"`
}

// MatchedRule is a detection model rule that fired for an SAE alert.
type MatchedRule struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	MatchedFilters []MatchedFilter `json:"matchedFilters"`
}

// SAEAlert is an alert raised by the Security Analytics Engine.
type SAEAlert struct {
	AlertCommon
	Description  string        `json:"description"`
	MatchedRules []MatchedRule `json:"matchedRules"`
}

// MatchedIndicatorPattern is a threat intelligence pattern that matched.
type MatchedIndicatorPattern struct {
	ID          string   `json:"id"`
	Pattern     string   `json:"pattern"`
	Tags        []string `json:"tags"`
	MatchedLogs []string `json:"matchedLogs"`
}

// TIAlert is an alert raised by threat intelligence sweeping.
type TIAlert struct {
	AlertCommon
	Campaign                 string                    `json:"campaign,omitempty"`
	Industry                 string                    `json:"industry,omitempty"`
	RegionAndCountry         string                    `json:"regionAndCountry,omitempty"`
	CreatedBy                string                    `json:"createdBy"`
	TotalIndicatorCount      int                       `json:"totalIndicatorCount"`
	MatchedIndicatorCount    int                       `json:"matchedIndicatorCount"`
	ReportLink               string                    `json:"reportLink"`
	MatchedIndicatorPatterns []MatchedIndicatorPattern `json:"matchedIndicatorPatterns"`
}

// Alert is a workbench alert. Exactly one of SAE and TI is set, selected by
// the alertProvider field.
type Alert struct {
	Provider Provider
	SAE      *SAEAlert
	TI       *TIAlert
}

// Common returns the provider-independent part of the alert.
func (a *Alert) Common() *AlertCommon {
	switch {
	case a.SAE != nil:
		return &a.SAE.AlertCommon
	case a.TI != nil:
		return &a.TI.AlertCommon
	}
	return &AlertCommon{}
}

// UnmarshalJSON decodes an SAE alert when alertProvider is "SAE" and a TI
// alert otherwise.
func (a *Alert) UnmarshalJSON(data []byte) error {
	*a = Alert{}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid alert document")
	}
	if Provider(gjson.GetBytes(data, "alertProvider").String()) == ProviderSAE {
		var sae SAEAlert
		if err := json.Unmarshal(data, &sae); err != nil {
			return err
		}
		a.Provider, a.SAE = ProviderSAE, &sae
		return nil
	}
	var ti TIAlert
	if err := json.Unmarshal(data, &ti); err != nil {
		return err
	}
	a.Provider, a.TI = ProviderTI, &ti
	return nil
}

// MarshalJSON writes the provider-specific alert.
func (a Alert) MarshalJSON() ([]byte, error) {
	switch {
	case a.SAE != nil:
		return json.Marshal(a.SAE)
	case a.TI != nil:
		return json.Marshal(a.TI)
	}
	return []byte("null"), nil
}

func (a *Alert) validate() error {
	if a.SAE == nil && a.TI == nil {
		return fmt.Errorf("alert has no provider payload")
	}
	if a.Common().ID == "" {
		return fmt.Errorf("alert is missing id")
	}
	return nil
}

// AlertDetails is a single alert together with its entity tag.
type AlertDetails struct {
	Alert Alert
	// ETag is the entity tag to pass as If-Match when updating the alert.
	ETag string
}

// AddAlertNoteResponse is returned when a note is created.
type AddAlertNoteResponse struct {
	Location string
}

// NoteID returns the identifier of the created note, the last segment of
// the location.
func (r *AddAlertNoteResponse) NoteID() string {
	return lastSegment(r.Location)
}

// AlertPage is one page of the workbench alert list.
type AlertPage struct {
	Page[Alert]
	TotalCount int `json:"totalCount"`
	Count      int `json:"count"`
}

func (p *AlertPage) validate() error {
	for i := range p.Items {
		if err := p.Items[i].validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

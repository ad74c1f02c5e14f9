package tmv1

// Digest holds the hashes of a submitted object.
type Digest struct {
	MD5    string `json:"md5"`
	SHA1   string `json:"sha1"`
	SHA256 string `json:"sha256"`
}

// SubmitFileResponse is returned when a file is accepted for analysis.
type SubmitFileResponse struct {
	ID        string `json:"id"`
	Digest    Digest `json:"digest"`
	Arguments string `json:"arguments,omitempty"`
}

func (r *SubmitFileResponse) validate() error {
	if r.ID == "" {
		return errMissingID
	}
	return nil
}

// SandboxSubmissionStatus is the progress of a sandbox analysis.
type SandboxSubmissionStatus struct {
	StatusResponse
	Action           SandboxAction `json:"action"`
	ResourceLocation string        `json:"resourceLocation,omitempty"`
	IsCached         *bool         `json:"isCached,omitempty"`
	Digest           *Digest       `json:"digest,omitempty"`
	Arguments        string        `json:"arguments,omitempty"`
}

// SandboxAnalysisResult is the verdict of a completed sandbox analysis.
type SandboxAnalysisResult struct {
	ID                         string            `json:"id"`
	Type                       SandboxObjectType `json:"type"`
	AnalysisCompletionDateTime string            `json:"analysisCompletionDateTime"`
	RiskLevel                  RiskLevel         `json:"riskLevel"`
	TrueFileType               string            `json:"trueFileType,omitempty"`
	Digest                     *Digest           `json:"digest,omitempty"`
	Arguments                  string            `json:"arguments,omitempty"`
	DetectionNames             []string          `json:"detectionNames,omitempty"`
	ThreatTypes                []string          `json:"threatTypes,omitempty"`
}

func (r *SandboxAnalysisResult) validate() error {
	if r.ID == "" {
		return errMissingID
	}
	return nil
}

// SandboxSuspiciousList holds the objects extracted by an analysis.
type SandboxSuspiciousList struct {
	Items []SandboxSuspiciousObject `json:"items"`
}

// SandboxFile is a file to submit for analysis. Passwords and arguments are
// optional.
type SandboxFile struct {
	Name             string
	Content          []byte
	DocumentPassword string
	ArchivePassword  string
	Arguments        string
}

package tmv1

// Status is the lifecycle state of an asynchronous task.
type Status string

const (
	StatusQueued          Status = "queued"
	StatusRunning         Status = "running"
	StatusSucceeded       Status = "succeeded"
	StatusFailed          Status = "failed"
	StatusRejected        Status = "rejected"
	StatusWaitForApproval Status = "waitForApproval"
)

// Pending reports whether the task has not reached a final state yet.
func (s Status) Pending() bool {
	return s == StatusQueued || s == StatusRunning
}

// InvestigationStatus is the triage state of a workbench alert.
type InvestigationStatus string

const (
	InvestigationBenignTruePositive InvestigationStatus = "Benign True Positive"
	InvestigationClosed             InvestigationStatus = "Closed"
	InvestigationFalsePositive      InvestigationStatus = "False Positive"
	InvestigationInProgress         InvestigationStatus = "In Progress"
	InvestigationNew                InvestigationStatus = "New"
	InvestigationTruePositive       InvestigationStatus = "True Positive"
)

// Provider identifies the detection engine that raised an alert.
type Provider string

const (
	ProviderSAE Provider = "SAE"
	ProviderTI  Provider = "TI"
)

// Severity of an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// ObjectType is the kind of a suspicious or exception object. The value
// doubles as the JSON key carrying the object value.
type ObjectType string

const (
	ObjectIP                ObjectType = "ip"
	ObjectURL               ObjectType = "url"
	ObjectDomain            ObjectType = "domain"
	ObjectFileSHA1          ObjectType = "fileSha1"
	ObjectFileSHA256        ObjectType = "fileSha256"
	ObjectSenderMailAddress ObjectType = "senderMailAddress"
)

// ObjectTypes lists every object type in lookup order.
var ObjectTypes = []ObjectType{
	ObjectIP,
	ObjectURL,
	ObjectDomain,
	ObjectFileSHA1,
	ObjectFileSHA256,
	ObjectSenderMailAddress,
}

// RiskLevel of a suspicious object or sandbox verdict.
type RiskLevel string

const (
	RiskNoRisk RiskLevel = "noRisk"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ScanAction applied to a suspicious object.
type ScanAction string

const (
	ScanBlock ScanAction = "block"
	ScanLog   ScanAction = "log"
)

// OperatingSystem reported for an endpoint.
type OperatingSystem string

const (
	OSLinux   OperatingSystem = "Linux"
	OSWindows OperatingSystem = "Windows"
	OSMacOS   OperatingSystem = "macOS"
	OSMacOSX  OperatingSystem = "macOSX"
)

// ProductCode of an installed Trend Micro agent.
type ProductCode string

const (
	ProductSAO ProductCode = "sao"
	ProductSDS ProductCode = "sds"
	ProductXES ProductCode = "xes"
)

// QueryField names a field usable in an endpoint filter.
type QueryField string

const (
	FieldAgentGUID             QueryField = "agentGuid"
	FieldLoginAccount          QueryField = "loginAccount"
	FieldEndpointName          QueryField = "endpointName"
	FieldMACAddress            QueryField = "macAddress"
	FieldIP                    QueryField = "ip"
	FieldOSName                QueryField = "osName"
	FieldProductCode           QueryField = "productCode"
	FieldInstalledProductCodes QueryField = "installedProductCodes"
)

// QueryOp joins filter clauses.
type QueryOp string

const (
	QueryAnd QueryOp = " and "
	QueryOr  QueryOp = " or "
)

// SandboxAction performed by a sandbox task.
type SandboxAction string

const (
	SandboxAnalyzeFile SandboxAction = "analyzeFile"
	SandboxAnalyzeURL  SandboxAction = "analyzeUrl"
)

// SandboxObjectType is the kind of object submitted to the sandbox.
type SandboxObjectType string

const (
	SandboxObjectURL  SandboxObjectType = "url"
	SandboxObjectFile SandboxObjectType = "file"
)

// SearchMode selects between full search results and a count only.
type SearchMode string

const (
	SearchDefault   SearchMode = "default"
	SearchCountOnly SearchMode = "countOnly"
)

// TaskAction is the response action a task performs.
type TaskAction string

const (
	ActionCollectFile       TaskAction = "collectFile"
	ActionIsolate           TaskAction = "isolate"
	ActionRestoreIsolate    TaskAction = "restoreIsolate"
	ActionTerminateProcess  TaskAction = "terminateProcess"
	ActionQuarantineMessage TaskAction = "quarantineMessage"
	ActionDeleteMessage     TaskAction = "deleteMessage"
	ActionRestoreMessage    TaskAction = "restoreMessage"
	ActionBlock             TaskAction = "block"
	ActionRestoreBlock      TaskAction = "restoreBlock"
	ActionResetPassword     TaskAction = "resetPassword"
	ActionSubmitSandbox     TaskAction = "submitSandbox"
	ActionEnableAccount     TaskAction = "enableAccount"
	ActionDisableAccount    TaskAction = "disableAccount"
	ActionForceSignOut      TaskAction = "forceSignOut"
)

// Iam is the identity provider of a domain account.
type Iam string

const (
	IamAAD  Iam = "AAD"
	IamOPAD Iam = "OPAD"
)

// EntityType of an alert impact scope entity.
type EntityType string

const (
	EntityHost         EntityType = "host"
	EntityAccount      EntityType = "account"
	EntityEmailAddress EntityType = "emailAddress"
)

// IntegrityLevel of a process in endpoint activity records.
type IntegrityLevel int

const (
	IntegrityUntrusted IntegrityLevel = 0
	IntegrityLow       IntegrityLevel = 4096
	IntegrityMedium    IntegrityLevel = 8192
	IntegrityHigh      IntegrityLevel = 12288
	IntegritySystem    IntegrityLevel = 16384
)

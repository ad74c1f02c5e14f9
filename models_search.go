package tmv1

// EndpointActivity is an endpoint telemetry record.
type EndpointActivity struct {
	DPT                     int            `json:"dpt,omitempty"`
	DST                     string         `json:"dst,omitempty"`
	EndpointGUID            string         `json:"endpointGuid"`
	EndpointHostName        string         `json:"endpointHostName"`
	EndpointIP              []string       `json:"endpointIp"`
	EventID                 string         `json:"eventId"`
	EventSubID              int            `json:"eventSubId"`
	ObjectIntegrityLevel    IntegrityLevel `json:"objectIntegrityLevel,omitempty"`
	ObjectTrueType          int            `json:"objectTrueType,omitempty"`
	ObjectSubTrueType       int            `json:"objectSubTrueType,omitempty"`
	WinEventID              int            `json:"winEventId,omitempty"`
	EventTime               int64          `json:"eventTime"`
	EventTimeDT             string         `json:"eventTimeDT"`
	HostName                string         `json:"hostName,omitempty"`
	LogonUser               []string       `json:"logonUser,omitempty"`
	ObjectCmd               string         `json:"objectCmd,omitempty"`
	ObjectFileHashSHA1      string         `json:"objectFileHashSha1,omitempty"`
	ObjectFilePath          string         `json:"objectFilePath,omitempty"`
	ObjectHostName          string         `json:"objectHostName,omitempty"`
	ObjectIP                string         `json:"objectIp,omitempty"`
	ObjectIPs               []string       `json:"objectIps,omitempty"`
	ObjectPort              int            `json:"objectPort,omitempty"`
	ObjectRegistryData      string         `json:"objectRegistryData,omitempty"`
	ObjectRegistryKeyHandle string         `json:"objectRegistryKeyHandle,omitempty"`
	ObjectRegistryValue     string         `json:"objectRegistryValue,omitempty"`
	ObjectSigner            []string       `json:"objectSigner,omitempty"`
	ObjectSignerValid       []bool         `json:"objectSignerValid,omitempty"`
	ObjectUser              string         `json:"objectUser,omitempty"`
	OS                      string         `json:"os,omitempty"`
	ParentCmd               string         `json:"parentCmd,omitempty"`
	ParentFileHashSHA1      string         `json:"parentFileHashSha1,omitempty"`
	ParentFilePath          string         `json:"parentFilePath,omitempty"`
	ProcessCmd              string         `json:"processCmd,omitempty"`
	ProcessFileHashSHA1     string         `json:"processFileHashSha1,omitempty"`
	ProcessFilePath         string         `json:"processFilePath,omitempty"`
	Request                 string         `json:"request,omitempty"`
	SearchDL                string         `json:"searchDL,omitempty"`
	SPT                     int            `json:"spt,omitempty"`
	SRC                     string         `json:"src,omitempty"`
	SrcFileHashSHA1         string         `json:"srcFileHashSha1,omitempty"`
	SrcFilePath             string         `json:"srcFilePath,omitempty"`
	Tags                    []string       `json:"tags,omitempty"`
	UUID                    string         `json:"uuid"`
}

// EmailActivity is an email telemetry record.
type EmailActivity struct {
	MailMsgSubject      string   `json:"mailMsgSubject"`
	MailMsgID           string   `json:"mailMsgId"`
	MsgUUID             string   `json:"msgUuid"`
	Mailbox             string   `json:"mailbox"`
	MailSenderIP        string   `json:"mailSenderIp,omitempty"`
	MailFromAddresses   []string `json:"mailFromAddresses"`
	MailWholeHeader     []string `json:"mailWholeHeader,omitempty"`
	MailToAddresses     []string `json:"mailToAddresses"`
	MailSourceDomain    string   `json:"mailSourceDomain,omitempty"`
	SearchDL            string   `json:"searchDL,omitempty"`
	ScanType            string   `json:"scanType,omitempty"`
	EventTime           int64    `json:"eventTime"`
	OrgID               string   `json:"orgId,omitempty"`
	MailURLsVisibleLink []string `json:"mailUrlsVisibleLink,omitempty"`
	MailURLsRealLink    []string `json:"mailUrlsRealLink,omitempty"`
}

// EndpointActivityPage is one page of endpoint activity results.
type EndpointActivityPage struct {
	Page[EndpointActivity]
	ProgressRate int `json:"progressRate"`
}

// EmailActivityPage is one page of email activity results.
type EmailActivityPage struct {
	Page[EmailActivity]
	ProgressRate int `json:"progressRate"`
}

// ActivityCount is the result of a count-only activity search.
type ActivityCount struct {
	TotalCount int `json:"totalCount"`
}

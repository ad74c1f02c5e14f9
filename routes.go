package tmv1

import (
	"fmt"
	"net/url"
)

// API paths, relative to the versioned base URL.
const (
	routeAddAlertNote             = "/workbench/alerts/%s/notes"
	routeAddToBlockList           = "/response/suspiciousObjects"
	routeAddToExceptionList       = "/threatintel/suspiciousObjectExceptions"
	routeAddToSuspiciousList      = "/threatintel/suspiciousObjects"
	routeCollectEndpointFile      = "/response/endpoints/collectFile"
	routeConnectivity             = "/healthcheck/connectivity"
	routeDeleteEmailMessage       = "/response/emails/delete"
	routeDisableAccount           = "/response/domainAccounts/disable"
	routeDownloadSandboxReport    = "/sandbox/analysisResults/%s/report"
	routeDownloadSandboxPackage   = "/sandbox/analysisResults/%s/investigationPackage"
	routeAlert                    = "/workbench/alerts/%s"
	routeEnableAccount            = "/response/domainAccounts/enable"
	routeIsolateEndpoint          = "/response/endpoints/isolate"
	routeAlertList                = "/workbench/alerts"
	routeEmailActivities          = "/search/emailActivities"
	routeEndpointActivities       = "/search/endpointActivities"
	routeEndpointData             = "/eiqs/endpoints"
	routeExceptionList            = "/threatintel/suspiciousObjectExceptions"
	routeSandboxSubmissionStatus  = "/sandbox/tasks/%s"
	routeSandboxAnalysisResult    = "/sandbox/analysisResults/%s"
	routeSandboxSuspiciousList    = "/sandbox/analysisResults/%s/suspiciousObjects"
	routeSuspiciousList           = "/threatintel/suspiciousObjects"
	routeTaskResult               = "/response/tasks/%s"
	routeQuarantineEmailMessage   = "/response/emails/quarantine"
	routeRemoveFromBlockList      = "/response/suspiciousObjects/delete"
	routeRemoveFromExceptionList  = "/threatintel/suspiciousObjectExceptions/delete"
	routeRemoveFromSuspiciousList = "/threatintel/suspiciousObjects/delete"
	routeResetPassword            = "/response/domainAccounts/resetPassword"
	routeRestoreEmailMessage      = "/response/emails/restore"
	routeRestoreEndpoint          = "/response/endpoints/restore"
	routeSignOutAccount           = "/response/domainAccounts/signOut"
	routeSubmitFileToSandbox      = "/sandbox/files/analyze"
	routeSubmitURLsToSandbox      = "/sandbox/urls/analyze"
	routeTerminateEndpointProcess = "/response/endpoints/terminateProcess"
)

// route fills the identifier placeholder of a path template, escaping the
// identifier as a single path segment.
func route(template, id string) string {
	return fmt.Sprintf(template, url.PathEscape(id))
}

// requireID rejects identifiers that would not survive as a path segment.
func requireID(name, id string) error {
	switch id {
	case "":
		return &ValidationError{Message: name + " must not be empty"}
	case ".", "..":
		return &ValidationError{Message: fmt.Sprintf("invalid %s %q", name, id)}
	}
	return nil
}

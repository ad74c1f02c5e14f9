package tmv1

import (
	"context"
	"net/http"

	"github.com/tphakala/go-tmv1/internal/api"
)

// SandboxService submits files and URLs for sandbox analysis and retrieves
// the results.
//
// Result lookups wait for the submission to finish first, see WithPoll and
// WithPollTimeout.
type SandboxService interface {
	// SubmitFile uploads a file for analysis.
	SubmitFile(ctx context.Context, file SandboxFile, opts ...RequestOption) Result[*SubmitFileResponse]

	// SubmitURLs submits URLs for analysis, one result item per URL.
	SubmitURLs(ctx context.Context, urls []string, opts ...RequestOption) MultiResult[*MultiURLResponse]

	// SubmissionStatus returns the current status of a submission.
	SubmissionStatus(ctx context.Context, submitID string, opts ...RequestOption) Result[*SandboxSubmissionStatus]

	// AnalysisResult returns the analysis verdict of a submission.
	AnalysisResult(ctx context.Context, submitID string, opts ...RequestOption) Result[*SandboxAnalysisResult]

	// SuspiciousObjects returns the objects extracted by the analysis.
	SuspiciousObjects(ctx context.Context, submitID string, opts ...RequestOption) Result[*SandboxSuspiciousList]

	// DownloadReport downloads the PDF analysis report.
	DownloadReport(ctx context.Context, submitID string, opts ...RequestOption) Result[*BytesResponse]

	// DownloadInvestigationPackage downloads the zipped investigation package.
	DownloadInvestigationPackage(ctx context.Context, submitID string, opts ...RequestOption) Result[*BytesResponse]
}

type sandboxService struct {
	core *core
}

func (s *sandboxService) SubmitFile(ctx context.Context, file SandboxFile, opts ...RequestOption) Result[*SubmitFileResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Sandbox.SubmitFile", func() (*SubmitFileResponse, error) {
		if file.Name == "" {
			return nil, &ValidationError{Message: "file name must not be empty"}
		}
		req := &api.Request{
			Method: http.MethodPost,
			Path:   routeSubmitFileToSandbox,
			Form:   sandboxFileForm(file),
			File: &api.FormFile{
				Field:       "file",
				Name:        file.Name,
				Content:     file.Content,
				ContentType: "application/octet-stream",
			},
			Headers: cfg.mergeHeaders(nil),
		}
		return send[SubmitFileResponse](ctx, s.core, req)
	})
}

func (s *sandboxService) SubmitURLs(ctx context.Context, urls []string, opts ...RequestOption) MultiResult[*MultiURLResponse] {
	cfg := newRequestConfig().apply(opts...)
	return newMultiResult(s.core.logger, "Sandbox.SubmitURLs", func() (*MultiURLResponse, error) {
		body, err := urlPayload(urls)
		if err != nil {
			return nil, err
		}
		return send[MultiURLResponse](ctx, s.core, s.core.post(routeSubmitURLsToSandbox, body, cfg))
	})
}

func (s *sandboxService) SubmissionStatus(ctx context.Context, submitID string, opts ...RequestOption) Result[*SandboxSubmissionStatus] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, "Sandbox.SubmissionStatus", func() (*SandboxSubmissionStatus, error) {
		if err := requireID("submission ID", submitID); err != nil {
			return nil, err
		}
		return s.status(ctx, submitID, cfg)
	})
}

func (s *sandboxService) status(ctx context.Context, submitID string, cfg *requestConfig) (*SandboxSubmissionStatus, error) {
	return send[SandboxSubmissionStatus](ctx, s.core, s.core.get(route(routeSandboxSubmissionStatus, submitID), cfg))
}

func (s *sandboxService) AnalysisResult(ctx context.Context, submitID string, opts ...RequestOption) Result[*SandboxAnalysisResult] {
	return sandboxResult[SandboxAnalysisResult](ctx, s, "Sandbox.AnalysisResult", routeSandboxAnalysisResult, submitID, opts)
}

func (s *sandboxService) SuspiciousObjects(ctx context.Context, submitID string, opts ...RequestOption) Result[*SandboxSuspiciousList] {
	return sandboxResult[SandboxSuspiciousList](ctx, s, "Sandbox.SuspiciousObjects", routeSandboxSuspiciousList, submitID, opts)
}

func (s *sandboxService) DownloadReport(ctx context.Context, submitID string, opts ...RequestOption) Result[*BytesResponse] {
	return sandboxResult[BytesResponse](ctx, s, "Sandbox.DownloadReport", routeDownloadSandboxReport, submitID, opts)
}

func (s *sandboxService) DownloadInvestigationPackage(ctx context.Context, submitID string, opts ...RequestOption) Result[*BytesResponse] {
	return sandboxResult[BytesResponse](ctx, s, "Sandbox.DownloadInvestigationPackage", routeDownloadSandboxPackage, submitID, opts)
}

// sandboxResult waits for the submission to leave queued/running, unless
// polling is disabled, then fetches template for it.
func sandboxResult[T any](ctx context.Context, s *sandboxService, op, template, submitID string, opts []RequestOption) Result[*T] {
	cfg := newRequestConfig().apply(opts...)
	return newResult(s.core.logger, op, func() (*T, error) {
		if err := requireID("submission ID", submitID); err != nil {
			return nil, err
		}
		if cfg.poll {
			_, err := pollStatus(ctx, s.core.logger, cfg.pollTimeout, func(ctx context.Context) (*SandboxSubmissionStatus, error) {
				return s.status(ctx, submitID, cfg)
			})
			if err != nil {
				return nil, err
			}
		}
		return send[T](ctx, s.core, s.core.get(route(template, submitID), cfg))
	})
}

package tmv1

import "context"

// EmailService provides response actions on email messages. Messages are
// identified by EmailMessageIDTask or EmailMessageUIDTask values; both may
// be mixed in one call.
type EmailService interface {
	Delete(ctx context.Context, tasks []EmailMessageTask, opts ...RequestOption) MultiResult[*MultiResponse]
	Quarantine(ctx context.Context, tasks []EmailMessageTask, opts ...RequestOption) MultiResult[*MultiResponse]
	// Restore moves quarantined or deleted messages back to their mailbox.
	Restore(ctx context.Context, tasks []EmailMessageTask, opts ...RequestOption) MultiResult[*MultiResponse]
}

type emailService struct {
	core *core
}

func (s *emailService) Delete(ctx context.Context, tasks []EmailMessageTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Emails.Delete", routeDeleteEmailMessage, tasks, newRequestConfig().apply(opts...))
}

func (s *emailService) Quarantine(ctx context.Context, tasks []EmailMessageTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Emails.Quarantine", routeQuarantineEmailMessage, tasks, newRequestConfig().apply(opts...))
}

func (s *emailService) Restore(ctx context.Context, tasks []EmailMessageTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Emails.Restore", routeRestoreEmailMessage, tasks, newRequestConfig().apply(opts...))
}

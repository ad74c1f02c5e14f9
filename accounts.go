package tmv1

import "context"

// AccountService provides response actions on domain accounts.
type AccountService interface {
	Disable(ctx context.Context, tasks []AccountTask, opts ...RequestOption) MultiResult[*MultiResponse]
	Enable(ctx context.Context, tasks []AccountTask, opts ...RequestOption) MultiResult[*MultiResponse]
	ResetPassword(ctx context.Context, tasks []AccountTask, opts ...RequestOption) MultiResult[*MultiResponse]
	// SignOut signs accounts out of all active sessions.
	SignOut(ctx context.Context, tasks []AccountTask, opts ...RequestOption) MultiResult[*MultiResponse]
}

type accountService struct {
	core *core
}

func (s *accountService) Disable(ctx context.Context, tasks []AccountTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Accounts.Disable", routeDisableAccount, tasks, newRequestConfig().apply(opts...))
}

func (s *accountService) Enable(ctx context.Context, tasks []AccountTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Accounts.Enable", routeEnableAccount, tasks, newRequestConfig().apply(opts...))
}

func (s *accountService) ResetPassword(ctx context.Context, tasks []AccountTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Accounts.ResetPassword", routeResetPassword, tasks, newRequestConfig().apply(opts...))
}

func (s *accountService) SignOut(ctx context.Context, tasks []AccountTask, opts ...RequestOption) MultiResult[*MultiResponse] {
	return sendTasks(ctx, s.core, "Accounts.SignOut", routeSignOutAccount, tasks, newRequestConfig().apply(opts...))
}

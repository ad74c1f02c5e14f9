package tmv1_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-tmv1"
)

func TestAccountService(t *testing.T) {
	tasks := []tmv1.AccountTask{{AccountName: "TM\\user", Description: "compromised"}}
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		call func(*tmv1.Client) tmv1.MultiResult[*tmv1.MultiResponse]
	}{
		{"Disable", "/v3.0/response/domainAccounts/disable", func(c *tmv1.Client) tmv1.MultiResult[*tmv1.MultiResponse] {
			return c.Accounts.Disable(ctx, tasks)
		}},
		{"Enable", "/v3.0/response/domainAccounts/enable", func(c *tmv1.Client) tmv1.MultiResult[*tmv1.MultiResponse] {
			return c.Accounts.Enable(ctx, tasks)
		}},
		{"ResetPassword", "/v3.0/response/domainAccounts/resetPassword", func(c *tmv1.Client) tmv1.MultiResult[*tmv1.MultiResponse] {
			return c.Accounts.ResetPassword(ctx, tasks)
		}},
		{"SignOut", "/v3.0/response/domainAccounts/signOut", func(c *tmv1.Client) tmv1.MultiResult[*tmv1.MultiResponse] {
			return c.Accounts.SignOut(ctx, tasks)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.JSONEq(t, `[{"accountName":"TM\\user","description":"compromised"}]`, string(body))
				writeJSON(t, w, http.StatusMultiStatus, multiStatus(r.Host, "00000009"))
			})

			res := tt.call(client)
			require.True(t, res.OK(), "unexpected errors: %v", res.Errors)
			assert.Equal(t, "00000009", res.Response.Items[0].TaskID)
		})
	}

	t.Run("missing account name", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})
		res := client.Accounts.Disable(ctx, []tmv1.AccountTask{{Description: "x"}})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "ValidationError", res.Errors[0].Code)
	})
}

func TestEmailService(t *testing.T) {
	ctx := context.Background()
	tasks := []tmv1.EmailMessageTask{
		tmv1.EmailMessageIDTask{MessageID: "<msg@example.com>", MailBox: "user@example.com"},
		tmv1.EmailMessageUIDTask{UniqueID: "AAMkAGU", Description: "spam"},
	}
	const wantBody = `[
		{"messageId":"<msg@example.com>","mailBox":"user@example.com"},
		{"uniqueId":"AAMkAGU","description":"spam"}
	]`

	tests := []struct {
		name string
		path string
		call func(*tmv1.Client) tmv1.MultiResult[*tmv1.MultiResponse]
	}{
		{"Delete", "/v3.0/response/emails/delete", func(c *tmv1.Client) tmv1.MultiResult[*tmv1.MultiResponse] {
			return c.Emails.Delete(ctx, tasks)
		}},
		{"Quarantine", "/v3.0/response/emails/quarantine", func(c *tmv1.Client) tmv1.MultiResult[*tmv1.MultiResponse] {
			return c.Emails.Quarantine(ctx, tasks)
		}},
		{"Restore", "/v3.0/response/emails/restore", func(c *tmv1.Client) tmv1.MultiResult[*tmv1.MultiResponse] {
			return c.Emails.Restore(ctx, tasks)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.path, r.URL.Path)
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.JSONEq(t, wantBody, string(body))
				writeJSON(t, w, http.StatusMultiStatus, multiStatus(r.Host, "1", "2"))
			})

			res := tt.call(client)
			require.True(t, res.OK(), "unexpected errors: %v", res.Errors)
			assert.Len(t, res.Response.Items, 2)
		})
	}

	t.Run("nil task is rejected", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		res := client.Emails.Delete(ctx, []tmv1.EmailMessageTask{nil})
		assert.Equal(t, tmv1.ResultError, res.ResultCode)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "ValidationError", res.Errors[0].Code)
	})

	t.Run("missing message id", func(t *testing.T) {
		client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})
		res := client.Emails.Delete(ctx, []tmv1.EmailMessageTask{tmv1.EmailMessageIDTask{MailBox: "a@b"}})
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "ValidationError", res.Errors[0].Code)
	})
}

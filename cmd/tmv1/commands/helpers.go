// Package commands implements the tmv1 command tree.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/go-tmv1"
)

// Output formats.
const (
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"
)

// EnvKeyReplacer maps flag names to environment names: app-name is read
// from TMV1_APP_NAME.
var EnvKeyReplacer = strings.NewReplacer("-", "_")

var (
	ErrNoURL   = errors.New("API URL is required, set --url or TMV1_URL")
	ErrNoToken = errors.New("API token is required, set --token or TMV1_TOKEN")
)

// newClient builds a client from the viper configuration.
func newClient() (*tmv1.Client, error) {
	url := viper.GetString("url")
	if url == "" {
		return nil, ErrNoURL
	}
	token, err := apiToken()
	if err != nil {
		return nil, err
	}

	opts := []tmv1.ClientOption{
		tmv1.WithAppName(viper.GetString("app-name")),
		tmv1.WithToken(token),
		tmv1.WithBaseURL(url),
	}
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		opts = append(opts, tmv1.WithConnectTimeout(timeout), tmv1.WithReadTimeout(timeout))
	}
	if viper.GetBool("verbose") {
		opts = append(opts, tmv1.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	return tmv1.NewClient(opts...)
}

// apiToken returns the configured token, prompting for it when stdin is a
// terminal.
func apiToken() (string, error) {
	if token := viper.GetString("token"); token != "" {
		return token, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoToken
	}

	fmt.Fprint(os.Stderr, "API token: ")
	tokenBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if token := strings.TrimSpace(string(tokenBytes)); token != "" {
		return token, nil
	}
	return "", ErrNoToken
}

// resultError converts a failed result into a CLI error.
func resultError(detail *tmv1.ErrorDetail) error {
	if detail == nil {
		return nil
	}
	return fmt.Errorf("%s (status %d): %s", detail.Code, detail.Status, detail.Message)
}

// multiResultError reports every failed item of a batch result.
func multiResultError(details []tmv1.ErrorDetail) error {
	var errs []error
	for i, d := range details {
		if d.Status >= 200 && d.Status < 399 {
			continue
		}
		errs = append(errs, fmt.Errorf("item %d: %w", i, resultError(&d)))
	}
	return errors.Join(errs...)
}

// tableFunc fills a table for the table output format.
type tableFunc func(table *tablewriter.Table) error

// render writes v in the configured output format. Table output is produced
// by fill.
func render(w io.Writer, v any, fill tableFunc) error {
	switch format := viper.GetString("output"); format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case OutputFormatYAML:
		doc, err := yamlDocument(v)
		if err != nil {
			return err
		}
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer func() { _ = encoder.Close() }()
		return encoder.Encode(doc)
	case OutputFormatTable, "":
		table := tablewriter.NewWriter(w)
		if err := fill(table); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// yamlDocument round-trips v through JSON so yaml keys follow the API
// field names and custom JSON encodings.
func yamlDocument(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// multiTable lists the per-item outcome of a batch action.
func multiTable(items []tmv1.MultiItem) tableFunc {
	return func(table *tablewriter.Table) error {
		table.Header("Item", "Status", "Task ID")
		for i, item := range items {
			if err := table.Append(fmt.Sprint(i), fmt.Sprint(item.Status), item.TaskID); err != nil {
				return err
			}
		}
		return nil
	}
}

// parseFields parses key=value pairs.
func parseFields(pairs []string) (map[string]string, error) {
	fields := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", pair)
		}
		fields[key] = value
	}
	return fields, nil
}

func queryOp(or bool) tmv1.QueryOp {
	if or {
		return tmv1.QueryOr
	}
	return tmv1.QueryAnd
}

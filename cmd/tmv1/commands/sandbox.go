package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-tmv1"
)

// NewSandboxCommand creates the sandbox command group.
func NewSandboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Submit objects for sandbox analysis and fetch results",
	}

	cmd.AddCommand(newSandboxSubmitFileCommand())
	cmd.AddCommand(newSandboxSubmitURLCommand())
	cmd.AddCommand(newSandboxResultCommand())
	cmd.AddCommand(newSandboxReportCommand())

	return cmd
}

func newSandboxSubmitFileCommand() *cobra.Command {
	var file tmv1.SandboxFile

	cmd := &cobra.Command{
		Use:   "submit-file PATH",
		Short: "Submit a file for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			file.Name = filepath.Base(args[0])
			file.Content = content

			res := client.Sandbox.SubmitFile(cmd.Context(), file)
			if !res.OK() {
				return resultError(res.Error)
			}

			return render(cmd.OutOrStdout(), res.Response, func(table *tablewriter.Table) error {
				table.Header("Submission ID", "SHA-256")
				return table.Append(res.Response.ID, res.Response.Digest.SHA256)
			})
		},
	}

	cmd.Flags().StringVar(&file.DocumentPassword, "document-password", "", "password of a protected document")
	cmd.Flags().StringVar(&file.ArchivePassword, "archive-password", "", "password of a protected archive")
	cmd.Flags().StringVar(&file.Arguments, "arguments", "", "command line arguments for executables")

	return cmd
}

func newSandboxSubmitURLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "submit-url URL...",
		Short: "Submit URLs for analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			res := client.Sandbox.SubmitURLs(cmd.Context(), args)
			if !res.OK() {
				return multiResultError(res.Errors)
			}

			return render(cmd.OutOrStdout(), res.Response.Items, func(table *tablewriter.Table) error {
				table.Header("URL", "Status", "Submission ID", "Task ID")
				for _, item := range res.Response.Items {
					if err := table.Append(item.URL, fmt.Sprint(item.Status), item.ID, item.TaskID); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newSandboxResultCommand() *cobra.Command {
	var objects bool

	cmd := &cobra.Command{
		Use:   "result SUBMISSION_ID",
		Short: "Wait for an analysis and show its verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if objects {
				res := client.Sandbox.SuspiciousObjects(cmd.Context(), args[0])
				if !res.OK() {
					return resultError(res.Error)
				}
				return render(cmd.OutOrStdout(), res.Response.Items, func(table *tablewriter.Table) error {
					table.Header("Type", "Value", "Risk", "Expires")
					for _, o := range res.Response.Items {
						if err := table.Append(string(o.Type), o.Value, string(o.RiskLevel), o.ExpiredDateTime); err != nil {
							return err
						}
					}
					return nil
				})
			}

			res := client.Sandbox.AnalysisResult(cmd.Context(), args[0])
			if !res.OK() {
				return resultError(res.Error)
			}
			r := res.Response

			return render(cmd.OutOrStdout(), r, func(table *tablewriter.Table) error {
				table.Header("ID", "Type", "Risk", "True Type", "Detections", "Completed")
				return table.Append(r.ID, string(r.Type), string(r.RiskLevel), r.TrueFileType,
					strings.Join(r.DetectionNames, ", "), r.AnalysisCompletionDateTime)
			})
		},
	}

	cmd.Flags().BoolVar(&objects, "objects", false, "show the suspicious objects found by the analysis")

	return cmd
}

func newSandboxReportCommand() *cobra.Command {
	var (
		out    string
		pkg    bool
		noWait bool
	)

	cmd := &cobra.Command{
		Use:   "report SUBMISSION_ID",
		Short: "Download the PDF report or the investigation package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			opts := []tmv1.RequestOption{tmv1.WithPoll(!noWait)}
			var res tmv1.Result[*tmv1.BytesResponse]
			if pkg {
				res = client.Sandbox.DownloadInvestigationPackage(cmd.Context(), args[0], opts...)
			} else {
				res = client.Sandbox.DownloadReport(cmd.Context(), args[0], opts...)
			}
			if !res.OK() {
				return resultError(res.Error)
			}

			if out == "" {
				out = args[0] + ".pdf"
				if pkg {
					out = args[0] + ".zip"
				}
			}
			if err := os.WriteFile(out, res.Response.Content, 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d bytes to %s\n", len(res.Response.Content), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "file", "f", "", "output file (default SUBMISSION_ID.pdf or .zip)")
	cmd.Flags().BoolVar(&pkg, "package", false, "download the investigation package instead of the report")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "do not wait for the analysis to finish")

	return cmd
}

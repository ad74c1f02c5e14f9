package commands

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-tmv1"
)

// NewAlertsCommand creates the alerts command group.
func NewAlertsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alerts",
		Aliases: []string{"alert"},
		Short:   "Manage workbench alerts",
	}

	cmd.AddCommand(newAlertsListCommand())
	cmd.AddCommand(newAlertsGetCommand())
	cmd.AddCommand(newAlertsNoteCommand())
	cmd.AddCommand(newAlertsStatusCommand())
	cmd.AddCommand(newAlertsCEFCommand())

	return cmd
}

func newAlertsListCommand() *cobra.Command {
	var (
		since    time.Duration
		limit    int
		severity string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workbench alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			var filter *tmv1.AlertFilter
			if since > 0 {
				now := time.Now()
				filter = &tmv1.AlertFilter{StartTime: now.Add(-since), EndTime: now}
			}

			seq := client.Alerts.All(cmd.Context(), filter)
			if severity != "" {
				seq = tmv1.Filter(seq, func(a *tmv1.Alert) bool {
					return strings.EqualFold(string(a.Common().Severity), severity)
				})
			}

			alerts, err := tmv1.Collect(seq, limit)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), alerts, func(table *tablewriter.Table) error {
				table.Header("ID", "Provider", "Severity", "Score", "Status", "Model", "Created")
				for _, a := range alerts {
					c := a.Common()
					if err := table.Append(c.ID, string(a.Provider), string(c.Severity), fmt.Sprint(c.Score),
						string(c.InvestigationStatus), c.Model, c.CreatedDateTime); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&since, "since", 0, "only alerts created within this duration (default: server default of 24h)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of alerts, 0 for all")
	cmd.Flags().StringVar(&severity, "severity", "", "only alerts of this severity (low, medium, high, critical)")

	return cmd
}

func newAlertsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ALERT_ID",
		Short: "Show a workbench alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			res := client.Alerts.Get(cmd.Context(), args[0])
			if !res.OK() {
				return resultError(res.Error)
			}
			alert := &res.Response.Alert
			c := alert.Common()

			return render(cmd.OutOrStdout(), alert, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")
				rows := [][]string{
					{"ID", c.ID},
					{"ETag", res.Response.ETag},
					{"Provider", string(alert.Provider)},
					{"Model", c.Model},
					{"Severity", string(c.Severity)},
					{"Score", fmt.Sprint(c.Score)},
					{"Status", string(c.InvestigationStatus)},
					{"Created", c.CreatedDateTime},
					{"Indicators", fmt.Sprint(len(c.Indicators))},
					{"Entities", fmt.Sprint(len(c.ImpactScope.Entities))},
					{"Link", c.WorkbenchLink},
				}
				for _, row := range rows {
					if err := table.Append(row); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newAlertsNoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "note ALERT_ID TEXT",
		Short: "Add a note to a workbench alert",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			res := client.Alerts.AddNote(cmd.Context(), args[0], args[1])
			if !res.OK() {
				return resultError(res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note %s added to alert %s\n", res.Response.NoteID(), args[0])
			return nil
		},
	}
}

func newAlertsStatusCommand() *cobra.Command {
	var etag string

	cmd := &cobra.Command{
		Use:   "status ALERT_ID STATUS",
		Short: "Update the investigation status of a workbench alert",
		Long: `Update the investigation status of a workbench alert.

STATUS is one of: New, In Progress, True Positive, False Positive,
Benign True Positive, Closed. Without --etag the current ETag is fetched
first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if etag == "" {
				current := client.Alerts.Get(cmd.Context(), args[0])
				if !current.OK() {
					return resultError(current.Error)
				}
				etag = current.Response.ETag
			}

			res := client.Alerts.UpdateStatus(cmd.Context(), args[0], tmv1.InvestigationStatus(args[1]), etag)
			if !res.OK() {
				return resultError(res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Alert %s updated to %q\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&etag, "etag", "", "ETag of the alert, fetched when empty")

	return cmd
}

func newAlertsCEFCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cef ALERT_ID",
		Short: "Show a workbench alert as CEF extension fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			res := client.Alerts.Get(cmd.Context(), args[0])
			if !res.OK() {
				return resultError(res.Error)
			}
			fields := tmv1.MapCEF(&res.Response.Alert)

			return render(cmd.OutOrStdout(), fields, func(table *tablewriter.Table) error {
				table.Header("Key", "Value")
				for _, k := range slices.Sorted(maps.Keys(fields)) {
					if err := table.Append(k, fields[k]); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-tmv1"
)

type searchFlags struct {
	fields []string
	or     bool
	since  time.Duration
	limit  int
	count  bool
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.fields, "field", "F", nil, "filter as key=value, repeatable")
	cmd.Flags().BoolVar(&f.or, "or", false, "match any field instead of all fields")
	cmd.Flags().DurationVar(&f.since, "since", 0, "only records within this duration")
	cmd.Flags().IntVar(&f.limit, "limit", 100, "maximum number of records, 0 for all")
	cmd.Flags().BoolVar(&f.count, "count", false, "only print the number of matching records")
	_ = cmd.MarkFlagRequired("field")
}

func (f *searchFlags) query() (*tmv1.ActivityQuery, error) {
	fields, err := parseFields(f.fields)
	if err != nil {
		return nil, err
	}
	q := &tmv1.ActivityQuery{Op: queryOp(f.or), Fields: fields}
	if f.since > 0 {
		now := time.Now()
		q.StartTime, q.EndTime = now.Add(-f.since), now
	}
	return q, nil
}

// NewSearchCommand creates the activity search command group.
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search endpoint and email activity data",
	}

	cmd.AddCommand(newSearchEndpointCommand())
	cmd.AddCommand(newSearchEmailCommand())

	return cmd
}

func newSearchEndpointCommand() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "Search endpoint activity records",
		Example: `  tmv1 search endpoint -F dpt=443 -F endpointHostName=client1
  tmv1 search endpoint -F processCmd=powershell.exe --since 24h --count`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			query, err := flags.query()
			if err != nil {
				return err
			}

			if flags.count {
				return printCount(cmd, client.Search.EndpointActivityCount(cmd.Context(), query))
			}

			records, err := tmv1.Collect(client.Search.AllEndpointActivities(cmd.Context(), query), flags.limit)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), records, func(table *tablewriter.Table) error {
				table.Header("Time", "Host", "Event", "Process", "Object")
				for _, r := range records {
					if err := table.Append(r.EventTimeDT, r.EndpointHostName, fmt.Sprintf("%s/%d", r.EventID, r.EventSubID),
						r.ProcessCmd, firstNonEmpty(r.ObjectCmd, r.ObjectFilePath, r.ObjectIP, r.Request)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func newSearchEmailCommand() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:     "email",
		Short:   "Search email activity records",
		Example: `  tmv1 search email -F mailMsgSubject=invoice -F mailSenderIp=192.0.2.1 --or`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			query, err := flags.query()
			if err != nil {
				return err
			}

			if flags.count {
				return printCount(cmd, client.Search.EmailActivityCount(cmd.Context(), query))
			}

			var records []*tmv1.EmailActivity
			res := client.Search.ConsumeEmailActivities(cmd.Context(), func(a *tmv1.EmailActivity) {
				if flags.limit == 0 || len(records) < flags.limit {
					records = append(records, a)
				}
			}, query)
			if !res.OK() {
				return resultError(res.Error)
			}

			return render(cmd.OutOrStdout(), records, func(table *tablewriter.Table) error {
				table.Header("Mailbox", "Subject", "From", "To")
				for _, r := range records {
					if err := table.Append(r.Mailbox, r.MailMsgSubject,
						strings.Join(r.MailFromAddresses, ", "), strings.Join(r.MailToAddresses, ", ")); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func printCount(cmd *cobra.Command, res tmv1.Result[*tmv1.ActivityCount]) error {
	if !res.OK() {
		return resultError(res.Error)
	}
	return render(cmd.OutOrStdout(), res.Response, func(table *tablewriter.Table) error {
		table.Header("Total")
		return table.Append(fmt.Sprint(res.Response.TotalCount))
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

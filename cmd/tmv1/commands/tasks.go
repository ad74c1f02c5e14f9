package commands

import (
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-tmv1"
)

// NewTasksCommand creates the tasks command group.
func NewTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Look up response tasks",
	}

	cmd.AddCommand(newTasksGetCommand())

	return cmd
}

func newTasksGetCommand() *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "get TASK_ID",
		Short: "Show the status of a response task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			opts := []tmv1.RequestOption{tmv1.WithPoll(wait)}
			if timeout > 0 {
				opts = append(opts, tmv1.WithPollTimeout(timeout))
			}

			res := client.Tasks.Get(cmd.Context(), args[0], opts...)
			if !res.OK() {
				return resultError(res.Error)
			}
			task := res.Response

			return render(cmd.OutOrStdout(), task, func(table *tablewriter.Table) error {
				table.Header("ID", "Action", "Status", "Created", "Last Action")
				return table.Append(task.ID, string(task.Action), string(task.Status),
					task.CreatedDateTime, task.LastActionDateTime)
			})
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the task leaves queued/running")
	cmd.Flags().DurationVar(&timeout, "wait-timeout", 0, "maximum time to wait (default 30m)")

	return cmd
}

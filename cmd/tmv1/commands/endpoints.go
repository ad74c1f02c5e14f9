package commands

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-tmv1"
)

// NewEndpointsCommand creates the endpoints command group.
func NewEndpointsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"endpoint", "ep"},
		Short:   "Query endpoints and run endpoint response actions",
	}

	cmd.AddCommand(newEndpointsQueryCommand())
	cmd.AddCommand(newEndpointsActionCommand("isolate", "Isolate endpoints from the network",
		func(c *tmv1.Client) func(*cobra.Command, []tmv1.EndpointTask) tmv1.MultiResult[*tmv1.MultiResponse] {
			return func(cmd *cobra.Command, tasks []tmv1.EndpointTask) tmv1.MultiResult[*tmv1.MultiResponse] {
				return c.Endpoints.Isolate(cmd.Context(), tasks)
			}
		}))
	cmd.AddCommand(newEndpointsActionCommand("restore", "Restore isolated endpoints",
		func(c *tmv1.Client) func(*cobra.Command, []tmv1.EndpointTask) tmv1.MultiResult[*tmv1.MultiResponse] {
			return func(cmd *cobra.Command, tasks []tmv1.EndpointTask) tmv1.MultiResult[*tmv1.MultiResponse] {
				return c.Endpoints.Restore(cmd.Context(), tasks)
			}
		}))

	return cmd
}

func newEndpointsQueryCommand() *cobra.Command {
	var (
		or    bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "query VALUE...",
		Short: "Find endpoints by IP, MAC address, agent GUID, OS, product code or name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			endpoints, err := tmv1.Collect(client.Endpoints.All(cmd.Context(), queryOp(or), args), limit)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), endpoints, func(table *tablewriter.Table) error {
				table.Header("Agent GUID", "Name", "OS", "IP", "Product")
				for _, ep := range endpoints {
					if err := table.Append(ep.AgentGUID, ep.EndpointName.Value, string(ep.OSName),
						strings.Join(ep.IP.Value, ", "), string(ep.ProductCode)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&or, "or", false, "match any value instead of all values")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of endpoints, 0 for all")

	return cmd
}

func newEndpointsActionCommand(use, short string,
	action func(*tmv1.Client) func(*cobra.Command, []tmv1.EndpointTask) tmv1.MultiResult[*tmv1.MultiResponse]) *cobra.Command {
	var (
		byGUID      bool
		description string
	)

	cmd := &cobra.Command{
		Use:   use + " ENDPOINT...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			tasks := make([]tmv1.EndpointTask, 0, len(args))
			for _, arg := range args {
				task := tmv1.EndpointTask{Description: description}
				if byGUID {
					task.AgentGUID = arg
				} else {
					task.EndpointName = arg
				}
				tasks = append(tasks, task)
			}

			res := action(client)(cmd, tasks)
			if !res.OK() {
				return multiResultError(res.Errors)
			}
			return render(cmd.OutOrStdout(), res.Response.Items, multiTable(res.Response.Items))
		},
	}

	cmd.Flags().BoolVar(&byGUID, "guid", false, "arguments are agent GUIDs instead of endpoint names")
	cmd.Flags().StringVar(&description, "description", "", "task description")

	return cmd
}

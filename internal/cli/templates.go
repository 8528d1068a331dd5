package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [type]",
		Short: "List event templates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventType := "trial"
			if len(args) == 1 {
				eventType = args[0]
			}

			var result Templates
			if err := client.Get(cmd.Context(), "/api/v1/templates/"+url.PathEscape(eventType), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

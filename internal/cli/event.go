package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Event scheduling commands",
	}

	cmd.AddCommand(newEventCreateCmd())
	cmd.AddCommand(newEventGetCmd())
	cmd.AddCommand(newEventAttachCmd())
	cmd.AddCommand(newEventCloseCmd())

	return cmd
}

func newEventCreateCmd() *cobra.Command {
	var (
		eventType string
		at        string
	)

	cmd := &cobra.Command{
		Use:   "create <template name>",
		Short: "Schedule a new event from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			triggerAt, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("--at must be RFC 3339, e.g. 2024-01-05T20:00:00Z: %w", err)
			}

			req := map[string]any{
				"type":       eventType,
				"name":       args[0],
				"trigger_at": triggerAt,
			}

			var result CreateEventResult
			if err := client.Post(cmd.Context(), "/api/v1/events", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventType, "type", "trial", "Event type")
	cmd.Flags().StringVar(&at, "at", "", "When the event happens (RFC 3339)")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newEventGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <event id>",
		Short: "Get event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Event
			if err := client.Get(cmd.Context(), eventPath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newEventAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <event id> <channel id> <message id>",
		Short: "Record where the roster message was posted",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"channel_id": args[1],
				"message_id": args[2],
			}

			var result Event
			if err := client.Post(cmd.Context(), eventPath(args[0], "message"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newEventCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <event id>",
		Short: "Close registration and list who signed up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CloseResult
			if err := client.Post(cmd.Context(), eventPath(args[0], "close"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

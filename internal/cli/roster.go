package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster inspection commands",
	}

	cmd.AddCommand(newRosterShowCmd())

	return cmd
}

func newRosterShowCmd() *cobra.Command {
	var document bool

	cmd := &cobra.Command{
		Use:   "show <event id>",
		Short: "Show the roster of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			if document {
				var result Document
				if err := client.Get(cmd.Context(), eventPath(args[0], "document"), &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result Roster
			if err := client.Get(cmd.Context(), eventPath(args[0], "roster"), &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&document, "document", false, "Show the rendered roster instead of raw role lists")

	return cmd
}

func newActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions <event id>",
		Short: "List the actions offered for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Action
			if err := client.Get(cmd.Context(), eventPath(args[0], "actions"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSignalCmd() *cobra.Command {
	var (
		emoji   string
		emojiID string
	)

	cmd := &cobra.Command{
		Use:   "signal <event id> <user id> [action]",
		Short: "Send a role signal on behalf of a user",
		Long: `Send a role signal on behalf of a user, as a chat transport would.

The action is one of leader, fill, clear or a role slot (dps0, dps1,
healer0, healer1, tank0, tank1). Use --emoji instead to send the reaction
emoji; add --emoji-id for custom emoji.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"user_id": args[1]}
			switch {
			case len(args) == 3 && emoji == "":
				req["action"] = args[2]
			case len(args) == 2 && emoji != "":
				req["emoji"] = emoji
				if emojiID != "" {
					req["emoji_id"] = emojiID
				}
			default:
				return errors.New("give exactly one of an action argument or --emoji")
			}

			var result SignalResult
			if err := client.Post(cmd.Context(), eventPath(args[0], "signals"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&emoji, "emoji", "", "Reaction emoji instead of an action name")
	cmd.Flags().StringVar(&emojiID, "emoji-id", "", "Custom emoji id")

	return cmd
}

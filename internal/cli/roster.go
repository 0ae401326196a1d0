package cli

import (
	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster and scoreboard commands",
	}

	cmd.AddCommand(newRosterGetCmd())
	cmd.AddCommand(newRosterAddCmd())
	cmd.AddCommand(newRosterRenameCmd())
	cmd.AddCommand(newRosterRemoveCmd())
	cmd.AddCommand(newRosterScoreCmd())

	return cmd
}

func newRosterGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show the scoreboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Roster

			if err := client.Get("/api/v1/sessions/"+args[0]+"/roster", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRosterAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <session-id>",
		Short: "Add a player to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Roster

			if err := client.Post("/api/v1/sessions/"+args[0]+"/roster/players", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRosterRenameCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <session-id> <player-id>",
		Short: "Rename a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"name": name, "commit": true}
			var result Roster

			if err := client.Patch("/api/v1/sessions/"+args[0]+"/roster/players/"+args[1], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRosterRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <session-id> <player-id>",
		Short: "Remove a player from the roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Roster

			if err := client.Do("DELETE", "/api/v1/sessions/"+args[0]+"/roster/players/"+args[1], nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRosterScoreCmd() *cobra.Command {
	var delta int

	cmd := &cobra.Command{
		Use:   "score <session-id> <player-id>",
		Short: "Apply a manual score adjustment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"delta": delta}
			var result Roster

			if err := client.Post("/api/v1/sessions/"+args[0]+"/roster/players/"+args[1]+"/score", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&delta, "delta", 0, "Points to add (required)")
	_ = cmd.MarkFlagRequired("delta")

	return cmd
}

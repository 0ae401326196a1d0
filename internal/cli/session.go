package cli

import (
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session and turn-flow commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionDeleteCmd())
	cmd.AddCommand(newSessionDecadeCmd())
	cmd.AddCommand(newSessionSelectCmd())
	cmd.AddCommand(newSessionSpinCmd())
	cmd.AddCommand(newSessionDrawCmd())
	cmd.AddCommand(newSessionRevealCmd())
	cmd.AddCommand(newSessionSkipCmd())
	cmd.AddCommand(newSessionResolveCmd())
	cmd.AddCommand(newSessionNewRoundCmd())
	cmd.AddCommand(newSessionThemeCmd())
	cmd.AddCommand(newSessionShowsCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	var decade string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"decade": decade}
			var result Session

			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&decade, "decade", "", "Decade, e.g. 1990s (required)")
	_ = cmd.MarkFlagRequired("decade")

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show session state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/sessions/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/sessions/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Session deleted")
			return nil
		},
	}
}

func newSessionDecadeCmd() *cobra.Command {
	var decade string

	cmd := &cobra.Command{
		Use:   "decade <session-id>",
		Short: "Switch the session to another decade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"decade": decade}
			var result Session

			if err := client.Patch("/api/v1/sessions/"+args[0]+"/decade", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&decade, "decade", "", "Decade, e.g. 1980s (required)")
	_ = cmd.MarkFlagRequired("decade")

	return cmd
}

func newSessionSelectCmd() *cobra.Command {
	var show string

	cmd := &cobra.Command{
		Use:   "select <session-id>",
		Short: "Pick a show for the current turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"show": show}
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/select-show", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&show, "show", "", "Show title (required)")
	_ = cmd.MarkFlagRequired("show")

	return cmd
}

func newSessionSpinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spin <session-id>",
		Short: "Pick a show at random for the current turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/spin-show", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw <session-id>",
		Short: "Draw a question for the selected show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/draw", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <session-id>",
		Short: "Reveal the active question's answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/reveal", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <session-id>",
		Short: "Skip the active question without scoring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/skip", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionResolveCmd() *cobra.Command {
	var correct bool

	cmd := &cobra.Command{
		Use:   "resolve <session-id>",
		Short: "Judge the answer and advance the turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"is_correct": correct}
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/resolve", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&correct, "correct", false, "Whether the answer was judged correct")

	return cmd
}

func newSessionNewRoundCmd() *cobra.Command {
	var shuffle bool

	cmd := &cobra.Command{
		Use:   "new-round <session-id>",
		Short: "Start the next round after a round completes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"shuffle": shuffle}
			var result Session

			if err := client.Post("/api/v1/sessions/"+args[0]+"/new-round", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "Shuffle the turn order")

	return cmd
}

func newSessionThemeCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "theme <session-id>",
		Short: "Show or set the session's display theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if theme == "" {
				var result Theme
				if err := client.Get("/api/v1/sessions/"+args[0]+"/theme", &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			req := map[string]string{"theme": theme}
			var result Theme
			if err := client.Put("/api/v1/sessions/"+args[0]+"/theme", req, &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "set", "", "Theme to apply (omit to show current)")

	return cmd
}

func newSessionShowsCmd() *cobra.Command {
	var decade, toggle string

	cmd := &cobra.Command{
		Use:   "shows <session-id>",
		Short: "Show or toggle the session's picked shows for a decade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if toggle != "" {
				req := map[string]string{"decade": decade, "show": toggle}
				var result Shows
				if err := client.Post("/api/v1/sessions/"+args[0]+"/selections", req, &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result Shows
			if err := client.Get("/api/v1/sessions/"+args[0]+"/selections/"+decade, &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&decade, "decade", "", "Decade, e.g. 1990s (required)")
	cmd.Flags().StringVar(&toggle, "toggle", "", "Show title to toggle (omit to list)")
	_ = cmd.MarkFlagRequired("decade")

	return cmd
}

package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newBankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Question bank commands",
	}

	cmd.AddCommand(newBankGetCmd())
	cmd.AddCommand(newBankStatusCmd())
	cmd.AddCommand(newBankSeedCmd())
	cmd.AddCommand(newBankDecadesCmd())
	cmd.AddCommand(newBankPresetsCmd())
	cmd.AddCommand(newBankPopularCmd())

	return cmd
}

func newBankGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <decade>",
		Short: "Show the latest bank for a decade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Bank

			if err := client.Get("/api/v1/questions/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBankStatusCmd() *cobra.Command {
	var shows []string

	cmd := &cobra.Command{
		Use:   "status <decade>",
		Short: "Check whether a usable bank exists for a decade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/questions/" + args[0] + "/status"
			if len(shows) > 0 {
				q := url.Values{}
				for _, show := range shows {
					q.Add("show", show)
				}
				path += "?" + q.Encode()
			}

			var result BankStatus
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&shows, "show", nil, "Selected show to compare against (repeatable)")

	return cmd
}

func newBankSeedCmd() *cobra.Command {
	var shows []string
	var perShow int
	var seed int64

	cmd := &cobra.Command{
		Use:   "seed <decade>",
		Short: "Generate and store a fresh bank (requires auth)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"decade": args[0],
				"shows":  shows,
			}
			if perShow > 0 {
				req["questions_per_show"] = perShow
			}
			if seed != 0 {
				req["seed"] = seed
			}

			var result Bank
			if err := client.Post("/api/v1/questions/seed", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&shows, "show", nil, "Show to include (repeatable, required)")
	cmd.Flags().IntVar(&perShow, "per-show", 0, "Questions per show")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Generation seed")
	_ = cmd.MarkFlagRequired("show")

	return cmd
}

func newBankDecadesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decades",
		Short: "List known decades",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result map[string][]string

			if err := client.Get("/api/v1/decades", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBankPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets <decade>",
		Short: "List the preset shows for a decade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Shows

			if err := client.Get("/api/v1/decades/"+args[0]+"/shows", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBankPopularCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "popular <decade>",
		Short: "Ask the AI for the decade's most popular shows (requires auth)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Shows

			if err := client.Get("/api/v1/decades/"+args[0]+"/popular-shows", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

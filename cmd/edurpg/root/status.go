package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"edurpg/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var achievements bool

	cmd := &cobra.Command{
		Use:   "status <name>",
		Short: "Show a player's level, traits, skills and inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := s.svc.LoadPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.Profile(p))
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprint(cmd.OutOrStdout(), ui.Inventory(p))
			if !achievements {
				return nil
			}
			list, err := s.svc.Achievements(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprint(cmd.OutOrStdout(), ui.Achievements(list))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&achievements, "achievements", "a", false, "also list achievements")
	return cmd
}

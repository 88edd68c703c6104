package root

import (
	"github.com/spf13/cobra"

	"edurpg/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board <name>",
		Short: "Open the player dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(cmd.Context(), s.svc, args[0], cmd.OutOrStdout())
		},
	}

	return cmd
}

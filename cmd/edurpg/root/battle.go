package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"edurpg/internal/engine"
	"edurpg/internal/ui"
)

func newBattleCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "battle <name>",
		Short: "Fight one enemy with a saved player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var subj engine.Subject
			if subject != "" {
				parsed, err := engine.ParseSubject(subject)
				if err != nil {
					return err
				}
				subj = parsed
			}

			s, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := s.svc.LoadPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res, err := s.svc.Battle(cmd.Context(), p, subj)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")
			fmt.Fprint(cmd.OutOrStdout(), ui.BattleSummary(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "math|science|history|language (default: random)")
	return cmd
}

package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"edurpg/internal/ui"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "List saved players",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			names, err := s.svc.ListPlayers(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No saved games found. Start one with `edurpg play`."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Saved Players"))
			for _, name := range names {
				p, err := s.svc.LoadPlayer(cmd.Context(), name)
				if err != nil {
					fmt.Fprintf(out, "- %s %s\n", name, ui.Bad.Render("(unreadable)"))
					continue
				}
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render(p.Name), ui.Muted.Render(fmt.Sprintf("grade %s, level %d, %d XP", p.Grade, p.Level, p.XP)))
			}
			return nil
		},
	}

	return cmd
}

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if !yes {
				ok, err := s.console.Confirm(cmd.Context(), fmt.Sprintf("Delete %s? A guild they lead is deleted too.", args[0]))
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			if err := s.svc.DeletePlayer(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Deleted "+args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

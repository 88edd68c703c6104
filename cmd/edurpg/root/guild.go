package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"edurpg/internal/ui"
)

func newGuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guild",
		Short: "Browse guilds",
	}
	cmd.AddCommand(newGuildListCmd(), newGuildShowCmd())
	return cmd
}

func newGuildListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all guilds",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			guilds, err := s.svc.ListGuilds(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.GuildList(guilds))
			return nil
		},
	}
}

func newGuildShowCmd() *cobra.Command {
	var chat bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show guild members, quests and optionally chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := s.svc.GetGuild(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.GuildDetails(g, time.Now()))
			if chat {
				fmt.Fprintln(cmd.OutOrStdout(), "")
				fmt.Fprint(cmd.OutOrStdout(), ui.Chat(g))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&chat, "chat", false, "include chat history")
	return cmd
}

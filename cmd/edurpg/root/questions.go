package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"edurpg/internal/catalog"
	"edurpg/internal/engine"
	"edurpg/internal/storage"
	"edurpg/internal/ui"
)

func newQuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage the question bank",
	}
	cmd.AddCommand(newQuestionsSeedCmd(), newQuestionsStatsCmd())
	return cmd
}

func newQuestionsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in question bank into storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			builtin, err := catalog.Default()
			if err != nil {
				return err
			}
			n, err := catalog.Seed(cmd.Context(), store.Collection(storage.Questions), builtin)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Seeded %d question sets (%d questions).", ui.IconDone, n, builtin.Count())))
			return nil
		},
	}
}

func newQuestionsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count available questions per subject and grade",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, store, cleanup, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			builtin, err := catalog.Default()
			if err != nil {
				return err
			}
			questions := catalog.NewStored(cmd.Context(), store.Collection(storage.Questions), builtin, log)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBook, "Question Bank"))
			for _, subj := range engine.Subjects {
				var parts []string
				total := 0
				for _, g := range engine.Grades {
					n := len(questions.Lookup(subj, g))
					if n == 0 {
						continue
					}
					total += n
					parts = append(parts, fmt.Sprintf("%s:%d", g, n))
				}
				if total == 0 {
					fmt.Fprintf(out, "- %s %s\n", ui.Key.Render(subj.Title()), ui.Muted.Render("(none)"))
					continue
				}
				fmt.Fprintf(out, "- %s %d %s\n", ui.Key.Render(subj.Title()), total, ui.Muted.Render(fmt.Sprint(parts)))
			}
			return nil
		},
	}
}

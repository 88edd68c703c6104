package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"edurpg/internal/ui"
)

const Version = "0.1.0"

var configPath string

var (
	exitMu    sync.Mutex
	exitHooks []func()
)

// onExit registers fn to run when an interrupt ends the process, since
// os.Exit skips deferred calls. fn must be safe to call twice.
func onExit(fn func()) {
	exitMu.Lock()
	defer exitMu.Unlock()
	exitHooks = append(exitHooks, fn)
}

// runExitHooks runs the registered hooks newest first and clears them.
func runExitHooks() {
	exitMu.Lock()
	hooks := exitHooks
	exitHooks = nil
	exitMu.Unlock()
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

var rootCmd = &cobra.Command{
	Use:           "edurpg",
	Short:         "EduRPG: learn by battling quiz monsters",
	Long:          "EduRPG is a terminal RPG where answering grade-leveled questions deals damage, earns XP, and unlocks skills.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (YAML)")

	rootCmd.AddCommand(
		newPlayCmd(),
		newStatusCmd(),
		newBattleCmd(),
		newGuildCmd(),
		newQuestionsCmd(),
		newBoardCmd(),
		newPlayersCmd(),
		newDeleteCmd(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Prompts block on stdin, so an interrupt ends the process here.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
		runExitHooks()
		fmt.Fprintln(os.Stderr, "\n"+ui.Warn.Render("Game interrupted. Exiting..."))
		os.Exit(130)
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(os.Stderr, "\n"+ui.Good.Render("Thank you for playing EduRPG!"))
			return
		}
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

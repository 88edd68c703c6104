package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"edurpg/internal/engine"
	"edurpg/internal/ui"
)

const banner = `
 _____    _       ____  ____   ____
| ____|__| |_   _|  _ \|  _ \ / ___|
|  _| / _' | | | | |_) | |_) | |  _
| |__| (_| | |_| |  _ <|  __/| |_| |
|_____\__,_|\__,_|_| \_\_|    \____|
`

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start the interactive game",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			g := &game{sess: s, out: cmd.OutOrStdout()}
			return g.run(cmd.Context())
		},
	}

	return cmd
}

type game struct {
	sess   *session
	out    io.Writer
	player *engine.Player
}

func (g *game) svc() *engine.Service { return g.sess.svc }
func (g *game) con() *ui.Console { return g.sess.console }
func (g *game) say(text string) { fmt.Fprint(g.out, text) }
func (g *game) sayln(text string) { fmt.Fprintln(g.out, text) }
func (g *game) fail(err error) { g.con().Notify(engine.SeverityError, err.Error()) }
func (g *game) ok(text string) { g.con().Notify(engine.SeveritySuccess, text) }
func (g *game) warn(text string) { g.con().Notify(engine.SeverityWarn, text) }

func (g *game) run(ctx context.Context) error {
	g.sayln(ui.Title.Render(banner))
	g.sayln(ui.Muted.Render("Learn. Battle. Level up."))

	options := []string{"New Game", "Load Game", "Help", "Exit"}
	for {
		choice, err := g.con().Choose(ctx, "Main Menu", options)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			if err := g.newGame(ctx); err != nil {
				return err
			}
		case 1:
			if err := g.loadGame(ctx); err != nil {
				return err
			}
		case 2:
			g.help()
		case 3:
			g.ok("Thank you for playing EduRPG!")
			return nil
		}
		if g.player != nil {
			if err := g.gameMenu(ctx); err != nil {
				return err
			}
			g.player = nil
		}
	}
}

func (g *game) newGame(ctx context.Context) error {
	name, err := g.con().Required(ctx, "Enter your character name")
	if err != nil {
		return err
	}
	grades := make([]string, len(engine.Grades))
	for i, gr := range engine.Grades {
		grades[i] = string(gr)
	}
	idx, err := g.con().Choose(ctx, "Select your grade", grades)
	if err != nil {
		return err
	}

	p, err := g.svc().NewPlayer(ctx, name, engine.Grades[idx])
	if errors.Is(err, engine.ErrPlayerExists) {
		g.warn("A saved game with that name already exists. Load it instead.")
		return nil
	}
	if err != nil {
		g.fail(err)
		return nil
	}
	g.player = p
	g.ok(fmt.Sprintf("Welcome, %s! You are now a Level 1 student in grade %s.", p.Name, p.Grade))
	return nil
}

func (g *game) loadGame(ctx context.Context) error {
	g.warn("Loading game...")
	names, err := g.svc().ListPlayers(ctx)
	if err != nil {
		return nil
	}
	if len(names) == 0 {
		g.con().Notify(engine.SeverityError, "No saved games found. Please start a new game.")
		return nil
	}
	idx, err := g.con().Choose(ctx, "Choose a saved game", append(names, "Back"))
	if err != nil {
		return err
	}
	if idx == len(names) {
		return nil
	}
	p, err := g.svc().LoadPlayer(ctx, names[idx])
	if err != nil {
		g.fail(err)
		return nil
	}
	g.player = p
	g.ok(fmt.Sprintf("Welcome back, %s!", p.Name))
	return nil
}

func (g *game) help() {
	g.sayln(ui.Heading(ui.IconInfo, "How to play"))
	g.sayln("- Battle enemies by answering questions. Fast correct answers hit harder.")
	g.sayln("- Correct answers earn XP and grow the trait of the enemy's subject.")
	g.sayln("- Traits and levels raise your damage and unlock skills.")
	g.sayln("- Guilds share quests: every answer you give counts toward them.")
	g.sayln("- You cannot lose a battle, but you can flee.")
}

func (g *game) gameMenu(ctx context.Context) error {
	options := []string{"Battle", "Profile", "Inventory", "Achievements", "Guild", "Save Game", "Main Menu"}
	for {
		choice, err := g.con().Choose(ctx, fmt.Sprintf("%s | Level %d | %d XP", g.player.Name, g.player.Level, g.player.XP), options)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			if err := g.battle(ctx); err != nil {
				return err
			}
		case 1:
			g.say(ui.Profile(g.player))
		case 2:
			g.say(ui.Inventory(g.player))
		case 3:
			list, err := g.svc().Achievements(ctx, g.player)
			if err != nil {
				g.fail(err)
				continue
			}
			g.say(ui.Achievements(list))
		case 4:
			if err := g.guildMenu(ctx); err != nil {
				return err
			}
		case 5:
			if err := g.svc().SavePlayer(ctx, g.player); err == nil {
				g.ok("Game saved successfully!")
			}
		case 6:
			ok, err := g.con().Confirm(ctx, "Return to main menu? Unsaved progress will be lost")
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
}

func (g *game) battle(ctx context.Context) error {
	fightable := engine.EnemySubjects()
	subjects := []string{"Random"}
	for _, s := range fightable {
		subjects = append(subjects, s.Title())
	}
	idx, err := g.con().Choose(ctx, "Choose a subject", subjects)
	if err != nil {
		return err
	}
	var subj engine.Subject
	if idx > 0 {
		subj = fightable[idx-1]
	}

	res, err := g.svc().Battle(ctx, g.player, subj)
	if errors.Is(err, engine.ErrUnknownSubject) || errors.Is(err, engine.ErrNoQuestions) {
		g.warn(err.Error())
		return nil
	}
	if err != nil {
		if isInterrupt(err) {
			return err
		}
		g.fail(err)
		return nil
	}
	g.say(ui.BattleSummary(res))
	return nil
}

func (g *game) guildMenu(ctx context.Context) error {
	for {
		var options []string
		if g.player.GuildID == "" {
			options = []string{"List Guilds", "Create Guild", "Join Guild", "Back"}
		} else {
			options = []string{"View Guild", "Guild Chat", "Send Message", "Start Quest", "Leave Guild", "Back"}
		}
		choice, err := g.con().Choose(ctx, "Guild Menu", options)
		if err != nil {
			return err
		}
		action := options[choice]
		if action == "Back" {
			return nil
		}
		if err := g.guildAction(ctx, action); err != nil {
			if isInterrupt(err) {
				return err
			}
			g.fail(err)
		}
	}
}

func (g *game) guildAction(ctx context.Context, action string) error {
	svc := g.svc()
	switch action {
	case "List Guilds":
		guilds, err := svc.ListGuilds(ctx)
		if err != nil {
			return err
		}
		g.say(ui.GuildList(guilds))
	case "Create Guild":
		name, err := g.con().Required(ctx, "Guild name")
		if err != nil {
			return err
		}
		desc, err := g.con().Text(ctx, "Guild description")
		if err != nil {
			return err
		}
		gd, err := svc.CreateGuild(ctx, g.player, name, desc)
		if err != nil {
			return err
		}
		g.ok(fmt.Sprintf("Guild '%s' created successfully! ID: %s", gd.Name, gd.ID))
	case "Join Guild":
		id, err := g.con().Required(ctx, "Guild ID")
		if err != nil {
			return err
		}
		gd, err := svc.JoinGuild(ctx, g.player, strings.TrimSpace(id))
		if err != nil {
			return err
		}
		g.ok(fmt.Sprintf("You have joined the guild '%s'!", gd.Name))
	case "View Guild":
		gd, err := svc.GetGuild(ctx, g.player.GuildID)
		if err != nil {
			return err
		}
		g.say(ui.GuildDetails(gd, time.Now()))
	case "Guild Chat":
		gd, err := svc.GetGuild(ctx, g.player.GuildID)
		if err != nil {
			return err
		}
		g.say(ui.Chat(gd))
	case "Send Message":
		msg, err := g.con().Required(ctx, "Message")
		if err != nil {
			return err
		}
		if err := svc.SendChat(ctx, g.player, msg); err != nil {
			return err
		}
		g.ok("Message sent.")
	case "Start Quest":
		return g.startQuest(ctx)
	case "Leave Guild":
		deleted, err := svc.LeaveGuild(ctx, g.player)
		if errors.Is(err, engine.ErrLeaveCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if deleted {
			g.warn("You have left and deleted the guild.")
		} else {
			g.warn("You have left the guild.")
		}
	}
	return nil
}

func (g *game) startQuest(ctx context.Context) error {
	templates := g.svc().QuestTemplates()
	options := make([]string, 0, len(templates)+1)
	for _, t := range templates {
		options = append(options, fmt.Sprintf("%s (guild level %d, %d XP): %s", t.Name, t.MinLevel, t.XPReward, t.Description))
	}
	options = append(options, "Back")
	idx, err := g.con().Choose(ctx, "Choose a quest", options)
	if err != nil {
		return err
	}
	if idx == len(templates) {
		return nil
	}
	q, err := g.svc().StartQuest(ctx, g.player, idx)
	var lvl engine.GuildLevelError
	if errors.As(err, &lvl) {
		g.con().Notify(engine.SeverityError, fmt.Sprintf("Guild level too low! Need level %d.", lvl.RequiredLevel))
		return nil
	}
	if err != nil {
		return err
	}
	g.ok(fmt.Sprintf("Quest '%s' started! %s", q.Name, q.Description))
	return nil
}

func isInterrupt(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}

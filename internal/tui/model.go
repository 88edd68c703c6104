package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"edurpg/internal/engine"
	"edurpg/internal/ui"
)

type tab int

const (
	tabTraits tab = iota
	tabInventory
	tabGuild
	tabCount
)

var tabNames = [...]string{"Traits & Skills", "Inventory", "Guild"}

type boardModel struct {
	ctx  context.Context
	svc  *engine.Service
	name string

	width  int
	height int

	player *engine.Player
	guild  *engine.Guild

	tab      tab
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	player *engine.Player
	guild  *engine.Guild
	err    error
}

func newBoardModel(ctx context.Context, svc *engine.Service, name string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		name:    name,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.LoadPlayer(m.ctx, m.name)
		if err != nil {
			return loadedMsg{err: err}
		}
		if p.GuildID == "" {
			return loadedMsg{player: p}
		}
		g, err := m.svc.GetGuild(m.ctx, p.GuildID)
		if errors.Is(err, engine.ErrGuildNotFound) {
			return loadedMsg{player: p}
		}
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{player: p, guild: g}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.player = msg.player
		m.guild = msg.guild
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			m.selected = 0
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.selected = 0
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < m.listLen()-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			if m.tab == tabInventory && m.player != nil && m.selected < m.player.Inventory.Len() {
				it := m.player.Inventory[m.selected]
				m.lastLog = it.Name + ": " + it.Description
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) listLen() int {
	if m.player == nil {
		return 0
	}
	switch m.tab {
	case tabInventory:
		return m.player.Inventory.Len()
	case tabGuild:
		if m.guild == nil {
			return 0
		}
		return len(m.guild.Quests)
	default:
		return len(engine.Subjects)
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.player == nil {
		return "EduRPG | loading…"
	}
	p := m.player
	bar := ui.PercentBar(p.ProgressToNextLevel(), 30)
	return fmt.Sprintf("EduRPG | %s (grade %s) | Level %d | XP %d %s", p.Name, p.Grade, p.Level, p.XP, bar)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Views"}
	for i, name := range tabNames {
		cursor := "  "
		if tab(i) == m.tab {
			cursor = "> "
		}
		lines = append(lines, cursor+name)
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- tab/←/→: switch view")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter: item details")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading || m.player == nil {
		return "Loading…"
	}
	switch m.tab {
	case tabInventory:
		return m.renderInventory()
	case tabGuild:
		return m.renderGuild()
	default:
		return m.renderTraits()
	}
}

func (m boardModel) renderTraits() string {
	p := m.player
	out := []string{"Traits"}
	top := 1
	for _, s := range engine.Subjects {
		top = max(top, p.Traits[s])
	}
	for i, s := range engine.Subjects {
		out = append(out, fmt.Sprintf("%s%-9s %4d %s", m.cursor(i), s.Title(), p.Traits[s], ui.ProgressBar(p.Traits[s], top, 20)))
	}
	out = append(out, "", "Skills")
	if len(p.Skills) == 0 {
		out = append(out, "(none yet)")
	}
	for _, s := range p.Skills {
		out = append(out, "- "+s)
	}
	out = append(out, "", "Next unlocks")
	shown := 0
	for _, def := range engine.SkillTable() {
		if p.HasSkill(def.Name) || shown == 3 {
			continue
		}
		out = append(out, fmt.Sprintf("- %s (level %d)", def.Name, def.RequiredLevel))
		shown++
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderInventory() string {
	out := []string{fmt.Sprintf("Inventory (%d)", m.player.Inventory.Len())}
	if m.player.Inventory.IsEmpty() {
		return strings.Join(append(out, "(empty)"), "\n")
	}
	for i, it := range m.player.Inventory {
		out = append(out, fmt.Sprintf("%s%s [%s/%s]", m.cursor(i), it.Name, it.Type, it.Subject))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderGuild() string {
	if m.guild == nil {
		return "Guild\n(not in a guild)"
	}
	g := m.guild
	out := []string{
		fmt.Sprintf("Guild %s [%s]", g.Name, g.ID),
		fmt.Sprintf("Level %d | XP %d/%d | %d members", g.Level, g.XP, g.NextLevelXP(), len(g.Members)),
		"",
		"Active Quests",
	}
	if len(g.Quests) == 0 {
		out = append(out, "(none)")
	}
	now := time.Now()
	for i, q := range g.Quests {
		state := ""
		if q.Expired(now) {
			state = " (expired)"
		}
		out = append(out, fmt.Sprintf("%s%s %d/%d%s", m.cursor(i), q.Name, q.Progress, q.Goal.Count, state))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) cursor(i int) string {
	if i == m.selected {
		return "> "
	}
	return "  "
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

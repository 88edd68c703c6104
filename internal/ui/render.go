package ui

import (
	"fmt"
	"strings"
	"time"

	"edurpg/internal/engine"
)

// Profile renders a player's level, traits and skills.
func Profile(p *engine.Player) string {
	var b strings.Builder
	fmt.Fprintln(&b, Heading(IconSparkle, p.Name))
	fmt.Fprintln(&b, LabelValue("Grade", p.Grade))
	fmt.Fprintln(&b, LabelValue("Level", p.Level))
	if p.Level >= engine.MaxLevel {
		fmt.Fprintln(&b, LabelValue("XP", fmt.Sprintf("%d %s", p.XP, Gold.Render("(max level)"))))
	} else {
		fmt.Fprintln(&b, LabelValue("XP", fmt.Sprintf("%d %s %s",
			p.XP,
			PercentBar(p.ProgressToNextLevel(), 20),
			Muted.Render(fmt.Sprintf("(%d to level %d)", p.XPToNextLevel(), p.Level+1)))))
	}
	if p.GuildID != "" {
		fmt.Fprintln(&b, LabelValue("Guild", p.GuildID))
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, H2.Render("📊 Traits"))
	for _, s := range engine.Subjects {
		fmt.Fprintf(&b, "- %s %-9s %d\n", SubjectIcon(s), s.Title(), p.Traits[s])
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, H2.Render("🔓 Skills"))
	if len(p.Skills) == 0 {
		fmt.Fprintln(&b, Muted.Render("(none yet)"))
	}
	for _, s := range p.Skills {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return b.String()
}

func Inventory(p *engine.Player) string {
	var b strings.Builder
	fmt.Fprintln(&b, H2.Render(IconBag+" Inventory"))
	if p.Inventory.IsEmpty() {
		fmt.Fprintln(&b, Muted.Render("Your inventory is empty."))
		return b.String()
	}
	for i, it := range p.Inventory {
		fmt.Fprintf(&b, "%d. %s %s %s\n", i+1, Key.Render(it.Name), Muted.Render("("+it.Type+", "+string(it.Subject)+")"), it.Description)
	}
	return b.String()
}

func GuildList(guilds []*engine.Guild) string {
	var b strings.Builder
	fmt.Fprintln(&b, Heading(IconGuild, "Available Guilds"))
	if len(guilds) == 0 {
		fmt.Fprintln(&b, Muted.Render("(no guilds yet)"))
		return b.String()
	}
	fmt.Fprintf(&b, "%-10s %-24s %-8s %s\n", "ID", "Name", "Members", "Level")
	for _, g := range guilds {
		fmt.Fprintf(&b, "%-10s %-24s %-8d %d\n", g.ID, g.Name, len(g.Members), g.Level)
	}
	return b.String()
}

// GuildDetails renders description, members and quests.
func GuildDetails(g *engine.Guild, now time.Time) string {
	var b strings.Builder
	body := g.Description
	if body == "" {
		body = Muted.Render("(no description)")
	}
	title := PanelTitle.Render(fmt.Sprintf("Guild: %s (Level %d)", g.Name, g.Level))
	fmt.Fprintln(&b, Panel.Render(title+"\n"+body))
	fmt.Fprintln(&b, LabelValue("ID", g.ID))
	fmt.Fprintln(&b, LabelValue("XP", fmt.Sprintf("%d / %d", g.XP, g.NextLevelXP())))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, H2.Render("Members"))
	for _, id := range g.MemberIDs() {
		fmt.Fprintf(&b, "- %s %s\n", id, Muted.Render("("+g.Members[id]+")"))
	}

	if len(g.Quests) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, H2.Render(IconScroll+" Active Quests"))
		for _, q := range g.Quests {
			fmt.Fprintln(&b, QuestLine(q, now))
		}
	}
	if len(g.CompletedQuests) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, H2.Render(IconTrophy+" Completed Quests"))
		for _, q := range g.CompletedQuests {
			fmt.Fprintf(&b, "- %s\n", q.Name)
		}
	}
	return b.String()
}

func QuestLine(q *engine.Quest, now time.Time) string {
	status := Good.Render(fmt.Sprintf("%s left", q.ExpiresAt.Sub(now).Truncate(time.Minute)))
	if q.Expired(now) {
		status = Warn.Render("expired")
	}
	line := fmt.Sprintf("- %s [%s] %s: %s %d/%d %s",
		Key.Render(q.ID), q.Subject, q.Name, q.Description,
		q.Progress, q.Goal.Count, status)
	if q.Goal.MinAccuracy > 0 && q.Attempts > 0 {
		line += Muted.Render(fmt.Sprintf(" accuracy %.0f%% (target %.0f%%)", q.Accuracy()*100, q.Goal.MinAccuracy*100))
	}
	return line
}

func Chat(g *engine.Guild) string {
	var b strings.Builder
	fmt.Fprintln(&b, Heading(IconChat, "Guild Chat: "+g.Name))
	if len(g.ChatHistory) == 0 {
		fmt.Fprintln(&b, Muted.Render("No messages yet."))
	}
	for _, m := range g.ChatHistory {
		fmt.Fprintf(&b, "%s %s %s\n", Muted.Render(m.Timestamp.Format("01-02 15:04")), Key.Render(m.UserName+":"), m.Message)
	}
	return b.String()
}

// BattleSummary renders the end-of-battle recap.
func BattleSummary(res *engine.BattleResult) string {
	var b strings.Builder
	switch res.Outcome {
	case engine.OutcomeVictory:
		fmt.Fprintln(&b, Heading(IconTrophy, "Victory over "+res.Enemy.Name))
	default:
		fmt.Fprintln(&b, Heading(IconShield, "Escaped from "+res.Enemy.Name))
	}
	fmt.Fprintln(&b, LabelValue("Rounds", res.Rounds))
	fmt.Fprintln(&b, LabelValue("Correct", fmt.Sprintf("%d/%d", res.Correct, res.Answered)))
	fmt.Fprintln(&b, LabelValue("Damage", res.DamageDealt))
	fmt.Fprintln(&b, LabelValue("XP", res.XPGained))
	if res.LeveledUp() {
		fmt.Fprintf(&b, "%s %d → %d\n", BadgeLevelUp, res.LevelBefore, res.LevelAfter)
	}
	if res.Loot != nil {
		fmt.Fprintln(&b, LabelValue("Loot", res.Loot.Name))
	}
	return b.String()
}

func Achievements(list []engine.Achievement) string {
	var b strings.Builder
	earned := 0
	for _, a := range list {
		if a.Earned {
			earned++
		}
	}
	fmt.Fprintln(&b, Heading(IconTrophy, fmt.Sprintf("Achievements %d/%d", earned, len(list))))
	for _, a := range list {
		if a.Earned {
			fmt.Fprintf(&b, "%s %s %s\n", a.Icon, Good.Render(a.Name), Muted.Render(a.Description))
			continue
		}
		fmt.Fprintf(&b, "%s %s %s\n", Muted.Render("·"), Muted.Render(a.Name), Muted.Render(a.Description))
	}
	return b.String()
}

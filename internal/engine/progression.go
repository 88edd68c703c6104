package engine

import (
	"encoding/json"
	"errors"
	"strings"
)

// Player is the persisted character. Name doubles as the unique id.
type Player struct {
	Name      string
	Grade     Grade
	Level     int
	XP        int
	Traits    map[Subject]int
	Inventory Inventory
	Skills    []string
	// GuildID is a weak reference to a Guild by id; empty when guildless.
	GuildID string
}

// NewPlayer creates a level 1 player with zeroed traits.
func NewPlayer(name string, grade Grade) (*Player, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, errors.New("player name is required")
	}
	if !grade.IsValid() {
		return nil, errors.New("invalid grade: " + string(grade))
	}
	traits := make(map[Subject]int, len(Subjects))
	for _, s := range Subjects {
		traits[s] = 0
	}
	return &Player{
		Name:   n,
		Grade:  grade,
		Level:  1,
		Traits: traits,
	}, nil
}

// XPResult describes the effect of one GainXP call.
type XPResult struct {
	Amount      int
	TraitGain   int
	LevelBefore int
	LevelAfter  int
	LeveledUp   bool
	NewSkills   []string
}

// GainXP adds amount to the player's XP, accrues trait points for known
// subjects, and levels up as many times as the new total allows. Every
// level step re-runs the skill check.
func (p *Player) GainXP(amount int, subject Subject) XPResult {
	if amount < 0 {
		amount = 0
	}
	res := XPResult{Amount: amount, LevelBefore: p.Level}

	p.XP += amount
	if subject.IsValid() {
		if p.Traits == nil {
			p.Traits = map[Subject]int{}
		}
		res.TraitGain = amount / TraitDivisor
		p.Traits[subject] += res.TraitGain
	}

	for p.Level < MaxLevel && p.XP >= Threshold(p.Level+1) {
		p.Level++
		res.LeveledUp = true
		res.NewSkills = append(res.NewSkills, p.CheckSkillUnlocks()...)
	}

	res.LevelAfter = p.Level
	return res
}

// ProgressToNextLevel returns the percentage (0..100) of the way from the
// current level threshold to the next. Max level reports 100.
func (p *Player) ProgressToNextLevel() float64 {
	if p.Level >= MaxLevel {
		return 100
	}
	cur := Threshold(p.Level)
	next := Threshold(p.Level + 1)
	pct := float64(p.XP-cur) / float64(next-cur) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// XPToNextLevel returns how much XP is missing for the next level, or 0 at max level.
func (p *Player) XPToNextLevel() int {
	if p.Level >= MaxLevel {
		return 0
	}
	need := Threshold(p.Level+1) - p.XP
	if need < 0 {
		return 0
	}
	return need
}

type playerDoc struct {
	Name      string          `json:"name"`
	Grade     Grade           `json:"grade"`
	Level     int             `json:"level"`
	XP        int             `json:"xp"`
	Traits    map[Subject]int `json:"traits"`
	Inventory Inventory       `json:"inventory"`
	Skills    []string        `json:"skills"`
	GuildID   *string         `json:"guild_id"`
}

func (p *Player) MarshalJSON() ([]byte, error) {
	doc := playerDoc{
		Name:      p.Name,
		Grade:     p.Grade,
		Level:     p.Level,
		XP:        p.XP,
		Traits:    p.Traits,
		Inventory: p.Inventory,
		Skills:    p.Skills,
	}
	if doc.Inventory == nil {
		doc.Inventory = Inventory{}
	}
	if doc.Skills == nil {
		doc.Skills = []string{}
	}
	if p.GuildID != "" {
		id := p.GuildID
		doc.GuildID = &id
	}
	return json.Marshal(doc)
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var doc playerDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*p = Player{
		Name:      doc.Name,
		Grade:     doc.Grade,
		Level:     doc.Level,
		XP:        doc.XP,
		Traits:    doc.Traits,
		Inventory: doc.Inventory,
		Skills:    doc.Skills,
	}
	if p.Traits == nil {
		p.Traits = map[Subject]int{}
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if doc.GuildID != nil {
		p.GuildID = *doc.GuildID
	}
	return nil
}

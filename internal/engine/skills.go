package engine

// SkillDef gates a skill behind a player level and per-subject trait minimums.
type SkillDef struct {
	Name          string
	RequiredLevel int
	Traits        map[Subject]int
}

// skillTable is evaluated in order; unlock order follows it.
var skillTable = []SkillDef{
	{Name: "Math Mastery I", RequiredLevel: 5, Traits: map[Subject]int{SubjectMath: 50}},
	{Name: "Science Explorer", RequiredLevel: 5, Traits: map[Subject]int{SubjectScience: 50}},
	{Name: "History Buff", RequiredLevel: 5, Traits: map[Subject]int{SubjectHistory: 50}},
	{Name: "Language Expert", RequiredLevel: 5, Traits: map[Subject]int{SubjectLanguage: 50}},
	{Name: "Creative Genius", RequiredLevel: 5, Traits: map[Subject]int{SubjectArts: 50}},
	{Name: "Math Mastery II", RequiredLevel: 10, Traits: map[Subject]int{SubjectMath: 100}},
	{Name: "Scientific Method", RequiredLevel: 10, Traits: map[Subject]int{SubjectScience: 100}},
	{Name: "Historical Analysis", RequiredLevel: 10, Traits: map[Subject]int{SubjectHistory: 100}},
	{Name: "Linguistic Mastery", RequiredLevel: 10, Traits: map[Subject]int{SubjectLanguage: 100}},
	{Name: "Artistic Vision", RequiredLevel: 10, Traits: map[Subject]int{SubjectArts: 100}},
	{Name: "Math Prodigy", RequiredLevel: 20, Traits: map[Subject]int{SubjectMath: 200}},
	{Name: "Scientific Genius", RequiredLevel: 20, Traits: map[Subject]int{SubjectScience: 200}},
	{Name: "Historical Scholar", RequiredLevel: 20, Traits: map[Subject]int{SubjectHistory: 200}},
	{Name: "Polyglot", RequiredLevel: 20, Traits: map[Subject]int{SubjectLanguage: 200}},
	{Name: "Master Artist", RequiredLevel: 20, Traits: map[Subject]int{SubjectArts: 200}},
}

// SkillTable returns a copy of the skill definitions in evaluation order.
func SkillTable() []SkillDef {
	out := make([]SkillDef, len(skillTable))
	copy(out, skillTable)
	return out
}

func (d SkillDef) satisfiedBy(p *Player) bool {
	if p.Level < d.RequiredLevel {
		return false
	}
	for subject, min := range d.Traits {
		if p.Traits[subject] < min {
			return false
		}
	}
	return true
}

// CheckSkillUnlocks appends every newly qualifying skill to p.Skills and
// returns the names unlocked by this call. A skill unlocks at most once.
func (p *Player) CheckSkillUnlocks() []string {
	var unlocked []string
	for _, def := range skillTable {
		if p.HasSkill(def.Name) {
			continue
		}
		if !def.satisfiedBy(p) {
			continue
		}
		p.Skills = append(p.Skills, def.Name)
		unlocked = append(unlocked, def.Name)
	}
	return unlocked
}

func (p *Player) HasSkill(name string) bool {
	for _, s := range p.Skills {
		if s == name {
			return true
		}
	}
	return false
}

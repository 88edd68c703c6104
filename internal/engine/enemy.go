package engine

import (
	"errors"
	"fmt"
	"math"
)

// PoolSize is the number of questions an enemy carries into battle.
const PoolSize = 5

var (
	ErrNoQuestions    = errors.New("no questions available")
	ErrUnknownSubject = errors.New("no enemies for subject")
)

// Enemy lives for one battle.
type Enemy struct {
	Name       string
	Sprite     string
	Subject    Subject
	MaxHP      int
	HP         int
	Questions  []Question
	GradeLevel Grade
}

// IsDefeated reports whether hp has reached zero.
func (e *Enemy) IsDefeated() bool { return e.HP <= 0 }

// TakeDamage lowers HP without going below zero and returns the damage applied.
func (e *Enemy) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	actual := min(e.HP, amount)
	e.HP -= actual
	return actual
}

// RandomQuestion draws from the pool with replacement.
func (e *Enemy) RandomQuestion(rng Rand) (Question, error) {
	if len(e.Questions) == 0 {
		return Question{}, ErrNoQuestions
	}
	return e.Questions[rng.Intn(len(e.Questions))], nil
}

func (e *Enemy) HPPercent() float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return float64(e.HP) / float64(e.MaxHP) * 100
}

// EnemyTemplate builds enemies whose HP scales with player level.
type EnemyTemplate struct {
	Name     string
	Sprite   string
	BaseHP   int
	PerLevel float64
}

func (t EnemyTemplate) HPFor(level int) int {
	return int(math.Floor(float64(t.BaseHP) + float64(level)*t.PerLevel))
}

var enemyTemplates = map[Subject][]EnemyTemplate{
	SubjectMath: {
		{Name: "Polynomial Golem", Sprite: "🔥📐\n/()\\\n /\\", BaseHP: 100, PerLevel: 10},
		{Name: "Fraction Phantom", Sprite: "  👻\n /|\\\n/ | \\", BaseHP: 80, PerLevel: 8},
	},
	SubjectScience: {
		{Name: "Chemical Construct", Sprite: "⚗️ 🧪\n/|\\\n/ \\", BaseHP: 90, PerLevel: 9},
		{Name: "Physics Phantom", Sprite: "  ⚛️\n /|\\\n/ | \\", BaseHP: 85, PerLevel: 8.5},
	},
	SubjectHistory: {
		{Name: "Chronos Guardian", Sprite: "⏳ 📜\n/|\\\n/ \\", BaseHP: 95, PerLevel: 9.5},
		{Name: "Ancient Archivist", Sprite: "  📚\n /|\\\n/ | \\", BaseHP: 85, PerLevel: 8.5},
	},
	SubjectLanguage: {
		{Name: "Grammar Gremlin", Sprite: "  ✒️\n /|\\\n/ | \\", BaseHP: 85, PerLevel: 9},
		{Name: "Syntax Serpent", Sprite: "🐍 📖\n/|\\\n/ \\", BaseHP: 90, PerLevel: 8},
	},
}

// EnemySubjects lists, in display order, the subjects that have enemies.
func EnemySubjects() []Subject {
	var out []Subject
	for _, s := range Subjects {
		if len(enemyTemplates[s]) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// EnemyGenerator assembles enemies from templates and the question catalog.
type EnemyGenerator struct {
	catalog Catalog
	rng     Rand
}

func NewEnemyGenerator(catalog Catalog, rng Rand) *EnemyGenerator {
	return &EnemyGenerator{catalog: catalog, rng: rng}
}

// Generate builds an enemy for the player. An empty subject picks one of the
// battle subjects uniformly.
func (g *EnemyGenerator) Generate(p *Player, subject Subject) (*Enemy, error) {
	if subject == "" {
		subject = BattleSubjects[g.rng.Intn(len(BattleSubjects))]
	}
	templates := enemyTemplates[subject]
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubject, subject)
	}

	pool := g.questionPool(subject, p.Grade)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w for %s (grade %s)", ErrNoQuestions, subject, p.Grade)
	}

	t := templates[g.rng.Intn(len(templates))]
	hp := t.HPFor(p.Level)
	return &Enemy{
		Name:       t.Name,
		Sprite:     t.Sprite,
		Subject:    subject,
		MaxHP:      hp,
		HP:         hp,
		Questions:  pool,
		GradeLevel: p.Grade,
	}, nil
}

// questionPool takes the player's grade first, widens to every other grade
// when fewer than PoolSize exist, then samples up to PoolSize without
// replacement.
func (g *EnemyGenerator) questionPool(subject Subject, grade Grade) []Question {
	available := append([]Question(nil), g.catalog.Lookup(subject, grade)...)
	if len(available) < PoolSize {
		for _, other := range Grades {
			if other == grade {
				continue
			}
			available = append(available, g.catalog.Lookup(subject, other)...)
		}
	}
	if len(available) <= PoolSize {
		return available
	}
	picked := make([]Question, 0, PoolSize)
	for _, i := range sampleIndices(g.rng, len(available), PoolSize) {
		picked = append(picked, available[i])
	}
	return picked
}

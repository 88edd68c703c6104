package engine

import (
	"time"
)

const GoalAnswerQuestions = "answer_questions"

type Goal struct {
	Type        string  `json:"type"`
	Count       int     `json:"count"`
	Subject     Subject `json:"subject"`
	MinAccuracy float64 `json:"min_accuracy,omitempty"`
}

// Quest is a live guild objective. Active quests sit in Guild.Quests;
// completion moves them to Guild.CompletedQuests for good.
type Quest struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Subject     Subject    `json:"subject"`
	Goal        Goal       `json:"goal"`
	Progress    int        `json:"progress"`
	Attempts    int        `json:"attempts"`
	StartedAt   time.Time  `json:"started_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	XPReward    int        `json:"xp_reward"`
	ItemReward  Item       `json:"item_reward"`
	StartedBy   string     `json:"started_by"`
}

// Expired reports whether the time limit has passed. Nothing fails a quest on
// expiry; this is for display.
func (q *Quest) Expired(now time.Time) bool {
	return !q.ExpiresAt.IsZero() && now.After(q.ExpiresAt)
}

func (q *Quest) Completed() bool { return q.CompletedAt != nil }

// Accuracy is the share of counted answers that were correct.
func (q *Quest) Accuracy() float64 {
	if q.Attempts == 0 {
		return 0
	}
	return float64(q.Progress) / float64(q.Attempts)
}

// Covers reports whether an answer in subject counts toward this quest.
func (q *Quest) Covers(subject Subject) bool {
	return q.Subject == SubjectAll || q.Subject == subject
}

type QuestTemplate struct {
	Name        string
	Description string
	Subject     Subject
	Goal        Goal
	TimeLimit   time.Duration
	MinLevel    int
	XPReward    int
	ItemReward  Item
}

var questTemplates = []QuestTemplate{
	{
		Name:        "Math Marathon",
		Description: "Solve 50 math questions collectively",
		Subject:     SubjectMath,
		Goal:        Goal{Type: GoalAnswerQuestions, Count: 50, Subject: SubjectMath},
		TimeLimit:   24 * time.Hour,
		MinLevel:    1,
		XPReward:    500,
		ItemReward: Item{
			Name: "Advanced Calculator", Type: "tool", Subject: SubjectMath,
			Effect: Effect{TraitBonus: map[Subject]int{SubjectMath: 10}},
		},
	},
	{
		Name:        "Science Sprint",
		Description: "Answer 30 science questions with at least 80% accuracy",
		Subject:     SubjectScience,
		Goal:        Goal{Type: GoalAnswerQuestions, Count: 30, Subject: SubjectScience, MinAccuracy: 0.8},
		TimeLimit:   12 * time.Hour,
		MinLevel:    3,
		XPReward:    300,
		ItemReward: Item{
			Name: "Lab Equipment", Type: "tool", Subject: SubjectScience,
			Effect: Effect{TraitBonus: map[Subject]int{SubjectScience: 8}},
		},
	},
	{
		Name:        "Historical Hunt",
		Description: "Find answers to 20 historical questions",
		Subject:     SubjectHistory,
		Goal:        Goal{Type: GoalAnswerQuestions, Count: 20, Subject: SubjectHistory},
		TimeLimit:   48 * time.Hour,
		MinLevel:    2,
		XPReward:    400,
		ItemReward: Item{
			Name: "Ancient Artifact", Type: "tool", Subject: SubjectHistory,
			Effect: Effect{TraitBonus: map[Subject]int{SubjectHistory: 9}},
		},
	},
	{
		Name:        "Multi-Subject Challenge",
		Description: "Answer questions from all subjects",
		Subject:     SubjectAll,
		Goal:        Goal{Type: GoalAnswerQuestions, Count: 15, Subject: SubjectAll},
		TimeLimit:   24 * time.Hour,
		MinLevel:    5,
		XPReward:    600,
		ItemReward: Item{
			Name: "Knowledge Orb", Type: "artifact", Subject: SubjectAll,
			Effect: Effect{XPBonus: 0.1},
		},
	},
}

// QuestTemplates returns the quest catalog in menu order.
func QuestTemplates() []QuestTemplate {
	out := make([]QuestTemplate, len(questTemplates))
	copy(out, questTemplates)
	return out
}

// QuestTracker starts guild quests and advances their progress.
type QuestTracker struct {
	templates []QuestTemplate
	now       Clock
}

func NewQuestTracker(now Clock) *QuestTracker {
	if now == nil {
		now = systemClock
	}
	return &QuestTracker{templates: questTemplates, now: now}
}

func (t *QuestTracker) Templates() []QuestTemplate { return t.templates }

// Start instantiates template idx on the guild.
func (t *QuestTracker) Start(g *Guild, idx int, startedBy string) (*Quest, error) {
	if idx < 0 || idx >= len(t.templates) {
		return nil, ErrInvalidTemplate
	}
	tpl := t.templates[idx]
	if g.Level < tpl.MinLevel {
		return nil, GuildLevelError{Quest: tpl.Name, RequiredLevel: tpl.MinLevel, GuildLevel: g.Level}
	}

	now := t.now()
	q := &Quest{
		ID:          shortID(),
		Name:        tpl.Name,
		Description: tpl.Description,
		Subject:     tpl.Subject,
		Goal:        tpl.Goal,
		StartedAt:   now,
		ExpiresAt:   now.Add(tpl.TimeLimit),
		XPReward:    tpl.XPReward,
		ItemReward:  tpl.ItemReward,
		StartedBy:   startedBy,
	}
	g.AddQuest(q)
	return q, nil
}

// UpdateProgress adds amount to an active quest. Reaching the goal completes
// the quest and hands its item reward to recipient (when non-nil). It returns
// false when questID is not an active quest.
func (t *QuestTracker) UpdateProgress(g *Guild, questID string, amount int, recipient *Player) bool {
	q, ok := g.ActiveQuest(questID)
	if !ok {
		return false
	}
	if amount > 0 {
		q.Progress += amount
	}
	if q.Progress >= q.Goal.Count {
		t.complete(g, q, recipient)
	}
	return true
}

// RecordAnswer counts one answered question against every active quest that
// covers subject. Correct answers add one progress. It returns the quests
// this answer completed.
func (t *QuestTracker) RecordAnswer(g *Guild, subject Subject, correct bool, recipient *Player) []*Quest {
	var covered []*Quest
	for _, q := range g.Quests {
		if q.Covers(subject) {
			covered = append(covered, q)
		}
	}

	var done []*Quest
	for _, q := range covered {
		q.Attempts++
		if !correct {
			continue
		}
		q.Progress++
		if q.Progress >= q.Goal.Count {
			t.complete(g, q, recipient)
			done = append(done, q)
		}
	}
	return done
}

func (t *QuestTracker) complete(g *Guild, q *Quest, recipient *Player) {
	if _, ok := g.CompleteQuest(q.ID, t.now()); !ok {
		return
	}
	if recipient != nil {
		recipient.Inventory.Add(q.ItemReward)
	}
}

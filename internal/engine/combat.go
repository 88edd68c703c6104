package engine

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// AnswerWindow caps the elapsed time used for scoring.
	AnswerWindow = 30 * time.Second

	BaseScore           = 10
	DifficultyScoreStep = 5
	XPPerScorePoint     = 2
	VictoryXPDivisor    = 5
)

type BattleOutcome string

const (
	OutcomeVictory BattleOutcome = "victory"
	OutcomeFled    BattleOutcome = "fled"
)

const (
	actionAnswer = iota
	actionUseItem
	actionFlee
)

var battleActions = []string{"Answer a question (attack)", "Use an item", "Flee"}

// AnswerHook is called after every answered question.
type AnswerHook func(ctx context.Context, subject Subject, correct bool)

// BattleResult summarizes one finished battle.
type BattleResult struct {
	Outcome     BattleOutcome
	Enemy       *Enemy
	Rounds      int
	Answered    int
	Correct     int
	DamageDealt int
	XPGained    int
	LevelBefore int
	LevelAfter  int
	NewSkills   []string
	Loot        *Item
}

func (r *BattleResult) LeveledUp() bool { return r.LevelAfter > r.LevelBefore }

// Score grades one answer. Matching is case-insensitive on trimmed text;
// a wrong answer scores 0.
func Score(q Question, answer string, elapsed time.Duration) int {
	if !AnswerMatches(q, answer) {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > AnswerWindow {
		elapsed = AnswerWindow
	}
	timeFactor := max(0, 1-elapsed.Seconds()/AnswerWindow.Seconds())
	return int(float64(BaseScore) + float64(q.Difficulty)*DifficultyScoreStep*timeFactor)
}

func AnswerMatches(q Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	return strings.EqualFold(answer, strings.TrimSpace(q.Answer))
}

// Damage turns a score into damage: +0.5% per trait point, then +5% per
// level, each floored, never below 1.
func Damage(score, trait, level int) int {
	if trait < 0 {
		trait = 0
	}
	d := score * (200 + trait) / 200
	d = d * (20 + level) / 20
	return max(1, d)
}

// Resolver runs battles for one player.
type Resolver struct {
	player   *Player
	prompter Prompter
	rng      Rand
	now      Clock
	onAnswer AnswerHook
}

func NewResolver(p *Player, prompter Prompter, rng Rand, now Clock) *Resolver {
	if now == nil {
		now = systemClock
	}
	return &Resolver{player: p, prompter: prompter, rng: rng, now: now}
}

// OnAnswer registers the answered-question hook.
func (r *Resolver) OnAnswer(hook AnswerHook) { r.onAnswer = hook }

// Fight loops rounds until the enemy falls or the player flees. There is no
// defeat state.
func (r *Resolver) Fight(ctx context.Context, e *Enemy) (*BattleResult, error) {
	res := &BattleResult{Enemy: e, LevelBefore: r.player.Level}

	r.prompter.Notify(SeverityInfo, e.Sprite)
	r.prompter.Notify(SeverityWarn, fmt.Sprintf("A wild %s appears! (%s)", e.Name, e.Subject.Title()))

	for !e.IsDefeated() {
		res.Rounds++
		r.prompter.Notify(SeverityInfo, fmt.Sprintf("Round %d | %s HP %d/%d", res.Rounds, e.Name, e.HP, e.MaxHP))

		choice, err := r.prompter.Choose(ctx, "What will you do?", battleActions)
		if err != nil {
			return nil, err
		}

		switch choice {
		case actionAnswer:
			if err := r.answerRound(ctx, e, res); err != nil {
				return nil, err
			}
		case actionUseItem:
			if r.player.Inventory.IsEmpty() {
				r.prompter.Notify(SeverityWarn, "You don't have any items!")
			} else {
				r.prompter.Notify(SeverityWarn, "Items can't be used in battle yet.")
			}
		case actionFlee:
			ok, err := r.prompter.Confirm(ctx, "Are you sure you want to flee?")
			if err != nil {
				return nil, err
			}
			if ok {
				r.prompter.Notify(SeverityWarn, "You fled from battle!")
				res.Outcome = OutcomeFled
				res.LevelAfter = r.player.Level
				return res, nil
			}
		}
	}

	r.victory(e, res)
	return res, nil
}

func (r *Resolver) answerRound(ctx context.Context, e *Enemy, res *BattleResult) error {
	q, err := e.RandomQuestion(r.rng)
	if err != nil {
		return err
	}

	prompt := q.Prompt
	if len(q.Options) > 0 {
		prompt += "\n  " + strings.Join(q.Options, " | ")
	}
	start := r.now()
	answer, err := r.prompter.Text(ctx, prompt)
	if err != nil {
		return err
	}
	elapsed := r.now().Sub(start)

	res.Answered++
	score := Score(q, answer, elapsed)
	correct := score > 0

	if correct {
		res.Correct++
		r.prompter.Notify(SeveritySuccess, fmt.Sprintf("Correct! +%d points", score))
		xp := score * XPPerScorePoint
		r.applyXP(xp, e.Subject, res)
		r.prompter.Notify(SeveritySuccess, fmt.Sprintf("You gained %d XP in %s!", xp, e.Subject))

		dealt := e.TakeDamage(Damage(score, r.player.Traits[e.Subject], r.player.Level))
		res.DamageDealt += dealt
		r.prompter.Notify(SeveritySuccess, fmt.Sprintf("You dealt %d damage to %s!", dealt, e.Name))
	} else {
		msg := "Incorrect! The answer was: " + q.Answer
		if q.Explanation != "" {
			msg += "\n" + q.Explanation
		}
		r.prompter.Notify(SeverityError, msg)
		r.prompter.Notify(SeverityError, "Your attack missed!")
	}

	if r.onAnswer != nil {
		r.onAnswer(ctx, e.Subject, correct)
	}
	return nil
}

func (r *Resolver) applyXP(amount int, subject Subject, res *BattleResult) {
	gain := r.player.GainXP(amount, subject)
	res.XPGained += amount
	res.NewSkills = append(res.NewSkills, gain.NewSkills...)
	if gain.LeveledUp {
		r.prompter.Notify(SeveritySuccess, fmt.Sprintf("🎉 Level Up! You are now Level %d!", gain.LevelAfter))
	}
	for _, s := range gain.NewSkills {
		r.prompter.Notify(SeveritySuccess, "🔓 New Skill Unlocked: "+s)
	}
}

func (r *Resolver) victory(e *Enemy, res *BattleResult) {
	res.Outcome = OutcomeVictory
	r.prompter.Notify(SeveritySuccess, fmt.Sprintf("Victory! You defeated the %s!", e.Name))

	bonus := e.MaxHP / VictoryXPDivisor
	r.applyXP(bonus, e.Subject, res)
	r.prompter.Notify(SeveritySuccess, fmt.Sprintf("You gained %d XP!", bonus))

	if item, ok := RollLoot(r.rng, e.Subject); ok {
		r.player.Inventory.Add(item)
		res.Loot = &item
		r.prompter.Notify(SeveritySuccess, fmt.Sprintf("Added %s to your inventory!", item.Name))
	}
	res.LevelAfter = r.player.Level
}

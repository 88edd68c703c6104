package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"edurpg/internal/storage"
)

// Options carries the injectable collaborators of a Service. Zero values
// fall back to a time-seeded Rand, the system clock and a no-op logger.
type Options struct {
	Rand   Rand
	Clock  Clock
	Logger *zap.Logger
}

// Service binds the engine to storage, the question catalog and the UI.
// It belongs to a single interactive session.
type Service struct {
	players  storage.Collection
	guilds   storage.Collection
	catalog  Catalog
	prompter Prompter
	rng      Rand
	now      Clock
	quests   *QuestTracker
	log      *zap.Logger
}

func NewService(store storage.Store, catalog Catalog, prompter Prompter, opts Options) *Service {
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}
	if opts.Clock == nil {
		opts.Clock = systemClock
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		players:  store.Collection(storage.Players),
		guilds:   store.Collection(storage.Guilds),
		catalog:  catalog,
		prompter: prompter,
		rng:      opts.Rand,
		now:      opts.Clock,
		quests:   NewQuestTracker(opts.Clock),
		log:      opts.Logger,
	}
}

func (s *Service) Prompter() Prompter { return s.prompter }

func (s *Service) QuestTemplates() []QuestTemplate { return s.quests.Templates() }

// persistFailed logs and reports a storage failure. In-memory state is left
// as it is.
func (s *Service) persistFailed(op string, err error, fields ...zap.Field) error {
	s.log.Error(op+" failed", append(fields, zap.Error(err))...)
	s.prompter.Notify(SeverityError, fmt.Sprintf("Error during %s: %v", op, err))
	return fmt.Errorf("%s: %w", op, err)
}

// NewPlayer creates and saves a fresh level 1 player.
func (s *Service) NewPlayer(ctx context.Context, name string, grade Grade) (*Player, error) {
	p, err := NewPlayer(name, grade)
	if err != nil {
		return nil, err
	}
	if _, err := s.players.Get(ctx, p.Name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlayerExists, p.Name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, s.persistFailed("load player", err, zap.String("player", p.Name))
	}
	if err := s.SavePlayer(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("player created", zap.String("player", p.Name), zap.String("grade", string(p.Grade)))
	return p, nil
}

func (s *Service) LoadPlayer(ctx context.Context, name string) (*Player, error) {
	b, err := s.players.Get(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	if err != nil {
		return nil, s.persistFailed("load player", err, zap.String("player", name))
	}
	var p Player
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, s.persistFailed("decode player", err, zap.String("player", name))
	}
	// level is derived from xp; repair documents edited by hand
	if lvl := LevelForXP(p.XP); lvl > p.Level {
		p.Level = lvl
	}
	return &p, nil
}

func (s *Service) SavePlayer(ctx context.Context, p *Player) error {
	b, err := json.Marshal(p)
	if err != nil {
		return s.persistFailed("encode player", err, zap.String("player", p.Name))
	}
	if err := s.players.Put(ctx, p.Name, b); err != nil {
		return s.persistFailed("save player", err, zap.String("player", p.Name))
	}
	s.log.Debug("player saved", zap.String("player", p.Name), zap.Int("level", p.Level), zap.Int("xp", p.XP))
	return nil
}

func (s *Service) ListPlayers(ctx context.Context) ([]string, error) {
	ids, err := s.players.List(ctx)
	if err != nil {
		return nil, s.persistFailed("list players", err)
	}
	return ids, nil
}

// DeletePlayer removes a saved player. A guild leader's guild is deleted with
// them; a plain member is removed from their guild first.
func (s *Service) DeletePlayer(ctx context.Context, name string) error {
	p, err := s.LoadPlayer(ctx, name)
	if err != nil {
		return err
	}
	if p.GuildID != "" {
		g, err := s.GetGuild(ctx, p.GuildID)
		switch {
		case errors.Is(err, ErrGuildNotFound):
		case err != nil:
			return err
		case g.LeaderID == p.Name:
			if err := s.deleteGuild(ctx, g); err != nil {
				return err
			}
		default:
			g.RemoveMember(p.Name)
			if err := s.saveGuild(ctx, g); err != nil {
				return err
			}
		}
	}
	if err := s.players.Delete(ctx, name); err != nil {
		return s.persistFailed("delete player", err, zap.String("player", name))
	}
	s.log.Info("player deleted", zap.String("player", name))
	return nil
}

// Battle generates an enemy for p, fights it, and saves the player. Answers
// count toward the player's guild quests as they happen.
func (s *Service) Battle(ctx context.Context, p *Player, subject Subject) (*BattleResult, error) {
	enemy, err := NewEnemyGenerator(s.catalog, s.rng).Generate(p, subject)
	if err != nil {
		return nil, err
	}

	r := NewResolver(p, s.prompter, s.rng, s.now)
	r.OnAnswer(func(ctx context.Context, subj Subject, correct bool) {
		s.recordAnswer(ctx, p, subj, correct)
	})

	res, err := r.Fight(ctx, enemy)
	if err != nil {
		return nil, err
	}

	s.log.Info("battle finished",
		zap.String("player", p.Name),
		zap.String("enemy", enemy.Name),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("rounds", res.Rounds),
		zap.Int("xp", res.XPGained))
	if res.LeveledUp() {
		s.log.Info("level up", zap.String("player", p.Name), zap.Int("level", res.LevelAfter))
	}

	if err := s.SavePlayer(ctx, p); err != nil {
		return res, err
	}
	return res, nil
}

// recordAnswer feeds one answered question to the player's guild quests.
// Failures are reported but never stop the battle.
func (s *Service) recordAnswer(ctx context.Context, p *Player, subject Subject, correct bool) {
	if p.GuildID == "" {
		return
	}
	g, err := s.GetGuild(ctx, p.GuildID)
	if err != nil {
		s.log.Warn("quest progress skipped", zap.String("guild", p.GuildID), zap.Error(err))
		return
	}
	covered := false
	for _, q := range g.Quests {
		if q.Covers(subject) {
			covered = true
			break
		}
	}
	if !covered {
		return
	}

	done := s.quests.RecordAnswer(g, subject, correct, p)
	for _, q := range done {
		s.log.Info("quest completed", zap.String("guild", g.ID), zap.String("quest", q.Name), zap.String("player", p.Name))
		s.prompter.Notify(SeveritySuccess, fmt.Sprintf("Quest '%s' completed! Reward: %s", q.Name, q.ItemReward.Name))
	}
	// Save errors are already logged and shown by persistFailed.
	if err := s.saveGuild(ctx, g); err != nil || len(done) == 0 {
		return
	}
	// A completed quest is archived for good, so its reward is saved now
	// rather than when the battle ends.
	if err := s.SavePlayer(ctx, p); err != nil {
		s.log.Debug("quest reward held until the next save", zap.String("player", p.Name))
	}
}

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"edurpg/internal/storage"
)

func (s *Service) GetGuild(ctx context.Context, id string) (*Guild, error) {
	b, err := s.guilds.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGuildNotFound, id)
	}
	if err != nil {
		return nil, s.persistFailed("load guild", err, zap.String("guild", id))
	}
	var g Guild
	if err := json.Unmarshal(b, &g); err != nil {
		return nil, s.persistFailed("decode guild", err, zap.String("guild", id))
	}
	if g.Members == nil {
		g.Members = map[string]string{}
	}
	return &g, nil
}

func (s *Service) saveGuild(ctx context.Context, g *Guild) error {
	b, err := json.Marshal(g)
	if err != nil {
		return s.persistFailed("encode guild", err, zap.String("guild", g.ID))
	}
	if err := s.guilds.Put(ctx, g.ID, b); err != nil {
		return s.persistFailed("save guild", err, zap.String("guild", g.ID))
	}
	return nil
}

// ListGuilds returns every stored guild ordered by name.
func (s *Service) ListGuilds(ctx context.Context) ([]*Guild, error) {
	ids, err := s.guilds.List(ctx)
	if err != nil {
		return nil, s.persistFailed("list guilds", err)
	}
	out := make([]*Guild, 0, len(ids))
	for _, id := range ids {
		g, err := s.GetGuild(ctx, id)
		if errors.Is(err, ErrGuildNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateGuild founds a guild with p as leader.
func (s *Service) CreateGuild(ctx context.Context, p *Player, name, description string) (*Guild, error) {
	if p.GuildID != "" {
		return nil, ErrAlreadyInGuild
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("guild name is required")
	}

	g := NewGuild(name, strings.TrimSpace(description), p.Name, s.now())
	if err := s.saveGuild(ctx, g); err != nil {
		return nil, err
	}
	p.GuildID = g.ID
	if err := s.SavePlayer(ctx, p); err != nil {
		return g, err
	}
	s.log.Info("guild created", zap.String("guild", g.ID), zap.String("name", g.Name), zap.String("leader", p.Name))
	return g, nil
}

func (s *Service) JoinGuild(ctx context.Context, p *Player, guildID string) (*Guild, error) {
	g, err := s.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if p.GuildID != "" {
		return nil, ErrAlreadyInGuild
	}
	if !g.AddMember(p.Name, RoleMember) {
		return nil, ErrAlreadyMember
	}
	if err := s.saveGuild(ctx, g); err != nil {
		return nil, err
	}
	p.GuildID = g.ID
	if err := s.SavePlayer(ctx, p); err != nil {
		return g, err
	}
	s.log.Info("guild joined", zap.String("guild", g.ID), zap.String("player", p.Name))
	return g, nil
}

// LeaveGuild takes p out of their guild. When p leads it, the guild is
// deleted after confirmation and every member loses their guild reference.
// It reports whether the guild was deleted.
func (s *Service) LeaveGuild(ctx context.Context, p *Player) (bool, error) {
	if p.GuildID == "" {
		return false, ErrNotInGuild
	}
	g, err := s.GetGuild(ctx, p.GuildID)
	if errors.Is(err, ErrGuildNotFound) {
		// dangling reference
		p.GuildID = ""
		return false, s.SavePlayer(ctx, p)
	}
	if err != nil {
		return false, err
	}

	if g.LeaderID == p.Name {
		ok, err := s.prompter.Confirm(ctx, "You are the leader of this guild. Leaving will delete the guild. Are you sure?")
		if err != nil {
			return false, err
		}
		if !ok {
			return false, ErrLeaveCancelled
		}
		if err := s.deleteGuild(ctx, g); err != nil {
			return false, err
		}
		p.GuildID = ""
		return true, s.SavePlayer(ctx, p)
	}

	g.RemoveMember(p.Name)
	if err := s.saveGuild(ctx, g); err != nil {
		return false, err
	}
	p.GuildID = ""
	s.log.Info("guild left", zap.String("guild", g.ID), zap.String("player", p.Name))
	return false, s.SavePlayer(ctx, p)
}

// deleteGuild clears guild_id on every member that still points at g, then
// removes the guild document.
func (s *Service) deleteGuild(ctx context.Context, g *Guild) error {
	for _, member := range g.MemberIDs() {
		mp, err := s.LoadPlayer(ctx, member)
		if errors.Is(err, ErrPlayerNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if mp.GuildID != g.ID {
			continue
		}
		mp.GuildID = ""
		if err := s.SavePlayer(ctx, mp); err != nil {
			return err
		}
	}
	if err := s.guilds.Delete(ctx, g.ID); err != nil {
		return s.persistFailed("delete guild", err, zap.String("guild", g.ID))
	}
	s.log.Info("guild deleted", zap.String("guild", g.ID), zap.Int("members", len(g.Members)))
	return nil
}

func (s *Service) playerGuild(ctx context.Context, p *Player) (*Guild, error) {
	if p.GuildID == "" {
		return nil, ErrNotInGuild
	}
	return s.GetGuild(ctx, p.GuildID)
}

// SendChat posts a message to the player's guild chat.
func (s *Service) SendChat(ctx context.Context, p *Player, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return errors.New("message is empty")
	}
	g, err := s.playerGuild(ctx, p)
	if err != nil {
		return err
	}
	g.AddChatMessage(p.Name, p.Name, message, s.now())
	return s.saveGuild(ctx, g)
}

// StartQuest starts template idx on the player's guild.
func (s *Service) StartQuest(ctx context.Context, p *Player, idx int) (*Quest, error) {
	g, err := s.playerGuild(ctx, p)
	if err != nil {
		return nil, err
	}
	q, err := s.quests.Start(g, idx, p.Name)
	if err != nil {
		return nil, err
	}
	if err := s.saveGuild(ctx, g); err != nil {
		return q, err
	}
	s.log.Info("quest started", zap.String("guild", g.ID), zap.String("quest", q.Name), zap.String("by", p.Name))
	return q, nil
}

// UpdateQuestProgress adds progress to one of the guild's active quests. It
// returns false when the player has no guild or the quest is not active.
func (s *Service) UpdateQuestProgress(ctx context.Context, p *Player, questID string, amount int) (bool, error) {
	if p.GuildID == "" {
		return false, nil
	}
	g, err := s.GetGuild(ctx, p.GuildID)
	if errors.Is(err, ErrGuildNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	before := len(g.CompletedQuests)
	if !s.quests.UpdateProgress(g, questID, amount, p) {
		return false, nil
	}
	if err := s.saveGuild(ctx, g); err != nil {
		return true, err
	}
	if len(g.CompletedQuests) > before {
		q := g.CompletedQuests[len(g.CompletedQuests)-1]
		s.log.Info("quest completed", zap.String("guild", g.ID), zap.String("quest", q.Name), zap.String("player", p.Name))
		s.prompter.Notify(SeveritySuccess, fmt.Sprintf("Quest '%s' completed! Reward: %s", q.Name, q.ItemReward.Name))
		// the item reward went into p's inventory
		if err := s.SavePlayer(ctx, p); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Achievements evaluates the player's badges. A dangling guild reference
// counts as guildless.
func (s *Service) Achievements(ctx context.Context, p *Player) ([]Achievement, error) {
	var g *Guild
	if p.GuildID != "" {
		found, err := s.GetGuild(ctx, p.GuildID)
		if err != nil && !errors.Is(err, ErrGuildNotFound) {
			return nil, err
		}
		g = found
	}
	return NewAchievementChecker(p, g).GetAchievements(), nil
}

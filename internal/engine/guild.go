package engine

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	RoleLeader = "Leader"
	RoleMember = "Member"

	MaxGuildLevel    = 50
	GuildLevelXPStep = 1000
	ChatHistoryLimit = 100
)

type ChatMessage struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Guild members are keyed by player name; the leader is always a member.
type Guild struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	LeaderID        string            `json:"leader_id"`
	Members         map[string]string `json:"members"`
	Quests          []*Quest          `json:"quests"`
	CompletedQuests []*Quest          `json:"completed_quests"`
	ChatHistory     []ChatMessage     `json:"chat_history"`
	CreatedAt       time.Time         `json:"created_at"`
	XP              int               `json:"xp"`
	Level           int               `json:"level"`
}

// shortID returns the first eight characters of a random UUID.
func shortID() string {
	return uuid.NewString()[:8]
}

func NewGuild(name, description, leaderID string, now time.Time) *Guild {
	return &Guild{
		ID:              shortID(),
		Name:            name,
		Description:     description,
		LeaderID:        leaderID,
		Members:         map[string]string{leaderID: RoleLeader},
		Quests:          []*Quest{},
		CompletedQuests: []*Quest{},
		ChatHistory:     []ChatMessage{},
		CreatedAt:       now,
		Level:           1,
	}
}

// AddMember returns false when the user is already a member.
func (g *Guild) AddMember(userID, role string) bool {
	if _, ok := g.Members[userID]; ok {
		return false
	}
	if role == "" {
		role = RoleMember
	}
	if g.Members == nil {
		g.Members = map[string]string{}
	}
	g.Members[userID] = role
	return true
}

// RemoveMember refuses absent users and the leader; the leader goes only
// when the guild is deleted.
func (g *Guild) RemoveMember(userID string) bool {
	if _, ok := g.Members[userID]; !ok || userID == g.LeaderID {
		return false
	}
	delete(g.Members, userID)
	return true
}

func (g *Guild) ChangeRole(userID, role string) bool {
	if _, ok := g.Members[userID]; !ok {
		return false
	}
	g.Members[userID] = role
	return true
}

func (g *Guild) IsMember(userID string) bool {
	_, ok := g.Members[userID]
	return ok
}

// MemberIDs returns member ids with the leader first, the rest sorted.
func (g *Guild) MemberIDs() []string {
	ids := make([]string, 0, len(g.Members))
	ids = append(ids, g.LeaderID)
	rest := make([]string, 0, len(g.Members))
	for id := range g.Members {
		if id != g.LeaderID {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(ids, rest...)
}

// NextLevelXP is the cumulative XP the guild needs for its next level.
func (g *Guild) NextLevelXP() int { return g.Level * GuildLevelXPStep }

// GainXP adds XP and checks for a level-up once. A large grant can leave the
// guild several levels behind its XP until later grants catch it up.
func (g *Guild) GainXP(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	g.XP += amount
	if g.Level < MaxGuildLevel && g.XP >= g.NextLevelXP() {
		g.Level++
		return true
	}
	return false
}

// AddChatMessage appends a message and keeps the newest ChatHistoryLimit.
func (g *Guild) AddChatMessage(userID, userName, message string, at time.Time) {
	g.ChatHistory = append(g.ChatHistory, ChatMessage{
		UserID:    userID,
		UserName:  userName,
		Message:   message,
		Timestamp: at,
	})
	if n := len(g.ChatHistory); n > ChatHistoryLimit {
		g.ChatHistory = append([]ChatMessage(nil), g.ChatHistory[n-ChatHistoryLimit:]...)
	}
}

func (g *Guild) AddQuest(q *Quest) {
	g.Quests = append(g.Quests, q)
}

// ActiveQuest finds a quest in the active list.
func (g *Guild) ActiveQuest(questID string) (*Quest, bool) {
	for _, q := range g.Quests {
		if q.ID == questID {
			return q, true
		}
	}
	return nil, false
}

// CompleteQuest moves an active quest to the archive, stamps it and awards
// its XP to the guild. It returns false when the quest is not active.
func (g *Guild) CompleteQuest(questID string, now time.Time) (*Quest, bool) {
	for i, q := range g.Quests {
		if q.ID != questID {
			continue
		}
		g.Quests = append(g.Quests[:i:i], g.Quests[i+1:]...)
		completed := now
		q.CompletedAt = &completed
		g.CompletedQuests = append(g.CompletedQuests, q)
		g.GainXP(q.XPReward)
		return q, true
	}
	return nil, false
}

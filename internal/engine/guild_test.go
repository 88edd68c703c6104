package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuildLeaderIsMember(t *testing.T) {
	g := NewGuild("Owls", "night study", "Ada", epoch)

	assert.Len(t, g.ID, 8)
	assert.Equal(t, 1, g.Level)
	assert.Equal(t, RoleLeader, g.Members["Ada"])
	assert.True(t, g.IsMember("Ada"))
	assert.Equal(t, epoch, g.CreatedAt)
}

func TestGuildMembership(t *testing.T) {
	g := NewGuild("Owls", "", "Ada", epoch)

	assert.True(t, g.AddMember("Zed", ""))
	assert.True(t, g.AddMember("Bob", RoleMember))
	assert.False(t, g.AddMember("Bob", RoleMember))
	assert.Equal(t, RoleMember, g.Members["Zed"])
	assert.Equal(t, []string{"Ada", "Bob", "Zed"}, g.MemberIDs())

	assert.False(t, g.RemoveMember("Ada"), "leader cannot be removed")
	assert.False(t, g.RemoveMember("Nobody"))
	assert.True(t, g.RemoveMember("Bob"))
	assert.False(t, g.IsMember("Bob"))

	assert.True(t, g.ChangeRole("Zed", "Officer"))
	assert.False(t, g.ChangeRole("Bob", "Officer"))
	assert.Equal(t, "Officer", g.Members["Zed"])
}

func TestGuildLevelsOncePerGrant(t *testing.T) {
	g := NewGuild("Owls", "", "Ada", epoch)
	g.Level = 2

	assert.Equal(t, 2000, g.NextLevelXP())
	assert.True(t, g.GainXP(2500))
	assert.Equal(t, 2500, g.XP)
	assert.Equal(t, 3, g.Level)

	g = NewGuild("Owls", "", "Ada", epoch)
	assert.True(t, g.GainXP(5000))
	assert.Equal(t, 2, g.Level, "a single grant levels at most once")
	assert.True(t, g.GainXP(0))
	assert.Equal(t, 3, g.Level)
	assert.True(t, g.GainXP(-10))
	assert.Equal(t, 5000, g.XP)
	assert.Equal(t, 4, g.Level)
}

func TestGuildChatKeepsNewest(t *testing.T) {
	g := NewGuild("Owls", "", "Ada", epoch)
	for i := 0; i < ChatHistoryLimit+25; i++ {
		g.AddChatMessage("Ada", "Ada", fmt.Sprintf("msg %d", i), epoch.Add(time.Duration(i)*time.Second))
		require.LessOrEqual(t, len(g.ChatHistory), ChatHistoryLimit)
	}

	assert.Len(t, g.ChatHistory, ChatHistoryLimit)
	assert.Equal(t, "msg 25", g.ChatHistory[0].Message)
	assert.Equal(t, fmt.Sprintf("msg %d", ChatHistoryLimit+24), g.ChatHistory[ChatHistoryLimit-1].Message)
}

func TestQuestStartChecksGuildLevel(t *testing.T) {
	tracker := NewQuestTracker(fixedClock)
	g := NewGuild("Owls", "", "Ada", epoch)

	_, err := tracker.Start(g, 1, "Ada")
	var lvl GuildLevelError
	require.True(t, errors.As(err, &lvl))
	assert.Equal(t, 3, lvl.RequiredLevel)
	assert.Equal(t, 1, lvl.GuildLevel)

	_, err = tracker.Start(g, 9, "Ada")
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	q, err := tracker.Start(g, 0, "Ada")
	require.NoError(t, err)
	assert.Equal(t, "Math Marathon", q.Name)
	assert.Equal(t, epoch.Add(24*time.Hour), q.ExpiresAt)
	assert.Equal(t, "Ada", q.StartedBy)
	assert.Len(t, g.Quests, 1)
	assert.False(t, q.Expired(epoch.Add(time.Hour)))
	assert.True(t, q.Expired(epoch.Add(25*time.Hour)))
}

func TestQuestCompletionIsOneWay(t *testing.T) {
	tracker := NewQuestTracker(fixedClock)
	g := NewGuild("Owls", "", "Ada", epoch)
	p, err := NewPlayer("Ada", "5")
	require.NoError(t, err)

	q, err := tracker.Start(g, 0, "Ada")
	require.NoError(t, err)

	assert.True(t, tracker.UpdateProgress(g, q.ID, 20, p))
	assert.True(t, tracker.UpdateProgress(g, q.ID, -5, p))
	assert.Equal(t, 20, q.Progress)
	assert.True(t, tracker.UpdateProgress(g, q.ID, 30, p))

	assert.True(t, q.Completed())
	assert.Equal(t, epoch, *q.CompletedAt)
	assert.Empty(t, g.Quests)
	assert.Len(t, g.CompletedQuests, 1)
	assert.Equal(t, 500, g.XP)
	assert.Equal(t, 1, p.Inventory.Count("Advanced Calculator"))

	assert.False(t, tracker.UpdateProgress(g, q.ID, 1, p))
	_, ok := g.ActiveQuest(q.ID)
	assert.False(t, ok)
}

func TestRecordAnswerCountsCoveredQuests(t *testing.T) {
	tracker := NewQuestTracker(fixedClock)
	g := NewGuild("Owls", "", "Ada", epoch)
	g.Level = 5
	p, err := NewPlayer("Ada", "5")
	require.NoError(t, err)

	math, err := tracker.Start(g, 0, "Ada")
	require.NoError(t, err)
	all, err := tracker.Start(g, 3, "Ada")
	require.NoError(t, err)
	hist, err := tracker.Start(g, 2, "Ada")
	require.NoError(t, err)

	assert.Empty(t, tracker.RecordAnswer(g, SubjectMath, false, p))
	assert.Empty(t, tracker.RecordAnswer(g, SubjectMath, true, p))

	assert.Equal(t, 2, math.Attempts)
	assert.Equal(t, 1, math.Progress)
	assert.InDelta(t, 0.5, math.Accuracy(), 0.001)
	assert.Equal(t, 2, all.Attempts)
	assert.Equal(t, 1, all.Progress)
	assert.Equal(t, 0, hist.Attempts)

	all.Progress = all.Goal.Count - 1
	done := tracker.RecordAnswer(g, SubjectScience, true, p)
	require.Len(t, done, 1)
	assert.Equal(t, all.ID, done[0].ID)
	assert.Equal(t, 1, p.Inventory.Count("Knowledge Orb"))
	assert.Len(t, g.Quests, 2)
}

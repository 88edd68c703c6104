package engine

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServicePlayerLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &scriptPrompter{})

	mustPlayer(t, svc, "Zoe")
	p := mustPlayer(t, svc, "Ada")

	_, err := svc.NewPlayer(ctx, "Ada", "7")
	assert.ErrorIs(t, err, ErrPlayerExists)

	names, err := svc.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Zoe"}, names)

	p.GainXP(160, SubjectMath)
	require.NoError(t, svc.SavePlayer(ctx, p))
	got, err := svc.LoadPlayer(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, 16, got.Traits[SubjectMath])

	require.NoError(t, svc.DeletePlayer(ctx, "Ada"))
	_, err = svc.LoadPlayer(ctx, "Ada")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestServiceGuildMembership(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &scriptPrompter{})
	ada := mustPlayer(t, svc, "Ada")
	bob := mustPlayer(t, svc, "Bob")

	_, err := svc.JoinGuild(ctx, bob, "missing")
	assert.ErrorIs(t, err, ErrGuildNotFound)

	g, err := svc.CreateGuild(ctx, ada, "Owls", "night study")
	require.NoError(t, err)
	assert.Equal(t, g.ID, ada.GuildID)

	_, err = svc.CreateGuild(ctx, ada, "Larks", "")
	assert.ErrorIs(t, err, ErrAlreadyInGuild)

	_, err = svc.JoinGuild(ctx, bob, g.ID)
	require.NoError(t, err)
	_, err = svc.JoinGuild(ctx, bob, g.ID)
	assert.ErrorIs(t, err, ErrAlreadyInGuild)

	guilds, err := svc.ListGuilds(ctx)
	require.NoError(t, err)
	require.Len(t, guilds, 1)
	assert.Equal(t, []string{"Ada", "Bob"}, guilds[0].MemberIDs())

	deleted, err := svc.LeaveGuild(ctx, bob)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, bob.GuildID)

	stored, err := svc.GetGuild(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsMember("Bob"))

	_, err = svc.LeaveGuild(ctx, bob)
	assert.ErrorIs(t, err, ErrNotInGuild)
}

func TestServiceLeaderLeaveCascades(t *testing.T) {
	ctx := context.Background()
	prompter := &scriptPrompter{confirms: []bool{false, true}}
	svc := newTestService(t, prompter)
	ada := mustPlayer(t, svc, "Ada")
	bob := mustPlayer(t, svc, "Bob")

	g, err := svc.CreateGuild(ctx, ada, "Owls", "")
	require.NoError(t, err)
	_, err = svc.JoinGuild(ctx, bob, g.ID)
	require.NoError(t, err)

	_, err = svc.LeaveGuild(ctx, ada)
	assert.ErrorIs(t, err, ErrLeaveCancelled)
	assert.Equal(t, g.ID, ada.GuildID)

	deleted, err := svc.LeaveGuild(ctx, ada)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, ada.GuildID)

	_, err = svc.GetGuild(ctx, g.ID)
	assert.ErrorIs(t, err, ErrGuildNotFound)

	reloaded, err := svc.LoadPlayer(ctx, "Bob")
	require.NoError(t, err)
	assert.Empty(t, reloaded.GuildID)
}

func TestServiceDeletePlayerInGuild(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &scriptPrompter{})
	ada := mustPlayer(t, svc, "Ada")
	bob := mustPlayer(t, svc, "Bob")

	g, err := svc.CreateGuild(ctx, ada, "Owls", "")
	require.NoError(t, err)
	_, err = svc.JoinGuild(ctx, bob, g.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlayer(ctx, "Bob"))
	stored, err := svc.GetGuild(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsMember("Bob"))

	require.NoError(t, svc.DeletePlayer(ctx, "Ada"))
	_, err = svc.GetGuild(ctx, g.ID)
	assert.ErrorIs(t, err, ErrGuildNotFound)
}

func TestServiceQuestProgressAndChat(t *testing.T) {
	ctx := context.Background()
	prompter := &scriptPrompter{}
	svc := newTestService(t, prompter)
	ada := mustPlayer(t, svc, "Ada")

	ok, err := svc.UpdateQuestProgress(ctx, ada, "nope", 1)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = svc.StartQuest(ctx, ada, 0)
	assert.ErrorIs(t, err, ErrNotInGuild)

	g, err := svc.CreateGuild(ctx, ada, "Owls", "")
	require.NoError(t, err)

	_, err = svc.StartQuest(ctx, ada, 3)
	var lvl GuildLevelError
	assert.ErrorAs(t, err, &lvl)

	q, err := svc.StartQuest(ctx, ada, 0)
	require.NoError(t, err)

	ok, err = svc.UpdateQuestProgress(ctx, ada, q.ID, q.Goal.Count)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, prompter.notes, "Quest 'Math Marathon' completed! Reward: Advanced Calculator")

	ok, err = svc.UpdateQuestProgress(ctx, ada, q.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := svc.LoadPlayer(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Inventory.Count("Advanced Calculator"))

	require.NoError(t, svc.SendChat(ctx, ada, "hello owls"))
	assert.Error(t, svc.SendChat(ctx, ada, "   "))

	stored, err := svc.GetGuild(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, stored.XP)
	require.Len(t, stored.ChatHistory, 1)
	assert.Equal(t, "hello owls", stored.ChatHistory[0].Message)
	assert.Equal(t, epoch, stored.ChatHistory[0].Timestamp)

	list, err := svc.Achievements(ctx, ada)
	require.NoError(t, err)
	earned := map[string]bool{}
	for _, a := range list {
		earned[a.ID] = a.Earned
	}
	assert.True(t, earned["guild_leader"])
	assert.True(t, earned["quest_done"])
	assert.True(t, earned["collector"])
	assert.False(t, earned["first_steps"])
}

func TestServiceBattleAdvancesGuildQuest(t *testing.T) {
	ctx := context.Background()
	prompter := &scriptPrompter{}
	svc := newTestService(t, prompter)
	ada := mustPlayer(t, svc, "Ada")

	g, err := svc.CreateGuild(ctx, ada, "Owls", "")
	require.NoError(t, err)
	q, err := svc.StartQuest(ctx, ada, 0)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		prompter.choices = append(prompter.choices, actionAnswer)
		prompter.texts = append(prompter.texts, "4")
	}

	res, err := svc.Battle(ctx, ada, SubjectMath)
	require.NoError(t, err)
	assert.Equal(t, OutcomeVictory, res.Outcome)
	assert.Equal(t, "Polynomial Golem", res.Enemy.Name)
	assert.Equal(t, 4, res.Correct)
	assert.Equal(t, 222, res.XPGained)
	assert.True(t, res.LeveledUp())

	stored, err := svc.GetGuild(ctx, g.ID)
	require.NoError(t, err)
	active, ok := stored.ActiveQuest(q.ID)
	require.True(t, ok)
	assert.Equal(t, 4, active.Progress)
	assert.Equal(t, 4, active.Attempts)

	reloaded, err := svc.LoadPlayer(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, 222, reloaded.XP)
	assert.Equal(t, 2, reloaded.Level)
}

func TestServiceQuestRewardSurvivesInterruptedBattle(t *testing.T) {
	ctx := context.Background()
	prompter := &scriptPrompter{}
	svc := newTestService(t, prompter)
	ada := mustPlayer(t, svc, "Ada")

	g, err := svc.CreateGuild(ctx, ada, "Owls", "")
	require.NoError(t, err)
	q, err := svc.StartQuest(ctx, ada, 0)
	require.NoError(t, err)
	_, err = svc.UpdateQuestProgress(ctx, ada, q.ID, q.Goal.Count-1)
	require.NoError(t, err)

	// one correct answer finishes the quest, then input ends mid-battle
	prompter.choices = []int{actionAnswer}
	prompter.texts = []string{"4"}

	_, err = svc.Battle(ctx, ada, SubjectMath)
	require.ErrorIs(t, err, io.EOF)

	stored, err := svc.GetGuild(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Quests)
	require.Len(t, stored.CompletedQuests, 1)

	reloaded, err := svc.LoadPlayer(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Inventory.Count("Advanced Calculator"))
}

func TestServiceBattleUnknownSubject(t *testing.T) {
	svc := newTestService(t, &scriptPrompter{})
	ada := mustPlayer(t, svc, "Ada")

	_, err := svc.Battle(context.Background(), ada, SubjectArts)
	assert.ErrorIs(t, err, ErrUnknownSubject)
}

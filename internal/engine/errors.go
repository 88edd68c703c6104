package engine

import (
	"errors"
	"fmt"
)

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerExists    = errors.New("player already exists")
	ErrGuildNotFound   = errors.New("guild not found")
	ErrAlreadyInGuild  = errors.New("already in a guild, leave it first")
	ErrNotInGuild      = errors.New("not in a guild")
	ErrAlreadyMember   = errors.New("already a member of this guild")
	ErrInvalidTemplate = errors.New("invalid quest template index")
	ErrLeaveCancelled  = errors.New("leave cancelled")
)

// GuildLevelError is returned when a quest template needs a higher guild
// level than the guild has reached.
type GuildLevelError struct {
	Quest         string
	RequiredLevel int
	GuildLevel    int
}

func (e GuildLevelError) Error() string {
	return fmt.Sprintf("guild level too low for '%s': need level %d, have %d", e.Quest, e.RequiredLevel, e.GuildLevel)
}

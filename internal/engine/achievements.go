package engine

// Achievement represents a badge the player can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker derives achievements from a player and their guild.
// Nothing is persisted; the badges are recomputed from state on demand.
type AchievementChecker struct {
	player *Player
	guild  *Guild
}

// NewAchievementChecker accepts a nil guild for guildless players.
func NewAchievementChecker(player *Player, guild *Guild) *AchievementChecker {
	return &AchievementChecker{player: player, guild: guild}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	achievements := []Achievement{
		// Level milestones
		c.levelAchievement("first_steps", "First Steps", "Reach level 2", "🌱", 2),
		c.levelAchievement("on_the_path", "On the Path", "Reach level 5", "🌳", 5),
		c.levelAchievement("seasoned", "Seasoned Scholar", "Reach level 10", "⭐", 10),
		c.levelAchievement("veteran", "Veteran", "Reach level 20", "🌟", 20),
		c.levelAchievement("master", "Grand Master", "Reach level 50", "💫", MaxLevel),

		// Trait milestones
		c.traitAchievement("counter", "Counter", "Math trait 50", "🔢", SubjectMath, 50),
		c.traitAchievement("experimenter", "Experimenter", "Science trait 50", "🔬", SubjectScience, 50),
		c.traitAchievement("chronicler", "Chronicler", "History trait 50", "📜", SubjectHistory, 50),
		c.traitAchievement("wordsmith", "Wordsmith", "Language trait 50", "📚", SubjectLanguage, 50),
		c.traitAchievement("creative", "Creative", "Arts trait 50", "🎨", SubjectArts, 50),

		c.skillAchievement("first_skill", "Skilled", "Unlock any skill", "🧠", 1),
		c.skillAchievement("polymath", "Polymath", "Unlock 5 skills", "🎓", 5),

		c.lootAchievement("collector", "Collector", "Own an item", "🎒", 1),
		c.lootAchievement("hoarder", "Hoarder", "Own 10 items", "💰", 10),

		// Guild achievements
		c.guildAchievement("guild_member", "Fellowship", "Join a guild", "🛡"),
		c.guildLeaderAchievement("guild_leader", "Founder", "Lead a guild", "👑"),
		c.guildQuestAchievement("quest_done", "Quest Complete", "Your guild completes a quest", "🏆"),
	}

	return achievements
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

// CountTotal returns total number of achievements.
func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := c.player.Level >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) traitAchievement(id, name, desc, icon string, subject Subject, points int) Achievement {
	earned := c.player.Traits[subject] >= points
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) skillAchievement(id, name, desc, icon string, count int) Achievement {
	earned := len(c.player.Skills) >= count
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) lootAchievement(id, name, desc, icon string, count int) Achievement {
	earned := c.player.Inventory.Len() >= count
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) guildAchievement(id, name, desc, icon string) Achievement {
	earned := c.guild != nil && c.guild.IsMember(c.player.Name)
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) guildLeaderAchievement(id, name, desc, icon string) Achievement {
	earned := c.guild != nil && c.guild.LeaderID == c.player.Name
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) guildQuestAchievement(id, name, desc, icon string) Achievement {
	earned := c.guild != nil && len(c.guild.CompletedQuests) > 0
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

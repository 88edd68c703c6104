package engine

import "math"

const (
	// MaxLevel caps both player and guild progression.
	MaxLevel = 50

	// ThresholdBase and ThresholdGrowth define Threshold(L) = floor(100 * 1.5^(L-1)).
	ThresholdBase   = 100.0
	ThresholdGrowth = 1.5

	// TraitDivisor converts gained XP into trait points (10%).
	TraitDivisor = 10
)

var thresholds = buildThresholds()

func buildThresholds() [MaxLevel + 1]int {
	var t [MaxLevel + 1]int
	for level := 1; level <= MaxLevel; level++ {
		t[level] = int(math.Floor(ThresholdBase * math.Pow(ThresholdGrowth, float64(level-1))))
	}
	return t
}

// Threshold returns the cumulative XP required to be at the given level.
// Levels outside 1..MaxLevel are clamped.
func Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return thresholds[level]
}

// LevelForXP returns the highest level L such that xp >= Threshold(L), never
// below 1 and never above MaxLevel.
func LevelForXP(xp int) int {
	level := 1
	for level < MaxLevel && xp >= thresholds[level+1] {
		level++
	}
	return level
}

package game

import "math"

// ExpToLevel returns the experience required to pass the given level:
// floor(100 * level^1.5).
func ExpToLevel(level int) int64 {
	return int64(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// ApplyExp folds an experience gain into the current (level, exp) pair,
// crossing as many level thresholds as the gain covers in a single pass.
// The remainder carries over into the new level. Level never decreases and
// exp never drops below zero.
func ApplyExp(level int, exp, gain int64) (newLevel int, newExp int64, levelsGained int) {
	newLevel = level
	newExp = exp + gain
	for newExp >= ExpToLevel(newLevel) {
		newExp -= ExpToLevel(newLevel)
		newLevel++
		levelsGained++
	}
	return newLevel, newExp, levelsGained
}

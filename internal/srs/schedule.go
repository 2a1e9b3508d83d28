package srs

import "time"

// LevelIntervals is the Leitner box schedule: how long after a review a card
// at each level waits before it is due again. Level 0 is due immediately.
var LevelIntervals = []time.Duration{
	0,
	10 * time.Minute,
	time.Hour,
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

// MaxLevel is the highest Leitner box.
const MaxLevel = 6

// DefaultMasteredLevel is the level at which a card counts as mastered in
// progress summaries. It is a heuristic; callers override it through Policy.
const DefaultMasteredLevel = 4

// Policy holds the tunable parts of the review schedule.
type Policy struct {
	// Intervals is indexed by level; len(Intervals)-1 is the top level.
	Intervals []time.Duration

	// MasteredLevel is the minimum level counted as mastered.
	MasteredLevel int
}

// DefaultPolicy returns the standard seven-box schedule.
func DefaultPolicy() Policy {
	return Policy{
		Intervals:     LevelIntervals,
		MasteredLevel: DefaultMasteredLevel,
	}
}

// maxLevel returns the top level for this policy.
func (p Policy) maxLevel() int {
	if len(p.Intervals) == 0 {
		return 0
	}
	return len(p.Intervals) - 1
}

// Interval returns the wait after a review that left the card at level.
// Out-of-range levels are clamped to the table.
func (p Policy) Interval(level int) time.Duration {
	if len(p.Intervals) == 0 || level <= 0 {
		return 0
	}
	if level >= len(p.Intervals) {
		return p.Intervals[len(p.Intervals)-1]
	}
	return p.Intervals[level]
}

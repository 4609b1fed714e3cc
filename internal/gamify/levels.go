package gamify

// Leveling is decided server-side; the client only renders it. These mirror
// the backend's fixed thresholds so progress bars and "XP to next level"
// labels match what the server will report.

// Thresholds for levels 2..6. Reaching thresholds[i] XP puts the user at
// level i+2; past the last one, each further level costs 500 XP.
var thresholds = []int{50, 150, 350, 700, 1200}

const pastTableStep = 500

// LevelForXP returns the display level for a total XP value, exactly as the
// server computes it.
func LevelForXP(xp int) int {
	for i, t := range thresholds {
		if xp < t {
			return i + 1
		}
	}
	return len(thresholds) + 1 + (xp-thresholds[len(thresholds)-1])/pastTableStep
}

// XPForLevel returns the total XP needed to reach the given level. Level 1
// needs nothing.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level-2 < len(thresholds) {
		return thresholds[level-2]
	}
	top := len(thresholds) + 1
	return thresholds[len(thresholds)-1] + (level-top)*pastTableStep
}

// Progress reports XP earned within the current level and the size of the
// level, for rendering a progress bar.
func Progress(xp int) (have, need int) {
	level := LevelForXP(xp)
	floor := XPForLevel(level)
	ceil := XPForLevel(level + 1)
	return xp - floor, ceil - floor
}

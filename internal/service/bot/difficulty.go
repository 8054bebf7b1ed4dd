package bot

import "strings"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// search depth per difficulty; easy is the greedy one-ply pick
var difficultyDepth = map[Difficulty]int{
	DifficultyEasy:   0,
	DifficultyMedium: 2,
	DifficultyHard:   4,
	DifficultyExpert: 6,
}

// ParseDifficulty validates a difficulty name, case-insensitively
func ParseDifficulty(difficulty string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(difficulty)))
	_, ok := difficultyDepth[d]
	return d, ok
}

// DepthFor maps a difficulty name to a search depth. Empty or unknown names use fallback.
func DepthFor(difficulty string, fallback int) int {
	d, ok := ParseDifficulty(difficulty)
	if !ok {
		return fallback
	}
	return difficultyDepth[d]
}

// Package difficulty maps catalog category identifiers to difficulty levels.
package difficulty

import (
	"fmt"
	"strings"
)

// Level is a difficulty band. All is only meaningful as a filter.
type Level string

const (
	All    Level = "all"
	Easy   Level = "easy"
	Medium Level = "medium"
	Hard   Level = "hard"
)

// Levels lists the filter choices in display order.
var Levels = []Level{All, Easy, Medium, Hard}

// Classify returns the difficulty of a category. Unknown identifiers are medium.
func Classify(categoryID int) Level {
	switch categoryID {
	case 1:
		return Easy
	case 2:
		return Medium
	case 3:
		return Hard
	default:
		return Medium
	}
}

// Matches reports whether a category passes the given filter level.
func Matches(categoryID int, level Level) bool {
	if level == All || level == "" {
		return true
	}
	return Classify(categoryID) == level
}

// Parse converts user input to a Level. An empty string means All.
func Parse(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return All, nil
	case All, Easy, Medium, Hard:
		return l, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want all, easy, medium or hard)", s)
	}
}

func (l Level) String() string {
	return string(l)
}

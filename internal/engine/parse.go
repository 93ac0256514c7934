package engine

import (
	"strings"

	"taskquest/internal/storage"
)

const (
	MinEstimatedTime     = 5
	MaxEstimatedTime     = 480
	DefaultEstimatedTime = 60
)

// ParsePriority parses user input to a Priority.
// Supported: low, medium, high, plus l/m/h and med. Empty input is medium.
func ParsePriority(input string) (storage.Priority, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return storage.PriorityMedium, nil
	case "low", "l":
		return storage.PriorityLow, nil
	case "medium", "med", "m":
		return storage.PriorityMedium, nil
	case "high", "h":
		return storage.PriorityHigh, nil
	default:
		return "", invalid("priority", "must be low, medium or high, got %q", input)
	}
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", invalid("title", "title is required")
	}
	return t, nil
}

func checkEstimatedTime(minutes int) error {
	if minutes < MinEstimatedTime || minutes > MaxEstimatedTime {
		return invalid("estimatedTime", "must be between %d and %d minutes, got %d", MinEstimatedTime, MaxEstimatedTime, minutes)
	}
	return nil
}

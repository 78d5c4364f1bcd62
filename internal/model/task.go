package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTime = errors.New("invalid time of day")

// TimeOfDay - минуты от полуночи, 0..1439
type TimeOfDay int

// ParseTimeOfDay принимает только "HH:MM" в 24-часовом формате с ведущими нулями
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidTime, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidTime, s)
		}
	}

	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidTime, s)
	}
	return TimeOfDay(hours*60 + minutes), nil
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Task is an immutable scheduled item. NewTask does not validate its input;
// that is up to the caller.
type Task struct {
	description string
	start       TimeOfDay
	end         TimeOfDay
	priority    Priority
}

func NewTask(description string, start, end TimeOfDay, priority Priority) Task {
	return Task{
		description: description,
		start:       start,
		end:         end,
		priority:    priority,
	}
}

func (t Task) Description() string { return t.description }
func (t Task) Start() TimeOfDay    { return t.start }
func (t Task) End() TimeOfDay      { return t.end }
func (t Task) Priority() Priority  { return t.priority }

// Duration returns the length of the task in minutes.
func (t Task) Duration() int {
	return int(t.end - t.start)
}

// Overlaps reports whether the half-open intervals [start, end) of both tasks intersect.
// Tasks that only touch at an endpoint do not overlap.
func (t Task) Overlaps(other Task) bool {
	return t.start < other.end && other.start < t.end
}

func (t Task) String() string {
	return fmt.Sprintf("%s - %s; %s [%s]", t.start, t.end, t.description, t.priority)
}

type taskJSON struct {
	Description string    `json:"description"`
	StartTime   TimeOfDay `json:"start_time"`
	EndTime     TimeOfDay `json:"end_time"`
	Priority    Priority  `json:"priority"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		Description: t.description,
		StartTime:   t.start,
		EndTime:     t.end,
		Priority:    t.priority,
	})
}

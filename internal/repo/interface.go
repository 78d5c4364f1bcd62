package repo

import (
	"context"

	"github.com/BuzzLyutic/astronaut-schedule/internal/model"
)

// TaskRepository определяет интерфейс для работы с расписанием
type TaskRepository interface {
	Add(ctx context.Context, t model.Task) error
	RemoveByDescription(ctx context.Context, description string) (int, error)
	List(ctx context.Context) ([]model.Task, error)
	GetStats(ctx context.Context) (Stats, error)
}

// Stats - сводка по расписанию на день
type Stats struct {
	Total         int                    `json:"total"`
	ByPriority    map[model.Priority]int `json:"by_priority"`
	ScheduledMins int                    `json:"scheduled_minutes"`
	FirstStart    *model.TimeOfDay       `json:"first_start,omitempty"`
	LastEnd       *model.TimeOfDay       `json:"last_end,omitempty"`
}

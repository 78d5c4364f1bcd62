package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/BuzzLyutic/astronaut-schedule/internal/model"
)

var (
	ErrorConflict = errors.New("conflict")
)

// OverlapError is returned by Add when the new task intersects a stored one.
type OverlapError struct {
	Existing model.Task
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("task overlaps with existing task: %s", e.Existing.Description())
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrorConflict
}

type TaskRepo struct { // Хранилище задач в памяти, один экземпляр на процесс
	mu    sync.Mutex
	tasks []model.Task // порядок вставки
}

func NewTaskRepo() *TaskRepo { // Конструктор
	return &TaskRepo{
		tasks: make([]model.Task, 0),
	}
}

func (r *TaskRepo) Add(ctx context.Context, t model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Первый конфликт в порядке вставки
	for _, existing := range r.tasks {
		if existing.Overlaps(t) {
			return &OverlapError{Existing: existing}
		}
	}
	r.tasks = append(r.tasks, t)
	return nil
}

// RemoveByDescription removes every task with exactly this description.
// Removing a description that is not stored is not an error.
func (r *TaskRepo) RemoveByDescription(ctx context.Context, description string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if t.Description() != description {
			kept = append(kept, t)
		}
	}
	removed := len(r.tasks) - len(kept)
	clear(r.tasks[len(kept):])
	r.tasks = kept
	return removed, nil
}

// List returns a copy sorted by start time; stored order is left untouched.
func (r *TaskRepo) List(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	tasks := make([]model.Task, len(r.tasks))
	copy(tasks, r.tasks)
	r.mu.Unlock()

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Start() < tasks[j].Start()
	})
	return tasks, nil
}

func (r *TaskRepo) GetStats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats := Stats{
		Total:      len(r.tasks),
		ByPriority: make(map[model.Priority]int),
	}
	for i, t := range r.tasks {
		stats.ByPriority[t.Priority()]++
		stats.ScheduledMins += t.Duration()

		start, end := t.Start(), t.End()
		if i == 0 || start < *stats.FirstStart {
			stats.FirstStart = &start
		}
		if i == 0 || end > *stats.LastEnd {
			stats.LastEnd = &end
		}
	}
	return stats, nil
}

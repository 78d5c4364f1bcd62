package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/astronaut-schedule/internal/model"
	"github.com/BuzzLyutic/astronaut-schedule/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

// AddTaskRequest - сырые данные задачи, как их ввел пользователь
type AddTaskRequest struct {
	Description string
	StartTime   string
	EndTime     string
	Priority    string
}

type TaskService struct {
	repo   repo.TaskRepository
	logger *zap.Logger
}

func NewTaskService(repo repo.TaskRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
	}
}

func (s *TaskService) Add(ctx context.Context, req AddTaskRequest) (model.Task, error) {
	task, err := s.parse(req) // Валидация введенных данных до обращения к хранилищу
	if err != nil {
		s.logger.Debug("rejected invalid task", zap.String("description", req.Description), zap.Error(err))
		return model.Task{}, err
	}

	if err := s.repo.Add(ctx, task); err != nil {
		var overlap *repo.OverlapError
		if errors.As(err, &overlap) {
			s.logger.Warn("task overlaps existing task",
				zap.String("description", task.Description()),
				zap.String("conflict", overlap.Existing.Description()),
			)
		}
		return model.Task{}, err
	}

	s.logger.Info("task added",
		zap.String("description", task.Description()),
		zap.Stringer("start", task.Start()),
		zap.Stringer("end", task.End()),
		zap.String("priority", string(task.Priority())),
	)
	return task, nil
}

// Remove matches the description exactly as given, no trimming.
func (s *TaskService) Remove(ctx context.Context, description string) (int, error) {
	removed, err := s.repo.RemoveByDescription(ctx, description)
	if err != nil {
		return 0, err
	}
	s.logger.Info("task removed", zap.String("description", description), zap.Int("removed", removed))
	return removed, nil
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("tasks listed", zap.Int("count", len(tasks)))
	return tasks, nil
}

func (s *TaskService) GetStats(ctx context.Context) (repo.Stats, error) {
	return s.repo.GetStats(ctx)
}

func (s *TaskService) parse(req AddTaskRequest) (model.Task, error) {
	var errs error

	// Описание хранится как введено, иначе Remove не найдет задачу
	if strings.TrimSpace(req.Description) == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: description is required", ErrValidation))
	}

	start, err := model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: start time: %w", ErrValidation, err))
	}
	end, endErr := model.ParseTimeOfDay(req.EndTime)
	if endErr != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: end time: %w", ErrValidation, endErr))
	}
	if err == nil && endErr == nil && start >= end {
		errs = multierr.Append(errs, fmt.Errorf("%w: start time %s must be before end time %s", ErrValidation, start, end))
	}

	if errs != nil {
		return model.Task{}, errs
	}
	return model.NewTask(req.Description, start, end, model.Priority(strings.TrimSpace(req.Priority))), nil
}

package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/astronaut-schedule/internal/config"
	"github.com/BuzzLyutic/astronaut-schedule/internal/model"
	"github.com/BuzzLyutic/astronaut-schedule/internal/repo"
	"github.com/BuzzLyutic/astronaut-schedule/internal/service"
	"github.com/BuzzLyutic/astronaut-schedule/pkg/respond"
)

const menu = `
Options:
1. Add Task
2. Remove Task
3. View Tasks
4. Exit
5. Schedule Summary`

const (
	optionAdd = iota + 1
	optionRemove
	optionView
	optionExit
	optionSummary
)

// errEndOfInput - ввод закончился посреди диалога
var errEndOfInput = errors.New("end of input")

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
	output  string
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger, output string) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
		output:  output,
	}
}

// session читает ввод построчно через bufio.Reader, без ограничения длины строки
type session struct {
	in  *bufio.Reader
	out io.Writer
}

func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", errEndOfInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Run reads menu choices from in until Exit, end of input or ctx is done.
// Bad input never reaches the store; it only produces a message.
func (h *TaskHandler) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s := &session{in: bufio.NewReader(in), out: out}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		respond.Line(out, menu)
		line, err := s.prompt("Choose an option: ")
		if errors.Is(err, errEndOfInput) {
			return nil
		}
		if err != nil {
			return err
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			choice = 0
		}

		err = nil
		switch choice {
		case optionAdd:
			err = h.create(ctx, s)
		case optionRemove:
			err = h.remove(ctx, s)
		case optionView:
			err = h.List(ctx, out)
		case optionSummary:
			err = h.Summary(ctx, out)
		case optionExit:
			respond.Line(out, "Exiting...")
			return nil
		default:
			respond.Line(out, "Invalid option. Please try again.")
		}

		if errors.Is(err, errEndOfInput) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (h *TaskHandler) create(ctx context.Context, s *session) error {
	var req service.AddTaskRequest
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter task description: ", &req.Description},
		{"Enter start time (HH:MM): ", &req.StartTime},
		{"Enter end time (HH:MM): ", &req.EndTime},
		{"Enter priority (High, Medium, Low): ", &req.Priority},
	}
	for _, f := range fields {
		v, err := s.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	task, err := h.service.Add(ctx, req)
	if err != nil {
		return h.handleErrors(s.out, err)
	}

	respond.Line(s.out, "Task added: %s", task.Description())
	return nil
}

func (h *TaskHandler) remove(ctx context.Context, s *session) error {
	description, err := s.prompt("Enter the description of the task to remove: ")
	if err != nil {
		return err
	}

	if _, err := h.service.Remove(ctx, description); err != nil {
		return h.handleErrors(s.out, err)
	}

	// Подтверждение выводится всегда, даже если задачи не было
	respond.Line(s.out, "Task removed: %s", description)
	return nil
}

func (h *TaskHandler) List(ctx context.Context, out io.Writer) error {
	tasks, err := h.service.List(ctx)
	if err != nil {
		return h.handleErrors(out, err)
	}

	if h.output == config.OutputJSON {
		return respond.JSON(out, tasks)
	}

	if len(tasks) == 0 {
		respond.Line(out, "No tasks scheduled for the day.")
		return nil
	}
	for _, t := range tasks {
		respond.Line(out, "%s", t)
	}
	return nil
}

func (h *TaskHandler) Summary(ctx context.Context, out io.Writer) error {
	stats, err := h.service.GetStats(ctx)
	if err != nil {
		return h.handleErrors(out, err)
	}

	if h.output == config.OutputJSON {
		return respond.JSON(out, stats)
	}

	if stats.Total == 0 {
		respond.Line(out, "No tasks scheduled for the day.")
		return nil
	}

	respond.Line(out, "Tasks scheduled: %d", stats.Total)
	respond.Line(out, "Scheduled time: %s", formatMinutes(stats.ScheduledMins))
	respond.Line(out, "Day span: %s - %s", stats.FirstStart, stats.LastEnd)

	priorities := make([]model.Priority, 0, len(stats.ByPriority))
	for p := range stats.ByPriority {
		priorities = append(priorities, p)
	}
	sort.Slice(priorities, func(i, j int) bool {
		return priorities[i] < priorities[j]
	})
	parts := make([]string, 0, len(priorities))
	for _, p := range priorities {
		parts = append(parts, fmt.Sprintf("%s=%d", p, stats.ByPriority[p]))
	}
	respond.Line(out, "By priority: %s", strings.Join(parts, ", "))
	return nil
}

// handleErrors prints what the user can act on and returns only errors
// that should stop the loop.
func (h *TaskHandler) handleErrors(out io.Writer, err error) error {
	var overlap *repo.OverlapError
	switch {
	case errors.As(err, &overlap):
		respond.Error(out, "Task overlaps with existing task: "+overlap.Existing.Description())
	case errors.Is(err, service.ErrValidation):
		respond.Error(out, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(out, "internal error")
	}
	return nil
}

func formatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

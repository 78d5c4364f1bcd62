package service

import (
	"context"
	"testing"

	"github.com/BuzzLyutic/astronaut-schedule/internal/model"
	"github.com/BuzzLyutic/astronaut-schedule/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockTaskRepository - мок репозитория
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Add(ctx context.Context, t model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) RemoveByDescription(ctx context.Context, description string) (int, error) {
	args := m.Called(ctx, description)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetStats(ctx context.Context) (repo.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(repo.Stats), args.Error(1)
}

func TestTaskService_Add(t *testing.T) {
	tests := []struct {
		name      string
		req       AddTaskRequest
		setupMock func(*MockTaskRepository)
		wantErr   error
		wantErrs  int
	}{
		{
			name: "successful creation",
			req: AddTaskRequest{
				Description: "Morning Exercise",
				StartTime:   "07:00",
				EndTime:     "08:00",
				Priority:    "High",
			},
			setupMock: func(m *MockTaskRepository) {
				m.On("Add", mock.Anything, mock.MatchedBy(func(t model.Task) bool {
					return t.Description() == "Morning Exercise" &&
						t.Start().String() == "07:00" &&
						t.End().String() == "08:00" &&
						t.Priority() == model.PriorityHigh
				})).Return(nil)
			},
		},
		{
			name: "times and priority are trimmed, description is kept as typed",
			req: AddTaskRequest{
				Description: "  Team Meeting ",
				StartTime:   " 08:00",
				EndTime:     "09:00 ",
				Priority:    " Medium ",
			},
			setupMock: func(m *MockTaskRepository) {
				m.On("Add", mock.Anything, mock.MatchedBy(func(t model.Task) bool {
					return t.Description() == "  Team Meeting " && t.Priority() == model.PriorityMedium
				})).Return(nil)
			},
		},
		{
			name: "free-text priority is accepted",
			req: AddTaskRequest{
				Description: "Photo session",
				StartTime:   "14:00",
				EndTime:     "14:30",
				Priority:    "Whenever",
			},
			setupMock: func(m *MockTaskRepository) {
				m.On("Add", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name: "validation error - empty description",
			req: AddTaskRequest{
				Description: "   ",
				StartTime:   "07:00",
				EndTime:     "08:00",
			},
			setupMock: func(m *MockTaskRepository) {},
			wantErr:   ErrValidation,
			wantErrs:  1,
		},
		{
			name: "validation error - unpadded time",
			req: AddTaskRequest{
				Description: "Training",
				StartTime:   "9:00",
				EndTime:     "10:00",
			},
			setupMock: func(m *MockTaskRepository) {},
			wantErr:   model.ErrInvalidTime,
			wantErrs:  1,
		},
		{
			name: "validation error - end before start",
			req: AddTaskRequest{
				Description: "Training",
				StartTime:   "10:00",
				EndTime:     "09:00",
			},
			setupMock: func(m *MockTaskRepository) {},
			wantErr:   ErrValidation,
			wantErrs:  1,
		},
		{
			name: "validation error - empty interval",
			req: AddTaskRequest{
				Description: "Training",
				StartTime:   "10:00",
				EndTime:     "10:00",
			},
			setupMock: func(m *MockTaskRepository) {},
			wantErr:   ErrValidation,
			wantErrs:  1,
		},
		{
			name: "validation error - everything wrong",
			req: AddTaskRequest{
				StartTime: "25:00",
				EndTime:   "noon",
			},
			setupMock: func(m *MockTaskRepository) {},
			wantErr:   ErrValidation,
			wantErrs:  3,
		},
		{
			name: "overlap from repository",
			req: AddTaskRequest{
				Description: "Training Session",
				StartTime:   "07:30",
				EndTime:     "08:30",
				Priority:    "Low",
			},
			setupMock: func(m *MockTaskRepository) {
				existing := model.NewTask("Morning Exercise", model.MustParseTimeOfDay("07:00"), model.MustParseTimeOfDay("08:00"), model.PriorityHigh)
				m.On("Add", mock.Anything, mock.Anything).Return(&repo.OverlapError{Existing: existing})
			},
			wantErr:  repo.ErrorConflict,
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, zap.NewNop())
			result, err := service.Add(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, multierr.Errors(err), tt.wantErrs)
				assert.Equal(t, model.Task{}, result)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, result.Description())
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_Remove(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("RemoveByDescription", mock.Anything, " Padded ").Return(0, nil)

	service := NewTaskService(mockRepo, zap.NewNop())
	removed, err := service.Remove(context.Background(), " Padded ")

	require.NoError(t, err)
	assert.Zero(t, removed)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("overlap is logged with the conflicting task", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		service := NewTaskService(repo.NewTaskRepo(), zap.New(core))

		_, err := service.Add(ctx, AddTaskRequest{Description: "Morning Exercise", StartTime: "07:00", EndTime: "08:00", Priority: "High"})
		require.NoError(t, err)
		_, err = service.Add(ctx, AddTaskRequest{Description: "Team Meeting", StartTime: "08:00", EndTime: "09:00", Priority: "Medium"})
		require.NoError(t, err)
		_, err = service.Add(ctx, AddTaskRequest{Description: "Training Session", StartTime: "07:30", EndTime: "08:30", Priority: "Low"})
		require.ErrorIs(t, err, repo.ErrorConflict)

		warnings := logs.FilterMessage("task overlaps existing task").All()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Morning Exercise", warnings[0].ContextMap()["conflict"])
		assert.Equal(t, 2, logs.FilterMessage("task added").Len())
	})

	t.Run("remove then re-add overlapping", func(t *testing.T) {
		service := NewTaskService(repo.NewTaskRepo(), zap.NewNop())

		_, err := service.Add(ctx, AddTaskRequest{Description: "A", StartTime: "07:00", EndTime: "08:00", Priority: "Low"})
		require.NoError(t, err)

		removed, err := service.Remove(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		tasks, err := service.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		_, err = service.Add(ctx, AddTaskRequest{Description: "B", StartTime: "07:30", EndTime: "08:30", Priority: "Low"})
		assert.NoError(t, err)

		stats, err := service.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Total)
	})
}

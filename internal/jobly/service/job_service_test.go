package service

import (
	"context"
	"errors"
	"testing"

	"jobly/internal/entity"
	"jobly/internal/jobly/dto"
	"jobly/pkg/apperror"
	"jobly/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockJobRepository struct {
	mock.Mock
}

func (m *mockJobRepository) Create(ctx context.Context, req dto.CreateJobRequest) (*entity.Job, error) {
	args := m.Called(ctx, req)
	job, _ := args.Get(0).(*entity.Job)
	return job, args.Error(1)
}

func (m *mockJobRepository) FindAll(ctx context.Context, filter dto.JobFilter) ([]entity.Job, error) {
	args := m.Called(ctx, filter)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Error(1)
}

func (m *mockJobRepository) Get(ctx context.Context, id int64) (*entity.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*entity.Job)
	return job, args.Error(1)
}

func (m *mockJobRepository) GetJobsFromHandle(ctx context.Context, handle string) ([]entity.Job, error) {
	args := m.Called(ctx, handle)
	jobs, _ := args.Get(0).([]entity.Job)
	return jobs, args.Error(1)
}

func (m *mockJobRepository) Update(ctx context.Context, id int64, req dto.UpdateJobRequest) (*entity.Job, error) {
	args := m.Called(ctx, id, req)
	job, _ := args.Get(0).(*entity.Job)
	return job, args.Error(1)
}

func (m *mockJobRepository) Remove(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newObservedService(repo *mockJobRepository) (JobService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return NewJobService(repo, &logger.Logger{Logger: zap.New(core)}), logs
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	repo := new(mockJobRepository)
	svc, logs := newObservedService(repo)

	req := dto.CreateJobRequest{Title: "T", Salary: ptr(100), Equity: ptr(0.05), CompanyHandle: "c1"}
	repo.On("Create", ctx, req).Return(&entity.Job{ID: 7, Title: "T", Salary: ptr(100), Equity: ptr(0.05), CompanyHandle: "c1"}, nil)

	resp, err := svc.CreateJob(ctx, &req)
	require.NoError(t, err)

	assert.Equal(t, &dto.JobResponse{ID: 7, Title: "T", Salary: ptr(100), Equity: ptr(0.05), CompanyHandle: "c1"}, resp)
	assert.Equal(t, 1, logs.FilterMessage("Job created successfully").Len())
	repo.AssertExpectations(t)
}

func TestGetAllJobs(t *testing.T) {
	ctx := context.Background()

	t.Run("maps every job", func(t *testing.T) {
		repo := new(mockJobRepository)
		svc, _ := newObservedService(repo)

		filter := dto.JobFilter{HasEquity: true}
		repo.On("FindAll", ctx, filter).Return([]entity.Job{
			{ID: 1, Title: "Job1", CompanyHandle: "c1"},
			{ID: 2, Title: "Job2", CompanyHandle: "c2"},
		}, nil)

		resp, err := svc.GetAllJobs(ctx, filter)
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, int64(1), resp[0].ID)
		assert.Equal(t, "c2", resp[1].CompanyHandle)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		repo := new(mockJobRepository)
		svc, _ := newObservedService(repo)

		repo.On("FindAll", ctx, dto.JobFilter{}).Return([]entity.Job{}, nil)

		resp, err := svc.GetAllJobs(ctx, dto.JobFilter{})
		require.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("repository failure is logged and returned", func(t *testing.T) {
		repo := new(mockJobRepository)
		svc, logs := newObservedService(repo)

		boom := errors.New("connection refused")
		repo.On("FindAll", ctx, dto.JobFilter{}).Return(nil, boom)

		_, err := svc.GetAllJobs(ctx, dto.JobFilter{})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, logs.FilterMessage("Failed to get all jobs").Len())
	})
}

func TestGetJobByIDNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mockJobRepository)
	svc, _ := newObservedService(repo)

	repo.On("Get", ctx, int64(999999)).Return(nil, apperror.NotFound("No job: %d", 999999))

	_, err := svc.GetJobByID(ctx, 999999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetJobsByCompany(t *testing.T) {
	ctx := context.Background()
	repo := new(mockJobRepository)
	svc, _ := newObservedService(repo)

	repo.On("GetJobsFromHandle", ctx, "c1").Return([]entity.Job{{ID: 1, Title: "Job1", CompanyHandle: "c1"}}, nil)
	repo.On("GetJobsFromHandle", ctx, "c3").Return(nil, apperror.NotFound("No jobs found for: c3"))

	resp, err := svc.GetJobsByCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, resp, 1)

	_, err = svc.GetJobsByCompany(ctx, "c3")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()
	repo := new(mockJobRepository)
	svc, logs := newObservedService(repo)

	req := dto.UpdateJobRequest{Salary: ptr(200000)}
	repo.On("Update", ctx, int64(1), req).Return(&entity.Job{ID: 1, Title: "Job1", Salary: ptr(200000), CompanyHandle: "c1"}, nil)
	repo.On("Update", ctx, int64(2), req).Return(nil, apperror.NotFound("No job: 2"))

	resp, err := svc.UpdateJob(ctx, 1, &req)
	require.NoError(t, err)
	assert.Equal(t, ptr(200000), resp.Salary)
	assert.Equal(t, 1, logs.FilterMessage("Job updated successfully").Len())

	_, err = svc.UpdateJob(ctx, 2, &req)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	failures := logs.FilterMessage("Failed to update job").All()
	require.Len(t, failures, 1)
	assert.Equal(t, int64(2), failures[0].ContextMap()["job_id"])
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	repo := new(mockJobRepository)
	svc, logs := newObservedService(repo)

	repo.On("Remove", ctx, int64(1)).Return(nil)
	repo.On("Remove", ctx, int64(999999)).Return(apperror.NotFound("No job: 999999"))

	require.NoError(t, svc.DeleteJob(ctx, 1))
	assert.ErrorIs(t, svc.DeleteJob(ctx, 999999), apperror.ErrNotFound)

	assert.Equal(t, 1, logs.FilterMessage("Job deleted successfully").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to delete job").Len())
	repo.AssertExpectations(t)
}

func TestNilLoggerDiscardsOutput(t *testing.T) {
	ctx := context.Background()
	repo := new(mockJobRepository)
	svc := NewJobService(repo, nil)

	repo.On("Remove", ctx, int64(1)).Return(nil)
	repo.On("Remove", ctx, int64(2)).Return(apperror.NotFound("No job: 2"))

	assert.NotPanics(t, func() {
		assert.NoError(t, svc.DeleteJob(ctx, 1))
		assert.ErrorIs(t, svc.DeleteJob(ctx, 2), apperror.ErrNotFound)
	})
}

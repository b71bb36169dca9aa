package service

import (
	"context"

	"jobly/internal/entity"
	"jobly/internal/jobly/dto"
	"jobly/internal/jobly/repository"
	"jobly/pkg/logger"
)

// JobService defines the interface for managing jobs.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetAllJobs(ctx context.Context, filter dto.JobFilter) ([]*dto.JobResponse, error)
	GetJobByID(ctx context.Context, id int64) (*dto.JobResponse, error)
	GetJobsByCompany(ctx context.Context, handle string) ([]*dto.JobResponse, error)
	UpdateJob(ctx context.Context, id int64, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(ctx context.Context, id int64) error
}

// NewJobService creates a new job service.
func NewJobService(jobRepo repository.JobRepository, log *logger.Logger) JobService {
	if log == nil {
		log = logger.NewNop()
	}
	return &jobService{
		jobRepo: jobRepo,
		logger:  log,
	}
}

type jobService struct {
	jobRepo repository.JobRepository
	logger  *logger.Logger
}

// CreateJob creates a new job.
func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.Create(ctx, *req)
	if err != nil {
		s.logger.Error("Failed to create job", logger.ErrorField(err), logger.Field("company_handle", req.CompanyHandle))
		return nil, err
	}

	s.logger.Info("Job created successfully", logger.Field("job_id", job.ID))
	return mapToJobResponse(job), nil
}

// GetAllJobs retrieves the jobs matching filter.
func (s *jobService) GetAllJobs(ctx context.Context, filter dto.JobFilter) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to get all jobs", logger.ErrorField(err))
		return nil, err
	}
	return mapToJobResponses(jobs), nil
}

// GetJobByID retrieves a job by its ID.
func (s *jobService) GetJobByID(ctx context.Context, id int64) (*dto.JobResponse, error) {
	job, err := s.jobRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToJobResponse(job), nil
}

// GetJobsByCompany retrieves the jobs of one company.
func (s *jobService) GetJobsByCompany(ctx context.Context, handle string) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.GetJobsFromHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	return mapToJobResponses(jobs), nil
}

// UpdateJob applies a partial update.
func (s *jobService) UpdateJob(ctx context.Context, id int64, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.Update(ctx, id, *req)
	if err != nil {
		s.logger.Error("Failed to update job", logger.ErrorField(err), logger.Field("job_id", id))
		return nil, err
	}

	s.logger.Info("Job updated successfully", logger.Field("job_id", id))
	return mapToJobResponse(job), nil
}

// DeleteJob deletes a job by its ID.
func (s *jobService) DeleteJob(ctx context.Context, id int64) error {
	if err := s.jobRepo.Remove(ctx, id); err != nil {
		s.logger.Error("Failed to delete job", logger.ErrorField(err), logger.Field("job_id", id))
		return err
	}
	s.logger.Info("Job deleted successfully", logger.Field("job_id", id))
	return nil
}

func mapToJobResponses(jobs []entity.Job) []*dto.JobResponse {
	responses := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, mapToJobResponse(&jobs[i]))
	}
	return responses
}

// mapToJobResponse maps an entity.Job to a dto.JobResponse.
func mapToJobResponse(job *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:            job.ID,
		Title:         job.Title,
		Salary:        job.Salary,
		Equity:        job.Equity,
		CompanyHandle: job.CompanyHandle,
	}
}

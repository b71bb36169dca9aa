package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobly/internal/entity"
	"jobly/internal/jobly/dto"
	"jobly/pkg/apperror"
	"jobly/pkg/logger"
	"jobly/pkg/sqlbuilder"

	"gorm.io/gorm"
)

const jobReturning = "id, title, salary, equity, company_handle"

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	Create(ctx context.Context, req dto.CreateJobRequest) (*entity.Job, error)
	FindAll(ctx context.Context, filter dto.JobFilter) ([]entity.Job, error)
	Get(ctx context.Context, id int64) (*entity.Job, error)
	GetJobsFromHandle(ctx context.Context, handle string) ([]entity.Job, error)
	Update(ctx context.Context, id int64, req dto.UpdateJobRequest) (*entity.Job, error)
	Remove(ctx context.Context, id int64) error
}

// NewJobRepository creates a new GORM-based job repository. db may be a transaction.
// A nil log discards output.
func NewJobRepository(db *gorm.DB, log *logger.Logger) JobRepository {
	if log == nil {
		log = logger.NewNop()
	}
	return &jobRepository{db: db, logger: log}
}

type jobRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// Create inserts a job and returns it with its generated ID.
func (r *jobRepository) Create(ctx context.Context, req dto.CreateJobRequest) (*entity.Job, error) {
	job := entity.Job{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        req.Equity,
		CompanyHandle: req.CompanyHandle,
	}

	result := r.db.WithContext(ctx).Create(&job)
	if result.Error != nil {
		return nil, fmt.Errorf("create job: %w", result.Error)
	}
	if result.RowsAffected == 0 || job.ID == 0 {
		return nil, apperror.BadRequest("Error creating job")
	}
	return &job, nil
}

// FindAll returns the jobs matching every supplied filter, ordered by title.
func (r *jobRepository) FindAll(ctx context.Context, filter dto.JobFilter) ([]entity.Job, error) {
	jobs := make([]entity.Job, 0)

	query := r.db.WithContext(ctx).Order("title")
	if where, params := jobFilterClause(filter); where != "" {
		r.logger.Debug("Filtering jobs", logger.Field("where", where))
		query = query.Where(where, params...)
	}

	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	return jobs, nil
}

// jobFilterClause joins the conditions of the supplied filters with AND.
// An empty clause means no filter was supplied.
func jobFilterClause(filter dto.JobFilter) (string, []interface{}) {
	qFilter := []string{}
	qFilterParam := []interface{}{}

	if filter.Title != "" {
		qFilter = append(qFilter, "title ILIKE ?")
		qFilterParam = append(qFilterParam, "%"+filter.Title+"%")
	}

	if filter.MinSalary != nil {
		qFilter = append(qFilter, "salary >= ?")
		qFilterParam = append(qFilterParam, *filter.MinSalary)
	}

	if filter.HasEquity {
		qFilter = append(qFilter, "equity > 0")
	}

	return strings.Join(qFilter, " AND "), qFilterParam
}

// Get retrieves a job by its ID.
func (r *jobRepository) Get(ctx context.Context, id int64) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No job: %d", id)
		}
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}
	return &job, nil
}

// GetJobsFromHandle retrieves every job of a company. Unlike FindAll, an empty
// result is reported as not found.
func (r *jobRepository) GetJobsFromHandle(ctx context.Context, handle string) ([]entity.Job, error) {
	var jobs []entity.Job
	if err := r.db.WithContext(ctx).Where("company_handle = ?", handle).Order("id").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("get jobs for %s: %w", handle, err)
	}
	if len(jobs) == 0 {
		return nil, apperror.NotFound("No jobs found for: %s", handle)
	}
	return jobs, nil
}

// Update changes only the fields present in req in a single UPDATE ... RETURNING.
func (r *jobRepository) Update(ctx context.Context, id int64, req dto.UpdateJobRequest) (*entity.Job, error) {
	set, err := sqlbuilder.ForPartialUpdate(req.Fields(), dto.JobColumns)
	if err != nil {
		return nil, err
	}

	querySQL := fmt.Sprintf("UPDATE jobs SET %s WHERE id = ? RETURNING %s", set.SetClause, jobReturning)
	params := append(set.Values, id)

	var job entity.Job
	result := r.db.WithContext(ctx).Raw(querySQL, params...).Scan(&job)
	if result.Error != nil {
		return nil, fmt.Errorf("update job %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperror.NotFound("No job: %d", id)
	}
	return &job, nil
}

// Remove deletes a job by its ID.
func (r *jobRepository) Remove(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&entity.Job{}, id)
	if result.Error != nil {
		return fmt.Errorf("remove job %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("No job: %d", id)
	}
	return nil
}

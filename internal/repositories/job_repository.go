package repositories

import (
	"errors"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository struct{}

func NewJobRepository() *JobRepository {
	return &JobRepository{}
}

// JobWithCount carries a job row plus its live applicant count.
type JobWithCount struct {
	models.Job
	ApplicantsCount int64 `json:"applicants_count"`
	HiredCount      int64 `json:"hired_count"`
}

const applicantsCountExpr = "(SELECT count(*) FROM applications a WHERE a.job_id = jobs.id AND a.deleted_at IS NULL)"
const hiredCountExpr = "(SELECT count(*) FROM applications a WHERE a.job_id = jobs.id AND a.deleted_at IS NULL AND a.status = 'accepted')"

func (r *JobRepository) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepository) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) FindByIDWithEmployer(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Preload("Employer").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Update(db *gorm.DB, job *models.Job) error {
	return db.Save(job).Error
}

func (r *JobRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// MarkEnded flips the life cycle to ended.
func (r *JobRepository) MarkEnded(db *gorm.DB, id string) error {
	return db.Model(&models.Job{}).Where("id = ?", id).
		Update("life_cycle", models.JobLifeCycleEnded).Error
}

// JobFilter narrows job listings.
type JobFilter struct {
	EmployerID string
	LifeCycle  models.JobLifeCycle
	Search     string
}

// List returns jobs with applicant counts, newest first.
func (r *JobRepository) List(db *gorm.DB, filter JobFilter) ([]JobWithCount, error) {
	var jobs []JobWithCount
	q := db.Model(&models.Job{}).
		Select("jobs.*, " + applicantsCountExpr + " AS applicants_count, " + hiredCountExpr + " AS hired_count")

	if filter.EmployerID != "" {
		q = q.Where("employer_id = ?", filter.EmployerID)
	}
	if filter.LifeCycle != "" {
		q = q.Where("life_cycle = ?", filter.LifeCycle)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		q = q.Where(
			"title LIKE ? OR description LIKE ? OR company LIKE ? OR location LIKE ?",
			search, search, search, search,
		)
	}

	err := q.Order("jobs.created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Count(&count).Error
	return count, err
}

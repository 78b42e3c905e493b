package handlers

import (
	"github.com/adam-ctrlc/gotrabahu/internal/middleware"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/services"
	"github.com/adam-ctrlc/gotrabahu/internal/services/dto"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService    *services.JobService
	appService    *services.ApplicationService
	ratingService *services.RatingService
}

func NewJobHandler(
	base *BaseHandler,
	jobService *services.JobService,
	appService *services.ApplicationService,
	ratingService *services.RatingService,
) *JobHandler {
	return &JobHandler{
		BaseHandler:   base,
		jobService:    jobService,
		appService:    appService,
		ratingService: ratingService,
	}
}

func (h *JobHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.CurrentRole(c)

	var query dto.JobListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	jobs, err := h.jobService.List(h.GetDB(c), userID, role, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, jobs, "")
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondCreated(c, job, "Job created successfully")
}

func (h *JobHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.CurrentRole(c)

	detail, err := h.jobService.Get(h.GetDB(c), c.Param("id"), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, detail, "")
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, job, "Job updated successfully")
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, nil, "Job deleted successfully")
}

func (h *JobHandler) End(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.EndJob(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, job, "Job ended successfully")
}

func (h *JobHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	lifeCycle := models.JobLifeCycle(c.Query("life_cycle"))
	jobs, err := h.jobService.EmployerHistory(h.GetDB(c), userID, lifeCycle)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, jobs, "")
}

// Application endpoints

func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.appService.Apply(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, app, "Applied successfully")
}

func (h *JobHandler) CancelApply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.appService.CancelApply(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, nil, "Application cancelled successfully")
}

func (h *JobHandler) ListApplied(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.CurrentRole(c)

	limit, offset := ParsePagination(c)
	apps, err := h.appService.ListApplied(h.GetDB(c), userID, role, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, apps, "")
}

// UpdateApplicationStatus moves an applicant between applied, accepted and
// rejected on one of the employer's jobs.
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.appService.UpdateStatus(h.GetDB(c), userID, c.Param("id"), models.ApplicationStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, app, "Application status updated successfully")
}

// Rating endpoints, all keyed by (job_id, user_id).

func (h *JobHandler) GetRating(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	rating, err := h.ratingService.Get(h.GetDB(c), employerID, c.Param("job_id"), c.Param("user_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if rating == nil {
		RespondOK(c, nil, "No rating found")
		return
	}
	RespondOK(c, rating, "")
}

func (h *JobHandler) CreateRating(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rating, err := h.ratingService.Create(h.GetDB(c), employerID, c.Param("job_id"), c.Param("user_id"), req.Rating)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondCreated(c, rating, "Rating created successfully")
}

func (h *JobHandler) UpdateRating(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rating, err := h.ratingService.Update(h.GetDB(c), employerID, c.Param("job_id"), c.Param("user_id"), req.Rating)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, rating, "Rating updated successfully")
}

func (h *JobHandler) DeleteRating(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.ratingService.Delete(h.GetDB(c), employerID, c.Param("job_id"), c.Param("user_id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	RespondOK(c, nil, "Rating deleted successfully")
}

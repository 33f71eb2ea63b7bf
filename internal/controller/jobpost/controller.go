// Package jobpost provides HTTP handlers for job posting operations.
package jobpost

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/model"
	"github.com/HarishP23/OneStop/internal/utilities"
)

// JobPostController handles job posting endpoints
type JobPostController struct {
	DB *database.DBinstanceStruct
}

// NewJobPostController creates a new instance of JobPostController
func NewJobPostController(db *database.DBinstanceStruct) *JobPostController {
	return &JobPostController{
		DB: db,
	}
}

// CreateJobPostHandler creates a job owned by the requesting recruiter.
// @Summary Create job posting
// @Description Only recruiters have access to this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Job body model.EditableJobInfo true "Job information"
// @Success 201 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Invalid job body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not a recruiter"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobPostController) CreateJobPostHandler(c *gin.Context) {
	account, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: err.Error()})
		return
	}

	job := model.Job{}
	if err := decodeJobInfo(c, &job.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}
	if strings.TrimSpace(job.Position) == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Message: "Position is required"})
		return
	}

	job.RecruiterID = account.ID
	if err := jc.DB.WithContext(c.Request.Context()).Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to create job",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetPosts lists jobs matching the query
// @Summary List jobs
// @Description Every query is optional
// @Tags Job
// @Produce json
// @Param search query string false "Case insensitive substring of the position"
// @Param location query string false "Case insensitive substring of the location"
// @Param type query string false "Case insensitive substring of the job type"
// @Param tag query string false "Case insensitive exact tag"
// @Param company query string false "Case insensitive substring of the company"
// @Param desc query boolean false "Newest first when true"
// @Success 200 {array} model.Job
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobPostController) GetPosts(c *gin.Context) {
	query := jc.DB.WithContext(c.Request.Context()).Model(&model.Job{})

	if search := c.Query("search"); search != "" {
		query = query.Where("position ILIKE ?", "%"+search+"%")
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if jobType := c.Query("type"); jobType != "" {
		query = query.Where("type ILIKE ?", "%"+jobType+"%")
	}
	if tag := c.Query("tag"); tag != "" {
		query = query.Where("? ILIKE ANY(tags)", tag)
	}
	if company := c.Query("company"); company != "" {
		query = query.Where("company ILIKE ?", "%"+company+"%")
	}

	jobs := []model.Job{}
	if err := query.Order(clause.OrderByColumn{
		Column: clause.Column{Name: "created_at"},
		Desc:   strings.ToLower(c.Query("desc")) == "true",
	}).Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to fetch jobs",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetPostByID returns one job
// @Summary Get job by ID
// @Tags Job
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobPostController) GetPostByID(c *gin.Context) {
	job, ok := jc.findJob(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, job)
}

// EditJobPost updates a job owned by the requesting recruiter.
// Applications keep the job title they were submitted with.
// @Summary Edit job
// @Description Only the recruiter that owns the job has access to this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param Job body model.EditableJobInfo true "Fields to change"
// @Success 200 {object} model.Job
// @Failure 400 {object} utilities.ErrorResponse "Invalid job body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [patch]
func (jc *JobPostController) EditJobPost(c *gin.Context) {
	job, ok := jc.findOwnedJob(c)
	if !ok {
		return
	}

	updated := model.Job{}
	if err := decodeJobInfo(c, &updated.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
		return
	}

	// Updates with a struct skips zero fields, so an omitted position is kept
	if err := jc.DB.WithContext(c.Request.Context()).Model(&job).Updates(updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to update job",
			Error:   err.Error(),
		})
		return
	}

	if err := jc.DB.WithContext(c.Request.Context()).Where("id = ?", job.ID).First(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to retrieve updated job",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJobPost removes a job owned by the requesting recruiter.
// Its applications are left in place.
// @Summary Delete job
// @Description Only the recruiter that owns the job has access to this endpoint
// @Tags Job
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobPostController) DeleteJobPost(c *gin.Context) {
	job, ok := jc.findOwnedJob(c)
	if !ok {
		return
	}

	if err := jc.DB.WithContext(c.Request.Context()).Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to delete job",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted"})
}

func decodeJobInfo(c *gin.Context, info *model.EditableJobInfo) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(info)
}

// findJob loads the job named by the id path parameter, writing 404/500 itself
func (jc *JobPostController) findJob(c *gin.Context) (model.Job, bool) {
	job := model.Job{}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Job not found"})
		return job, false
	}

	if err := jc.DB.WithContext(c.Request.Context()).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Job not found"})
			return job, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to retrieve job",
			Error:   err.Error(),
		})
		return job, false
	}
	return job, true
}

func (jc *JobPostController) findOwnedJob(c *gin.Context) (model.Job, bool) {
	account, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: err.Error()})
		return model.Job{}, false
	}

	job, ok := jc.findJob(c)
	if !ok {
		return job, false
	}

	if job.RecruiterID != account.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Message: "You are not the owner of this job"})
		return job, false
	}
	return job, true
}

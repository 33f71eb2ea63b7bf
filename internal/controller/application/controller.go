// Package application provides HTTP handlers for job application operations.
package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/logger"
	"github.com/HarishP23/OneStop/internal/mailer"
	"github.com/HarishP23/OneStop/internal/model"
	"github.com/HarishP23/OneStop/internal/utilities"
	"github.com/HarishP23/OneStop/internal/validation"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB     *database.DBinstanceStruct
	Mailer mailer.Notifier

	// notified, when set, receives one value per finished notification attempt
	notified chan<- struct{}
}

// NewApplicationController creates a new instance of ApplicationController.
// A nil notifier disables emails.
func NewApplicationController(db *database.DBinstanceStruct, notifier mailer.Notifier) *ApplicationController {
	if notifier == nil {
		notifier = mailer.Nop{}
	}
	return &ApplicationController{
		DB:     db,
		Mailer: notifier,
	}
}

type applicationRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Resume string `json:"resume" binding:"required"`
	JobID  string `json:"jobId" binding:"required"`
	UserID string `json:"userId" binding:"required,uuid"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required,application_status"`
}

// GetAllApplications returns every application
// @Summary List all applications
// @Tags Application
// @Produce json
// @Success 200 {array} model.Application
// @Failure 500 {object} utilities.ErrorResponse
// @Router /applications [get]
func (ac *ApplicationController) GetAllApplications(c *gin.Context) {
	applications := []model.Application{}
	if err := ac.DB.WithContext(c.Request.Context()).Order("created_at ASC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to retrieve applications.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// CreateApplication validates the job reference and stores a pending application
// @Summary Submit a job application
// @Description jobTitle is copied from the job's position. Status starts as pending.
// @Tags Application
// @Accept json
// @Produce json
// @Param application body applicationRequest true "Application information"
// @Success 201 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing field or invalid job ID"
// @Failure 500 {object} utilities.ErrorResponse
// @Router /applications [post]
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: validation.Describe(err),
		})
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Message: "Invalid job ID."})
		return
	}

	var job model.Job
	if err := ac.DB.WithContext(c.Request.Context()).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Message: "Invalid job ID."})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to submit application.",
			Error:   err.Error(),
		})
		return
	}

	application := model.Application{
		Name:     req.Name,
		Phone:    req.Phone,
		Resume:   req.Resume,
		JobID:    job.ID,
		UserID:   uuid.MustParse(req.UserID),
		JobTitle: job.Position,
		Status:   model.ApplicationStatusPending,
	}

	if err := ac.DB.WithContext(c.Request.Context()).Create(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to submit application.",
			Error:   err.Error(),
		})
		return
	}

	ac.notifyApplicant(application, mailer.ApplicationSubmitted)

	c.JSON(http.StatusCreated, utilities.MessageResponse{
		Message: "Application submitted successfully!",
	})
}

// GetApplication returns one application
// @Summary Get an application
// @Tags Application
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} model.Application
// @Failure 404 {object} utilities.ErrorResponse
// @Failure 500 {object} utilities.ErrorResponse
// @Router /applications/{id} [get]
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Application not found."})
		return
	}

	var application model.Application
	if err := ac.DB.WithContext(c.Request.Context()).Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Application not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to retrieve applications.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, application)
}

// UpdateApplicationStatus sets the status of one application
// @Summary Update application status
// @Description Any status may follow any other.
// @Tags Application
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param status body statusRequest true "pending, accepted or rejected"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Invalid status value"
// @Failure 404 {object} utilities.ErrorResponse
// @Failure 500 {object} utilities.ErrorResponse
// @Router /applications/{id} [patch]
// @Router /applications/{id} [put]
func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Message: "Invalid status value."})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Application not found."})
		return
	}

	var application model.Application
	res := ac.DB.WithContext(c.Request.Context()).
		Model(&application).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to update application status.",
			Error:   res.Error.Error(),
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Application not found."})
		return
	}

	ac.notifyApplicant(application, mailer.ApplicationStatusChanged)

	c.JSON(http.StatusOK, application)
}

// DeleteApplication removes one application
// @Summary Delete an application
// @Tags Application
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 404 {object} utilities.ErrorResponse
// @Failure 500 {object} utilities.ErrorResponse
// @Router /applications/{id} [delete]
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Application not found."})
		return
	}

	res := ac.DB.WithContext(c.Request.Context()).Where("id = ?", id).Delete(&model.Application{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to delete application.",
			Error:   res.Error.Error(),
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Application not found."})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted successfully."})
}

// GetUserApplications returns the applications submitted by one user
// @Summary List a user's applications
// @Tags Application
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} model.Application
// @Failure 404 {object} utilities.ErrorResponse "No applications for this user"
// @Failure 500 {object} utilities.ErrorResponse
// @Router /applications/user/{userId} [get]
func (ac *ApplicationController) GetUserApplications(c *gin.Context) {
	applications := []model.Application{}

	if userID, err := uuid.Parse(c.Param("userId")); err == nil {
		if err := ac.DB.WithContext(c.Request.Context()).
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&applications).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Message: "Failed to retrieve applications.",
				Error:   err.Error(),
			})
			return
		}
	}

	if len(applications) == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "No applications found for this user."})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// GetJobApplications returns the applications for a job owned by the calling recruiter
// @Summary List applications of a job
// @Tags Application
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse
// @Router /jobs/{id}/applications [get]
func (ac *ApplicationController) GetJobApplications(c *gin.Context) {
	account, err := utilities.ExtractAccount(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Message: err.Error()})
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Job not found."})
		return
	}

	var job model.Job
	if err := ac.DB.WithContext(c.Request.Context()).Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "Job not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to retrieve applications.",
			Error:   err.Error(),
		})
		return
	}

	if job.RecruiterID != account.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Message: "You are not the owner of this job."})
		return
	}

	applications := []model.Application{}
	if err := ac.DB.WithContext(c.Request.Context()).
		Where("job_id = ?", job.ID).
		Order("created_at ASC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to retrieve applications.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

type renderFunc func(model.Application) (string, string, error)

// notifyApplicant emails the account behind app.UserID without blocking the request
func (ac *ApplicationController) notifyApplicant(app model.Application, render renderFunc) {
	if !ac.Mailer.Enabled() {
		return
	}

	go func() {
		defer func() {
			if ac.notified != nil {
				ac.notified <- struct{}{}
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		account, err := ac.DB.FindAccountByID(ctx, app.UserID)
		if err != nil {
			logger.WithError(err).Warn("skip application email, applicant not found", "user_id", app.UserID)
			return
		}

		subject, body, err := render(app)
		if err != nil {
			logger.WithError(err).Error("failed to render application email", "application_id", app.ID)
			return
		}

		if err := ac.Mailer.Send(account.Email, subject, body); err != nil {
			logger.WithError(err).Warn("failed to send application email", "to", account.Email)
		}
	}()
}

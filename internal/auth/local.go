package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/model"
	"github.com/HarishP23/OneStop/internal/utilities"
	"github.com/HarishP23/OneStop/internal/validation"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 8

// LocalRegisterHandler holds DB reference for handler methods.
type LocalRegisterHandler struct {
	DB *database.DBinstanceStruct
}

// NewLocalAuthHandler creates a new instance of LocalRegisterHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct) *LocalRegisterHandler {
	return &LocalRegisterHandler{
		DB: db,
	}
}

type registerInfo struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Role        string `json:"role" binding:"required,account_role"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LocalRegisterHandler creates a student, recruiter or mentor account
// @Summary Register a new account
// @Description Email must be unused by any user or mentor and password at least 8 characters. Role "recruitor" is accepted as "recruiter".
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "role can be student, recruiter or mentor"
// @Success 201 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing field, short password or email already used"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalRegisterHandler) LocalRegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: validation.Describe(err),
		})
		return
	}

	email := model.NormalizeEmail(info.Email)

	if len(info.Password) < MinPasswordLength {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "Password must be at least 8 characters",
		})
		return
	}

	taken, err := lh.DB.EmailTaken(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Database error",
			Error:   err.Error(),
		})
		return
	}
	if taken {
		LogAuthAttempt("warning", "Local", "Fail", email, "register: email already used")
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "User already exists",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed hash password",
			Error:   err.Error(),
		})
		return
	}

	role, _ := model.NormalizeRole(info.Role)
	account := model.Account{
		Email:       email,
		Password:    hashedPassword,
		Role:        role,
		FullName:    strings.TrimSpace(info.FullName),
		PhoneNumber: strings.TrimSpace(info.PhoneNumber),
	}

	if role == model.RoleMentor {
		err = lh.DB.Create(&model.Mentor{Account: account}).Error
	} else {
		err = lh.DB.Create(&model.User{Account: account}).Error
	}

	switch {
	case database.IsUniqueViolation(err):
		LogAuthAttempt("warning", "Local", "Fail", email, "register: email already used")
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "User already exists",
		})
		return
	case err != nil:
		LogAuthAttempt("error", "Local", "Fail", email, "register: "+err.Error())
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
		return
	}

	LogAuthAttempt("info", "Local", "Success", email, "register as "+role)
	c.JSON(http.StatusCreated, utilities.MessageResponse{
		Message: "User successfully created",
	})
}

// LocalLoginHandler issues an access token for a user or mentor
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} utilities.ErrorResponse "Email or password missing"
// @Failure 401 {object} utilities.ErrorResponse "Unknown email or wrong password"
// @Failure 500 {object} utilities.ErrorResponse "Database or token error"
// @Router /auth/login [post]
func (lh *LocalRegisterHandler) LocalLoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "Email or password is not provided",
		})
		return
	}

	account, err := lh.DB.FindAccountByEmail(c.Request.Context(), info.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		LogAuthAttempt("warning", "Local", "Fail", info.Email, "login: unknown email")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Message: "Email or password is incorrect",
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Database error",
			Error:   err.Error(),
		})
		return
	}

	if account.Password == "" || !utilities.VerifyPassword(info.Password, account.Password) {
		LogAuthAttempt("warning", "Local", "Fail", account.Email, "login: wrong password")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Message: "Email or password is incorrect",
		})
		return
	}

	accessToken, err := GenerateStandardToken(account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to generate access token",
			Error:   err.Error(),
		})
		return
	}

	LogAuthAttempt("info", "Local", "Success", account.Email, "login")
	c.JSON(http.StatusOK, model.LoginResponse{
		Message: "Successfully logged in",
		Token:   accessToken,
		Role:    account.Role,
		Data:    account,
	})
}

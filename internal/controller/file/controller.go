// Package file provides HTTP handlers for resume uploads and downloads.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/logger"
	"github.com/HarishP23/OneStop/internal/model"
	"github.com/HarishP23/OneStop/internal/utilities"
)

// MaxResumeBytes is the largest accepted resume
const MaxResumeBytes int64 = 10 << 20

const (
	// ResumeObjectPrefix is the bucket folder holding resumes
	ResumeObjectPrefix = "resumes"
	// DownloadPathPrefix is the public path a stored file is served under
	DownloadPathPrefix = "/api/v1/files/"
)

// FileController handles file related endpoints
type FileController struct {
	DB      *database.DBinstanceStruct
	Storage StorageClient
}

// NewFileController creates a new instance of FileController.
// A nil storage keeps file content in the database.
func NewFileController(db *database.DBinstanceStruct, storage StorageClient) *FileController {
	return &FileController{
		DB:      db,
		Storage: storage,
	}
}

// UploadResume stores a PDF resume and returns the URL to put in an application.
// @Summary Upload resume file
// @Description Only .pdf files up to 10 MB are accepted
// @Tags File
// @Accept mpfd
// @Produce json
// @Param resume formData file true "Resume file"
// @Success 201 {object} model.FileResponse "Stored file id and download URL"
// @Failure 400 {object} utilities.ErrorResponse "Missing resume field"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Storage or database error"
// @Router /files/resume [post]
func (fc *FileController) UploadResume(c *gin.Context) {
	rawFile, err := c.FormFile("resume")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Message: "File size is larger than 10 MB",
			Error:   err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Message: "Missing resume file",
			Error:   err.Error(),
		})
		return
	}

	if rawFile.Size > MaxResumeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{Message: "File size is larger than 10 MB"})
		return
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if extension != ".pdf" {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Message: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Message: "Cannot open file", Error: err.Error()})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("failed to close uploaded file")
		}
	}()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Message: "Cannot read file", Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	file := model.File{}
	if err := fc.persistFileData(ctx, &file, fileBytes, extension, ResumeObjectPrefix); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to store resume",
			Error:   err.Error(),
		})
		return
	}

	if err := fc.DB.WithContext(ctx).Create(&file).Error; err != nil {
		fc.discardObject(file.StorageObjectName)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to save file record",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, model.FileResponse{
		ID:  file.ID,
		URL: DownloadPathPrefix + strconv.Itoa(file.ID),
	})
}

// GetFile sends a stored file as a downloadable attachment
// @Summary Download file
// @Tags File
// @Produce octet-stream
// @Param id path integer true "ID of wanted file"
// @Success 200 {string} binary "File content"
// @Failure 404 {object} utilities.ErrorResponse "Given file id not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /files/{id} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "File not found"})
		return
	}

	var file model.File
	if err := fc.DB.WithContext(c.Request.Context()).First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Message: "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to retrieve file",
			Error:   err.Error(),
		})
		return
	}

	fc.writeFileResponse(c, &file)
}

func (fc *FileController) writeFileResponse(c *gin.Context, file *model.File) {
	if file.StorageObjectName != "" {
		if fc.Storage == nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Message: "Cloud storage is disabled while the requested file is stored remotely",
			})
			return
		}
		reader, size, err := fc.Storage.DownloadFile(c.Request.Context(), file.StorageObjectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Message: "Failed to download file from storage",
				Error:   err.Error(),
			})
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				logger.WithError(err).Warn("failed to close storage reader")
			}
		}()

		setAttachmentHeaders(c, file)
		if size > 0 {
			c.Writer.Header().Set("Content-Length", fmt.Sprint(size))
		}
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, reader); err != nil {
			fc.handleWriterError(c, err)
		}
		return
	}

	setAttachmentHeaders(c, file)
	c.Writer.Header().Set("Content-Length", fmt.Sprint(len(file.Content)))
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(file.Content); err != nil {
		fc.handleWriterError(c, err)
	}
}

func setAttachmentHeaders(c *gin.Context, file *model.File) {
	c.Writer.Header().Set("Content-Disposition", "attachment; filename="+fmt.Sprint(file.ID)+file.Extension)
	c.Writer.Header().Set("Content-Type", "application/octet-stream")
}

func (fc *FileController) handleWriterError(c *gin.Context, err error) {
	logger.WithError(err).Warn("failed to send file content", "path", c.Request.URL.Path)
	if !c.Writer.Written() {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Message: "Failed to send file content",
			Error:   err.Error(),
		})
	} else {
		c.Abort()
	}
}

func (fc *FileController) persistFileData(ctx context.Context, file *model.File, fileBytes []byte, extension, prefix string) error {
	file.Extension = extension
	if fc.Storage == nil {
		file.Content = fileBytes
		file.StorageObjectName = ""
		return nil
	}

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), extension)
	if err := fc.Storage.UploadFile(ctx, objectName, bytes.NewReader(fileBytes)); err != nil {
		return err
	}

	file.StorageObjectName = objectName
	file.Content = nil
	return nil
}

// discardObject removes an uploaded object whose file record could not be saved
func (fc *FileController) discardObject(objectName string) {
	if fc.Storage == nil || objectName == "" {
		return
	}
	if err := fc.Storage.DeleteFile(context.Background(), objectName); err != nil {
		logger.WithError(err).Warn("failed to remove orphaned object", "object", objectName)
	}
}

package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"travel-authorization-api/config"
	"travel-authorization-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func uploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

// UploadApplicationFile attaches a document to an application. The
// original name and extension are recorded separately; the file lands on
// disk under an opaque generated name.
func UploadApplicationFile(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var application models.Application
	if err := config.DB.Where("application_id = ? AND delete_at IS NULL", id).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	extension := strings.TrimPrefix(filepath.Ext(file.Filename), ".")
	baseName := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	storedName := uuid.New().String()
	if extension != "" {
		storedName = fmt.Sprintf("%s.%s", storedName, extension)
	}

	if err := c.SaveUploadedFile(file, filepath.Join(uploadPath(), storedName)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	userID, _, _ := actingSession(c)
	now := time.Now()
	record := models.ApplicationFile{
		ApplicationID: application.ApplicationID,
		FileName:      baseName,
		Extension:     extension,
		StoredName:    storedName,
		UploadedBy:    &userID,
		CreateAt:      &now,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully",
		"file":    record,
	})
}

// GetApplicationFiles lists the documents attached to an application.
func GetApplicationFiles(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var files []models.ApplicationFile
	if err := config.DB.Where("application_id = ? AND delete_at IS NULL", id).
		Order("file_id ASC").
		Find(&files).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files": files,
		"total": len(files),
	})
}

// DownloadApplicationFile streams one stored document back under its
// original name.
func DownloadApplicationFile(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("file_id"))
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file id"})
		return
	}

	var record models.ApplicationFile
	if err := config.DB.Where("file_id = ? AND delete_at IS NULL", fileID).
		First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	downloadName := record.FileName
	if record.Extension != "" {
		downloadName = fmt.Sprintf("%s.%s", record.FileName, record.Extension)
	}

	c.FileAttachment(filepath.Join(uploadPath(), record.StoredName), downloadName)
}

// DeleteApplicationFile removes one attached document. Files are the only
// sub-entity deletable on their own.
func DeleteApplicationFile(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("file_id"))
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file id"})
		return
	}

	var record models.ApplicationFile
	if err := config.DB.Where("file_id = ? AND delete_at IS NULL", fileID).
		First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.ApplicationFile{}).
		Where("file_id = ?", record.FileID).
		Update("delete_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	// Record is already detached; an orphan on disk is an operator problem,
	// not a request failure.
	if err := os.Remove(filepath.Join(uploadPath(), record.StoredName)); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to remove stored file %s: %v", record.StoredName, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

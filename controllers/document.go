package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"venture-marketplace-api/config"
	"venture-marketplace-api/models"
	"venture-marketplace-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedDocumentTypes = map[string]bool{
	".pdf":  true,
	".ppt":  true,
	".pptx": true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
}

func uploadRoot() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// UploadPitchDocument stores a deck for the caller's venture. The file is
// written under UPLOAD_PATH with a random stored name so original filenames
// never touch the filesystem.
func UploadPitchDocument(c *gin.Context) {
	userID, _ := c.Get("userID")

	var venture models.Venture
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&venture).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venture not found"})
		return
	}
	if !models.IsEditable(venture.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Documents cannot be changed while the venture is under or after review"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedDocumentTypes[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	storedFilename := uuid.New().String() + ext
	destDir := filepath.Join(uploadRoot(), "pitch", strconv.Itoa(venture.VentureID))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return
	}
	fullPath := filepath.Join(destDir, storedFilename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	now := time.Now()
	document := models.PitchDocument{
		VentureID:        venture.VentureID,
		UploadedBy:       userID.(int),
		OriginalFilename: file.Filename,
		StoredFilename:   storedFilename,
		MimeType:         file.Header.Get("Content-Type"),
		FileSize:         file.Size,
		UploadedAt:       now,
		CreateAt:         &now,
		UpdateAt:         &now,
	}
	if summary := c.PostForm("summary"); summary != "" {
		document.Summary = &summary
	}
	if round := c.PostForm("round_name"); round != "" {
		document.RoundName = &round
	}
	if raising := c.PostForm("raising_amount"); raising != "" {
		amount, err := strconv.ParseFloat(raising, 64)
		if err != nil || amount < 0 {
			os.Remove(fullPath)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid raising amount"})
			return
		}
		document.RaisingAmount = &amount
	}

	if err := config.DB.Create(&document).Error; err != nil {
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Document uploaded successfully",
		"document": document,
	})
}

type DocumentMetadataRequest struct {
	Summary       *string  `json:"summary"`
	RoundName     *string  `json:"round_name"`
	RaisingAmount *float64 `json:"raising_amount"`
}

// UpdatePitchDocument edits deck metadata. The stored file itself is
// immutable; replace it by deleting and re-uploading.
func UpdatePitchDocument(c *gin.Context) {
	userID, _ := c.Get("userID")

	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var req DocumentMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RaisingAmount != nil && *req.RaisingAmount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid raising amount"})
		return
	}

	var document models.PitchDocument
	if err := config.DB.Preload("Venture").
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	if document.Venture.UserID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	if !models.IsEditable(document.Venture.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Documents cannot be changed while the venture is under or after review"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"summary":        req.Summary,
		"round_name":     req.RoundName,
		"raising_amount": req.RaisingAmount,
		"update_at":      now,
	}
	if err := config.DB.Model(&models.PitchDocument{}).
		Where("document_id = ?", documentID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document updated successfully"})
}

// DeletePitchDocument soft deletes a deck. Grants and the event log stay
// behind for audit.
func DeletePitchDocument(c *gin.Context) {
	userID, _ := c.Get("userID")

	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var document models.PitchDocument
	if err := config.DB.Preload("Venture").
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	if document.Venture.UserID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	if !models.IsEditable(document.Venture.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Documents cannot be changed while the venture is under or after review"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.PitchDocument{}).
		Where("document_id = ?", documentID).
		Updates(map[string]interface{}{"delete_at": now, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

// ViewPitchDocument serves the deck inline after the access check. The view
// is recorded in the event log before any bytes go out.
func ViewPitchDocument(c *gin.Context) {
	serveDocument(c, models.AccessEventView)
}

// DownloadPitchDocument serves the deck as an attachment.
func DownloadPitchDocument(c *gin.Context) {
	serveDocument(c, models.AccessEventDownload)
}

func serveDocument(c *gin.Context, eventType string) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	origin := services.EventOrigin{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if _, err := accessSvc.RecordEvent(documentID, actor, eventType, origin); err != nil {
		respondServiceError(c, err)
		return
	}

	var document models.PitchDocument
	if err := config.DB.Where("document_id = ?", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	fullPath := filepath.Join(uploadRoot(), "pitch",
		strconv.Itoa(document.VentureID), document.StoredFilename)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if eventType == models.AccessEventDownload {
		c.Header("Content-Description", "File Transfer")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", document.OriginalFilename))
		c.Header("Content-Type", "application/octet-stream")
	} else {
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", document.OriginalFilename))
		c.Header("Content-Type", document.MimeType)
	}

	c.File(fullPath)
}

// GetDocumentAnalytics returns the engagement rollup for one deck. Owner or
// admin only.
func GetDocumentAnalytics(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var document models.PitchDocument
	if err := config.DB.Preload("Venture").
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&document).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	if roleID.(int) != models.RoleAdmin && document.Venture.UserID != userID.(int) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	analytics, err := accessSvc.Analytics(documentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analytics": analytics})
}

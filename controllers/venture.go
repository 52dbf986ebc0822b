package controllers

import (
	"net/http"
	"strconv"
	"time"

	"venture-marketplace-api/config"
	"venture-marketplace-api/models"
	"venture-marketplace-api/utils"

	"github.com/gin-gonic/gin"
)

type VentureRequest struct {
	CompanyName string   `json:"company_name" binding:"required"`
	Tagline     *string  `json:"tagline"`
	Sector      *string  `json:"sector"`
	Stage       *string  `json:"stage"`
	Website     *string  `json:"website"`
	Description *string  `json:"description"`
}

// CreateVenture creates the caller's venture in draft state. One venture per
// venture account.
func CreateVenture(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req VentureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing int64
	config.DB.Model(&models.Venture{}).
		Where("user_id = ? AND delete_at IS NULL", userID).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Venture already exists for this account"})
		return
	}

	now := time.Now()
	venture := models.Venture{
		UserID:      userID.(int),
		CompanyName: utils.SanitizeInput(req.CompanyName),
		Tagline:     req.Tagline,
		Sector:      req.Sector,
		Stage:       req.Stage,
		Website:     req.Website,
		Description: req.Description,
		Status:      models.SubjectStatusDraft,
		CreateAt:    &now,
		UpdateAt:    &now,
	}
	if err := config.DB.Create(&venture).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create venture"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Venture created successfully",
		"venture": venture,
	})
}

// GetMyVenture returns the caller's venture with its documents.
func GetMyVenture(c *gin.Context) {
	userID, _ := c.Get("userID")

	var venture models.Venture
	if err := config.DB.Preload("Documents", "delete_at IS NULL").
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&venture).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venture not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"venture": venture})
}

// UpdateMyVenture edits draft fields. Allowed only while the venture is in
// an editable (draft/rejected) state.
func UpdateMyVenture(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req VentureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var venture models.Venture
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&venture).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venture not found"})
		return
	}
	if !models.IsEditable(venture.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Venture cannot be edited while under or after review"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"company_name": utils.SanitizeInput(req.CompanyName),
		"tagline":      req.Tagline,
		"sector":       req.Sector,
		"stage":        req.Stage,
		"website":      req.Website,
		"description":  req.Description,
		"update_at":    now,
	}
	if err := config.DB.Model(&venture).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update venture"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Venture updated successfully"})
}

// SubmitMyVenture starts a review cycle for the caller's venture.
func SubmitMyVenture(c *gin.Context) {
	userID, _ := c.Get("userID")

	var venture models.Venture
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&venture).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venture not found"})
		return
	}

	request, err := reviewSvc.Submit(models.SubjectTypeVenture, venture.VentureID, userID.(int))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Venture submitted for review",
		"request": request,
	})
}

// ListApprovedVentures is the investor/mentor browsing surface.
func ListApprovedVentures(c *gin.Context) {
	query := config.DB.Preload("Owner").
		Where("status = ? AND delete_at IS NULL", models.SubjectStatusApproved)

	if sector := c.Query("sector"); sector != "" {
		query = query.Where("sector = ?", sector)
	}
	if stage := c.Query("stage"); stage != "" {
		query = query.Where("stage = ?", stage)
	}

	var ventures []models.Venture
	if err := query.Order("approved_at DESC").Find(&ventures).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ventures"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ventures": ventures,
		"total":    len(ventures),
	})
}

// GetVenture returns one approved venture and its document metadata.
func GetVenture(c *gin.Context) {
	ventureID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid venture ID"})
		return
	}

	var venture models.Venture
	if err := config.DB.Preload("Owner").Preload("Documents", "delete_at IS NULL").
		Where("venture_id = ? AND status = ? AND delete_at IS NULL",
			ventureID, models.SubjectStatusApproved).
		First(&venture).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venture not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"venture": venture})
}

// ListVisibleInvestors returns investors the caller's venture may see:
// globally visible ones plus incognito investors who initiated contact.
func ListVisibleInvestors(c *gin.Context) {
	userID, _ := c.Get("userID")

	var venture models.Venture
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&venture).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venture not found"})
		return
	}

	profiles, err := visibilitySvc.ListVisibleInvestors(venture.VentureID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch investors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investors": profiles,
		"total":     len(profiles),
	})
}

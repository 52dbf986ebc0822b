package controllers

import (
	"net/http"
	"time"

	"venture-marketplace-api/config"
	"venture-marketplace-api/models"
	"venture-marketplace-api/utils"

	"github.com/gin-gonic/gin"
)

type InvestorProfileRequest struct {
	FirmName          *string  `json:"firm_name" validate:"omitempty,max=255"`
	InvestorType      *string  `json:"investor_type" validate:"omitempty,oneof=angel vc corporate family_office"`
	Thesis            *string  `json:"thesis"`
	Sectors           *string  `json:"sectors"`
	MinCheckSize      *float64 `json:"min_check_size" validate:"omitempty,gte=0"`
	MaxCheckSize      *float64 `json:"max_check_size" validate:"omitempty,gte=0"`
	VisibleToVentures *bool    `json:"visible_to_ventures"`
}

// UpsertInvestorProfile creates or edits the caller's investor profile.
// Edits are allowed only in an editable state; the incognito flag can be
// toggled at any time.
func UpsertInvestorProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req InvestorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MinCheckSize != nil && req.MaxCheckSize != nil && *req.MinCheckSize > *req.MaxCheckSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_check_size cannot exceed max_check_size"})
		return
	}

	now := time.Now()

	var profile models.InvestorProfile
	err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&profile).Error
	if err != nil {
		visible := true
		if req.VisibleToVentures != nil {
			visible = *req.VisibleToVentures
		}
		profile = models.InvestorProfile{
			UserID:            userID.(int),
			FirmName:          req.FirmName,
			InvestorType:      req.InvestorType,
			Thesis:            req.Thesis,
			Sectors:           req.Sectors,
			MinCheckSize:      req.MinCheckSize,
			MaxCheckSize:      req.MaxCheckSize,
			VisibleToVentures: visible,
			Status:            models.SubjectStatusDraft,
			CreateAt:          &now,
			UpdateAt:          &now,
		}
		if err := config.DB.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create investor profile"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Investor profile created successfully",
			"profile": profile,
		})
		return
	}

	updates := map[string]interface{}{"update_at": now}
	if req.VisibleToVentures != nil {
		updates["visible_to_ventures"] = *req.VisibleToVentures
	}
	if models.IsEditable(profile.Status) {
		updates["firm_name"] = req.FirmName
		updates["investor_type"] = req.InvestorType
		updates["thesis"] = req.Thesis
		updates["sectors"] = req.Sectors
		updates["min_check_size"] = req.MinCheckSize
		updates["max_check_size"] = req.MaxCheckSize
	} else if req.FirmName != nil || req.Thesis != nil || req.Sectors != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Profile cannot be edited while under or after review"})
		return
	}
	if err := config.DB.Model(&profile).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update investor profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Investor profile updated successfully"})
}

// GetMyInvestorProfile returns the caller's investor profile.
func GetMyInvestorProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var profile models.InvestorProfile
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Investor profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SubmitMyInvestorProfile starts a review cycle for the caller's profile.
func SubmitMyInvestorProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var profile models.InvestorProfile
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Investor profile not found"})
		return
	}

	request, err := reviewSvc.Submit(models.SubjectTypeInvestorProfile, profile.ProfileID, userID.(int))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Investor profile submitted for review",
		"request": request,
	})
}

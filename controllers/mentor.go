package controllers

import (
	"net/http"
	"time"

	"venture-marketplace-api/config"
	"venture-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

type MentorProfileRequest struct {
	Headline        *string `json:"headline"`
	Expertise       *string `json:"expertise"`
	YearsExperience *int    `json:"years_experience"`
	Availability    *string `json:"availability"`
}

// UpsertMentorProfile creates or edits the caller's mentor profile.
func UpsertMentorProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req MentorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()

	var profile models.MentorProfile
	err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&profile).Error
	if err != nil {
		profile = models.MentorProfile{
			UserID:          userID.(int),
			Headline:        req.Headline,
			Expertise:       req.Expertise,
			YearsExperience: req.YearsExperience,
			Availability:    req.Availability,
			Status:          models.SubjectStatusDraft,
			CreateAt:        &now,
			UpdateAt:        &now,
		}
		if err := config.DB.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mentor profile"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Mentor profile created successfully",
			"profile": profile,
		})
		return
	}

	if !models.IsEditable(profile.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Profile cannot be edited while under or after review"})
		return
	}

	updates := map[string]interface{}{
		"headline":         req.Headline,
		"expertise":        req.Expertise,
		"years_experience": req.YearsExperience,
		"availability":     req.Availability,
		"update_at":        now,
	}
	if err := config.DB.Model(&profile).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mentor profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mentor profile updated successfully"})
}

// GetMyMentorProfile returns the caller's mentor profile.
func GetMyMentorProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var profile models.MentorProfile
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SubmitMyMentorProfile starts a review cycle for the caller's profile.
func SubmitMyMentorProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var profile models.MentorProfile
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
		First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor profile not found"})
		return
	}

	request, err := reviewSvc.Submit(models.SubjectTypeMentorProfile, profile.ProfileID, userID.(int))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Mentor profile submitted for review",
		"request": request,
	})
}

// ListApprovedMentors is the public mentor directory.
func ListApprovedMentors(c *gin.Context) {
	var mentors []models.MentorProfile
	if err := config.DB.Preload("Owner").
		Where("status = ? AND delete_at IS NULL", models.SubjectStatusApproved).
		Order("approved_at DESC").
		Find(&mentors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mentors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mentors": mentors,
		"total":   len(mentors),
	})
}

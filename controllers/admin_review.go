package controllers

import (
	"net/http"
	"strconv"

	"venture-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

type DecideReviewRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=approve reject"`
	Reason  string `json:"reason"`
}

type SubjectActionRequest struct {
	SubjectType string `json:"subject_type" binding:"required"`
	SubjectID   int    `json:"subject_id" binding:"required"`
}

// ListPendingReviews returns the admin review queue, oldest last. An optional
// subject_type query narrows to one subject kind.
func ListPendingReviews(c *gin.Context) {
	subjectType := c.Query("subject_type")
	if subjectType != "" && !models.ValidSubjectType(subjectType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject type"})
		return
	}

	requests, err := reviewSvc.ListPending(subjectType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

// DecideReview records an approve or reject outcome on a pending request.
func DecideReview(c *gin.Context) {
	userID, _ := c.Get("userID")

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var req DecideReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := reviewSvc.Decide(requestID, userID.(int), req.Outcome, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review decision recorded",
		"request": request,
	})
}

// SuspendSubject pulls an approved subject out of circulation.
func SuspendSubject(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req SubjectActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidSubjectType(req.SubjectType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject type"})
		return
	}

	if err := reviewSvc.Suspend(req.SubjectType, req.SubjectID, userID.(int)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subject suspended"})
}

// PurgeSubject hard-deletes a subject and its review history.
func PurgeSubject(c *gin.Context) {
	var req SubjectActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidSubjectType(req.SubjectType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject type"})
		return
	}

	if err := reviewSvc.Purge(req.SubjectType, req.SubjectID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subject purged"})
}

package controllers

import (
	"net/http"
	"strconv"

	"venture-marketplace-api/config"
	"venture-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

type ProposeCommitmentRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Message string  `json:"message"`
}

type CommitmentResponseRequest struct {
	Message string `json:"message"`
}

// ProposeCommitment opens a pending investment proposal against a deck.
func ProposeCommitment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var req ProposeCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commitment, err := commitmentSvc.Propose(documentID, actor, req.Amount, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Commitment proposed",
		"commitment": commitment,
	})
}

// AcceptCommitment closes a proposal as a deal.
func AcceptCommitment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	commitmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid commitment ID"})
		return
	}

	var req CommitmentResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commitment, err := commitmentSvc.Accept(commitmentID, actor, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Commitment accepted",
		"commitment": commitment,
	})
}

// RenegotiateCommitment asks the investor to revise the proposal. A message
// explaining the ask is required.
func RenegotiateCommitment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	commitmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid commitment ID"})
		return
	}

	var req CommitmentResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commitment, err := commitmentSvc.Renegotiate(commitmentID, actor, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Renegotiation requested",
		"commitment": commitment,
	})
}

// WithdrawCommitment lets the proposing investor pull a still-pending offer.
func WithdrawCommitment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	commitmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid commitment ID"})
		return
	}

	commitment, err := commitmentSvc.Withdraw(commitmentID, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Commitment withdrawn",
		"commitment": commitment,
	})
}

// CompleteCommitment records the caller's side of deal completion. The deal
// is fully completed once both parties have confirmed.
func CompleteCommitment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	commitmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid commitment ID"})
		return
	}

	commitment, err := commitmentSvc.MarkCompleted(commitmentID, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Completion recorded",
		"commitment": commitment,
	})
}

// GetCommitment returns one commitment for either party or an admin.
func GetCommitment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	commitmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid commitment ID"})
		return
	}

	commitment, err := commitmentSvc.Get(commitmentID, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commitment": commitment})
}

// ListMyCommitments returns the caller's commitments from their side of the
// table: proposals made for investors, proposals received for ventures.
func ListMyCommitments(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	switch roleID.(int) {
	case models.RoleInvestor:
		commitments, err := commitmentSvc.ListForInvestor(userID.(int))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commitments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"commitments": commitments,
			"total":       len(commitments),
		})
	case models.RoleVenture:
		var venture models.Venture
		if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).
			First(&venture).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venture not found"})
			return
		}
		commitments, err := commitmentSvc.ListForVenture(venture.VentureID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commitments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"commitments": commitments,
			"total":       len(commitments),
		})
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}

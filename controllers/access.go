package controllers

import (
	"net/http"
	"strconv"

	"venture-marketplace-api/config"
	"venture-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

type GrantAccessRequest struct {
	GranteeID int `json:"grantee_id" binding:"required"`
}

type RequestAccessBody struct {
	Message string `json:"message"`
}

type RespondAccessRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=approved denied"`
	Message string `json:"message"`
}

type ShareDocumentRequest struct {
	InvestorID int    `json:"investor_id" binding:"required"`
	Message    string `json:"message"`
}

// GrantDocumentAccess gives a user standing access to a deck. Re-granting a
// revoked pair reactivates the original row.
func GrantDocumentAccess(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var req GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grant, err := accessSvc.Grant(documentID, req.GranteeID, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Access granted",
		"grant":   grant,
	})
}

// RevokeDocumentAccess deactivates a grant. Future access checks for the
// pair fail until a new grant is issued.
func RevokeDocumentAccess(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}
	granteeID, err := strconv.Atoi(c.Param("grantee_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grantee ID"})
		return
	}

	if err := accessSvc.Revoke(documentID, granteeID, actor); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Access revoked"})
}

// RequestDocumentAccess opens a pending access request from an investor.
func RequestDocumentAccess(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var body RequestAccessBody
	if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := negotiationSvc.RequestAccess(documentID, actor, body.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Access request submitted",
		"request": request,
	})
}

// RespondToAccessRequest approves or denies a pending request. Approval
// issues the grant in the same transaction.
func RespondToAccessRequest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var req RespondAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := negotiationSvc.Respond(requestID, actor, req.Outcome, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Response recorded",
		"request": request,
	})
}

// CancelAccessRequest withdraws the caller's own pending request.
func CancelAccessRequest(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := negotiationSvc.Cancel(requestID, actor); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// ShareDocument proactively pushes a deck to an investor, granting access
// immediately.
func ShareDocument(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	documentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document ID"})
		return
	}

	var req ShareDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	share, err := negotiationSvc.Share(documentID, req.InvestorID, actor, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Document shared",
		"share":   share,
	})
}

// ListDocumentAccessRequests returns all requests on one deck. Owner or
// admin only.
func ListDocumentAccessRequests(c *gin.Context) {
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

	requests, err := negotiationSvc.ListRequestsForDocument(documentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

// ListMyShares returns decks shared with the calling investor.
func ListMyShares(c *gin.Context) {
	userID, _ := c.Get("userID")

	shares, err := negotiationSvc.ListSharesForInvestor(userID.(int))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shares"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shares": shares,
		"total":  len(shares),
	})
}

// ListMyAccessRequests returns the calling investor's own requests.
func ListMyAccessRequests(c *gin.Context) {
	userID, _ := c.Get("userID")

	var requests []models.AccessRequest
	if err := config.DB.Preload("Document").
		Where("investor_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StartConversationRequest struct {
	RecipientID int `json:"recipient_id" binding:"required"`
}

type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// StartConversation opens (or returns) the direct thread between the caller
// and another user. An incognito investor messaging a venture becomes
// visible to that venture here.
func StartConversation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RecipientID == actor.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot start a conversation with yourself"})
		return
	}

	conversation, err := conversationSvc.Start(actor, req.RecipientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation": conversation})
}

// ListMyConversations returns the caller's threads, most recent first.
func ListMyConversations(c *gin.Context) {
	userID, _ := c.Get("userID")

	conversations, err := conversationSvc.ListForUser(userID.(int))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversations": conversations,
		"total":         len(conversations),
	})
}

// ListConversationMessages returns a thread's messages in order. Participants
// only.
func ListConversationMessages(c *gin.Context) {
	userID, _ := c.Get("userID")

	conversationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	messages, err := conversationSvc.ListMessages(conversationID, userID.(int))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

// PostConversationMessage appends a message to a thread the caller is part of.
func PostConversationMessage(c *gin.Context) {
	userID, _ := c.Get("userID")

	conversationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := conversationSvc.PostMessage(conversationID, userID.(int), req.Body, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": message})
}

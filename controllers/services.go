package controllers

import (
	"errors"
	"net/http"

	"venture-marketplace-api/config"
	"venture-marketplace-api/models"
	"venture-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

// reviewAPI and commitmentAPI are the slices of the service layer the
// handlers call through; tests swap them for mocks.
type reviewAPI interface {
	Submit(subjectType string, subjectID, actorID int) (*models.ReviewRequest, error)
	Decide(requestID, reviewerID int, outcome, reason string) (*models.ReviewRequest, error)
	ListPending(subjectType string) ([]models.ReviewRequest, error)
	Suspend(subjectType string, subjectID, adminID int) error
	Purge(subjectType string, subjectID int) error
}

type commitmentAPI interface {
	Propose(documentID int, investor *models.User, amount float64, message string) (*models.Commitment, error)
	Accept(commitmentID int, actor *models.User, message string) (*models.Commitment, error)
	Renegotiate(commitmentID int, actor *models.User, message string) (*models.Commitment, error)
	Withdraw(commitmentID int, investor *models.User) (*models.Commitment, error)
	MarkCompleted(commitmentID int, actor *models.User) (*models.Commitment, error)
	Get(commitmentID int, actor *models.User) (*models.Commitment, error)
	ListForInvestor(investorID int) ([]models.Commitment, error)
	ListForVenture(ventureID int) ([]models.Commitment, error)
}

var (
	reviewSvc       reviewAPI
	accessSvc       *services.AccessService
	negotiationSvc  *services.NegotiationService
	visibilitySvc   *services.VisibilityService
	conversationSvc *services.ConversationService
	commitmentSvc   commitmentAPI
)

// InitServices wires the service layer against the shared DB handle. Called
// once from main after config.InitDB.
func InitServices(mailer config.MailerConfig) {
	notifier := services.NewNotifier(config.DB, mailer)
	visibilitySvc = services.NewVisibilityService(config.DB)
	conversationSvc = services.NewConversationService(config.DB, visibilitySvc)
	reviewSvc = services.NewReviewService(config.DB).WithNotifier(notifier)
	accessSvc = services.NewAccessService(config.DB).WithNotifier(notifier)
	negotiationSvc = services.NewNegotiationService(config.DB).WithNotifier(notifier)
	commitmentSvc = services.NewCommitmentService(config.DB, conversationSvc).WithNotifier(notifier)
}

// currentActor loads the authenticated user set by AuthMiddleware.
func currentActor(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, false
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrDuplicateActiveRequest),
		errors.Is(err, services.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMissingRequiredArtifact):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

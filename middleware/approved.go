package middleware

import (
	"net/http"

	"venture-marketplace-api/config"
	"venture-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

// RequireApprovedProfile gates marketplace surfaces behind the review
// workflow: the caller's own subject (venture or profile, depending on role)
// must be approved. Admins pass through.
func RequireApprovedProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("userID")
		roleID, _ := c.Get("roleID")

		var status string
		var err error
		switch roleID.(int) {
		case models.RoleAdmin:
			c.Next()
			return
		case models.RoleVenture:
			err = config.DB.Model(&models.Venture{}).
				Select("status").
				Where("user_id = ? AND delete_at IS NULL", userID).
				Scan(&status).Error
		case models.RoleInvestor:
			err = config.DB.Model(&models.InvestorProfile{}).
				Select("status").
				Where("user_id = ? AND delete_at IS NULL", userID).
				Scan(&status).Error
		case models.RoleMentor:
			err = config.DB.Model(&models.MentorProfile{}).
				Select("status").
				Where("user_id = ? AND delete_at IS NULL", userID).
				Scan(&status).Error
		}

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check profile status"})
			c.Abort()
			return
		}
		if status != models.SubjectStatusApproved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Profile must be approved to use the marketplace"})
			c.Abort()
			return
		}

		c.Next()
	}
}

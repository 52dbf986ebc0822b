package services

import (
	"crypto/tls"
	"fmt"
	"log"
	"time"

	"venture-marketplace-api/config"
	"venture-marketplace-api/models"

	mail "github.com/go-mail/mail/v2"
	"gorm.io/gorm"
)

// Notifier writes in-app notification rows and sends best-effort email.
// State transitions call it after their transaction commits; a notification
// failure is logged and never rolls a transition back.
type Notifier struct {
	db     *gorm.DB
	mailer config.MailerConfig
}

func NewNotifier(db *gorm.DB, mailer config.MailerConfig) *Notifier {
	return &Notifier{db: db, mailer: mailer}
}

// NotifySubjectDecided tells a subject owner about a review decision.
func (n *Notifier) NotifySubjectDecided(subjectType string, subjectID, ownerID int, outcome, reason string) {
	title := "Submission approved"
	body := "Your submission has been approved. Your profile is now live on the marketplace."
	kind := "success"
	if outcome == models.ReviewOutcomeReject {
		title = "Submission rejected"
		body = "Your submission was rejected. Reason: " + reason +
			". You can revise and resubmit at any time."
		kind = "warning"
	}
	n.deliver(ownerID, title, body, kind, &subjectType, &subjectID)
}

// NotifyAccessGranted tells an investor they can now open a document.
func (n *Notifier) NotifyAccessGranted(investorID, documentID int) {
	subjectType := models.SubjectTypeVenture
	n.deliver(investorID, "Pitch deck access granted",
		fmt.Sprintf("You have been granted access to pitch document #%d.", documentID),
		"info", &subjectType, &documentID)
}

// NotifyCommitmentResponse tells an investor how a venture answered their
// proposal.
func (n *Notifier) NotifyCommitmentResponse(investorID, commitmentID int, response string) {
	title := "Commitment update"
	body := fmt.Sprintf("Your commitment #%d is now %s.", commitmentID, response)
	kind := "info"
	if response == models.CommitmentAccepted {
		title = "Commitment accepted"
		kind = "success"
	}
	n.deliver(investorID, title, body, kind, nil, nil)
}

// deliver persists the notification row, then emails in the background.
func (n *Notifier) deliver(userID int, title, body, kind string, subjectType *string, subjectID *int) {
	notification := models.Notification{
		UserID:             uint(userID),
		Title:              title,
		Message:            body,
		Type:               kind,
		RelatedSubjectType: subjectType,
		RelatedSubjectID:   subjectID,
		CreateAt:           time.Now(),
	}
	if err := n.db.Create(&notification).Error; err != nil {
		log.Printf("notification for user %d failed: %v", userID, err)
	}

	go func() {
		var user models.User
		if err := n.db.Select("user_id, email, first_name, last_name").
			Where("user_id = ? AND delete_at IS NULL", userID).
			First(&user).Error; err != nil {
			return
		}
		if user.Email == "" {
			return
		}
		if err := n.SendMail([]string{user.Email}, title, buildEmailHTML(user.FullName(), body)); err != nil {
			log.Printf("email to %s failed: %v", user.Email, err)
		}
	}()
}

// SendMail sends an HTML email through the configured SMTP relay.
func (n *Notifier) SendMail(to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}
	if !n.mailer.IsConfigured() {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	m := mail.NewMessage()
	m.SetHeader("From", n.mailer.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := mail.NewDialer(n.mailer.Host, n.mailer.Port, n.mailer.Username, n.mailer.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         n.mailer.Host,
		InsecureSkipVerify: n.mailer.SkipTLSVerify,
	}

	return d.DialAndSend(m)
}

func buildEmailHTML(recipientName, body string) string {
	return fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>%s</p>
<p>— Venture Marketplace</p>
</body></html>`, recipientName, body)
}

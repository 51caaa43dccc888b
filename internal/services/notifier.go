package services

import (
	"context"
	"fmt"
	"log"

	"github.com/anonto42/lms/backend/internal/metrics"
	"github.com/anonto42/lms/backend/internal/models"
)

// AdminDirectory lists notification recipients.
type AdminDirectory interface {
	GetAdmins(ctx context.Context) ([]models.User, error)
}

// NotificationStore persists in-app notifications.
type NotificationStore interface {
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
}

// PushDispatcher delivers a push message to device tokens.
type PushDispatcher interface {
	Send(ctx context.Context, title, body string, tokens []string) error
}

// AdminNotifier tells every admin that a post has been highlighted, through an
// inbox row and a push message. Both channels are best effort.
type AdminNotifier struct {
	admins AdminDirectory
	inbox  NotificationStore
	push   PushDispatcher
	logger *log.Logger
}

func NewAdminNotifier(admins AdminDirectory, inbox NotificationStore, push PushDispatcher, opts ...Option) *AdminNotifier {
	s := newSettings(opts)
	return &AdminNotifier{admins: admins, inbox: inbox, push: push, logger: s.logger}
}

// PostHighlighted implements HighlightNotifier.
func (n *AdminNotifier) PostHighlighted(ctx context.Context, post *models.Post) {
	admins, err := n.admins.GetAdmins(ctx)
	if err != nil {
		n.logger.Printf("notify: failed to load admins for post %s: %v", post.ID.Hex(), err)
		return
	}
	if len(admins) == 0 {
		return
	}

	title := "Post Highlighted"
	body := fmt.Sprintf("Post %q has been highlighted", post.Title)

	rows := make([]models.Notification, 0, len(admins))
	tokens := make([]string, 0, len(admins))
	for _, admin := range admins {
		rows = append(rows, models.Notification{
			Type:         models.NotificationTypePostHighlighted,
			RecipientUID: admin.FirebaseUID,
			TargetID:     post.ID.Hex(),
			TargetType:   "post",
			Title:        title,
			Message:      body,
		})
		if admin.FCMToken != nil && *admin.FCMToken != "" {
			tokens = append(tokens, *admin.FCMToken)
		}
	}

	if n.inbox != nil {
		err := n.inbox.CreateNotifications(ctx, rows)
		metrics.RecordAdminNotification("inbox", err)
		if err != nil {
			n.logger.Printf("notify: failed to store highlight notifications for post %s: %v", post.ID.Hex(), err)
		}
	}

	if n.push != nil && len(tokens) > 0 {
		err := n.push.Send(ctx, title, body, tokens)
		metrics.RecordAdminNotification("push", err)
		if err != nil {
			n.logger.Printf("notify: push failed for post %s: %v", post.ID.Hex(), err)
		}
	}
}

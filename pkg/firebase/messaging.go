package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// FCM accepts at most this many tokens per multicast
const maxMulticastTokens = 500

// MulticastSender is the subset of *messaging.Client used for pushes
type MulticastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// MessagingDispatcher sends notification pushes through Firebase Cloud Messaging
type MessagingDispatcher struct {
	client MulticastSender
}

func NewMessagingDispatcher(client MulticastSender) *MessagingDispatcher {
	return &MessagingDispatcher{client: client}
}

// Send pushes title and body to every token. It fails only when no token
// could be reached.
func (d *MessagingDispatcher) Send(ctx context.Context, title, body string, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	var sent, failed int
	var lastErr error
	for start := 0; start < len(tokens); start += maxMulticastTokens {
		end := min(start+maxMulticastTokens, len(tokens))
		resp, err := d.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens: tokens[start:end],
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		})
		if err != nil {
			failed += end - start
			lastErr = err
			continue
		}
		sent += resp.SuccessCount
		failed += resp.FailureCount
		for _, r := range resp.Responses {
			if r != nil && r.Error != nil {
				lastErr = r.Error
			}
		}
	}

	if sent == 0 && failed > 0 {
		return fmt.Errorf("push delivery failed for %d tokens: %w", failed, lastErr)
	}
	return nil
}

package firebase

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"smartspend/internal/domain/notification"
)

const fcmBatchLimit = 500

// Client implements notification.Messenger using Firebase Cloud Messaging
type Client struct {
	msgClient *messaging.Client
}

// NewClient initializes a Firebase app and returns an FCM client.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return &Client{msgClient: msgClient}, nil
}

// Send sends a push notification to a single device token
func (c *Client) Send(ctx context.Context, token string, msg *notification.Message) error {
	fcmMsg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: withCategory(msg),
	}

	_, err := c.msgClient.Send(ctx, fcmMsg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	return nil
}

// SendMulticast sends a push notification to multiple device tokens,
// batching into chunks of 500 (Firebase API limit). Tokens the provider
// reports as unregistered or invalid are returned so the caller can
// deactivate them.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, msg *notification.Message) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var invalid []string
	var totalSuccess, totalFailure int

	for _, batch := range chunkTokens(tokens, fcmBatchLimit) {
		fcmMsg := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: withCategory(msg),
		}

		resp, err := c.msgClient.SendEachForMulticast(ctx, fcmMsg)
		if err != nil {
			return invalid, fmt.Errorf("failed to send FCM multicast: %w", err)
		}

		totalSuccess += resp.SuccessCount
		totalFailure += resp.FailureCount
		if resp.FailureCount > 0 {
			invalid = append(invalid, collectInvalidTokens(batch, resp)...)
		}
	}

	log.Printf("FCM multicast: %d success, %d failure", totalSuccess, totalFailure)
	return invalid, nil
}

func collectInvalidTokens(tokens []string, resp *messaging.BatchResponse) []string {
	var invalid []string
	for i, sendResp := range resp.Responses {
		if sendResp.Error == nil {
			continue
		}
		if messaging.IsUnregistered(sendResp.Error) || messaging.IsInvalidArgument(sendResp.Error) {
			invalid = append(invalid, tokens[i])
		} else {
			log.Printf("FCM send error at index %d: %v", i, sendResp.Error)
		}
	}
	return invalid
}

func withCategory(msg *notification.Message) map[string]string {
	data := make(map[string]string, len(msg.Data)+1)
	for k, v := range msg.Data {
		data[k] = v
	}
	data["category"] = msg.Category
	return data
}

func chunkTokens(tokens []string, size int) [][]string {
	var chunks [][]string
	for i := 0; i < len(tokens); i += size {
		end := i + size
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, tokens[i:end])
	}
	return chunks
}

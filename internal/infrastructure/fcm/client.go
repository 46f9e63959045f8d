package fcm

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type Client struct {
	client *messaging.Client
}

// NewClient wires up Firebase Cloud Messaging. Without credentials the
// client constructs in disabled mode rather than failing, so the
// screener runs fine with push alerts turned off.
func NewClient() (*Client, error) {
	credPath, err := credentialsFile()
	if err != nil {
		return nil, err
	}
	if credPath == "" {
		log.Println("No Firebase credentials configured, push alerts disabled")
		return &Client{}, nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}

	log.Println("Firebase Cloud Messaging ready")
	return &Client{client: client}, nil
}

// credentialsFile resolves the service account location. An explicit
// path wins over inline JSON; inline JSON is spilled to a temp file
// because the firebase SDK only reads credentials from disk. Returns
// "" when neither variable is set.
func credentialsFile() (string, error) {
	if path := os.Getenv("FIREBASE_CREDENTIALS_PATH"); path != "" {
		return path, nil
	}
	credJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credJSON == "" {
		return "", nil
	}

	tmp, err := os.CreateTemp("", "fcm-credentials-*.json")
	if err != nil {
		return "", fmt.Errorf("spill credentials: %w", err)
	}
	defer tmp.Close()
	if _, err := tmp.Write([]byte(credJSON)); err != nil {
		return "", fmt.Errorf("spill credentials: %w", err)
	}
	return tmp.Name(), nil
}

// SendMulticast sends a notification to multiple device tokens.
func (c *Client) SendMulticast(tokens []string, title, body string, data map[string]string) error {
	if c.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "swing_signal_alerts",
				Priority:  messaging.PriorityHigh,
			},
		},
	}

	ctx := context.Background()
	response, err := c.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending multicast: %w", err)
	}

	log.Printf("Successfully sent %d messages (%d failures)", response.SuccessCount, response.FailureCount)
	return nil
}

// IsEnabled returns true if FCM client is initialized
func (c *Client) IsEnabled() bool {
	return c.client != nil
}

// Package gmailsrc reads newsletter emails from a Gmail mailbox and marks
// them processed. It authenticates with a service account impersonating the
// mailbox owner (domain-wide delegation).
package gmailsrc

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const user = "me"

// Client wraps the Gmail API service.
type Client struct {
	service        *gmail.Service
	processedLabel string
}

// Config holds the mailbox access settings.
type Config struct {
	CredentialsPath string
	Impersonate     string // mailbox address the service account acts as
	ProcessedLabel  string // label name marking handled newsletters
}

// NewClient creates a Gmail client from a Service Account JSON file path.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	data, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, gmail.GmailModifyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	jwtConfig.Subject = cfg.Impersonate

	svc, err := gmail.NewService(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &Client{service: svc, processedLabel: cfg.ProcessedLabel}, nil
}

// NewClientFromHTTP creates a Gmail client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client, processedLabel string) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &Client{service: svc, processedLabel: processedLabel}, nil
}

// Message is one fetched email with both body representations.
type Message struct {
	ID        string
	Subject   string
	From      string
	Date      string
	PlainText string
	HTML      string
}

// Search lists messages matching a Gmail search query and fetches each in
// full. maxResults <= 0 means the API default.
func (c *Client) Search(ctx context.Context, query string, maxResults int64) ([]Message, error) {
	call := c.service.Users.Messages.List(user).Q(query).Context(ctx)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}

	messages := make([]Message, 0, len(resp.Messages))
	for _, ref := range resp.Messages {
		full, err := c.service.Users.Messages.Get(user, ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch message %s: %w", ref.Id, err)
		}
		messages = append(messages, parseMessage(full))
	}
	return messages, nil
}

// MarkProcessed applies the processed label to a message and clears UNREAD.
// The label is created on first use if the mailbox does not have it yet.
func (c *Client) MarkProcessed(ctx context.Context, messageID string) error {
	labelID, err := c.ensureLabel(ctx)
	if err != nil {
		return err
	}

	_, err = c.service.Users.Messages.Modify(user, messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    []string{labelID},
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to mark message %s processed: %w", messageID, err)
	}
	return nil
}

func (c *Client) ensureLabel(ctx context.Context) (string, error) {
	labels, err := c.service.Users.Labels.List(user).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list labels: %w", err)
	}
	for _, label := range labels.Labels {
		if label.Name == c.processedLabel {
			return label.Id, nil
		}
	}

	created, err := c.service.Users.Labels.Create(user, &gmail.Label{
		Name:                  c.processedLabel,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create label %q: %w", c.processedLabel, err)
	}
	return created.Id, nil
}

func parseMessage(msg *gmail.Message) Message {
	out := Message{ID: msg.Id}
	if msg.Payload == nil {
		return out
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			out.Subject = header.Value
		case "From":
			out.From = header.Value
		case "Date":
			out.Date = header.Value
		}
	}

	out.PlainText = findBody(msg.Payload, "text/plain")
	out.HTML = findBody(msg.Payload, "text/html")
	return out
}

// findBody walks the MIME tree depth-first and returns the first decoded
// part of the wanted type.
func findBody(part *gmail.MessagePart, mimeType string) string {
	if strings.EqualFold(part.MimeType, mimeType) && part.Body != nil && part.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
		return string(data)
	}
	for _, child := range part.Parts {
		if body := findBody(child, mimeType); body != "" {
			return body
		}
	}
	return ""
}

package line

import (
	"context"
	"encoding/json"
)

// Event type discriminators as delivered by the LINE platform. Anything not
// listed here is ignored by the router.
const (
	EventTypeMessage  = "message"
	EventTypePostback = "postback"
)

// Message type discriminators inside a message event.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVideo = "video"
	MessageTypeAudio = "audio"
	MessageTypeFile  = "file"
)

// Event is a single entry of the webhook `events` array.
type Event struct {
	Type       string    `json:"type"`
	ReplyToken string    `json:"replyToken,omitempty"`
	Timestamp  int64     `json:"timestamp,omitempty"`
	Source     Source    `json:"source"`
	Message    *Message  `json:"message,omitempty"`
	Postback   *Postback `json:"postback,omitempty"`
}

type Source struct {
	Type   string `json:"type,omitempty"`
	UserID string `json:"userId,omitempty"`
}

type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type Postback struct {
	// Data is an urlencoded payload, e.g. "action=add_code".
	Data string `json:"data"`
}

// WebhookBody is the decoded request body. Events are kept raw so the exact
// inbound blob can be attached to stored records for audit.
type WebhookBody struct {
	Events []json.RawMessage `json:"events"`
}

// ReplyMessage is the single outbound message sent back per reply token.
type ReplyMessage struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}

type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

type QuickReplyItem struct {
	Type   string         `json:"type"`
	Action PostbackAction `json:"action"`
}

type PostbackAction struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Data        string `json:"data"`
	DisplayText string `json:"displayText"`
}

// NewTextReply builds a plain text reply.
func NewTextReply(text string) *ReplyMessage {
	return &ReplyMessage{Type: "text", Text: text}
}

// IWebhookUsecase processes a batch of raw webhook events sequentially.
// Per-event failures are swallowed so one bad event never aborts siblings.
type IWebhookUsecase interface {
	ProcessEvents(ctx context.Context, events []json.RawMessage)
}

// IReplySender posts a single reply message using a one-time reply token.
// Fire-and-forget: errors are logged by the implementation, never surfaced
// to the webhook response.
type IReplySender interface {
	Reply(ctx context.Context, replyToken string, message ReplyMessage) error
}

// IContentFetcher downloads raw media bytes from the LINE content CDN.
type IContentFetcher interface {
	FetchContent(ctx context.Context, messageID string) ([]byte, error)
}

// IForwarder relays a raw webhook body to an upstream processor with a
// bounded timeout. On any error the caller falls back to local processing.
type IForwarder interface {
	Enabled() bool
	Forward(ctx context.Context, body []byte, signature string) error
}

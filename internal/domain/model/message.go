package model

import "time"

// Attachment is an uploaded image stored in the external object store.
type Attachment struct {
	PublicID string
	URL      string
}

// Message is a single entry of a conversation thread.
type Message struct {
	ID             string
	ConversationID string
	Sender         string
	Text           string
	Image          *Attachment
	CreatedAt      time.Time
}

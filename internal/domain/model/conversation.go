package model

import "time"

// Conversation is a buyer/seller message thread identified by group title.
type Conversation struct {
	ID            string
	GroupTitle    string
	Members       []string
	LastMessage   string
	LastMessageID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

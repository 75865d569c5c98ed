package repository

import (
	"context"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// ConversationRepository describes persistence operations with threads.
type ConversationRepository interface {
	Create(ctx context.Context, groupTitle string, members []string) (*model.Conversation, error)
	GetByTitle(ctx context.Context, groupTitle string) (*model.Conversation, error)
	ListByMember(ctx context.Context, memberID string) ([]model.Conversation, error)
	UpdateLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) (*model.Conversation, error)
}

package repository

import (
	"context"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// MessageRepository describes persistence operations with messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) (*model.Message, error)
	ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error)
}

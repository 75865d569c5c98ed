package usecase

import (
	"context"

	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/domain/repository"
)

// Uploader stores an image payload in the external object store.
type Uploader interface {
	Upload(ctx context.Context, folder, data string) (*model.Attachment, error)
}

// MessageUseCase manages conversation messages.
type MessageUseCase struct {
	messages repository.MessageRepository
	uploads  Uploader
}

// NewMessageUseCase constructs MessageUseCase.
func NewMessageUseCase(m repository.MessageRepository, u Uploader) *MessageUseCase {
	return &MessageUseCase{messages: m, uploads: u}
}

// Send persists a new message. An image payload, when present, is uploaded
// to the object store first and stored as a reference.
func (u *MessageUseCase) Send(ctx context.Context, conversationID, sender, text, imageData string) (*model.Message, error) {
	msg := &model.Message{
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
	}

	if imageData != "" {
		attachment, err := u.uploads.Upload(ctx, "messages", imageData)
		if err != nil {
			return nil, err
		}
		msg.Image = attachment
	}

	return u.messages.Create(ctx, msg)
}

// ListByConversation returns the thread's messages in chronological order.
func (u *MessageUseCase) ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	return u.messages.ListByConversation(ctx, conversationID)
}

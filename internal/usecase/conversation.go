package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/domain/repository"
)

// ConversationUseCase manages buyer/seller message threads.
type ConversationUseCase struct {
	conversations repository.ConversationRepository
}

// NewConversationUseCase constructs ConversationUseCase.
func NewConversationUseCase(c repository.ConversationRepository) *ConversationUseCase {
	return &ConversationUseCase{conversations: c}
}

// CreateOrFetch returns the conversation for the group title, creating it
// when absent. Returns whether a new conversation was created.
func (u *ConversationUseCase) CreateOrFetch(ctx context.Context, groupTitle, userID, sellerID string) (*model.Conversation, bool, error) {
	existing, err := u.conversations.GetByTitle(ctx, groupTitle)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, false, err
	}

	conv, err := u.conversations.Create(ctx, groupTitle, []string{userID, sellerID})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			// lost a creation race, the other writer's thread wins
			existing, err := u.conversations.GetByTitle(ctx, groupTitle)
			return existing, false, err
		}
		return nil, false, err
	}
	return conv, true, nil
}

// ListForMember returns threads containing the member, most recently
// updated first.
func (u *ConversationUseCase) ListForMember(ctx context.Context, memberID string) ([]model.Conversation, error) {
	return u.conversations.ListByMember(ctx, memberID)
}

// UpdateLastMessage refreshes the thread preview fields.
func (u *ConversationUseCase) UpdateLastMessage(ctx context.Context, id, lastMessage, lastMessageID string) (*model.Conversation, error) {
	return u.conversations.UpdateLastMessage(ctx, id, lastMessage, lastMessageID)
}

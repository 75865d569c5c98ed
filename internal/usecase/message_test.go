package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/test"
)

func TestMessageSendWithoutImage(t *testing.T) {
	repo := &test.MessageRepositoryStub{}
	uploads := &test.UploaderStub{}
	uc := NewMessageUseCase(repo, uploads)

	msg, err := uc.Send(context.Background(), "c1", "u1", "hello", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Image != nil {
		t.Fatalf("no image payload must mean no attachment, got %+v", msg.Image)
	}
	if len(uploads.Uploaded) != 0 {
		t.Fatalf("uploader must not be called, got %d uploads", len(uploads.Uploaded))
	}
}

func TestMessageSendUploadsImage(t *testing.T) {
	repo := &test.MessageRepositoryStub{}
	uploads := &test.UploaderStub{}
	uc := NewMessageUseCase(repo, uploads)

	msg, err := uc.Send(context.Background(), "c1", "u1", "look", "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Image == nil || msg.Image.URL == "" {
		t.Fatalf("expected stored attachment, got %+v", msg.Image)
	}
	if len(uploads.Uploaded) != 1 {
		t.Fatalf("expected one upload, got %d", len(uploads.Uploaded))
	}
}

func TestMessageSendUploadFailure(t *testing.T) {
	uploadErr := errors.New("store unavailable")
	uploads := &test.UploaderStub{UploadFn: func(context.Context, string, string) (*model.Attachment, error) {
		return nil, uploadErr
	}}
	created := false
	repo := &test.MessageRepositoryStub{CreateFn: func(ctx context.Context, msg *model.Message) (*model.Message, error) {
		created = true
		return msg, nil
	}}
	uc := NewMessageUseCase(repo, uploads)

	if _, err := uc.Send(context.Background(), "c1", "u1", "look", "broken"); !errors.Is(err, uploadErr) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if created {
		t.Fatal("message must not persist when the upload fails")
	}
}

func TestMessageListByConversation(t *testing.T) {
	repo := &test.MessageRepositoryStub{Items: []model.Message{
		{ID: "m1", ConversationID: "c1", Text: "first"},
		{ID: "m2", ConversationID: "c1", Text: "second"},
	}}
	uc := NewMessageUseCase(repo, &test.UploaderStub{})

	msgs, err := uc.ListByConversation(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != "m1" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

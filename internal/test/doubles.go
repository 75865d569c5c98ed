package test

import (
	"context"
	"errors"
	"sync"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// SentMail captures a single notifier delivery.
type SentMail struct {
	Recipient string
	Subject   string
	Body      string
}

// NotifierStub records deliveries and optionally fails them.
type NotifierStub struct {
	mu   sync.Mutex
	Sent []SentMail

	SendFn func(ctx context.Context, recipient, subject, body string) error
}

func (n *NotifierStub) Send(ctx context.Context, recipient, subject, body string) error {
	if n.SendFn != nil {
		if err := n.SendFn(ctx, recipient, subject, body); err != nil {
			return err
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, SentMail{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

// SentCount returns the number of recorded deliveries.
func (n *NotifierStub) SentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Sent)
}

// LastSent returns the most recent delivery, or the zero value.
func (n *NotifierStub) LastSent() SentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Sent) == 0 {
		return SentMail{}
	}
	return n.Sent[len(n.Sent)-1]
}

// UploaderStub records uploads and returns a canned attachment.
type UploaderStub struct {
	Uploaded []string

	UploadFn func(ctx context.Context, folder, data string) (*model.Attachment, error)
}

func (u *UploaderStub) Upload(ctx context.Context, folder, data string) (*model.Attachment, error) {
	if u.UploadFn != nil {
		return u.UploadFn(ctx, folder, data)
	}
	u.Uploaded = append(u.Uploaded, data)
	return &model.Attachment{PublicID: "messages/stub", URL: "https://cdn.example.com/messages/stub.png"}, nil
}

// TokenParserStub implements the middleware token parsing contract.
type TokenParserStub struct {
	Subject string
	Role    string
	Err     error
	ParseFn func(string) (string, string, error)
}

// ParseToken either delegates to the override or returns the fixed claims.
func (t TokenParserStub) ParseToken(token string) (string, string, error) {
	if t.ParseFn != nil {
		return t.ParseFn(token)
	}
	if t.Err != nil {
		return "", "", t.Err
	}
	return t.Subject, t.Role, nil
}

var errMismatch = errors.New("mismatch")

package auth

import "time"

// Role names carried inside auth tokens.
const (
	RoleUser   = "user"
	RoleSeller = "seller"
)

// Strategy verifies tokens issued by the identity service. IssueToken exists
// for the shared-secret counterpart and for tests.
type Strategy interface {
	IssueToken(subject, role string) (string, error)
	ParseToken(token string) (subject, role string, err error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

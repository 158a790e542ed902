package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidToken   = errors.New("invalid identity token")
	ErrMissingSubject = errors.New("identity token has no subject")
)

// Identity is the signed-in user extracted from a verified token.
type Identity struct {
	Subject   string
	Name      string
	TokenID   string
	ExpiresAt time.Time
}

// Owner keys boards, sessions and the orderName column. Display names are not unique, so only the subject is used.
func (i Identity) Owner() string {
	return i.Subject
}

type Strategy interface {
	ParseToken(token string) (*Identity, error)
}

type Options struct {
	Issuer   string
	Audience string
	Leeway   time.Duration
}

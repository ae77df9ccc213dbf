package auth

import "time"

type Strategy interface {
	IssueToken(buyerID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

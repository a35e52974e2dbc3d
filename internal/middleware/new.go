package middleware

import (
	"task-reminder/pkg/log"
)

type Middleware struct {
	l             log.Logger
	webhookSecret string
}

// New creates the shared gin middlewares. An empty webhookSecret disables the Telegram secret check.
func New(l log.Logger, webhookSecret string) Middleware {
	return Middleware{
		l:             l,
		webhookSecret: webhookSecret,
	}
}

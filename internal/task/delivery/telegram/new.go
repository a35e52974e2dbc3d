package telegram

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"task-reminder/internal/task"
	pkgLog "task-reminder/pkg/log"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	// Wait blocks until every message accepted so far has been processed.
	Wait()
}

// Sender posts plain-text replies. Implemented by *pkg/telegram.Bot.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Config holds the handler settings.
type Config struct {
	RateLimitPerMin int            // per chat; 0 disables limiting
	Location        *time.Location // zone used to render due and reminder times
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc task.UseCase, bot Sender, cfg Config) Handler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		loc:     cfg.Location,
		limiter: newRateLimiter(cfg.RateLimitPerMin),
		seen:    newUpdateFilter(),
		wg:      &sync.WaitGroup{},
	}
}

package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"task-reminder/internal/model"
	"task-reminder/internal/task"
	pkgLog "task-reminder/pkg/log"
	pkgResponse "task-reminder/pkg/response"
	pkgTelegram "task-reminder/pkg/telegram"
)

type handler struct {
	l       pkgLog.Logger
	uc      task.UseCase
	bot     Sender
	loc     *time.Location
	limiter *rateLimiter
	seen    *updateFilter
	wg      *sync.WaitGroup
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It answers 200 at once and processes the message in a background goroutine,
// since extraction may call an LLM and Telegram expects a quick response.
// @Summary Telegram webhook
// @Description Receives Telegram updates. Requires the X-Telegram-Bot-Api-Secret-Token header when a secret is configured.
// @Tags Telegram
// @Accept json
// @Produce json
// @Param update body telegram.Update true "Telegram update"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 429 {object} response.Resp
// @Router /webhook/telegram [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-text updates (stickers, edits, channel posts)
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.From == nil || strings.TrimSpace(msg.Text) == "" {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Redeliveries are answered before the limiter so they cost no budget.
	if h.seen.contains(update.UpdateID) {
		h.duplicate(c, update.UpdateID)
		return
	}

	// A 429 makes Telegram redeliver the update later, so it is not marked seen yet.
	if err := h.limiter.Allow(msg.Chat.ID); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	if !h.seen.firstSeen(update.UpdateID) {
		h.duplicate(c, update.UpdateID)
		return
	}

	// Detach from the request context, which is cancelled once we respond.
	bgCtx := context.WithoutCancel(ctx)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: processMessage failed: %v", err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) duplicate(c *gin.Context, updateID int64) {
	h.l.Debugf(c.Request.Context(), "telegram handler: duplicate update %d", updateID)
	pkgResponse.OK(c, map[string]string{"status": "duplicate"})
}

func (h *handler) Wait() {
	h.wg.Wait()
}

// processMessage routes one text message to a command or to task creation.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	sc := model.Scope{
		UserID:   msg.From.ID,
		ChatID:   msg.Chat.ID,
		Username: msg.From.Username,
	}
	text := strings.TrimSpace(msg.Text)

	reply, err := h.reply(ctx, sc, text)
	if err != nil {
		h.l.Warnf(ctx, "telegram handler: user=%d text=%q: %v", sc.UserID, text, err)
		reply = errorMessage(err)
	}
	if sendErr := h.bot.SendMessage(ctx, sc.ChatID, reply); sendErr != nil {
		return fmt.Errorf("send reply: %w", sendErr)
	}
	return nil
}

func (h *handler) reply(ctx context.Context, sc model.Scope, text string) (string, error) {
	if !strings.HasPrefix(text, "/") {
		out, err := h.uc.Create(ctx, sc, task.CreateInput{Text: text})
		if err != nil {
			return "", err
		}
		return createdReply(out, h.loc), nil
	}

	cmd, arg := splitCommand(text)
	switch cmd {
	case "/start":
		return startText, nil
	case "/help":
		return helpText, nil
	case "/list":
		tasks, err := h.uc.List(ctx, sc)
		if err != nil {
			return "", err
		}
		return listReply(tasks, h.loc), nil
	case "/done":
		id, err := parseTaskID(arg)
		if err != nil {
			return "", err
		}
		out, err := h.uc.Complete(ctx, sc, id)
		if err != nil {
			return "", err
		}
		return completedReply(out, h.loc), nil
	case "/delete":
		id, err := parseTaskID(arg)
		if err != nil {
			return "", err
		}
		if err := h.uc.Delete(ctx, sc, id); err != nil {
			return "", err
		}
		return deletedReply(id), nil
	default:
		return helpText, nil
	}
}

// splitCommand separates "/done@my_bot 12" into "/done" and "12".
func splitCommand(text string) (string, string) {
	cmd, arg, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadTaskID
	}
	return id, nil
}

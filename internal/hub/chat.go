package hub

import (
	"context"
	"strings"
	"time"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

// SendChat records the user's message and schedules the bot reply after a
// random delay. The reply is delivered on the returned channel once it has
// been stored.
func (h *Hub) SendChat(ctx context.Context, text string) (domain.ChatMessage, <-chan domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, nil, ErrEmptyMessage
	}

	h.mu.Lock()
	msg := domain.ChatMessage{Sender: domain.SenderUser, Message: text, Timestamp: time.Now().UTC()}
	h.state.ChatHistory = append(h.state.ChatHistory, msg)
	err := h.persistLocked(ctx)
	delay := h.chatDelayLocked()
	h.mu.Unlock()
	if err != nil {
		return msg, nil, err
	}

	reply := make(chan domain.ChatMessage, 1)
	detached := context.WithoutCancel(ctx)

	h.scheduler.After(delay, func() {
		reply <- h.answer(detached, text)
	})

	return msg, reply, nil
}

func (h *Hub) answer(ctx context.Context, text string) domain.ChatMessage {
	topic := h.responder.Topic(text)
	msg := domain.ChatMessage{
		Sender:    domain.SenderBot,
		Message:   h.responder.Respond(text),
		Timestamp: time.Now().UTC(),
	}

	h.mu.Lock()
	h.state.ChatHistory = append(h.state.ChatHistory, msg)
	err := h.persistLocked(ctx)
	h.mu.Unlock()
	if err != nil {
		h.logger.Warn("chat reply not persisted", "error", err)
	}

	h.metrics.chatAnswered(ctx, string(topic))
	return msg
}

func (h *Hub) chatDelayLocked() time.Duration {
	spread := h.cfg.ChatDelayMax - h.cfg.ChatDelayMin
	if spread <= 0 {
		return h.cfg.ChatDelayMin
	}
	return h.cfg.ChatDelayMin + time.Duration(h.rng.Int63n(int64(spread)+1))
}

// ChatHistory returns the conversation oldest first.
func (h *Hub) ChatHistory() []domain.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clone(h.state.ChatHistory)
}

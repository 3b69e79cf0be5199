// Package notify carries transient user-facing notices. It is the client-side
// analogue of the toast stack: mirror failures, validation errors and action
// confirmations land here and the view layer drains them on the next render.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Level classifies a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a single user-facing message.
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier is the sink for user-facing messages.
type Notifier interface {
	Notify(level Level, message string)
}

// Center is a bounded in-memory notice buffer. When full, the oldest notice
// is discarded; a storefront user only ever cares about recent ones.
type Center struct {
	mu      sync.Mutex
	limit   int
	notices []Notice
}

// NewCenter constructs a Center keeping at most limit notices.
func NewCenter(limit int) *Center {
	if limit <= 0 {
		limit = 16
	}
	return &Center{limit: limit}
}

// Notify records a notice and logs it.
func (c *Center) Notify(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.notices = append(c.notices, Notice{Level: level, Message: message, At: time.Now()})
	if len(c.notices) > c.limit {
		c.notices = c.notices[len(c.notices)-c.limit:]
	}

	switch level {
	case LevelError:
		log.Warn().Str("notice", message).Msg("user notice")
	default:
		log.Debug().Str("notice", message).Msg("user notice")
	}
}

// Drain returns all pending notices and clears the buffer.
func (c *Center) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.notices
	c.notices = nil
	return out
}

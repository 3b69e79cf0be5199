// Package syncq mirrors local cart mutations to the backend best-effort:
// local write first, remote sync queued, failure surfaces a notification and
// nothing is rolled back or retried.
package syncq

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/peakform/storefront/internal/notify"
)

// API is the slice of the backend client the mirror uses.
type API interface {
	AddCartItem(ctx context.Context, itemID, size string) error
	UpdateCartItem(ctx context.Context, itemID, size string, quantity int) error
}

// TokenSource reports the current session token. Anonymous sessions have no
// server-side cart, so their mutations are not mirrored at all.
type TokenSource interface {
	Token() string
}

type opKind int

const (
	opAdd opKind = iota
	opUpdate
)

type op struct {
	id       string
	kind     opKind
	itemID   string
	selector string
	quantity int
}

// Mirror is the best-effort cart sync queue. Enqueueing never blocks; when
// the queue is saturated the operation is dropped with a warning, since the
// server-side cart is a convenience copy, not the source of truth.
type Mirror struct {
	api      API
	notifier notify.Notifier
	tokens   TokenSource
	ops      chan op
	timeout  time.Duration
}

// New constructs a Mirror with the given queue capacity and per-call timeout.
func New(api API, notifier notify.Notifier, tokens TokenSource, queueSize int, timeout time.Duration) *Mirror {
	if queueSize <= 0 {
		queueSize = 64
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Mirror{
		api:      api,
		notifier: notifier,
		tokens:   tokens,
		ops:      make(chan op, queueSize),
		timeout:  timeout,
	}
}

// MirrorAdd queues an add-to-cart mirror call.
func (m *Mirror) MirrorAdd(itemID, selectorKey string) {
	m.enqueue(op{id: uuid.New().String()[:8], kind: opAdd, itemID: itemID, selector: selectorKey})
}

// MirrorUpdate queues a quantity-update mirror call.
func (m *Mirror) MirrorUpdate(itemID, selectorKey string, quantity int) {
	m.enqueue(op{id: uuid.New().String()[:8], kind: opUpdate, itemID: itemID, selector: selectorKey, quantity: quantity})
}

func (m *Mirror) enqueue(o op) {
	if m.tokens != nil && m.tokens.Token() == "" {
		return
	}
	select {
	case m.ops <- o:
	default:
		log.Warn().Str("op_id", o.id).Str("item", o.itemID).Msg("mirror queue full, dropping operation")
	}
}

// Start consumes the queue until the context is cancelled. Calls that were
// already queued when cancellation arrives are abandoned.
func (m *Mirror) Start(ctx context.Context) {
	log.Info().Int("capacity", cap(m.ops)).Msg("Starting cart mirror worker")

	for {
		select {
		case o := <-m.ops:
			m.run(ctx, o)
		case <-ctx.Done():
			log.Info().Msg("Cart mirror worker stopped")
			return
		}
	}
}

func (m *Mirror) run(ctx context.Context, o op) {
	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var err error
	switch o.kind {
	case opAdd:
		err = m.api.AddCartItem(callCtx, o.itemID, o.selector)
	case opUpdate:
		err = m.api.UpdateCartItem(callCtx, o.itemID, o.selector, o.quantity)
	}
	if err != nil {
		log.Error().Err(err).Str("op_id", o.id).Str("item", o.itemID).Msg("cart mirror call failed")
		if m.notifier != nil {
			m.notifier.Notify(notify.LevelError, "Could not sync your cart with the server")
		}
	}
}

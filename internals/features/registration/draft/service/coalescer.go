package service

import (
	"bytes"
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/datatypes"

	"ichiba_backend/internals/features/registration/draft/model"
)

// DebounceDelay mirrors the autosave quiet period of the forms.
const DebounceDelay = 800 * time.Millisecond

type pendingWrite struct {
	timer   *time.Timer
	payload datatypes.JSON // nil means delete
}

// Coalescer collapses bursts of draft saves into one trailing write per
// (user, form-type) key: each schedule cancels and replaces the pending
// timer, so at most one save/delete is ever pending per key and only the
// last payload hits the store. Persistence is best-effort; store errors are
// logged and swallowed.
type Coalescer struct {
	store Store
	delay time.Duration

	mu      sync.Mutex
	pending map[Key]*pendingWrite
	// last payload actually persisted per key; lets an unmodified
	// load-then-save cycle skip the write entirely.
	persisted map[Key][]byte
	closed    bool
}

func NewCoalescer(store Store, delay time.Duration) *Coalescer {
	if delay <= 0 {
		delay = DebounceDelay
	}
	return &Coalescer{
		store:     store,
		delay:     delay,
		pending:   map[Key]*pendingWrite{},
		persisted: map[Key][]byte{},
	}
}

// Schedule queues a debounced save of the payload. An all-empty payload for
// a key we have previously persisted schedules a deletion instead; an
// all-empty payload with nothing persisted is dropped so empty drafts are
// never created.
func (co *Coalescer) Schedule(key Key, payload model.DraftPayload) {
	raw, err := payload.Marshal()
	if err != nil {
		log.Printf("[WARN] draft marshal failed for %s/%s: %v", key.UserKey, key.FormType, err)
		return
	}

	co.mu.Lock()
	defer co.mu.Unlock()
	if co.closed {
		return
	}

	if !payload.HasMeaningfulContent() {
		if _, exists := co.persisted[key]; !exists {
			// nothing stored, nothing to delete; drop any pending write too
			co.cancelLocked(key)
			return
		}
		co.scheduleLocked(key, nil)
		return
	}

	if prev, ok := co.persisted[key]; ok && bytes.Equal(prev, raw) {
		// unchanged since last persist, no spurious write from mount
		co.cancelLocked(key)
		return
	}

	co.scheduleLocked(key, datatypes.JSON(raw))
}

// MarkLoaded records the payload that was just read from the store, so the
// immediate re-save the forms emit after mount is recognized as a no-op.
func (co *Coalescer) MarkLoaded(key Key, raw datatypes.JSON) {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.persisted[key] = append([]byte(nil), raw...)
}

// DeleteNow cancels any pending write and deletes synchronously (used after
// a successful submission).
func (co *Coalescer) DeleteNow(ctx context.Context, key Key) error {
	co.mu.Lock()
	co.cancelLocked(key)
	delete(co.persisted, key)
	co.mu.Unlock()
	return co.store.Delete(ctx, key)
}

// Flush fires every pending write immediately.
func (co *Coalescer) Flush() {
	co.mu.Lock()
	keys := make([]Key, 0, len(co.pending))
	for k, p := range co.pending {
		p.timer.Stop()
		keys = append(keys, k)
	}
	co.mu.Unlock()
	for _, k := range keys {
		co.fire(k)
	}
}

// Close flushes pending writes and refuses further scheduling.
func (co *Coalescer) Close() {
	co.mu.Lock()
	if co.closed {
		co.mu.Unlock()
		return
	}
	co.closed = true
	co.mu.Unlock()
	co.Flush()
}

func (co *Coalescer) scheduleLocked(key Key, payload datatypes.JSON) {
	if prev, ok := co.pending[key]; ok {
		prev.timer.Stop()
	}
	p := &pendingWrite{payload: payload}
	p.timer = time.AfterFunc(co.delay, func() { co.fire(key) })
	co.pending[key] = p
}

func (co *Coalescer) cancelLocked(key Key) {
	if prev, ok := co.pending[key]; ok {
		prev.timer.Stop()
		delete(co.pending, key)
	}
}

func (co *Coalescer) fire(key Key) {
	co.mu.Lock()
	p, ok := co.pending[key]
	if !ok {
		co.mu.Unlock()
		return
	}
	delete(co.pending, key)
	payload := p.payload
	co.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if payload == nil {
		if err := co.store.Delete(ctx, key); err != nil {
			log.Printf("[WARN] draft delete failed for %s/%s: %v", key.UserKey, key.FormType, err)
			return
		}
		co.mu.Lock()
		delete(co.persisted, key)
		co.mu.Unlock()
		return
	}

	if err := co.store.Upsert(ctx, key, payload); err != nil {
		log.Printf("[WARN] draft save failed for %s/%s: %v", key.UserKey, key.FormType, err)
		return
	}
	co.mu.Lock()
	co.persisted[key] = append([]byte(nil), payload...)
	co.mu.Unlock()
}

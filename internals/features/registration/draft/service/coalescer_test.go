package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"ichiba_backend/internals/features/registration/draft/model"
)

// fakeStore records every call so tests can assert on write counts.
type fakeStore struct {
	mu      sync.Mutex
	upserts []datatypes.JSON
	deletes []Key
	loadErr error
}

func (f *fakeStore) Load(ctx context.Context, key Key) (*model.RegistrationDraftModel, error) {
	return nil, f.loadErr
}

func (f *fakeStore) Upsert(ctx context.Context, key Key, payload datatypes.JSON) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, append(datatypes.JSON(nil), payload...))
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, key Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeStore) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.upserts)
}

func (f *fakeStore) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deletes)
}

func payloadWithName(name string) model.DraftPayload {
	return model.DraftPayload{
		CurrentStep:  1,
		FormData:     map[string]any{"name": name},
		DocumentURLs: map[string]string{},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestCoalescerCollapsesBurstIntoOneWrite(t *testing.T) {
	store := &fakeStore{}
	co := NewCoalescer(store, 30*time.Millisecond)
	key := Key{UserKey: "u1", FormType: "organizer"}

	// five rapid keystrokes
	for _, name := range []string{"山", "山田", "山田太", "山田太郎", "山田太郎 "} {
		co.Schedule(key, payloadWithName(name))
		time.Sleep(2 * time.Millisecond)
	}

	waitFor(t, func() bool { return store.upsertCount() == 1 })
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, store.upsertCount(), "burst must collapse into one trailing write")

	// only the last payload persisted
	last, err := model.UnmarshalPayload(store.upserts[0])
	require.NoError(t, err)
	assert.Equal(t, "山田太郎 ", last.FormData["name"])
}

func TestCoalescerSuppressesEmptyDraft(t *testing.T) {
	store := &fakeStore{}
	co := NewCoalescer(store, 10*time.Millisecond)
	key := Key{UserKey: "u1", FormType: "organizer"}

	empty := model.DraftPayload{
		CurrentStep:  2,
		FormData:     map[string]any{"name": "   "},
		DocumentURLs: map[string]string{},
	}
	co.Schedule(key, empty)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, store.upsertCount(), "empty draft must never be created")
	assert.Zero(t, store.deleteCount(), "nothing persisted, nothing to delete")
}

func TestCoalescerEmptiedDraftIsDeleted(t *testing.T) {
	store := &fakeStore{}
	co := NewCoalescer(store, 10*time.Millisecond)
	key := Key{UserKey: "u1", FormType: "organizer"}

	co.Schedule(key, payloadWithName("山田"))
	waitFor(t, func() bool { return store.upsertCount() == 1 })

	// user clears the only field
	co.Schedule(key, payloadWithName("  "))
	waitFor(t, func() bool { return store.deleteCount() == 1 })
	assert.Equal(t, 1, store.upsertCount())
	assert.Equal(t, key, store.deletes[0])
}

func TestCoalescerSkipsUnchangedPayloadAfterLoad(t *testing.T) {
	store := &fakeStore{}
	co := NewCoalescer(store, 10*time.Millisecond)
	key := Key{UserKey: "u1", FormType: "organizer"}

	loaded := payloadWithName("山田太郎")
	raw, err := loaded.Marshal()
	require.NoError(t, err)
	co.MarkLoaded(key, raw)

	// the form re-emits its state right after mount
	co.Schedule(key, loaded)
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, store.upsertCount(), "reload must not rewrite an unchanged draft")

	// an actual edit still goes through
	co.Schedule(key, payloadWithName("山田花子"))
	waitFor(t, func() bool { return store.upsertCount() == 1 })
}

func TestCoalescerDeleteNowCancelsPending(t *testing.T) {
	store := &fakeStore{}
	co := NewCoalescer(store, 50*time.Millisecond)
	key := Key{UserKey: "u1", FormType: "exhibitor"}

	co.Schedule(key, payloadWithName("たこ焼き"))
	require.NoError(t, co.DeleteNow(context.Background(), key))

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, store.upsertCount(), "pending write must be cancelled")
	assert.Equal(t, 1, store.deleteCount())
}

func TestCoalescerCloseFlushesPending(t *testing.T) {
	store := &fakeStore{}
	co := NewCoalescer(store, time.Minute)
	key := Key{UserKey: "u1", FormType: "organizer"}

	co.Schedule(key, payloadWithName("山田"))
	co.Close()

	assert.Equal(t, 1, store.upsertCount(), "close must flush the pending write")

	// and further scheduling is refused
	co.Schedule(key, payloadWithName("無視される"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, store.upsertCount())
}

func TestCoalescerKeysAreIndependent(t *testing.T) {
	store := &fakeStore{}
	co := NewCoalescer(store, 10*time.Millisecond)

	co.Schedule(Key{UserKey: "u1", FormType: "organizer"}, payloadWithName("a"))
	co.Schedule(Key{UserKey: "u1", FormType: "exhibitor"}, payloadWithName("b"))
	co.Schedule(Key{UserKey: "u2", FormType: "organizer"}, payloadWithName("c"))

	waitFor(t, func() bool { return store.upsertCount() == 3 })
}

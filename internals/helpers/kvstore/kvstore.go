// Package kvstore is a small injected key-value session store. Handlers and
// the identity resolver receive a Store instead of touching session state ad
// hoc, so tests can swap in the in-memory implementation.
package kvstore

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

/* ===============================
   Postgres-backed store
=================================*/

type SessionKVModel struct {
	KVKey       string     `gorm:"column:kv_key;primaryKey;type:text"`
	KVValue     string     `gorm:"column:kv_value;type:text;not null"`
	KVExpiresAt *time.Time `gorm:"column:kv_expires_at"`
	KVUpdatedAt time.Time  `gorm:"column:kv_updated_at;autoUpdateTime"`
}

func (SessionKVModel) TableName() string {
	return "session_kv"
}

type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row SessionKVModel
	err := s.db.WithContext(ctx).
		Where("kv_key = ? AND (kv_expires_at IS NULL OR kv_expires_at > now())", key).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return row.KVValue, true, nil
}

func (s *DBStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	row := SessionKVModel{KVKey: key, KVValue: value}
	if ttl > 0 {
		exp := time.Now().UTC().Add(ttl)
		row.KVExpiresAt = &exp
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kv_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"kv_value", "kv_expires_at", "kv_updated_at"}),
		}).
		Create(&row).Error
}

func (s *DBStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("kv_key = ?", key).Delete(&SessionKVModel{}).Error
}

/* ===============================
   In-memory store (tests, dev)
=================================*/

type memEntry struct {
	value     string
	expiresAt time.Time // zero = no expiry
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]memEntry{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	if !ok || (!e.expiresAt.IsZero() && time.Now().After(e.expiresAt)) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.data[key] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

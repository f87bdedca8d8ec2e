package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newDispatcherDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

func TestDispatcherPersistsEvent(t *testing.T) {
	gdb, mock := newDispatcherDB(t)

	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"notification_id"}).AddRow(uuid.NewString()))

	d := NewDispatcher(gdb)
	d.Notify(Event{
		UserKey: "U1234",
		Type:    "registration_submitted",
		Title:   "登録を受け付けました",
		Body:    "審査完了までお待ちください。",
	})
	d.Close() // drains the queue before returning

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatcherInsertFailureIsSwallowed(t *testing.T) {
	gdb, mock := newDispatcherDB(t)

	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnError(assert.AnError)

	d := NewDispatcher(gdb)
	// must not panic or surface the error anywhere
	d.Notify(Event{UserKey: "U1234", Type: "application_submitted", Title: "t"})
	d.Close()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifyNeverBlocksWhenQueueFull(t *testing.T) {
	gdb, _ := newDispatcherDB(t)
	d := &Dispatcher{db: gdb, ch: make(chan Event), done: make(chan struct{})}
	// no worker running and an unbuffered channel: Notify must still return
	done := make(chan struct{})
	go func() {
		d.Notify(Event{UserKey: "u", Type: "t"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
}

func TestEmailBodyShape(t *testing.T) {
	got := emailBody(Event{EmailTo: "taro@example.com", Title: "件名", Body: "本文"})
	assert.Equal(t, map[string]string{
		"to":      "taro@example.com",
		"subject": "件名",
		"text":    "本文",
	}, got)
}

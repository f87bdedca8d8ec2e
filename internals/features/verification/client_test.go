package verification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckImageValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"result":"yes","expirationDate":"2027-03-31"}`))
	}))
	defer srv.Close()

	got := NewClient(srv.URL, time.Second).CheckImage(context.Background(), "https://cdn.example.com/doc.webp")
	assert.Equal(t, StatusValid, got.Status)
	assert.Equal(t, "2027-03-31", got.ExpirationDate)
}

func TestCheckImageInvalidCarriesReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"no","reason":"有効期限が切れています"}`))
	}))
	defer srv.Close()

	got := NewClient(srv.URL, time.Second).CheckImage(context.Background(), "https://cdn.example.com/doc.webp")
	assert.Equal(t, StatusInvalid, got.Status)
	assert.Equal(t, "有効期限が切れています", got.Reason)
}

func TestCheckImageServerErrorIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	got := NewClient(srv.URL, time.Second).CheckImage(context.Background(), "https://cdn.example.com/doc.webp")
	assert.Equal(t, StatusUnknown, got.Status)
	assert.NotEmpty(t, got.Reason)
}

func TestCheckImageTimeoutIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	got := NewClient(srv.URL, 20*time.Millisecond).CheckImage(context.Background(), "https://cdn.example.com/doc.webp")
	assert.Equal(t, StatusUnknown, got.Status)
}

func TestCheckImageGarbageResponseIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	got := NewClient(srv.URL, time.Second).CheckImage(context.Background(), "https://cdn.example.com/doc.webp")
	assert.Equal(t, StatusUnknown, got.Status)
}

func TestCheckImageNoEndpointConfigured(t *testing.T) {
	got := NewClient("", time.Second).CheckImage(context.Background(), "https://cdn.example.com/doc.webp")
	assert.Equal(t, StatusUnknown, got.Status)
}

func TestCheckBatchFallsBackPerDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	docs := []Document{
		{Key: "identity_document", Name: "運転免許証", Uploaded: true},
		{Key: "food_permit", Name: "営業許可証", Uploaded: true},
	}
	got := NewClient(srv.URL, time.Second).CheckBatch(context.Background(), docs)
	assert.Len(t, got, 2)
	for i, st := range got {
		assert.Equal(t, docs[i].Key, st.Key)
		assert.Equal(t, StatusUnknown, st.Status)
	}
}

func TestCheckBatchPassesThroughStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"statuses":[{"key":"identity_document","status":"valid"}]}`))
	}))
	defer srv.Close()

	got := NewClient(srv.URL, time.Second).CheckBatch(context.Background(), []Document{
		{Key: "identity_document", Uploaded: true},
	})
	assert.Equal(t, []DocumentStatus{{Key: "identity_document", Status: StatusValid}}, got)
}

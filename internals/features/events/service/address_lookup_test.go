package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookup(endpoint string) *AddressLookup {
	return &AddressLookup{
		endpoint: endpoint,
		http:     &http.Client{Timeout: time.Second},
	}
}

func TestLookupTruncatesUpstreamResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1000001", r.URL.Query().Get("zipcode"))
		w.Write([]byte(`{"status":200,"results":[{"zipcode":"1000001","address1":"東京都","address2":"千代田区","address3":"千代田","kana1":"ﾄｳｷｮｳﾄ"}]}`))
	}))
	defer srv.Close()

	got, err := testLookup(srv.URL).Lookup(context.Background(), "100-0001")
	require.NoError(t, err)
	assert.Equal(t, Address{
		PostalCode: "1000001",
		Prefecture: "東京都",
		City:       "千代田区",
		Town:       "千代田",
	}, got)
}

func TestLookupNormalizesFullWidthInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1500001", r.URL.Query().Get("zipcode"))
		w.Write([]byte(`{"status":200,"results":[{"address1":"東京都","address2":"渋谷区","address3":"神宮前"}]}`))
	}))
	defer srv.Close()

	_, err := testLookup(srv.URL).Lookup(context.Background(), "１５０ー０００１")
	require.NoError(t, err)
}

func TestLookupRejectsMalformedCode(t *testing.T) {
	_, err := testLookup("http://unused.invalid").Lookup(context.Background(), "12345")
	assert.Error(t, err)
}

func TestLookupUnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"results":null}`))
	}))
	defer srv.Close()

	_, err := testLookup(srv.URL).Lookup(context.Background(), "9999999")
	assert.ErrorIs(t, err, ErrPostalCodeNotFound)
}

// Package verification calls the external document-expiry checker. The
// whole package is best-effort: every failure path degrades to an
// "unknown" informational status and nothing here may ever block the
// registration flow.
package verification

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
	StatusUnknown = "unknown"
)

const genericFailureReason = "書類を確認できませんでした"

// Result is the informational outcome for one document.
type Result struct {
	Status         string `json:"status"`
	ExpirationDate string `json:"expiration_date,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// Document is one entry of the batch contract.
type Document struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Expiration string `json:"expiration,omitempty"`
	Uploaded   bool   `json:"uploaded"`
}

// DocumentStatus is one entry of the batch response.
type DocumentStatus struct {
	Key    string `json:"key"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// upstream wire shapes
type singleRequest struct {
	ImageURL string `json:"imageUrl"`
}

type singleResponse struct {
	Result         string `json:"result"` // "yes" | "no"
	ExpirationDate string `json:"expirationDate"`
	Reason         string `json:"reason"`
}

type batchRequest struct {
	Documents []Document `json:"documents"`
}

type batchResponse struct {
	Statuses []DocumentStatus `json:"statuses"`
}

// CheckImage verifies one uploaded document URL. It never returns an error:
// timeouts, non-2xx responses, and decode failures all collapse into
// StatusUnknown with a generic reason.
func (c *Client) CheckImage(ctx context.Context, imageURL string) Result {
	unknown := Result{Status: StatusUnknown, Reason: genericFailureReason}
	if c.endpoint == "" {
		return unknown
	}

	var out singleResponse
	if err := c.post(ctx, c.endpoint, singleRequest{ImageURL: imageURL}, &out); err != nil {
		log.Printf("[WARN] document verification failed: %v", err)
		return unknown
	}

	switch out.Result {
	case "yes":
		return Result{Status: StatusValid, ExpirationDate: out.ExpirationDate, Reason: out.Reason}
	case "no":
		reason := out.Reason
		if reason == "" {
			reason = genericFailureReason
		}
		return Result{Status: StatusInvalid, ExpirationDate: out.ExpirationDate, Reason: reason}
	default:
		return unknown
	}
}

// CheckBatch verifies several documents at once. A failed call yields an
// unknown status per document rather than an error.
func (c *Client) CheckBatch(ctx context.Context, docs []Document) []DocumentStatus {
	fallback := make([]DocumentStatus, 0, len(docs))
	for _, d := range docs {
		fallback = append(fallback, DocumentStatus{Key: d.Key, Status: StatusUnknown, Reason: genericFailureReason})
	}
	if c.endpoint == "" || len(docs) == 0 {
		return fallback
	}

	var out batchResponse
	if err := c.post(ctx, c.endpoint, batchRequest{Documents: docs}, &out); err != nil {
		log.Printf("[WARN] batch document verification failed: %v", err)
		return fallback
	}
	if len(out.Statuses) == 0 {
		return fallback
	}
	return out.Statuses
}

func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	body, err := sonic.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	return sonic.Unmarshal(raw, out)
}

type statusError struct{ code int }

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}

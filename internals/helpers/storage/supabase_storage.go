// Package storage pushes document images to Supabase storage. Images are
// re-encoded to webp with a bounded long edge before upload so the public
// bucket never holds multi-MB camera originals.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	"ichiba_backend/internals/configs"
)

const (
	maxLongEdge  = 1600
	webpQuality  = 82
	uploadExpiry = 20 * time.Second
)

var httpClient = &http.Client{Timeout: uploadExpiry}

// TranscodeToWebP decodes jpeg/png, scales the long edge down to maxLongEdge
// (CatmullRom), and re-encodes as webp.
func TranscodeToWebP(r io.Reader) ([]byte, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxLongEdge || h > maxLongEdge {
		scale := float64(maxLongEdge) / float64(max(w, h))
		dw, dh := int(float64(w)*scale), int(float64(h)*scale)
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
		src = dst
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}

// UploadDocumentImage converts the multipart file and uploads it to the
// public documents bucket. Returns the public URL for the document slot.
func UploadDocumentImage(folder string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	payload, err := TranscodeToWebP(src)
	if err != nil {
		return "", err
	}

	objectPath := fmt.Sprintf("%s/%s.webp", strings.Trim(folder, "/"), uuid.NewString())
	return uploadToSupabase("documents", objectPath, payload, "image/webp")
}

func uploadToSupabase(bucket, objectPath string, body []byte, contentType string) (string, error) {
	base := strings.TrimRight(configs.SupabaseURL, "/")
	if base == "" {
		return "", fmt.Errorf("SUPABASE_URL is not configured")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", base, bucket, escapePath(objectPath))
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+configs.SupabaseServiceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage upload failed (%d): %s", resp.StatusCode, string(msg))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", base, bucket, escapePath(objectPath)), nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

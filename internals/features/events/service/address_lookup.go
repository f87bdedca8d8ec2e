package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"ichiba_backend/internals/configs"
)

var postalCodeRe = regexp.MustCompile(`^\d{7}$`)

// Address is the truncated shape returned to the client; the upstream
// response carries kana variants we do not forward.
type Address struct {
	PostalCode string `json:"postal_code"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	Town       string `json:"town"`
}

type zipcloudResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Results []struct {
		Zipcode  string `json:"zipcode"`
		Address1 string `json:"address1"`
		Address2 string `json:"address2"`
		Address3 string `json:"address3"`
	} `json:"results"`
}

type AddressLookup struct {
	endpoint string
	http     *http.Client
}

func NewAddressLookup() *AddressLookup {
	return &AddressLookup{
		endpoint: configs.AddressAPIURL,
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

var ErrPostalCodeNotFound = errors.New("postal code not found")

// Lookup resolves a 7-digit postal code. Hyphens and full-width digits are
// tolerated on input.
func (a *AddressLookup) Lookup(ctx context.Context, postalCode string) (Address, error) {
	code := normalizePostalCode(postalCode)
	if !postalCodeRe.MatchString(code) {
		return Address{}, errors.New("postal code must be 7 digits")
	}

	u := a.endpoint + "?zipcode=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Address{}, err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return Address{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Address{}, err
	}
	var zr zipcloudResponse
	if err := sonic.Unmarshal(body, &zr); err != nil {
		return Address{}, err
	}
	if zr.Status != 200 {
		if zr.Message != "" {
			return Address{}, errors.New(zr.Message)
		}
		return Address{}, errors.New("address lookup failed")
	}
	if len(zr.Results) == 0 {
		return Address{}, ErrPostalCodeNotFound
	}

	r := zr.Results[0]
	return Address{
		PostalCode: code,
		Prefecture: r.Address1,
		City:       r.Address2,
		Town:       r.Address3,
	}, nil
}

func normalizePostalCode(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		case r == '-' || r == 'ー' || r == '－' || r == '‐':
			// separator, drop
		}
	}
	return b.String()
}

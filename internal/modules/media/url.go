package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMalformedURL is returned when a media URL cannot be reduced to
// scheme://host/path.
var ErrMalformedURL = errors.New("malformed media url")

// CleanURL strips query and fragment from a media URL, keeping only
// scheme://host/path. CDN hosts append ephemeral signed parameters; the
// stripped form is the stable one worth storing and re-fetching.
// Applying CleanURL to its own output is a no-op.
func CleanURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedURL, raw)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrMalformedURL, raw)
	}
	return u.Scheme + "://" + u.Host + u.Path, nil
}

// Validator checks media URLs before committing to a download.
type Validator struct {
	HTTPClient *http.Client
}

func NewValidator() *Validator {
	return &Validator{HTTPClient: &http.Client{Timeout: 30 * time.Second}}
}

// IsValidImage issues a HEAD request and reports true only for a 200
// response whose Content-Type contains image/jpeg. Transport errors,
// other statuses and other content types all count as invalid; the caller
// decides what to log.
func (v *Validator) IsValidImage(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	return strings.Contains(resp.Header.Get("Content-Type"), "image/jpeg")
}

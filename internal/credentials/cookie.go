package credentials

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

// CookieOptions are the attributes written alongside a cookie value.
// A zero Expires and MaxAge make a session cookie.
type CookieOptions struct {
	Path    string
	Expires time.Time
	MaxAge  time.Duration
	Secure  bool
}

// CookieJar is the cookie half of the credential store
type CookieJar interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string, opts CookieOptions) error
	Delete(ctx context.Context, name string) error
}

// encodeCookieValue percent-encodes a value the way a browser cookie holds
// it, with spaces as %20
func encodeCookieValue(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

func decodeCookieValue(raw string) (string, error) {
	return url.PathUnescape(raw)
}

func (o CookieOptions) expiry(now time.Time) time.Time {
	if !o.Expires.IsZero() {
		return o.Expires
	}
	if o.MaxAge > 0 {
		return now.Add(o.MaxAge)
	}
	return time.Time{}
}

func pathOrDefault(path string) string {
	if path == "" {
		return DefaultCookiePath
	}
	return path
}

type memoryCookie struct {
	value   string
	path    string
	expires time.Time
	secure  bool
}

func (c memoryCookie) expired(now time.Time) bool {
	return !c.expires.IsZero() && !now.Before(c.expires)
}

// MemoryCookieJar keeps cookies for the lifetime of the process
type MemoryCookieJar struct {
	mu      sync.RWMutex
	cookies map[string]memoryCookie
	now     func() time.Time
}

// NewMemoryCookieJar creates an empty in-memory cookie jar
func NewMemoryCookieJar() *MemoryCookieJar {
	return &MemoryCookieJar{
		cookies: make(map[string]memoryCookie),
		now:     time.Now,
	}
}

// Get returns the decoded cookie value; expired cookies are reported absent
func (j *MemoryCookieJar) Get(_ context.Context, name string) (string, bool, error) {
	j.mu.RLock()
	c, ok := j.cookies[name]
	j.mu.RUnlock()

	if !ok || c.expired(j.now()) {
		return "", false, nil
	}
	value, err := decodeCookieValue(c.value)
	if err != nil {
		return "", false, fmt.Errorf("decode cookie %s: %w", name, err)
	}
	return value, true, nil
}

// Set stores a cookie, keeping the value encoded
func (j *MemoryCookieJar) Set(_ context.Context, name, value string, opts CookieOptions) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	j.cookies[name] = memoryCookie{
		value:   encodeCookieValue(value),
		path:    pathOrDefault(opts.Path),
		expires: opts.expiry(now),
		secure:  opts.Secure,
	}
	return nil
}

// Delete expires the cookie one second in the past
func (j *MemoryCookieJar) Delete(ctx context.Context, name string) error {
	return j.Set(ctx, name, "", CookieOptions{Expires: j.now().Add(-expiredOffset)})
}

// Package stub is a local stand-in for the shortening service. It
// speaks the same wire contract the client expects, so the CLI can be
// exercised end to end without a real deployment.
package stub

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// CodeGenerator generates short codes for links without an alias.
type CodeGenerator func() string

// Service implements the shortening logic behind the stub endpoints.
type Service struct {
	store        *MemoryStore
	generateCode CodeGenerator
	baseURL      string
	now          func() time.Time
}

// NewService creates a stub service. baseURL is the public address the
// short links are built from.
func NewService(store *MemoryStore, generator CodeGenerator, baseURL string) *Service {
	return &Service{
		store:        store,
		generateCode: generator,
		baseURL:      strings.TrimRight(baseURL, "/"),
		now:          time.Now,
	}
}

// ShortURL renders the full short URL for a link.
func (s *Service) ShortURL(link Link) string {
	return fmt.Sprintf("%s/%s", s.baseURL, link.Code)
}

// Store exposes the underlying link store.
func (s *Service) Store() *MemoryStore {
	return s.store
}

// Shorten creates a short link for longURL, valid for validityMinutes.
// With an alias the code is the alias and a taken alias is a conflict.
// Without one, identical normalized URLs share a code and keep the
// expiry of the first request.
func (s *Service) Shorten(ctx context.Context, longURL, alias string, validityMinutes int) (Link, error) {
	now := s.now()

	if alias != "" {
		link := Link{
			Code:      alias,
			LongURL:   longURL,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Duration(validityMinutes) * time.Minute),
		}

		if err := s.store.Save(ctx, link); err != nil {
			return Link{}, err
		}

		return link, nil
	}

	urlHash := hashURL(normalizeURL(longURL))

	if code, err := s.store.CodeByHash(ctx, urlHash); err == nil {
		return s.store.Get(ctx, code)
	} else if !errors.Is(err, ErrNotFound) {
		return Link{}, err
	}

	link := Link{
		Code:      s.generateCode(),
		LongURL:   longURL,
		URLHash:   urlHash,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(validityMinutes) * time.Minute),
	}

	if err := s.store.Save(ctx, link); err != nil {
		return Link{}, err
	}

	return link, nil
}

// Resolve returns the link for code, distinguishing expired links from
// missing ones.
func (s *Service) Resolve(ctx context.Context, code string) (Link, error) {
	link, err := s.store.Get(ctx, code)
	if err != nil {
		return Link{}, err
	}

	if s.now().After(link.ExpiresAt) {
		return Link{}, ErrExpired
	}

	return link, nil
}

// ErrExpired means a link exists but its validity window has passed.
var ErrExpired = errors.New("short link expired")

// normalizeURL folds equivalent spellings of a URL together so the
// dedupe hash treats them as one: scheme and host case, default ports,
// trailing slashes, and empty fragments do not count as differences.
func normalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	if len(u.Path) > 1 {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	u.Fragment = ""

	return u.String()
}

func hashURL(normalized string) string {
	h := sha256.Sum256([]byte(normalized))

	return hex.EncodeToString(h[:])
}

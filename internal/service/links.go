package service

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mmcdole/queuewatch/internal/yacy"
)

// launcher abstracts opening a link outside the terminal (consumer-defined interface)
type launcher interface {
	Launch(url string) error
}

// LinkService opens row links. Page-relative hrefs are resolved against
// the peer's base URL.
type LinkService struct {
	launcher launcher
	base     *url.URL
	logger   *slog.Logger
}

// NewLinkService creates a link service for the peer at baseURL
func NewLinkService(launcher launcher, baseURL string, logger *slog.Logger) (*LinkService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := url.Parse(baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	return &LinkService{launcher: launcher, base: base, logger: logger}, nil
}

// Resolve turns href into an absolute URL
func (s *LinkService) Resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", href, err)
	}
	return s.base.ResolveReference(ref).String(), nil
}

// Open opens href in the browser
func (s *LinkService) Open(href string) error {
	target, err := s.Resolve(href)
	if err != nil {
		return err
	}
	s.logger.Debug("open link", "href", href, "url", target)
	return s.launcher.Launch(target)
}

// OpenDeletePage opens the peer's delete page for hash in the browser,
// leaving the deletion to the peer's own page.
func (s *LinkService) OpenDeletePage(hash string) error {
	return s.Open(yacy.DeleteHref(hash))
}

// Package opener is the "open external link" capability. It hands URLs to the
// platform's default handler through fyne.
package opener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"xbox11/internal/command"
	"xbox11/internal/host"
)

const Name = "opener"

var (
	ErrScheme = errors.New("scheme not allowed")
	ErrURL    = errors.New("invalid url")
)

var allowedSchemes = []string{"http", "https", "mailto"}

type Args struct {
	URL string `json:"url"`
}

type Plugin struct {
	h host.Host
}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return Name
}

func (p *Plugin) Init(h host.Host) error {
	p.h = h
	return h.Register("open_url", command.Typed(p.openURL))
}

func (p *Plugin) openURL(_ context.Context, args Args) (bool, error) {
	u, err := Parse(args.URL)
	if err != nil {
		return false, err
	}

	if err := p.h.App().OpenURL(u); err != nil {
		return false, fmt.Errorf("open %s: %w", u.Redacted(), err)
	}
	p.h.Logger().Info("Opener", "url opened", map[string]interface{}{
		"scheme": u.Scheme,
		"host":   u.Host,
	})
	return true, nil
}

// Parse validates raw as an absolute URL with an allowed scheme.
func Parse(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrURL, err)
	}
	if !slices.Contains(allowedSchemes, strings.ToLower(u.Scheme)) {
		return nil, fmt.Errorf("%w: %q", ErrScheme, u.Scheme)
	}
	if u.Scheme != "mailto" && u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrURL, raw)
	}
	return u, nil
}

package treeitem

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/pstuifzand/tui-treeview/internal/host"
	"github.com/pstuifzand/tui-treeview/internal/model"
)

// ErrMalformedIcon is returned when an icon locator cannot be parsed
var ErrMalformedIcon = errors.New("malformed icon locator")

// ParseResource parses a resource locator strictly. A locator without a
// scheme is a file path.
func ParseResource(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrMalformedIcon, raw, err)
	}
	if u.Scheme == "" {
		if u.Path == "" {
			return nil, fmt.Errorf("%w %q: missing path", ErrMalformedIcon, raw)
		}
		return &url.URL{Scheme: "file", Path: u.Path}, nil
	}
	if u.Opaque == "" && u.Host == "" && u.Path == "" {
		return nil, fmt.Errorf("%w %q: empty locator", ErrMalformedIcon, raw)
	}
	return u, nil
}

func resolveIcon(icon model.Icon) (*host.IconPath, error) {
	if icon.IsZero() {
		return nil, nil
	}
	if !icon.IsThemed() {
		uri, err := ParseResource(icon.Path)
		if err != nil {
			return nil, err
		}
		return &host.IconPath{URI: uri}, nil
	}

	light, err := ParseResource(icon.Light)
	if err != nil {
		return nil, fmt.Errorf("light icon: %w", err)
	}
	dark, err := ParseResource(icon.Dark)
	if err != nil {
		return nil, fmt.Errorf("dark icon: %w", err)
	}
	return &host.IconPath{Light: light, Dark: dark}, nil
}

// Package links opens project links in the system browser after asking the user.
package links

import (
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/ncruces/zenity"
	"github.com/pkg/browser"
)

// ErrBadURL is returned for links that are not absolute http(s) or mailto URLs.
var ErrBadURL = errors.New("bad link")

var (
	confirm = func(link string) error {
		return zenity.Question(link,
			zenity.Title("Open link"),
			zenity.OKLabel("Open"),
			zenity.CancelLabel("Cancel"),
		)
	}
	openURL = browser.OpenURL
)

// Open asks for confirmation and opens the link in the default browser.
// Declining the dialog is not an error.
func Open(link string) error {
	if err := Check(link); err != nil {
		return err
	}

	if err := confirm(link); err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("confirm link: %w", err)
	}

	log.Printf("links: opening %s", link)
	if err := openURL(link); err != nil {
		return fmt.Errorf("open %s: %w", link, err)
	}
	return nil
}

// Check accepts absolute http, https and mailto URLs.
func Check(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadURL, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: %q has no host", ErrBadURL, link)
		}
	case "mailto":
		if u.Opaque == "" {
			return fmt.Errorf("%w: %q has no address", ErrBadURL, link)
		}
	default:
		return fmt.Errorf("%w: scheme %q", ErrBadURL, u.Scheme)
	}
	return nil
}

// Package action performs the outbound actions of list items: copying to
// the clipboard and opening pages in the browser.
package action

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Actions is what the front ends use to leave the terminal
type Actions interface {
	CopyToClipboard(text string) error
	OpenURL(url string) error
}

// System uses the host clipboard and default browser
type System struct{}

// CopyToClipboard puts text on the system clipboard
func (System) CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// OpenURL opens url in the default browser
func (System) OpenURL(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// Recorder records actions instead of performing them
type Recorder struct {
	Copied []string
	Opened []string
	Err    error
}

// CopyToClipboard records text
func (r *Recorder) CopyToClipboard(text string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Copied = append(r.Copied, text)
	return nil
}

// OpenURL records url
func (r *Recorder) OpenURL(url string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Opened = append(r.Opened, url)
	return nil
}

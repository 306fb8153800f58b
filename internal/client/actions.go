package client

import (
	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// CopyToClipboard copies text to the system clipboard. Failure is
// expected on headless systems and is deliberately not surfaced.
func (c *Client) CopyToClipboard(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		c.logger.Debug("clipboard write failed", zap.Error(err))
	}
}

// OpenInBrowser opens url in the default browser. Best effort, same as
// the clipboard: the shorten flow never fails because of it.
func (c *Client) OpenInBrowser(url string) {
	if err := browser.OpenURL(url); err != nil {
		c.logger.Debug("browser open failed", zap.Error(err))
	}
}

package tui

import (
	"fmt"

	"github.com/stefanclaw/infofetch/internal/config"
	"github.com/stefanclaw/infofetch/internal/controller"
)

// StatusBar renders the top status bar: the keywords, or the pending title
// while an add flow waits for content.
func StatusBar(k config.KeywordsConfig, state controller.State, pending string, width int) string {
	text := fmt.Sprintf("  infofetch - %s fetch, %s add, %s remove  ", k.Fetch, k.Add, k.Remove)
	if state == controller.AwaitingContent {
		text = fmt.Sprintf("  infofetch - adding %q, type its content after %s  ", pending, k.Add)
	}
	return statusBarStyle.Width(width).Render(text)
}

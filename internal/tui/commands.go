package tui

import (
	"fmt"
	"strings"

	"github.com/stefanclaw/infofetch/internal/config"
)

// Command represents a parsed slash command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a slash command from input.
// Returns nil if the input is not a slash command.
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	input = input[1:]
	parts := strings.SplitN(input, " ", 2)
	cmd := &Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// Query is launcher input split into a keyword and its argument.
type Query struct {
	Keyword  string
	Argument string
}

// ParseQuery splits input at the first space, the way a launcher separates an
// extension keyword from the text after it. The argument is passed through
// untrimmed. Returns nil for blank input and slash commands.
func ParseQuery(input string) *Query {
	input = strings.TrimLeft(input, " ")
	if input == "" || strings.HasPrefix(input, "/") {
		return nil
	}
	kw, arg, _ := strings.Cut(input, " ")
	return &Query{Keyword: kw, Argument: arg}
}

// HelpText returns the markdown help for the launcher.
func HelpText(k config.KeywordsConfig) string {
	return fmt.Sprintf(`# infofetch

| Input | Does |
|---|---|
| `+"`%s <title>`"+` | search titles, Enter copies the content |
| `+"`%s <title>`"+` | start a new item, Enter confirms the title |
| `+"`%s <content>`"+` | after a title is confirmed, Enter saves the item |
| `+"`%s <title>`"+` | search titles, Enter removes the item |

## Commands

- `+"`/help`"+` toggle this help
- `+"`/reload`"+` re-read the info list from disk
- `+"`/update`"+` check for a newer release
- `+"`/quit`"+` exit

Up/Down select an entry, Enter activates it, Esc quits.
`, k.Fetch, k.Add, k.Add, k.Remove)
}

// Package result defines the responses the controller hands back to a host:
// lists of entries to render, or a replacement for the user's query. Hosts
// dispatch on the Behavior of an entry's action; nothing here talks to a UI.
package result

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/stefanclaw/infofetch/internal/info"
)

// Icons shipped with the extension.
const (
	IconDefault = "images/icon.png"
	IconEmail   = "images/email.png"
	IconNumber  = "images/number.png"
)

// Kind identifies what an entry represents.
type Kind string

const (
	KindMessage           Kind = "message"
	KindActionableMessage Kind = "actionable_message"
	KindCopy              Kind = "copy"
	KindAddTitle          Kind = "add_title"
	KindAddContent        Kind = "add_content"
	KindRemove            Kind = "remove"
	KindHide              Kind = "hide"
)

// Behavior tells the host what activating an entry does.
type Behavior string

const (
	DoNothing Behavior = "do_nothing"
	Copy      Behavior = "copy"
	Custom    Behavior = "custom"
	Hide      Behavior = "hide"
)

// Option selects the controller follow-up for a Custom action.
type Option string

const (
	OptionAddTitle   Option = "add_title"
	OptionResetTitle Option = "reset_title"
	OptionAddContent Option = "add_content"
	OptionRemove     Option = "remove"
)

// CustomData is handed back to the controller when a Custom entry is
// activated.
type CustomData struct {
	Option Option    `json:"option"`
	Item   info.Item `json:"item"`
}

// Action is what happens when an entry is activated.
type Action struct {
	Behavior Behavior    `json:"behavior"`
	Text     string      `json:"text,omitempty"`
	Data     *CustomData `json:"data,omitempty"`
	KeepOpen bool        `json:"keep_open,omitempty"`
}

// Entry is one row of a rendered result list.
type Entry struct {
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	OnEnter     Action `json:"on_enter"`
}

// ResponseKind distinguishes the two response shapes.
type ResponseKind string

const (
	RenderList ResponseKind = "render_list"
	SetQuery   ResponseKind = "set_query"
)

// Response is the controller's answer to an event.
type Response struct {
	Kind    ResponseKind `json:"kind"`
	Entries []Entry      `json:"entries,omitempty"`
	Query   string       `json:"query,omitempty"`
}

// List wraps entries in a render-list response.
func List(entries ...Entry) *Response {
	return &Response{Kind: RenderList, Entries: entries}
}

// UserQuery replaces the user's query with q.
func UserQuery(q string) *Response {
	return &Response{Kind: SetQuery, Query: q}
}

// CopyEntry copies the item's content on activation.
func CopyEntry(it info.Item) Entry {
	return Entry{
		Kind:        KindCopy,
		Name:        it.Title,
		Description: it.Content,
		Icon:        IconFor(it.Content),
		OnEnter:     Action{Behavior: Copy, Text: it.Content},
	}
}

// AddTitleEntry offers query as the title of a new item.
func AddTitleEntry(query string) Entry {
	return Entry{
		Kind:        KindAddTitle,
		Name:        query,
		Description: "Add new info item: " + query,
		Icon:        IconDefault,
		OnEnter: Action{
			Behavior: Custom,
			Data:     &CustomData{Option: OptionAddTitle, Item: info.Item{Title: query}},
			KeepOpen: true,
		},
	}
}

// AddContentEntry offers query as the content for the pending title.
func AddContentEntry(query, title string) Entry {
	return Entry{
		Kind:        KindAddContent,
		Name:        query,
		Description: "Add this content to: " + title,
		Icon:        IconFor(query),
		OnEnter: Action{
			Behavior: Custom,
			Data:     &CustomData{Option: OptionAddContent, Item: info.Item{Title: title, Content: query}},
		},
	}
}

// RemoveEntry asks to remove it.
func RemoveEntry(it info.Item) Entry {
	return Entry{
		Kind:        KindRemove,
		Name:        it.Title,
		Description: "Remove info item?",
		Icon:        IconFor(it.Content),
		OnEnter: Action{
			Behavior: Custom,
			Data:     &CustomData{Option: OptionRemove, Item: it},
		},
	}
}

// Message is an inert entry.
func Message(title, description string) Entry {
	return Entry{
		Kind:        KindMessage,
		Name:        title,
		Description: description,
		Icon:        IconDefault,
		OnEnter:     Action{Behavior: DoNothing},
	}
}

// ActionableMessage resets the pending title when activated.
func ActionableMessage(title, description string) Entry {
	return Entry{
		Kind:        KindActionableMessage,
		Name:        title,
		Description: description,
		Icon:        IconDefault,
		OnEnter: Action{
			Behavior: Custom,
			Data:     &CustomData{Option: OptionResetTitle},
			KeepOpen: true,
		},
	}
}

// HideEntry closes the host window when activated.
func HideEntry() Entry {
	return Entry{Kind: KindHide, OnEnter: Action{Behavior: Hide}}
}

// IconFor picks the icon for a piece of content.
func IconFor(content string) string {
	if strings.Contains(content, "@") {
		return IconEmail
	}
	if isNumeric(content) {
		return IconNumber
	}
	return IconDefault
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Name, e.Description)
}

package info

// Item is a stored title/content record. Title is the lookup key; Content is
// what gets copied.
type Item struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Titles returns the titles of items in storage order.
func Titles(items []Item) []string {
	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	return titles
}

// HasTitle reports whether any item uses title.
func HasTitle(items []Item, title string) bool {
	for _, it := range items {
		if it.Title == title {
			return true
		}
	}
	return false
}

// HasContent reports whether any item uses content.
func HasContent(items []Item, content string) bool {
	for _, it := range items {
		if it.Content == content {
			return true
		}
	}
	return false
}

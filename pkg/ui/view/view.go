// Package view holds the display models commands hand to a ui.Renderer
package view

// Item is one entry of a List
type Item struct {
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
}

// List is a titled set of items such as templates, scripts or topics
type List struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
	// Empty is printed instead of the list when there are no items
	Empty string `json:"-"`
}

// Setting is one effective configuration value
type Setting struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Settings is the output of config show
type Settings struct {
	Title    string    `json:"title"`
	Settings []Setting `json:"settings"`
	Files    []string  `json:"files"`
}

// Level classifies a Message
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Message is a single status line
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"message"`
}

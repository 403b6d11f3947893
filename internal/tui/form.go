package tui

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// widgetDraft is the add-widget form content.
type widgetDraft struct {
	Title   string
	Content string
}

func (d widgetDraft) trimmed() widgetDraft {
	return widgetDraft{
		Title:   strings.TrimSpace(d.Title),
		Content: strings.TrimSpace(d.Content),
	}
}

// Validate requires both fields to be non-empty after trimming.
func (d widgetDraft) Validate() error {
	t := d.trimmed()
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required.Error("is required")),
		validation.Field(&t.Content, validation.Required.Error("is required")),
	)
}

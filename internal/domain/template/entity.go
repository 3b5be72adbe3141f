package template

import "errors"

// MessageTemplate holds the localized portal text for one gate
// outcome. The {minutes} placeholder is substituted at render time.
type MessageTemplate struct {
	ID      string `json:"id"`
	Type    string `json:"type"` // check_in | late_check_in | check_out | early_check_out
	Content string `json:"content"`
}

var ErrTemplateNotFound = errors.New("message template not found")

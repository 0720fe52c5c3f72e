package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const TaskTextMax = 500

// Task represents a user-owned todo item. Every read and write is
// scoped to UserID; other users cannot observe it.
type Task struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Priority  string     `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Normalize fills defaults and trims free-form input in place.
func (t *Task) Normalize() {
	t.Text = strings.TrimSpace(t.Text)
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.Tags = NormalizeTags(t.Tags)
}

// Validate checks field constraints and reports every violation.
func (t *Task) Validate() error {
	v := NewValidation()
	if t.Text == "" {
		v.Add("text", "must not be empty")
	} else if utf8.RuneCountInString(t.Text) > TaskTextMax {
		v.Add("text", "must be at most 500 characters")
	}
	if !ValidPriority(t.Priority) {
		v.Add("priority", "must be one of low, medium, high")
	}
	return v.Err()
}

// ValidPriority reports whether p is a known priority label.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// NormalizeTags lowercases, trims, de-duplicates, and drops empty tags.
// A nil input becomes an empty slice so stored rows never hold NULL.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

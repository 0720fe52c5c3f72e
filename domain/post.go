package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Post categories. CategoryOther is the default for uncategorized posts.
const (
	CategoryTechnology = "technology"
	CategoryLifestyle  = "lifestyle"
	CategoryEducation  = "education"
	CategoryTravel     = "travel"
	CategoryFood       = "food"
	CategoryOther      = "other"
)

const (
	PostTitleMin = 3
	PostTitleMax = 200
	PostBodyMin  = 10
	PostBodyMax  = 5000
)

// Post represents a blog entry. AuthorID is immutable after creation;
// mutations are scoped to it the same way tasks are scoped to their owner.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Views     int       `json:"views"`
	Published bool      `json:"published"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize fills defaults and trims free-form input in place.
func (p *Post) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Body = strings.TrimSpace(p.Body)
	if p.Category == "" {
		p.Category = CategoryOther
	}
	p.Tags = NormalizeTags(p.Tags)
}

// Validate checks field constraints and reports every violation.
func (p *Post) Validate() error {
	v := NewValidation()
	if n := utf8.RuneCountInString(p.Title); n < PostTitleMin || n > PostTitleMax {
		v.Add("title", "must be between 3 and 200 characters")
	}
	if n := utf8.RuneCountInString(p.Body); n < PostBodyMin || n > PostBodyMax {
		v.Add("body", "must be between 10 and 5000 characters")
	}
	if !ValidCategory(p.Category) {
		v.Add("category", "unknown category")
	}
	return v.Err()
}

// ValidCategory reports whether c is one of the allowed categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryTechnology, CategoryLifestyle, CategoryEducation,
		CategoryTravel, CategoryFood, CategoryOther:
		return true
	}
	return false
}

package blog

import (
	"errors"
	"time"
)

var (
	ErrBlogNotFound            = errors.New("blog not found")
	ErrBlogTitleOrContentEmpty = errors.New("blog title or content empty")
)

type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
}

// Filter narrows blog listings, empty fields mean no restriction.
// Search matches title and content, case-insensitive substring.
type Filter struct {
	Category string
	Search   string
}

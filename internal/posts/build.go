package posts

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/renix-codex/posts/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports ErrValidation when title or body is missing or empty.
func Validate(in models.CreatePostInput) error {
	if err := validate.Struct(in); err != nil {
		return ErrValidation
	}
	return nil
}

// NewPost builds the record to insert. CreatedAt is UTC with millisecond
// precision, matching what the store keeps, and is rounded up so it is never
// earlier than now().
func NewPost(in models.CreatePostInput, now func() time.Time) models.Post {
	return models.Post{
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: ceilMillisecond(now().UTC()),
	}
}

func ceilMillisecond(t time.Time) time.Time {
	r := t.Truncate(time.Millisecond)
	if r.Before(t) {
		r = r.Add(time.Millisecond)
	}
	return r
}

package entity

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Column limits of the articles table.
const (
	MaxTitleLength    = 255
	MaxImageURLLength = 500
)

// ArticleInput is raw create/update input. A nil field was not supplied.
type ArticleInput struct {
	Title    *string
	Content  *string
	ImageURL *string
}

// ValidateArticleInput trims and validates input. Title is checked before
// content so a payload missing both reports the title field.
func ValidateArticleInput(in ArticleInput) (Draft, error) {
	title := trimmed(in.Title)
	if err := validation.Validate(title,
		validation.Required.Error("Title is required and cannot be empty"),
		validation.RuneLength(0, MaxTitleLength).Error("Title must not exceed 255 characters"),
	); err != nil {
		return Draft{}, fieldError("title", err)
	}

	content := trimmed(in.Content)
	if err := validation.Validate(content,
		validation.Required.Error("Content is required and cannot be empty"),
	); err != nil {
		return Draft{}, fieldError("content", err)
	}

	imageURL := NormalizeImageURL(in.ImageURL)
	if imageURL != nil {
		if err := validation.Validate(*imageURL,
			validation.RuneLength(0, MaxImageURLLength).Error("Image URL must not exceed 500 characters"),
		); err != nil {
			return Draft{}, fieldError("imageUrl", err)
		}
	}

	return Draft{Title: title, Content: content, ImageURL: imageURL}, nil
}

// NormalizeImageURL trims an image URL; empty or whitespace-only becomes nil.
func NormalizeImageURL(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil
	}
	return &v
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func fieldError(field string, err error) *ValidationError {
	var verr validation.Error
	if errors.As(err, &verr) {
		return &ValidationError{Field: field, Message: verr.Message()}
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

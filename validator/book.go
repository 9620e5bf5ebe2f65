package validator // import "github.com/storyworld/storyworld/validator"

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/storyworld/storyworld/config"
	"github.com/storyworld/storyworld/model"
)

func ValidateBookCreateRequest(book *model.Book) error {
	if book == nil {
		return errors.New("book is nil")
	}
	if strings.TrimSpace(book.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(book.Author) == "" {
		return errors.New("author is required")
	}
	if strings.TrimSpace(book.Description) == "" {
		return errors.New("description is required")
	}
	if book.Genre == "" {
		return errors.New("genre is required")
	}
	if !config.IsKnownGenre(book.Genre) {
		return errors.Errorf("unknown genre %q", book.Genre)
	}
	if book.AgeGroup == "" {
		return errors.New("ageGroup is required")
	}
	if !config.IsKnownAgeGroup(book.AgeGroup) {
		return errors.Errorf("unknown age group %q", book.AgeGroup)
	}
	return nil
}

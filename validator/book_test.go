package validator

import (
	"testing"

	"github.com/storyworld/storyworld/config"
	"github.com/storyworld/storyworld/model"
)

func init() {
	config.GetDefaultOptions()
}

func validBook() *model.Book {
	return &model.Book{
		Title:       "The Whispering Woods",
		Author:      "Ada Quinn",
		Description: "Two siblings follow glowing fireflies into the forest.",
		Genre:       "fantasy",
		AgeGroup:    "7-9",
	}
}

func TestValidateBookCreateRequest(t *testing.T) {
	if err := ValidateBookCreateRequest(validBook()); err != nil {
		t.Fatalf("Valid book rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*model.Book)
	}{
		{"missing title", func(b *model.Book) { b.Title = "  " }},
		{"missing author", func(b *model.Book) { b.Author = "" }},
		{"missing description", func(b *model.Book) { b.Description = "" }},
		{"missing genre", func(b *model.Book) { b.Genre = "" }},
		{"unknown genre", func(b *model.Book) { b.Genre = "horror" }},
		{"missing age group", func(b *model.Book) { b.AgeGroup = "" }},
		{"unknown age group", func(b *model.Book) { b.AgeGroup = "13-99" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := validBook()
			c.mutate(b)
			if err := ValidateBookCreateRequest(b); err == nil {
				t.Errorf("Expected validation error for %s", c.name)
			}
		})
	}
}

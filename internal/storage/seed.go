package storage

import (
	"github.com/go-playground/validator/v10"

	"github.com/azaliaz/bookipedia/internal/domain/models"
)

// Fixed catalog loaded at startup. The service is read-only, so this is the
// entire dataset for the process lifetime.
var (
	seedBooks = []models.Book{
		{ID: 1, Title: "Dead People Who'd Be Influencers Today"},
		{ID: 2, Title: "How To Make Friends In Your 30s"},
	}

	seedAuthors = []models.Author{
		{ID: 1, Name: "Blu Renolds"},
		{ID: 2, Name: "Chip Egan"},
		{ID: 3, Name: "Alyssa Wyatt"},
	}

	seedPairings = []models.BookAuthor{
		{BookID: 1, AuthorID: 1, Blurb: "Blue wrote chapter 1"},
		{BookID: 1, AuthorID: 2, Blurb: "Chip wrote chapter 2"},
		{BookID: 2, AuthorID: 1, Blurb: "Blue wrote chapters 1-3"},
		{BookID: 2, AuthorID: 3, Blurb: "Alyssa wrote chapter 4"},
	}
)

func validateSeed() error {
	valid := validator.New()
	for _, book := range seedBooks {
		if err := valid.Struct(book); err != nil {
			return err
		}
	}
	for _, author := range seedAuthors {
		if err := valid.Struct(author); err != nil {
			return err
		}
	}
	for _, pairing := range seedPairings {
		if err := valid.Struct(pairing); err != nil {
			return err
		}
	}
	return nil
}

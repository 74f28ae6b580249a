// Package shape projects fetched object graphs into the public response
// representation. Each list entry flattens the pairing's blurb onto the
// related entity; foreign keys and the join row itself never leak out.
package shape

import (
	"github.com/samber/lo"

	"github.com/azaliaz/bookipedia/internal/domain/models"
)

type BookView struct {
	ID      int64            `json:"id"`
	Title   string           `json:"title"`
	Authors []CreditedAuthor `json:"authors"`
}

// CreditedAuthor merges an author's identity with the blurb of one specific
// pairing. A top-level book never carries a blurb of its own.
type CreditedAuthor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Blurb string `json:"blurb"`
}

type AuthorView struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Books []CreditedBook `json:"books"`
}

type CreditedBook struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Blurb string `json:"blurb"`
}

func Book(book models.Book) BookView {
	return BookView{
		ID:    book.ID,
		Title: book.Title,
		// lo.Map keeps fetch order and turns a nil credit slice into [],
		// so an unauthored book serializes as an empty list
		Authors: lo.Map(book.Authors, func(credit models.BookCredit, _ int) CreditedAuthor {
			return CreditedAuthor{
				ID:    credit.AuthorID,
				Name:  credit.Name,
				Blurb: credit.Blurb,
			}
		}),
	}
}

func Books(books []models.Book) []BookView {
	return lo.Map(books, func(book models.Book, _ int) BookView { return Book(book) })
}

func Author(author models.Author) AuthorView {
	return AuthorView{
		ID:   author.ID,
		Name: author.Name,
		Books: lo.Map(author.Books, func(credit models.AuthorCredit, _ int) CreditedBook {
			return CreditedBook{
				ID:    credit.BookID,
				Title: credit.Title,
				Blurb: credit.Blurb,
			}
		}),
	}
}

func Authors(authors []models.Author) []AuthorView {
	return lo.Map(authors, func(author models.Author, _ int) AuthorView { return Author(author) })
}

package models

// Book is a stored book together with its eagerly fetched author credits.
type Book struct {
	ID      int64  `db:"id"`
	Title   string `db:"title" validate:"required"`
	Authors []BookCredit
}

// Author is a stored author together with its eagerly fetched book credits.
type Author struct {
	ID    int64  `db:"id"`
	Name  string `db:"name" validate:"required"`
	Books []AuthorCredit
}

// BookAuthor is one row of the join table: a (book, author) pairing plus the
// blurb that belongs to that pairing alone.
type BookAuthor struct {
	BookID   int64  `db:"book_id" validate:"required"`
	AuthorID int64  `db:"author_id" validate:"required"`
	Blurb    string `db:"blurb" validate:"required"`
}

// BookCredit is an author joined with the blurb of a specific pairing, as
// read back from the join query for a book.
type BookCredit struct {
	BookID   int64  `db:"book_id"`
	AuthorID int64  `db:"author_id"`
	Name     string `db:"name"`
	Blurb    string `db:"blurb"`
}

// AuthorCredit is the symmetric shape for an author's side of the join.
type AuthorCredit struct {
	AuthorID int64  `db:"author_id"`
	BookID   int64  `db:"book_id"`
	Title    string `db:"title"`
	Blurb    string `db:"blurb"`
}

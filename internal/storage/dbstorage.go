package storage

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/samber/lo"

	"github.com/azaliaz/bookipedia/internal/domain/consts"
	"github.com/azaliaz/bookipedia/internal/domain/models"
	"github.com/azaliaz/bookipedia/internal/logger"
	storerrors "github.com/azaliaz/bookipedia/internal/storage/errors"
)

const schema = `
	CREATE TABLE books (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL
	);
	CREATE TABLE authors (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);
	CREATE TABLE book_authors (
		book_id INTEGER NOT NULL REFERENCES books (id),
		author_id INTEGER NOT NULL REFERENCES authors (id),
		blurb TEXT NOT NULL,
		PRIMARY KEY (book_id, author_id)
	);
	`

// DBStorage is the embedded backend: an in-memory SQLite database seeded in
// the constructor and read-only afterwards.
type DBStorage struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

func NewDB(ctx context.Context) (*DBStorage, error) {
	log := logger.Get()
	db, err := sqlx.Open("sqlite3", "file::memory:")
	if err != nil {
		return nil, err
	}
	// the in-memory database lives only as long as its connection, so the
	// pool is pinned to a single one that never expires
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	dbs := &DBStorage{
		db: db,
		sq: sq.StatementBuilder.RunWith(db),
	}
	if err := dbs.seed(ctx); err != nil {
		log.Error().Err(err).Msg("seeding embedded storage failed")
		return nil, err
	}
	log.Debug().
		Int("books", len(seedBooks)).
		Int("authors", len(seedAuthors)).
		Int("pairings", len(seedPairings)).
		Msg("embedded storage seeded")
	return dbs, nil
}

func (dbs *DBStorage) seed(ctx context.Context) error {
	if err := validateSeed(); err != nil {
		return err
	}
	if _, err := dbs.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	for _, book := range seedBooks {
		if _, err := dbs.sq.Insert("books").Columns("id", "title").
			Values(book.ID, book.Title).ExecContext(ctx); err != nil {
			return err
		}
	}
	for _, author := range seedAuthors {
		if _, err := dbs.sq.Insert("authors").Columns("id", "name").
			Values(author.ID, author.Name).ExecContext(ctx); err != nil {
			return err
		}
	}
	for _, pairing := range seedPairings {
		if _, err := dbs.sq.Insert("book_authors").Columns("book_id", "author_id", "blurb").
			Values(pairing.BookID, pairing.AuthorID, pairing.Blurb).ExecContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (dbs *DBStorage) Close() error {
	return dbs.db.Close()
}

func (dbs *DBStorage) GetBook(ctx context.Context, id int64) (models.Book, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(ctx, consts.DBCtxTimeout)
	defer cancel()

	query, args, err := dbs.sq.Select("id", "title").From("books").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Book{}, err
	}
	var book models.Book
	if err := dbs.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, storerrors.ErrBookNotFound
		}
		log.Error().Err(err).Int64("id", id).Msg("get book failed")
		return models.Book{}, err
	}

	credits, err := dbs.bookCredits(ctx, &id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("get book credits failed")
		return models.Book{}, err
	}
	book.Authors = credits[id]
	return book, nil
}

func (dbs *DBStorage) GetBooks(ctx context.Context) ([]models.Book, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(ctx, consts.DBCtxTimeout)
	defer cancel()

	query, args, err := dbs.sq.Select("id", "title").From("books").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	var books []models.Book
	if err := dbs.db.SelectContext(ctx, &books, query, args...); err != nil {
		log.Error().Err(err).Msg("failed to get all books from db")
		return nil, err
	}

	// one join query for the whole listing, grouped in memory
	credits, err := dbs.bookCredits(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("get book credits failed")
		return nil, err
	}
	for i := range books {
		books[i].Authors = credits[books[i].ID]
	}
	return books, nil
}

func (dbs *DBStorage) GetAuthor(ctx context.Context, id int64) (models.Author, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(ctx, consts.DBCtxTimeout)
	defer cancel()

	query, args, err := dbs.sq.Select("id", "name").From("authors").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Author{}, err
	}
	var author models.Author
	if err := dbs.db.GetContext(ctx, &author, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Author{}, storerrors.ErrAuthorNotFound
		}
		log.Error().Err(err).Int64("id", id).Msg("get author failed")
		return models.Author{}, err
	}

	credits, err := dbs.authorCredits(ctx, &id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("get author credits failed")
		return models.Author{}, err
	}
	author.Books = credits[id]
	return author, nil
}

func (dbs *DBStorage) GetAuthors(ctx context.Context) ([]models.Author, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(ctx, consts.DBCtxTimeout)
	defer cancel()

	query, args, err := dbs.sq.Select("id", "name").From("authors").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	var authors []models.Author
	if err := dbs.db.SelectContext(ctx, &authors, query, args...); err != nil {
		log.Error().Err(err).Msg("failed to get all authors from db")
		return nil, err
	}

	credits, err := dbs.authorCredits(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("get author credits failed")
		return nil, err
	}
	for i := range authors {
		authors[i].Books = credits[authors[i].ID]
	}
	return authors, nil
}

// bookCredits joins book_authors with authors; a nil bookID fetches the
// credits of every book at once.
func (dbs *DBStorage) bookCredits(ctx context.Context, bookID *int64) (map[int64][]models.BookCredit, error) {
	builder := dbs.sq.
		Select("ba.book_id", "ba.author_id", "a.name", "ba.blurb").
		From("book_authors ba").
		Join("authors a ON a.id = ba.author_id").
		OrderBy("ba.book_id", "ba.author_id")
	if bookID != nil {
		builder = builder.Where(sq.Eq{"ba.book_id": *bookID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	var credits []models.BookCredit
	if err := dbs.db.SelectContext(ctx, &credits, query, args...); err != nil {
		return nil, err
	}
	return lo.GroupBy(credits, func(c models.BookCredit) int64 { return c.BookID }), nil
}

func (dbs *DBStorage) authorCredits(ctx context.Context, authorID *int64) (map[int64][]models.AuthorCredit, error) {
	builder := dbs.sq.
		Select("ba.author_id", "ba.book_id", "b.title", "ba.blurb").
		From("book_authors ba").
		Join("books b ON b.id = ba.book_id").
		OrderBy("ba.author_id", "ba.book_id")
	if authorID != nil {
		builder = builder.Where(sq.Eq{"ba.author_id": *authorID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	var credits []models.AuthorCredit
	if err := dbs.db.SelectContext(ctx, &credits, query, args...); err != nil {
		return nil, err
	}
	return lo.GroupBy(credits, func(c models.AuthorCredit) int64 { return c.AuthorID }), nil
}

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/azaliaz/bookipedia/internal/domain/consts"
	"github.com/azaliaz/bookipedia/internal/domain/models"
	"github.com/azaliaz/bookipedia/internal/logger"
	storerrors "github.com/azaliaz/bookipedia/internal/storage/errors"
)

const pgSchema = `
	CREATE TABLE IF NOT EXISTS books (
		id BIGINT PRIMARY KEY,
		title TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS authors (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS book_authors (
		book_id BIGINT NOT NULL REFERENCES books (id),
		author_id BIGINT NOT NULL REFERENCES authors (id),
		blurb TEXT NOT NULL,
		PRIMARY KEY (book_id, author_id)
	);
	`

// PGStorage is the external backend, used when a DSN is configured. It
// carries the same fixed catalog, inserted idempotently at connect.
type PGStorage struct {
	pool *pgxpool.Pool
}

func NewPG(ctx context.Context, addr string) (*PGStorage, error) {
	config, err := pgxpool.ParseConfig(addr)
	if err != nil {
		return nil, err
	}
	config.MaxConns = 20
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	pgs := &PGStorage{pool: pool}
	if err := pgs.seed(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pgs, nil
}

func (pgs *PGStorage) seed(ctx context.Context) error {
	log := logger.Get()
	if err := validateSeed(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, consts.DBCtxTimeout)
	defer cancel()

	if _, err := pgs.pool.Exec(ctx, pgSchema); err != nil {
		return err
	}
	tx, err := pgs.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	for _, book := range seedBooks {
		_, err = tx.Exec(ctx,
			`INSERT INTO books (id, title) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			book.ID, book.Title)
		if err != nil {
			log.Error().Err(err).Msg("insert book failed")
			return err
		}
	}
	for _, author := range seedAuthors {
		_, err = tx.Exec(ctx,
			`INSERT INTO authors (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			author.ID, author.Name)
		if err != nil {
			log.Error().Err(err).Msg("insert author failed")
			return err
		}
	}
	for _, pairing := range seedPairings {
		_, err = tx.Exec(ctx,
			`INSERT INTO book_authors (book_id, author_id, blurb) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			pairing.BookID, pairing.AuthorID, pairing.Blurb)
		if err != nil {
			log.Error().Err(err).Msg("insert pairing failed")
			return err
		}
	}
	return nil
}

func (pgs *PGStorage) Close() error {
	pgs.pool.Close()
	return nil
}

func (pgs *PGStorage) GetBook(ctx context.Context, id int64) (models.Book, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(ctx, consts.DBCtxTimeout)
	defer cancel()

	var book models.Book
	row := pgs.pool.QueryRow(ctx, `SELECT id, title FROM books WHERE id = $1`, id)
	if err := row.Scan(&book.ID, &book.Title); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Book{}, storerrors.ErrBookNotFound
		}
		log.Error().Err(err).Int64("id", id).Msg("get book failed")
		return models.Book{}, err
	}

	rows, err := pgs.pool.Query(ctx,
		`SELECT ba.book_id, ba.author_id, a.name, ba.blurb
		FROM book_authors ba JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = $1
		ORDER BY ba.book_id, ba.author_id`, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("get book credits failed")
		return models.Book{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var credit models.BookCredit
		if err := rows.Scan(&credit.BookID, &credit.AuthorID, &credit.Name, &credit.Blurb); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return models.Book{}, err
		}
		book.Authors = append(book.Authors, credit)
	}
	if err := rows.Err(); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (pgs *PGStorage) GetBooks(ctx context.Context) ([]models.Book, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(ctx, consts.DBCtxTimeout)
	defer cancel()

	rows, err := pgs.pool.Query(ctx, `SELECT id, title FROM books ORDER BY id`)
	if err != nil {
		log.Error().Err(err).Msg("failed to get all books from db")
		return nil, err
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(&book.ID, &book.Title); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	creditRows, err := pgs.pool.Query(ctx,
		`SELECT ba.book_id, ba.author_id, a.name, ba.blurb
		FROM book_authors ba JOIN authors a ON a.id = ba.author_id
		ORDER BY ba.book_id, ba.author_id`)
	if err != nil {
		log.Error().Err(err).Msg("get book credits failed")
		return nil, err
	}
	defer creditRows.Close()

	credits := make(map[int64][]models.BookCredit)
	for creditRows.Next() {
		var credit models.BookCredit
		if err := creditRows.Scan(&credit.BookID, &credit.AuthorID, &credit.Name, &credit.Blurb); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		credits[credit.BookID] = append(credits[credit.BookID], credit)
	}
	if err := creditRows.Err(); err != nil {
		return nil, err
	}
	for i := range books {
		books[i].Authors = credits[books[i].ID]
	}
	return books, nil
}

func (pgs *PGStorage) GetAuthor(ctx context.Context, id int64) (models.Author, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(ctx, consts.DBCtxTimeout)
	defer cancel()

	var author models.Author
	row := pgs.pool.QueryRow(ctx, `SELECT id, name FROM authors WHERE id = $1`, id)
	if err := row.Scan(&author.ID, &author.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Author{}, storerrors.ErrAuthorNotFound
		}
		log.Error().Err(err).Int64("id", id).Msg("get author failed")
		return models.Author{}, err
	}

	rows, err := pgs.pool.Query(ctx,
		`SELECT ba.author_id, ba.book_id, b.title, ba.blurb
		FROM book_authors ba JOIN books b ON b.id = ba.book_id
		WHERE ba.author_id = $1
		ORDER BY ba.author_id, ba.book_id`, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("get author credits failed")
		return models.Author{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var credit models.AuthorCredit
		if err := rows.Scan(&credit.AuthorID, &credit.BookID, &credit.Title, &credit.Blurb); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return models.Author{}, err
		}
		author.Books = append(author.Books, credit)
	}
	if err := rows.Err(); err != nil {
		return models.Author{}, err
	}
	return author, nil
}

func (pgs *PGStorage) GetAuthors(ctx context.Context) ([]models.Author, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(ctx, consts.DBCtxTimeout)
	defer cancel()

	rows, err := pgs.pool.Query(ctx, `SELECT id, name FROM authors ORDER BY id`)
	if err != nil {
		log.Error().Err(err).Msg("failed to get all authors from db")
		return nil, err
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		var author models.Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	creditRows, err := pgs.pool.Query(ctx,
		`SELECT ba.author_id, ba.book_id, b.title, ba.blurb
		FROM book_authors ba JOIN books b ON b.id = ba.book_id
		ORDER BY ba.author_id, ba.book_id`)
	if err != nil {
		log.Error().Err(err).Msg("get author credits failed")
		return nil, err
	}
	defer creditRows.Close()

	credits := make(map[int64][]models.AuthorCredit)
	for creditRows.Next() {
		var credit models.AuthorCredit
		if err := creditRows.Scan(&credit.AuthorID, &credit.BookID, &credit.Title, &credit.Blurb); err != nil {
			log.Error().Err(err).Msg("failed to scan data from db")
			return nil, err
		}
		credits[credit.AuthorID] = append(credits[credit.AuthorID], credit)
	}
	if err := creditRows.Err(); err != nil {
		return nil, err
	}
	for i := range authors {
		authors[i].Books = credits[authors[i].ID]
	}
	return authors, nil
}

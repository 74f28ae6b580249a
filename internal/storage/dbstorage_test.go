package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azaliaz/bookipedia/internal/storage"
	storerrors "github.com/azaliaz/bookipedia/internal/storage/errors"
)

func setupStorage(t testing.TB) *storage.DBStorage {
	t.Helper()
	dbs, err := storage.NewDB(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbs.Close() })
	return dbs
}

func TestSeed(t *testing.T) {
	dbs := setupStorage(t)
	ctx := context.Background()

	books, err := dbs.GetBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)

	authors, err := dbs.GetAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)

	pairings := 0
	for _, book := range books {
		pairings += len(book.Authors)
	}
	require.Equal(t, 4, pairings)
}

func TestGetBook(t *testing.T) {
	dbs := setupStorage(t)
	ctx := context.Background()

	book, err := dbs.GetBook(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Dead People Who'd Be Influencers Today", book.Title)
	require.Len(t, book.Authors, 2)
	require.Equal(t, "Blu Renolds", book.Authors[0].Name)
	require.Equal(t, "Blue wrote chapter 1", book.Authors[0].Blurb)
	require.Equal(t, "Chip Egan", book.Authors[1].Name)
	require.Equal(t, "Chip wrote chapter 2", book.Authors[1].Blurb)
}

func TestGetBookNotFound(t *testing.T) {
	dbs := setupStorage(t)

	_, err := dbs.GetBook(context.Background(), 999)
	require.ErrorIs(t, err, storerrors.ErrBookNotFound)
}

// Author 1 appears in both books with different blurbs; each credit must
// carry the blurb of its own pairing.
func TestGetAuthorBlurbsPerPairing(t *testing.T) {
	dbs := setupStorage(t)

	author, err := dbs.GetAuthor(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Blu Renolds", author.Name)
	require.Len(t, author.Books, 2)

	require.Equal(t, int64(1), author.Books[0].BookID)
	require.Equal(t, "Dead People Who'd Be Influencers Today", author.Books[0].Title)
	require.Equal(t, "Blue wrote chapter 1", author.Books[0].Blurb)

	require.Equal(t, int64(2), author.Books[1].BookID)
	require.Equal(t, "How To Make Friends In Your 30s", author.Books[1].Title)
	require.Equal(t, "Blue wrote chapters 1-3", author.Books[1].Blurb)
}

func TestGetAuthorNotFound(t *testing.T) {
	dbs := setupStorage(t)

	_, err := dbs.GetAuthor(context.Background(), 999)
	require.ErrorIs(t, err, storerrors.ErrAuthorNotFound)
}

func TestGetAuthors(t *testing.T) {
	dbs := setupStorage(t)

	authors, err := dbs.GetAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 3)
	require.Equal(t, "Chip Egan", authors[1].Name)
	require.Len(t, authors[1].Books, 1)
	require.Equal(t, "Chip wrote chapter 2", authors[1].Books[0].Blurb)
}

func TestRepeatedReadsAreIdentical(t *testing.T) {
	dbs := setupStorage(t)
	ctx := context.Background()

	first, err := dbs.GetBooks(ctx)
	require.NoError(t, err)
	second, err := dbs.GetBooks(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	book, err := dbs.GetBook(ctx, 2)
	require.NoError(t, err)
	again, err := dbs.GetBook(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, book, again)
}

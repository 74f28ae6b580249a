package tests

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/azaliaz/bookipedia/internal/domain/models"
	"github.com/azaliaz/bookipedia/internal/server"
	"github.com/azaliaz/bookipedia/internal/server/mocks"
	storerrors "github.com/azaliaz/bookipedia/internal/storage/errors"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func createCtx(w *httptest.ResponseRecorder, target string) *gin.Context {
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return ctx
}

func TestServer_allBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mocks.NewMockStorage(ctrl)
	s := &server.Server{Storage: mockStorage}

	t.Run("success", func(t *testing.T) {
		books := []models.Book{
			{ID: 1, Title: "Dead People Who'd Be Influencers Today", Authors: []models.BookCredit{
				{BookID: 1, AuthorID: 1, Name: "Blu Renolds", Blurb: "Blue wrote chapter 1"},
				{BookID: 1, AuthorID: 2, Name: "Chip Egan", Blurb: "Chip wrote chapter 2"},
			}},
			{ID: 2, Title: "How To Make Friends In Your 30s", Authors: []models.BookCredit{
				{BookID: 2, AuthorID: 1, Name: "Blu Renolds", Blurb: "Blue wrote chapters 1-3"},
				{BookID: 2, AuthorID: 3, Name: "Alyssa Wyatt", Blurb: "Alyssa wrote chapter 4"},
			}},
		}
		mockStorage.EXPECT().GetBooks(gomock.Any()).Return(books, nil)

		w := httptest.NewRecorder()
		s.AllBooks(createCtx(w, "/books"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dead People Who'd Be Influencers Today")
		assert.Contains(t, w.Body.String(), `"blurb":"Chip wrote chapter 2"`)
		assert.NotContains(t, w.Body.String(), "book_id")
		assert.NotContains(t, w.Body.String(), "author_id")
	})

	t.Run("internal error", func(t *testing.T) {
		mockStorage.EXPECT().GetBooks(gomock.Any()).Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		s.AllBooks(createCtx(w, "/books"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "db error")
	})
}

func TestServer_bookInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mocks.NewMockStorage(ctrl)
	s := &server.Server{Storage: mockStorage}

	t.Run("success", func(t *testing.T) {
		book := models.Book{ID: 1, Title: "Dead People Who'd Be Influencers Today", Authors: []models.BookCredit{
			{BookID: 1, AuthorID: 1, Name: "Blu Renolds", Blurb: "Blue wrote chapter 1"},
			{BookID: 1, AuthorID: 2, Name: "Chip Egan", Blurb: "Chip wrote chapter 2"},
		}}
		mockStorage.EXPECT().GetBook(gomock.Any(), int64(1)).Return(book, nil)

		w := httptest.NewRecorder()
		ctx := createCtx(w, "/books/1")
		ctx.Params = gin.Params{{Key: "id", Value: "1"}}

		s.BookInfo(ctx)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Blu Renolds"`)
		assert.Contains(t, w.Body.String(), `"blurb":"Blue wrote chapter 1"`)
		assert.NotContains(t, w.Body.String(), `"author"`)
	})

	t.Run("not found", func(t *testing.T) {
		mockStorage.EXPECT().GetBook(gomock.Any(), int64(999)).Return(models.Book{}, storerrors.ErrBookNotFound)

		w := httptest.NewRecorder()
		ctx := createCtx(w, "/books/999")
		ctx.Params = gin.Params{{Key: "id", Value: "999"}}

		s.BookInfo(ctx)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), storerrors.ErrBookNotFound.Error())
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		ctx := createCtx(w, "/books/abc")
		ctx.Params = gin.Params{{Key: "id", Value: "abc"}}

		s.BookInfo(ctx)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid book id")
	})

	t.Run("internal error", func(t *testing.T) {
		mockStorage.EXPECT().GetBook(gomock.Any(), int64(1)).Return(models.Book{}, errors.New("db error"))

		w := httptest.NewRecorder()
		ctx := createCtx(w, "/books/1")
		ctx.Params = gin.Params{{Key: "id", Value: "1"}}

		s.BookInfo(ctx)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "db error")
	})
}

func TestServer_allAuthors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mocks.NewMockStorage(ctrl)
	s := &server.Server{Storage: mockStorage}

	t.Run("success", func(t *testing.T) {
		authors := []models.Author{
			{ID: 2, Name: "Chip Egan", Books: []models.AuthorCredit{
				{AuthorID: 2, BookID: 1, Title: "Dead People Who'd Be Influencers Today", Blurb: "Chip wrote chapter 2"},
			}},
			{ID: 3, Name: "Alyssa Wyatt"},
		}
		mockStorage.EXPECT().GetAuthors(gomock.Any()).Return(authors, nil)

		w := httptest.NewRecorder()
		s.AllAuthors(createCtx(w, "/authors"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Chip Egan")
		// an author without credits still serializes an empty list
		assert.Contains(t, w.Body.String(), `"books":[]`)
	})

	t.Run("internal error", func(t *testing.T) {
		mockStorage.EXPECT().GetAuthors(gomock.Any()).Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		s.AllAuthors(createCtx(w, "/authors"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "db error")
	})
}

func TestServer_authorInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mocks.NewMockStorage(ctrl)
	s := &server.Server{Storage: mockStorage}

	t.Run("success", func(t *testing.T) {
		author := models.Author{ID: 1, Name: "Blu Renolds", Books: []models.AuthorCredit{
			{AuthorID: 1, BookID: 1, Title: "Dead People Who'd Be Influencers Today", Blurb: "Blue wrote chapter 1"},
			{AuthorID: 1, BookID: 2, Title: "How To Make Friends In Your 30s", Blurb: "Blue wrote chapters 1-3"},
		}}
		mockStorage.EXPECT().GetAuthor(gomock.Any(), int64(1)).Return(author, nil)

		w := httptest.NewRecorder()
		ctx := createCtx(w, "/authors/1")
		ctx.Params = gin.Params{{Key: "id", Value: "1"}}

		s.AuthorInfo(ctx)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"blurb":"Blue wrote chapters 1-3"`)
		assert.NotContains(t, w.Body.String(), "book_id")
	})

	t.Run("not found", func(t *testing.T) {
		mockStorage.EXPECT().GetAuthor(gomock.Any(), int64(999)).Return(models.Author{}, storerrors.ErrAuthorNotFound)

		w := httptest.NewRecorder()
		ctx := createCtx(w, "/authors/999")
		ctx.Params = gin.Params{{Key: "id", Value: "999"}}

		s.AuthorInfo(ctx)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), storerrors.ErrAuthorNotFound.Error())
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		ctx := createCtx(w, "/authors/abc")
		ctx.Params = gin.Params{{Key: "id", Value: "abc"}}

		s.AuthorInfo(ctx)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid author id")
	})
}

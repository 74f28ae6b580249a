package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/azaliaz/bookipedia/internal/shape"
	storerrors "github.com/azaliaz/bookipedia/internal/storage/errors"
)

// получение списка всех книг из хранилища и возврат их клиенту в формате JSON.
func (s *Server) AllBooks(ctx *gin.Context) {
	books, err := s.Storage.GetBooks(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, shape.Books(books))
}

func (s *Server) BookInfo(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}
	book, err := s.Storage.GetBook(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storerrors.ErrBookNotFound) {
			ctx.String(http.StatusNotFound, err.Error())
			return
		}
		ctx.String(http.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, shape.Book(book))
}

func (s *Server) AllAuthors(ctx *gin.Context) {
	authors, err := s.Storage.GetAuthors(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, shape.Authors(authors))
}

func (s *Server) AuthorInfo(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
		return
	}
	author, err := s.Storage.GetAuthor(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storerrors.ErrAuthorNotFound) {
			ctx.String(http.StatusNotFound, err.Error())
			return
		}
		ctx.String(http.StatusInternalServerError, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, shape.Author(author))
}

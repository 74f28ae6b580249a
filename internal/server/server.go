package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/azaliaz/bookipedia/internal/config"
	"github.com/azaliaz/bookipedia/internal/domain/models"
	"github.com/azaliaz/bookipedia/internal/logger"
)

//go:generate mockgen -source=server.go -destination=./mocks/storage_mock.go -package=mocks

type Storage interface {
	GetBook(ctx context.Context, id int64) (models.Book, error)
	GetBooks(ctx context.Context) ([]models.Book, error)
	GetAuthor(ctx context.Context, id int64) (models.Author, error)
	GetAuthors(ctx context.Context) ([]models.Author, error)
}

type Server struct {
	serv    *http.Server
	Storage Storage
}

func New(cfg config.Config, stor Storage) *Server {
	server := http.Server{ //nolint:gosec // not today
		Addr: cfg.Addr,
	}
	return &Server{
		serv:    &server,
		Storage: stor,
	}
}

func (s *Server) ShutdownServer() error {
	return s.serv.Shutdown(context.Background())
}

func (s *Server) Run(ctx context.Context) error {
	log := logger.Get()
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * 3600,
	}))
	books := router.Group("/books")
	{
		books.GET("", s.AllBooks)
		books.GET("/:id", s.BookInfo)
	}
	authors := router.Group("/authors")
	{
		authors.GET("", s.AllAuthors)
		authors.GET("/:id", s.AuthorInfo)
	}

	s.serv.Handler = router
	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Close() error {
	return s.serv.Shutdown(context.TODO())
}

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rfmoraes/estante/backend/internal/catalog"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

var errMissingCatalogService = errors.New("catalog service dependency required")

// Fixed response messages carried over from the original wire contract. The
// "mesage" key spelling in errorPayload is part of that contract.
const (
	msgDuplicateTitle = "Livro de mesmo título já salvo na base :/"
	msgSaveFailed     = "Não foi possível salvar novo item :/"
	msgBookNotFound   = "Livro não encontrado na base :/"
	msgStoreFailure   = "Não foi possível acessar a base :/"
)

type errorPayload struct {
	Message string `json:"mesage"`
}

// Dependencies lists the collaborators required to build the HTTP handler.
type Dependencies struct {
	CatalogService *catalog.Service
	Logger         *zap.Logger
}

// NewHTTPHandler wires middleware and routes and returns the root handler.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.CatalogService == nil {
		return nil, errMissingCatalogService
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		catalog: deps.CatalogService,
		logger:  logger,
	}

	router.GET("/", handler.handleHome)
	router.GET("/openapi", handler.handleOpenAPI)
	router.POST("/livro", handler.handleCreateBook)
	router.GET("/livros", handler.handleListBooks)
	router.GET("/livro", handler.handleGetBook)
	router.DELETE("/livro", handler.handleDeleteBook)
	router.POST("/comentario", handler.handleAddComment)

	return router, nil
}

// requestIDMiddleware attaches a correlation id to every request and echoes
// it in the response headers.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDHeader, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

func accessLogMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDHeader)),
		)
	}
}

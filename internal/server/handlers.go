package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rfmoraes/estante/backend/internal/catalog"
	"go.uber.org/zap"
)

type httpHandler struct {
	catalog *catalog.Service
	logger  *zap.Logger
}

func (h *httpHandler) handleHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/openapi")
}

// handleOpenAPI serves a minimal machine-readable description of the API so
// the root redirect has somewhere useful to land.
func (h *httpHandler) handleOpenAPI(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"openapi": "3.0.0",
		"info":    gin.H{"title": "Estante API", "version": "1.0.0"},
		"paths": gin.H{
			"/livro":      gin.H{"post": "adiciona um livro", "get": "busca um livro pelo título", "delete": "remove um livro pelo título"},
			"/livros":     gin.H{"get": "lista os livros cadastrados"},
			"/comentario": gin.H{"post": "adiciona um comentário a um livro"},
		},
	})
}

type createBookForm struct {
	Title  string `form:"titulo"`
	Author string `form:"autor"`
	Year   int    `form:"ano"`
}

func (h *httpHandler) handleCreateBook(c *gin.Context) {
	var form createBookForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, errorPayload{Message: msgSaveFailed})
		return
	}

	title, err := catalog.NewBookTitle(form.Title)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorPayload{Message: msgSaveFailed})
		return
	}
	author, err := catalog.NewBookAuthor(form.Author)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorPayload{Message: msgSaveFailed})
		return
	}

	book, err := h.catalog.CreateBook(c.Request.Context(), catalog.NewBookParams{
		Title:  title,
		Author: author,
		Year:   form.Year,
	})
	if errors.Is(err, catalog.ErrDuplicateTitle) {
		c.JSON(http.StatusConflict, errorPayload{Message: msgDuplicateTitle})
		return
	}
	if err != nil {
		h.logger.Warn("book creation failed", zap.String("title", title.String()), zap.Error(err))
		c.JSON(http.StatusBadRequest, errorPayload{Message: msgSaveFailed})
		return
	}

	c.JSON(http.StatusOK, catalog.NewBookDetailView(book))
}

func (h *httpHandler) handleListBooks(c *gin.Context) {
	books, err := h.catalog.ListBooks(c.Request.Context())
	if err != nil {
		h.logger.Error("book listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorPayload{Message: msgStoreFailure})
		return
	}

	c.JSON(http.StatusOK, catalog.NewBookListView(books))
}

func (h *httpHandler) handleGetBook(c *gin.Context) {
	title := c.Query("titulo")

	book, err := h.catalog.FindBookByTitle(c.Request.Context(), title)
	if errors.Is(err, catalog.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, errorPayload{Message: msgBookNotFound})
		return
	}
	if err != nil {
		h.logger.Error("book lookup failed", zap.String("title", title), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorPayload{Message: msgStoreFailure})
		return
	}

	c.JSON(http.StatusOK, catalog.NewBookDetailView(book))
}

// The title arrives percent-decoded exactly once by the router. The original
// service decoded it a second time before lookup; that defect is not kept.
func (h *httpHandler) handleDeleteBook(c *gin.Context) {
	title := c.Query("titulo")

	err := h.catalog.DeleteBookByTitle(c.Request.Context(), title)
	if errors.Is(err, catalog.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, errorPayload{Message: msgBookNotFound})
		return
	}
	if err != nil {
		h.logger.Error("book deletion failed", zap.String("title", title), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorPayload{Message: msgStoreFailure})
		return
	}

	c.JSON(http.StatusOK, catalog.NewDeleteConfirmation(title))
}

type addCommentForm struct {
	BookID int64  `form:"livro_id"`
	Text   string `form:"texto"`
}

func (h *httpHandler) handleAddComment(c *gin.Context) {
	var form addCommentForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, errorPayload{Message: msgSaveFailed})
		return
	}

	text, err := catalog.NewCommentText(form.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorPayload{Message: msgSaveFailed})
		return
	}

	book, err := h.catalog.AddComment(c.Request.Context(), form.BookID, text)
	if errors.Is(err, catalog.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, errorPayload{Message: msgBookNotFound})
		return
	}
	if err != nil {
		h.logger.Error("comment creation failed", zap.Int64("book_id", form.BookID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorPayload{Message: msgStoreFailure})
		return
	}

	c.JSON(http.StatusOK, catalog.NewBookDetailView(book))
}

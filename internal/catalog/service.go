package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errMissingDatabase = errors.New("database handle is required")
	noOpLogger         = zap.NewNop()

	// ErrDuplicateTitle indicates that a book with the same title already exists.
	ErrDuplicateTitle = errors.New("catalog: duplicate book title")
	// ErrBookNotFound indicates that no book matched the lookup.
	ErrBookNotFound = errors.New("catalog: book not found")
)

// ServiceError carries a machine-readable operation.reason code alongside the
// underlying cause.
type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

func (e *ServiceError) Code() string {
	return e.code
}

const (
	opServiceNew        = "catalog.service.new"
	opCreateBook        = "catalog.create_book"
	opListBooks         = "catalog.list_books"
	opFindBookByTitle   = "catalog.find_book_by_title"
	opDeleteBookByTitle = "catalog.delete_book_by_title"
	opAddComment        = "catalog.add_comment"
)

func newServiceError(operation, reason string, cause error) error {
	code := fmt.Sprintf("%s.%s", operation, reason)
	return &ServiceError{code: code, err: cause}
}

// ServiceConfig describes the dependencies required by the catalog service.
type ServiceConfig struct {
	Database *gorm.DB
	Clock    func() time.Time
	Logger   *zap.Logger
}

// Service provides transactional access to books and their comments. Every
// operation acquires exactly one transaction scope and commits or rolls back
// before returning.
type Service struct {
	db     *gorm.DB
	clock  func() time.Time
	logger *zap.Logger
}

// NewService constructs the catalog service after validating its dependencies.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, newServiceError(opServiceNew, "missing_database", errMissingDatabase)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Service{
		db:     cfg.Database,
		clock:  clock,
		logger: logger,
	}, nil
}

// NewBookParams captures the validated input for book creation.
type NewBookParams struct {
	Title  BookTitle
	Author BookAuthor
	Year   int
}

// CreateBook inserts a new book row. A title collision surfaces as
// ErrDuplicateTitle; the existing row is left unchanged.
func (s *Service) CreateBook(ctx context.Context, params NewBookParams) (Book, error) {
	if s.db == nil {
		s.logError(opCreateBook, "missing_database", errMissingDatabase)
		return Book{}, newServiceError(opCreateBook, "missing_database", errMissingDatabase)
	}

	book := Book{
		Title:     params.Title.String(),
		Author:    params.Author.String(),
		Year:      params.Year,
		CreatedAt: s.clock().UTC(),
		Comments:  []Comment{},
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&book).Error
	})
	if txErr != nil {
		if isDuplicateKey(txErr) {
			s.logger.Warn("duplicate book title rejected", zap.String("title", book.Title))
			return Book{}, newServiceError(opCreateBook, "duplicate_title", fmt.Errorf("%w: %q", ErrDuplicateTitle, book.Title))
		}
		s.logError(opCreateBook, "insert_failed", txErr, zap.String("title", book.Title))
		return Book{}, newServiceError(opCreateBook, "insert_failed", txErr)
	}

	s.logger.Debug("book created", zap.Int64("book_id", book.ID), zap.String("title", book.Title))
	return book, nil
}

// ListBooks returns every cataloged book with its comments resolved. An empty
// catalog yields an empty slice, never an error.
func (s *Service) ListBooks(ctx context.Context) ([]Book, error) {
	if s.db == nil {
		s.logError(opListBooks, "missing_database", errMissingDatabase)
		return nil, newServiceError(opListBooks, "missing_database", errMissingDatabase)
	}

	books := []Book{}
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&books).Error; err != nil {
			return err
		}
		for i := range books {
			if err := loadComments(tx, &books[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		s.logError(opListBooks, "query_failed", txErr)
		return nil, newServiceError(opListBooks, "query_failed", txErr)
	}

	return books, nil
}

// FindBookByTitle returns the book matching the exact title, with comments
// resolved, or ErrBookNotFound.
func (s *Service) FindBookByTitle(ctx context.Context, title string) (Book, error) {
	if s.db == nil {
		s.logError(opFindBookByTitle, "missing_database", errMissingDatabase)
		return Book{}, newServiceError(opFindBookByTitle, "missing_database", errMissingDatabase)
	}

	var book Book
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("titulo = ?", title).Take(&book).Error; err != nil {
			return err
		}
		return loadComments(tx, &book)
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return Book{}, newServiceError(opFindBookByTitle, "not_found", fmt.Errorf("%w: %q", ErrBookNotFound, title))
	}
	if txErr != nil {
		s.logError(opFindBookByTitle, "query_failed", txErr, zap.String("title", title))
		return Book{}, newServiceError(opFindBookByTitle, "query_failed", txErr)
	}

	return book, nil
}

// DeleteBookByTitle removes the book matching the exact title together with
// its comment rows. ErrBookNotFound is returned, and the store left untouched,
// when no row matches.
func (s *Service) DeleteBookByTitle(ctx context.Context, title string) error {
	if s.db == nil {
		s.logError(opDeleteBookByTitle, "missing_database", errMissingDatabase)
		return newServiceError(opDeleteBookByTitle, "missing_database", errMissingDatabase)
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book Book
		err := tx.Where("titulo = ?", title).Take(&book).Error
		if err != nil {
			return err
		}
		if err := tx.Where("livro = ?", book.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Book{}, book.ID).Error
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return newServiceError(opDeleteBookByTitle, "not_found", fmt.Errorf("%w: %q", ErrBookNotFound, title))
	}
	if txErr != nil {
		s.logError(opDeleteBookByTitle, "delete_failed", txErr, zap.String("title", title))
		return newServiceError(opDeleteBookByTitle, "delete_failed", txErr)
	}

	s.logger.Debug("book deleted", zap.String("title", title))
	return nil
}

// AddComment appends a comment to the book identified by bookID and returns
// the updated book with its comments resolved.
func (s *Service) AddComment(ctx context.Context, bookID int64, text CommentText) (Book, error) {
	if s.db == nil {
		s.logError(opAddComment, "missing_database", errMissingDatabase)
		return Book{}, newServiceError(opAddComment, "missing_database", errMissingDatabase)
	}

	var book Book
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&book, bookID).Error; err != nil {
			return err
		}
		comment := Comment{
			Text:      text.String(),
			CreatedAt: s.clock().UTC(),
			BookID:    book.ID,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return loadComments(tx, &book)
	})
	if errors.Is(txErr, gorm.ErrRecordNotFound) {
		return Book{}, newServiceError(opAddComment, "not_found", fmt.Errorf("%w: id %d", ErrBookNotFound, bookID))
	}
	if txErr != nil {
		s.logError(opAddComment, "insert_failed", txErr, zap.Int64("book_id", bookID))
		return Book{}, newServiceError(opAddComment, "insert_failed", txErr)
	}

	s.logger.Debug("comment added", zap.Int64("book_id", book.ID), zap.Int("total_comments", len(book.Comments)))
	return book, nil
}

// loadComments resolves a book's owned comments with an explicit query inside
// the caller's transaction. There is no lazy loading anywhere else.
func loadComments(tx *gorm.DB, book *Book) error {
	comments := []Comment{}
	if err := tx.Where("livro = ?", book.ID).Find(&comments).Error; err != nil {
		return err
	}
	book.Comments = comments
	return nil
}

// isDuplicateKey recognizes a unique constraint violation. The sqlite driver
// translates these to gorm.ErrDuplicatedKey; the message check covers drivers
// that do not.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *Service) loggerOrDefault() *zap.Logger {
	if s == nil || s.logger == nil {
		return noOpLogger
	}
	return s.logger
}

func (s *Service) logError(operation, reason string, err error, fields ...zap.Field) {
	attrs := []zap.Field{
		zap.String("operation", operation),
		zap.String("reason", reason),
	}
	if err != nil {
		attrs = append(attrs, zap.Error(err))
	}
	attrs = append(attrs, fields...)
	s.loggerOrDefault().Error("catalog service error", attrs...)
}

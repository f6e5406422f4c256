package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTitleLength   = 140
	maxAuthorLength  = 140
	maxCommentLength = 4000
)

var (
	// ErrInvalidTitle indicates that a book title is empty or exceeds storage bounds.
	ErrInvalidTitle = errors.New("catalog: invalid book title")
	// ErrInvalidAuthor indicates that a book author is empty or exceeds storage bounds.
	ErrInvalidAuthor = errors.New("catalog: invalid book author")
	// ErrInvalidCommentText indicates that a comment text is empty or exceeds storage bounds.
	ErrInvalidCommentText = errors.New("catalog: invalid comment text")
)

// BookTitle represents a validated book title.
type BookTitle string

// NewBookTitle validates raw input and returns a BookTitle.
func NewBookTitle(rawInput string) (BookTitle, error) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidTitle)
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidTitle, maxTitleLength)
	}
	return BookTitle(trimmed), nil
}

// String returns the underlying title.
func (t BookTitle) String() string {
	return string(t)
}

// BookAuthor represents a validated book author.
type BookAuthor string

// NewBookAuthor validates raw input and returns a BookAuthor.
func NewBookAuthor(rawInput string) (BookAuthor, error) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidAuthor)
	}
	if utf8.RuneCountInString(trimmed) > maxAuthorLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidAuthor, maxAuthorLength)
	}
	return BookAuthor(trimmed), nil
}

// String returns the underlying author name.
func (a BookAuthor) String() string {
	return string(a)
}

// CommentText represents a validated comment body.
type CommentText string

// NewCommentText validates raw input and returns a CommentText.
func NewCommentText(rawInput string) (CommentText, error) {
	if strings.TrimSpace(rawInput) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCommentText)
	}
	if utf8.RuneCountInString(rawInput) > maxCommentLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidCommentText, maxCommentLength)
	}
	return CommentText(rawInput), nil
}

// String returns the underlying comment body.
func (t CommentText) String() string {
	return string(t)
}

// Book models a cataloged book row together with its owned comments.
// Column and table names match the original database layout so an existing
// store file keeps working.
type Book struct {
	ID        int64     `gorm:"column:pk_livro;primaryKey;autoIncrement"`
	Title     string    `gorm:"column:titulo;size:140;uniqueIndex;not null"`
	Author    string    `gorm:"column:autor;size:140;not null"`
	Year      int       `gorm:"column:ano"`
	CreatedAt time.Time `gorm:"column:data_insercao;not null"`
	Comments  []Comment `gorm:"-"`
}

// TableName provides the explicit table binding for GORM.
func (Book) TableName() string {
	return "livro"
}

// AddComment appends a comment to the book's owned collection. The link is
// persisted when the enclosing transaction commits.
func (b *Book) AddComment(comment Comment) {
	comment.BookID = b.ID
	b.Comments = append(b.Comments, comment)
}

// Comment models a free-text annotation owned by exactly one book.
type Comment struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Text      string    `gorm:"column:texto;size:4000;not null"`
	CreatedAt time.Time `gorm:"column:data_insercao;not null"`
	BookID    int64     `gorm:"column:livro;not null;index"`
}

// TableName provides the explicit table binding for GORM.
func (Comment) TableName() string {
	return "comentario"
}

package catalog

// Response shapes keep the original wire vocabulary, including the historical
// "mesage" key, for compatibility with deployed clients.

// CommentView projects a comment down to its text.
type CommentView struct {
	Text string `json:"texto"`
}

// BookDetailView is the nested representation of a book plus its comments.
type BookDetailView struct {
	ID            int64         `json:"id"`
	Title         string        `json:"titulo"`
	Author        string        `json:"autor"`
	Year          int           `json:"ano"`
	TotalComments int           `json:"total_comentarios"`
	Comments      []CommentView `json:"comentarios"`
}

// BookSummaryView is the flat representation used when listing books.
type BookSummaryView struct {
	Title  string `json:"titulo"`
	Author string `json:"autor"`
	Year   int    `json:"ano"`
}

// BookListView wraps the summaries of every cataloged book.
type BookListView struct {
	Books []BookSummaryView `json:"livros"`
}

// DeleteConfirmationView confirms which title was removed.
type DeleteConfirmationView struct {
	Message string `json:"mesage"`
	Title   string `json:"titulo"`
}

// NewBookDetailView projects a book and its comments into the detail shape.
func NewBookDetailView(book Book) BookDetailView {
	comments := make([]CommentView, 0, len(book.Comments))
	for _, comment := range book.Comments {
		comments = append(comments, CommentView{Text: comment.Text})
	}
	return BookDetailView{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Year:          book.Year,
		TotalComments: len(book.Comments),
		Comments:      comments,
	}
}

// NewBookListView projects books into the flat list shape, preserving the
// order in which the store returned them.
func NewBookListView(books []Book) BookListView {
	summaries := make([]BookSummaryView, 0, len(books))
	for _, book := range books {
		summaries = append(summaries, BookSummaryView{
			Title:  book.Title,
			Author: book.Author,
			Year:   book.Year,
		})
	}
	return BookListView{Books: summaries}
}

// NewDeleteConfirmation builds the removal confirmation for a title.
func NewDeleteConfirmation(title string) DeleteConfirmationView {
	return DeleteConfirmationView{Message: "Livro removido", Title: title}
}

package library

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Catalog owns the books and members of one library and every loan
// between them. All reads hand out copies; state only changes through
// Catalog methods.
type Catalog struct {
	mu sync.RWMutex

	books     map[string]*Book
	bookOrder []string
	members   []*Member
	genres    []Genre

	log zerolog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger makes the catalog report accepted and rejected operations at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Catalog) { c.log = log.With().Str("component", "catalog").Logger() }
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		books:  make(map[string]*Book),
		genres: Genres(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidEmail reports whether email has the local-part@domain.tld shape members need.
func ValidEmail(email string) bool { return emailPattern.MatchString(email) }

func (c *Catalog) validGenre(g Genre) bool { return slices.Contains(c.genres, g) }

func (c *Catalog) genreError() error {
	names := make([]string, len(c.genres))
	for i, g := range c.genres {
		names[i] = string(g)
	}
	return fmt.Errorf("%w: invalid genre. Valid genres are: %s", ErrInvalidArgument, strings.Join(names, ", "))
}

// rejected logs err and hands it back so call sites can `return c.rejected(...)`.
func (c *Catalog) rejected(op string, err error) error {
	c.log.Debug().Str("op", op).Err(err).Msg("operation rejected")
	return err
}

// ------------------ Books ------------------

// AddBook adds a new title with all totalCopies on the shelf.
func (c *Catalog) AddBook(isbn, title, author string, genre Genre, totalCopies int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.books[isbn]; exists {
		return c.rejected("add_book", fmt.Errorf("%w: book with ISBN %s already exists", ErrDuplicateKey, isbn))
	}
	if !c.validGenre(genre) {
		return c.rejected("add_book", c.genreError())
	}
	if totalCopies <= 0 {
		return c.rejected("add_book", fmt.Errorf("%w: total copies must be a positive integer", ErrInvalidArgument))
	}

	c.books[isbn] = &Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Genre:           genre,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
	c.bookOrder = append(c.bookOrder, isbn)
	c.log.Debug().Str("isbn", isbn).Int("copies", totalCopies).Msg("book added")
	return nil
}

// GetBook returns a copy of the book stored under isbn.
func (c *Catalog) GetBook(isbn string) (Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.books[isbn]
	if !ok {
		return Book{}, fmt.Errorf("%w: book with ISBN %s not found", ErrNotFound, isbn)
	}
	return *b, nil
}

// UpdateBook applies the supplied fields of u. Every supplied field is
// validated before any is written. A new total keeps the borrowed count
// and recomputes the available copies from it.
func (c *Catalog) UpdateBook(isbn string, u BookUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.books[isbn]
	if !ok {
		return c.rejected("update_book", fmt.Errorf("%w: book with ISBN %s not found", ErrNotFound, isbn))
	}
	if u.Genre != nil && !c.validGenre(*u.Genre) {
		return c.rejected("update_book", c.genreError())
	}
	borrowed := b.Borrowed()
	if u.TotalCopies != nil {
		if *u.TotalCopies <= 0 {
			return c.rejected("update_book", fmt.Errorf("%w: total copies must be a positive integer", ErrInvalidArgument))
		}
		if *u.TotalCopies < borrowed {
			return c.rejected("update_book", fmt.Errorf("%w: cannot reduce total copies below currently borrowed count (%d)", ErrInvalidArgument, borrowed))
		}
	}

	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Genre != nil {
		b.Genre = *u.Genre
	}
	if u.TotalCopies != nil {
		b.TotalCopies = *u.TotalCopies
		b.AvailableCopies = *u.TotalCopies - borrowed
	}
	c.log.Debug().Str("isbn", isbn).Msg("book updated")
	return nil
}

// DeleteBook removes a book. It refuses while any copy is on loan.
func (c *Catalog) DeleteBook(isbn string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.books[isbn]
	if !ok {
		return c.rejected("delete_book", fmt.Errorf("%w: book with ISBN %s not found", ErrNotFound, isbn))
	}
	if b.AvailableCopies != b.TotalCopies {
		return c.rejected("delete_book", fmt.Errorf("%w: cannot delete book %s - some copies are currently borrowed", ErrConflict, isbn))
	}

	delete(c.books, isbn)
	c.bookOrder = slices.DeleteFunc(c.bookOrder, func(k string) bool { return k == isbn })
	c.log.Debug().Str("isbn", isbn).Msg("book deleted")
	return nil
}

// SearchBooks does a case-insensitive substring match on title or author.
// An empty query matches every book. No match yields an empty slice.
func (c *Catalog) SearchBooks(query string) []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(query)
	results := []Book{}
	for _, isbn := range c.bookOrder {
		b := c.books[isbn]
		if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Author), q) {
			results = append(results, *b)
		}
	}
	return results
}

// ListAllBooks returns every book in the order it was added.
func (c *Catalog) ListAllBooks() []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	books := make([]Book, 0, len(c.bookOrder))
	for _, isbn := range c.bookOrder {
		books = append(books, *c.books[isbn])
	}
	return books
}

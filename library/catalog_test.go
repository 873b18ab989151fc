package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	return NewCatalog()
}

func ptr[T any](v T) *T { return &v }

type snapshot struct {
	Books   []Book
	Members []Member
}

func takeSnapshot(c *Catalog) snapshot {
	return snapshot{Books: c.ListAllBooks(), Members: c.ListAllMembers()}
}

func TestAddBook(t *testing.T) {
	c := newCatalog(t)

	require.NoError(t, c.AddBook("ISBN-1", "Test Book", "Test Author", GenreFiction, 2))

	b, err := c.GetBook("ISBN-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Book", b.Title)
	assert.Equal(t, 2, b.TotalCopies)
	assert.Equal(t, 2, b.AvailableCopies)
}

func TestAddBookRejections(t *testing.T) {
	tests := []struct {
		name   string
		isbn   string
		genre  Genre
		copies int
		want   error
	}{
		{name: "duplicate isbn", isbn: "ISBN-1", genre: GenreFiction, copies: 1, want: ErrDuplicateKey},
		{name: "unknown genre", isbn: "ISBN-2", genre: "InvalidGenre", copies: 1, want: ErrInvalidArgument},
		{name: "zero copies", isbn: "ISBN-3", genre: GenreHistory, copies: 0, want: ErrInvalidArgument},
		{name: "negative copies", isbn: "ISBN-4", genre: GenreHistory, copies: -2, want: ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCatalog(t)
			require.NoError(t, c.AddBook("ISBN-1", "Original", "Someone", GenreMystery, 1))
			before := takeSnapshot(c)

			err := c.AddBook(tt.isbn, "Rejected", "Nobody", tt.genre, tt.copies)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, takeSnapshot(c))
		})
	}
}

func TestAddBookInvalidGenreLeavesNoBook(t *testing.T) {
	c := newCatalog(t)

	err := c.AddBook("978-1234567890", "Test Book", "Test Author", "InvalidGenre", 2)

	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "invalid genre")
	_, err = c.GetBook("978-1234567890")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBookOnlySuppliedFields(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.AddBook("ISBN-1", "Original Title", "Original Author", GenreNonFiction, 1))

	require.NoError(t, c.UpdateBook("ISBN-1", BookUpdate{
		Title:  ptr("Updated Title"),
		Author: ptr("Updated Author"),
	}))

	b, err := c.GetBook("ISBN-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", b.Title)
	assert.Equal(t, "Updated Author", b.Author)
	assert.Equal(t, GenreNonFiction, b.Genre)
	assert.Equal(t, 1, b.TotalCopies)
}

func TestUpdateBookGenre(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.AddBook("ISBN-1", "Dune", "Frank Herbert", GenreFiction, 1))

	require.NoError(t, c.UpdateBook("ISBN-1", BookUpdate{Genre: ptr(GenreSciFi)}))

	b, _ := c.GetBook("ISBN-1")
	assert.Equal(t, GenreSciFi, b.Genre)
}

func TestUpdateBookRejectsWithoutPartialWrite(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.AddBook("ISBN-1", "Dune", "Frank Herbert", GenreSciFi, 2))
	before := takeSnapshot(c)

	err := c.UpdateBook("ISBN-1", BookUpdate{Title: ptr("Changed"), Genre: ptr(Genre("Poetry"))})

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, before, takeSnapshot(c))
}

func TestUpdateBookNotFound(t *testing.T) {
	c := newCatalog(t)

	err := c.UpdateBook("missing", BookUpdate{Title: ptr("x")})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBookTotalCopies(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.AddBook("ISBN-1", "Clean Code", "Robert Martin", GenreNonFiction, 3))
	require.NoError(t, c.AddMember("M1", "Alice", "alice@example.com"))
	require.NoError(t, c.AddMember("M2", "Bob", "bob@example.com"))
	require.NoError(t, c.BorrowBook("M1", "ISBN-1"))
	require.NoError(t, c.BorrowBook("M2", "ISBN-1"))

	t.Run("grow keeps borrowed count", func(t *testing.T) {
		require.NoError(t, c.UpdateBook("ISBN-1", BookUpdate{TotalCopies: ptr(5)}))
		b, _ := c.GetBook("ISBN-1")
		assert.Equal(t, 5, b.TotalCopies)
		assert.Equal(t, 3, b.AvailableCopies)
	})

	t.Run("below borrowed is rejected", func(t *testing.T) {
		before := takeSnapshot(c)
		err := c.UpdateBook("ISBN-1", BookUpdate{TotalCopies: ptr(1)})
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "currently borrowed count (2)")
		assert.Equal(t, before, takeSnapshot(c))
	})

	t.Run("non-positive is rejected", func(t *testing.T) {
		assert.ErrorIs(t, c.UpdateBook("ISBN-1", BookUpdate{TotalCopies: ptr(0)}), ErrInvalidArgument)
	})

	t.Run("exactly borrowed leaves none available", func(t *testing.T) {
		require.NoError(t, c.UpdateBook("ISBN-1", BookUpdate{TotalCopies: ptr(2)}))
		b, _ := c.GetBook("ISBN-1")
		assert.Equal(t, 2, b.TotalCopies)
		assert.Equal(t, 0, b.AvailableCopies)
	})
}

func TestDeleteBook(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.AddBook("ISBN-1", "A", "B", GenreRomance, 1))
	require.NoError(t, c.AddBook("ISBN-2", "C", "D", GenreRomance, 1))

	require.NoError(t, c.DeleteBook("ISBN-1"))

	_, err := c.GetBook("ISBN-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, c.ListAllBooks(), 1)
	assert.ErrorIs(t, c.DeleteBook("ISBN-1"), ErrNotFound)
}

func TestSearchBooks(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.AddBook("1", "Python Programming", "John Doe", GenreNonFiction, 1))
	require.NoError(t, c.AddBook("2", "Advanced Python", "Jane Smith", GenreNonFiction, 1))
	require.NoError(t, c.AddBook("3", "Java Guide", "John Doe", GenreNonFiction, 1))
	require.NoError(t, c.AddBook("4", "Mystery Novel", "Agatha Writer", GenreMystery, 1))

	titles := func(books []Book) []string {
		var out []string
		for _, b := range books {
			out = append(out, b.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Python Programming", "Advanced Python"}, titles(c.SearchBooks("python")))
	assert.Equal(t, []string{"Python Programming", "Java Guide"}, titles(c.SearchBooks("JOHN doe")))
	assert.Equal(t, []string{"Java Guide"}, titles(c.SearchBooks("Guide")))
	assert.Len(t, c.SearchBooks(""), 4)

	none := c.SearchBooks("NonExistent")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListAllBooksKeepsInsertionOrderAfterDelete(t *testing.T) {
	c := newCatalog(t)
	for _, isbn := range []string{"c", "a", "b"} {
		require.NoError(t, c.AddBook(isbn, "T"+isbn, "A", GenreHistory, 1))
	}
	require.NoError(t, c.DeleteBook("a"))
	require.NoError(t, c.AddBook("a", "Ta", "A", GenreHistory, 1))

	var isbns []string
	for _, b := range c.ListAllBooks() {
		isbns = append(isbns, b.ISBN)
	}
	assert.Equal(t, []string{"c", "b", "a"}, isbns)
}

func TestListAllBooksReturnsCopies(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.AddBook("ISBN-1", "Title", "Author", GenreThriller, 2))

	books := c.ListAllBooks()
	books[0].AvailableCopies = 0
	books[0].Title = "Tampered"

	b, _ := c.GetBook("ISBN-1")
	assert.Equal(t, 2, b.AvailableCopies)
	assert.Equal(t, "Title", b.Title)
}

func TestStatusRecomputed(t *testing.T) {
	c := newCatalog(t)
	assert.Equal(t, Status{}, c.Status())

	require.NoError(t, c.AddBook("1", "A", "X", GenreFiction, 3))
	require.NoError(t, c.AddBook("2", "B", "Y", GenreFiction, 2))
	require.NoError(t, c.AddMember("M1", "Alice", "alice@example.com"))
	require.NoError(t, c.BorrowBook("M1", "1"))

	assert.Equal(t, Status{
		TotalBooks:      2,
		TotalMembers:    1,
		TotalCopies:     5,
		AvailableCopies: 4,
		BorrowedCopies:  1,
	}, c.Status())

	require.NoError(t, c.ReturnBook("M1", "1"))
	require.NoError(t, c.DeleteBook("2"))
	assert.Equal(t, Status{TotalBooks: 1, TotalMembers: 1, TotalCopies: 3, AvailableCopies: 3}, c.Status())
}

func TestBookAndMemberString(t *testing.T) {
	b := Book{ISBN: "1", Title: "Dune", Author: "Frank Herbert", Genre: GenreSciFi, TotalCopies: 3, AvailableCopies: 2}
	assert.Equal(t, "Book(ISBN: 1, Title: Dune, Author: Frank Herbert, Genre: Sci-Fi, Available: 2/3)", b.String())

	m := Member{ID: "M1", Name: "Alice", Email: "a@b.io", BorrowedBooks: []string{"1"}}
	assert.Equal(t, "Member(ID: M1, Name: Alice, Email: a@b.io, Borrowed: 1 books)", m.String())
}

package library

import (
	"fmt"
	"slices"
)

// MaxBorrowedBooks is the number of loans a member may hold at once.
const MaxBorrowedBooks = 3

// Genre classifies a book. Only the values in Genres are accepted.
type Genre string

const (
	GenreFiction    Genre = "Fiction"
	GenreNonFiction Genre = "Non-Fiction"
	GenreSciFi      Genre = "Sci-Fi"
	GenreMystery    Genre = "Mystery"
	GenreBiography  Genre = "Biography"
	GenreRomance    Genre = "Romance"
	GenreThriller   Genre = "Thriller"
	GenreHistory    Genre = "History"
)

// Genres lists the recognised genres in display order.
func Genres() []Genre {
	return []Genre{
		GenreFiction, GenreNonFiction, GenreSciFi, GenreMystery,
		GenreBiography, GenreRomance, GenreThriller, GenreHistory,
	}
}

// Book represents a title held by the library and how many of its copies are on the shelf.
type Book struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           Genre  `json:"genre"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// Borrowed is the number of copies currently on loan.
func (b Book) Borrowed() int { return b.TotalCopies - b.AvailableCopies }

func (b Book) String() string {
	return fmt.Sprintf("Book(ISBN: %s, Title: %s, Author: %s, Genre: %s, Available: %d/%d)",
		b.ISBN, b.Title, b.Author, b.Genre, b.AvailableCopies, b.TotalCopies)
}

// Member represents a registered library member.
type Member struct {
	ID            string   `json:"member_id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	BorrowedBooks []string `json:"borrowed_books"`
}

// Holds reports whether the member currently has a copy of isbn.
func (m Member) Holds(isbn string) bool { return slices.Contains(m.BorrowedBooks, isbn) }

func (m Member) String() string {
	return fmt.Sprintf("Member(ID: %s, Name: %s, Email: %s, Borrowed: %d books)",
		m.ID, m.Name, m.Email, len(m.BorrowedBooks))
}

// clone returns a copy that shares no memory with m.
func (m Member) clone() Member {
	m.BorrowedBooks = slices.Clone(m.BorrowedBooks)
	if m.BorrowedBooks == nil {
		m.BorrowedBooks = []string{}
	}
	return m
}

// BookUpdate names the book fields to change. Nil fields are left alone.
type BookUpdate struct {
	Title       *string
	Author      *string
	Genre       *Genre
	TotalCopies *int
}

// MemberUpdate names the member fields to change. Nil fields are left alone.
type MemberUpdate struct {
	Name  *string
	Email *string
}

// Loan is one member holding one copy of one book.
type Loan struct {
	MemberID string `json:"member_id"`
	ISBN     string `json:"isbn"`
}

// Status is a point-in-time summary of the catalog.
type Status struct {
	TotalBooks      int `json:"total_books"`
	TotalMembers    int `json:"total_members"`
	TotalCopies     int `json:"total_copies"`
	AvailableCopies int `json:"available_copies"`
	BorrowedCopies  int `json:"borrowed_copies"`
}

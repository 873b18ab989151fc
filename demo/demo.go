// Package demo walks a catalog through every feature and prints what happens.
package demo

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"library-catalog/console"
	"library-catalog/library"
)

type bookRow struct {
	isbn, title, author string
	genre               library.Genre
	copies              int
}

var books = []bookRow{
	{"978-0134685991", "Effective Python", "Brett Slatkin", library.GenreNonFiction, 3},
	{"978-0132350884", "Clean Code", "Robert Martin", library.GenreNonFiction, 2},
	{"978-0553418026", "The Martian", "Andy Weir", library.GenreSciFi, 4},
	{"978-0061120084", "To Kill a Mockingbird", "Harper Lee", library.GenreFiction, 2},
	{"978-0307277679", "The Da Vinci Code", "Dan Brown", library.GenreMystery, 3},
	{"978-0743273565", "The Great Gatsby", "F. Scott Fitzgerald", library.GenreFiction, 2},
	{"978-0553382563", "Dune", "Frank Herbert", library.GenreSciFi, 3},
}

var members = [][3]string{
	{"M001", "Alice Johnson", "alice.johnson@email.com"},
	{"M002", "Bob Smith", "bob.smith@email.com"},
	{"M003", "Carol Davis", "carol.davis@email.com"},
	{"M004", "David Wilson", "david.wilson@email.com"},
}

type runner struct {
	w   io.Writer
	cat *library.Catalog
	err error
}

// Run replays the walkthrough against c, which should be empty. It returns
// an error if any step ends differently than the walkthrough expects.
func Run(w io.Writer, c *library.Catalog) error {
	r := &runner{w: w, cat: c}

	r.section("1. CREATING LIBRARY")
	fmt.Fprintln(w, "New library created successfully!")
	r.status()

	r.section("2. ADDING BOOKS")
	for _, b := range books {
		r.must(c.AddBook(b.isbn, b.title, b.author, b.genre, b.copies),
			fmt.Sprintf("Added: %s by %s (%d copies)", b.title, b.author, b.copies))
	}
	r.books("Books")
	r.status()

	r.section("3. ADDING MEMBERS")
	for _, m := range members {
		r.must(c.AddMember(m[0], m[1], m[2]), fmt.Sprintf("Added member: %s (%s)", m[1], m[0]))
	}
	r.members("Members")
	r.status()

	r.section("4. BORROWING BOOKS")
	for _, op := range [][2]string{
		{"M001", "978-0134685991"},
		{"M001", "978-0132350884"},
		{"M002", "978-0553418026"},
		{"M003", "978-0061120084"},
		{"M001", "978-0307277679"},
	} {
		r.borrow(op[0], op[1])
	}
	r.books("Books After Borrowing")
	r.members("Members After Borrowing")
	r.status()

	r.section("5. TESTING BORROWING LIMIT")
	r.expect(c.BorrowBook("M001", "978-0743273565"), library.ErrLimitExceeded)

	r.section("6. TESTING BOOK UNAVAILABILITY")
	// Bob gets the remaining copies of Clean Code so the next borrow finds none.
	r.borrow("M002", "978-0132350884")
	r.expect(c.BorrowBook("M004", "978-0132350884"), library.ErrUnavailable)

	r.section("7. RETURNING BOOKS")
	r.giveBack("M001", "978-0134685991")
	r.giveBack("M002", "978-0553418026")
	r.giveBack("M002", "978-0132350884")
	r.books("Books After Returning")
	r.members("Members After Returning")
	r.status()

	r.section("8. SEARCHING BOOKS")
	for _, q := range []string{"Python", "Fiction", "Dan Brown", "Sci-Fi"} {
		fmt.Fprintf(w, "\nSearch for '%s':\n", q)
		results := c.SearchBooks(q)
		if len(results) == 0 {
			fmt.Fprintln(w, "   No books found")
		}
		for _, b := range results {
			fmt.Fprintf(w, "   - %s by %s (%s)\n", b.Title, b.Author, b.Genre)
		}
	}

	r.section("9. UPDATING BOOKS AND MEMBERS")
	title := "Effective Python: 90 Specific Ways to Write Better Python"
	r.must(c.UpdateBook("978-0134685991", library.BookUpdate{Title: &title}), "Updated book title")
	email := "alice.johnson.new@email.com"
	r.must(c.UpdateMember("M001", library.MemberUpdate{Email: &email}), "Updated member email")
	r.books("Books After Update")
	r.members("Members After Update")

	r.section("10. TESTING DELETION CONSTRAINTS")
	r.expect(c.DeleteBook("978-0132350884"), library.ErrConflict)
	r.expect(c.DeleteMember("M001"), library.ErrConflict)

	r.section("11. SUCCESSFUL DELETIONS")
	r.giveBack("M001", "978-0132350884")
	r.giveBack("M001", "978-0307277679")
	r.must(c.DeleteMember("M001"), "Deleted Alice (no borrowed books)")
	r.must(c.DeleteBook("978-0743273565"), "Deleted The Great Gatsby (all copies available)")
	r.books("Final Books")
	r.members("Final Members")
	r.status()

	r.section("12. ERROR HANDLING DEMONSTRATION")
	r.expect(c.AddBook("978-0134685991", "Duplicate Book", "Author", library.GenreFiction, 1), library.ErrDuplicateKey)
	r.expect(c.AddBook("978-9999999999", "Invalid Genre Book", "Author", "InvalidGenre", 1), library.ErrInvalidArgument)
	r.expect(c.AddMember("M002", "Duplicate Member", "duplicate@email.com"), library.ErrDuplicateKey)
	r.expect(c.AddMember("M999", "Invalid Email", "invalid-email"), library.ErrInvalidArgument)
	r.expect(c.ReturnBook("M003", "978-0553382563"), library.ErrNotHeld)

	r.section("DEMO COMPLETED")
	fmt.Fprintln(w, "All core features have been demonstrated.")
	return r.err
}

func (r *runner) section(title string) {
	fmt.Fprintf(r.w, "\n%s\n %s\n%s\n", strings.Repeat("=", 60), title, strings.Repeat("=", 60))
}

func (r *runner) status() {
	fmt.Fprintln(r.w)
	console.WriteStatus(r.w, r.cat.Status())
}

func (r *runner) books(title string) {
	fmt.Fprintf(r.w, "\n%s:\n", title)
	books := r.cat.ListAllBooks()
	if len(books) == 0 {
		fmt.Fprintln(r.w, "   No books in library")
	}
	for i, b := range books {
		fmt.Fprintf(r.w, "   %d. %s\n", i+1, b)
	}
}

func (r *runner) members(title string) {
	fmt.Fprintf(r.w, "\n%s:\n", title)
	members := r.cat.ListAllMembers()
	if len(members) == 0 {
		fmt.Fprintln(r.w, "   No members in library")
	}
	for i, m := range members {
		fmt.Fprintf(r.w, "   %d. %s\n", i+1, m)
	}
}

// must prints msg on success and records err otherwise.
func (r *runner) must(err error, msg string) {
	if err != nil {
		fmt.Fprintf(r.w, "Failed: %v\n", err)
		r.err = errors.Join(r.err, err)
		return
	}
	fmt.Fprintln(r.w, msg)
}

// expect prints the rejection and records an error unless err wraps want.
func (r *runner) expect(err, want error) {
	if errors.Is(err, want) {
		fmt.Fprintf(r.w, "Expected error: %v\n", err)
		return
	}
	fmt.Fprintf(r.w, "Unexpected outcome: wanted %v, got %v\n", want, err)
	r.err = errors.Join(r.err, fmt.Errorf("wanted %w, got %v", want, err))
}

func (r *runner) borrow(memberID, isbn string) {
	err := r.cat.BorrowBook(memberID, isbn)
	if err == nil {
		m, _ := r.cat.GetMember(memberID)
		b, _ := r.cat.GetBook(isbn)
		fmt.Fprintf(r.w, "%s borrowed '%s'\n", m.Name, b.Title)
		return
	}
	r.must(err, "")
}

func (r *runner) giveBack(memberID, isbn string) {
	err := r.cat.ReturnBook(memberID, isbn)
	if err == nil {
		m, _ := r.cat.GetMember(memberID)
		b, _ := r.cat.GetBook(isbn)
		fmt.Fprintf(r.w, "%s returned '%s'\n", m.Name, b.Title)
		return
	}
	r.must(err, "")
}

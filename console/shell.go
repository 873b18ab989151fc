// Package console implements the interactive catalog shell: a command word
// per line followed by one line per field.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"library-catalog/library"
)

// Shell reads commands from in and writes results to out.
type Shell struct {
	cat *library.Catalog
	sc  *bufio.Scanner
	out io.Writer
	log zerolog.Logger

	// interactive shells print prompts; piped input runs silently.
	interactive bool
}

// New returns a shell over cat. Prompts are printed only when in is a terminal.
func New(cat *library.Catalog, in io.Reader, out io.Writer, log zerolog.Logger) *Shell {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &Shell{
		cat:         cat,
		sc:          bufio.NewScanner(in),
		out:         out,
		log:         log,
		interactive: interactive,
	}
}

type handler func(*Shell)

var commands = map[string]handler{
	"add book":      (*Shell).handleAddBook,
	"update book":   (*Shell).handleUpdateBook,
	"delete book":   (*Shell).handleDeleteBook,
	"list books":    (*Shell).handleListBooks,
	"search book":   (*Shell).handleSearchBooks,
	"add member":    (*Shell).handleAddMember,
	"update member": (*Shell).handleUpdateMember,
	"delete member": (*Shell).handleDeleteMember,
	"list members":  (*Shell).handleListMembers,
	"borrow":        (*Shell).handleBorrow,
	"return":        (*Shell).handleReturn,
	"loans":         (*Shell).handleLoans,
	"status":        (*Shell).handleStatus,
	"help":          (*Shell).printHelp,
}

// Run processes commands until "exit" or end of input.
func (s *Shell) Run() error {
	if s.interactive {
		fmt.Fprintln(s.out, "Welcome to the Library Catalog!")
		s.printHelp()
	}

	for {
		s.prompt("\n> ")
		if !s.sc.Scan() {
			break
		}
		cmd := strings.ToLower(strings.TrimSpace(s.sc.Text()))
		if cmd == "" {
			continue
		}
		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
		h, ok := commands[cmd]
		if !ok {
			fmt.Fprintf(s.out, "Unknown command %q. Type 'help' for the list of commands.\n", cmd)
			continue
		}
		s.log.Debug().Str("command", cmd).Msg("shell command")
		h(s)
	}
	return s.sc.Err()
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, "Available commands:")
	fmt.Fprintln(s.out, "  Books: add book, update book, delete book, list books, search book")
	fmt.Fprintln(s.out, "  Members: add member, update member, delete member, list members")
	fmt.Fprintln(s.out, "  Circulation: borrow, return, loans")
	fmt.Fprintln(s.out, "  System: status, help, exit")
}

func (s *Shell) prompt(p string) {
	if s.interactive {
		fmt.Fprint(s.out, p)
	}
}

// field prompts for one value. ok is false once input is exhausted.
func (s *Shell) field(label string) (value string, ok bool) {
	s.prompt(label + ": ")
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

// optional returns nil for a blank answer.
func (s *Shell) optional(label string) (*string, bool) {
	v, ok := s.field(label + " (blank to keep)")
	if !ok || v == "" {
		return nil, ok
	}
	return &v, true
}

func (s *Shell) fail(err error) {
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// ------------------ Books ------------------

func (s *Shell) handleAddBook() {
	isbn, ok := s.field("ISBN")
	if !ok {
		return
	}
	title, ok := s.field("Title")
	if !ok {
		return
	}
	author, ok := s.field("Author")
	if !ok {
		return
	}
	genre, ok := s.field("Genre")
	if !ok {
		return
	}
	copiesStr, ok := s.field("Copies")
	if !ok {
		return
	}
	copies, err := strconv.Atoi(copiesStr)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid copy count: %s\n", copiesStr)
		return
	}

	if err := s.cat.AddBook(isbn, title, author, library.Genre(genre), copies); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "Added: %s by %s (%d copies)\n", title, author, copies)
}

func (s *Shell) handleUpdateBook() {
	isbn, ok := s.field("ISBN")
	if !ok {
		return
	}
	var u library.BookUpdate
	if u.Title, ok = s.optional("Title"); !ok {
		return
	}
	if u.Author, ok = s.optional("Author"); !ok {
		return
	}
	genre, ok := s.optional("Genre")
	if !ok {
		return
	}
	if genre != nil {
		g := library.Genre(*genre)
		u.Genre = &g
	}
	copiesStr, ok := s.optional("Total copies")
	if !ok {
		return
	}
	if copiesStr != nil {
		n, err := strconv.Atoi(*copiesStr)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid copy count: %s\n", *copiesStr)
			return
		}
		u.TotalCopies = &n
	}

	if err := s.cat.UpdateBook(isbn, u); err != nil {
		s.fail(err)
		return
	}
	b, _ := s.cat.GetBook(isbn)
	fmt.Fprintf(s.out, "Updated %s\n", b)
}

func (s *Shell) handleDeleteBook() {
	isbn, ok := s.field("ISBN")
	if !ok {
		return
	}
	if err := s.cat.DeleteBook(isbn); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "Deleted book %s\n", isbn)
}

func (s *Shell) handleListBooks() {
	WriteBooks(s.out, s.cat.ListAllBooks())
}

func (s *Shell) handleSearchBooks() {
	query, ok := s.field("Query")
	if !ok {
		return
	}
	books := s.cat.SearchBooks(query)
	if len(books) == 0 {
		fmt.Fprintf(s.out, "No books found matching '%s'.\n", query)
		return
	}
	fmt.Fprintf(s.out, "Found %d book(s) matching '%s':\n", len(books), query)
	writeBookTable(s.out, books)
}

// ------------------ Members ------------------

func (s *Shell) handleAddMember() {
	id, ok := s.field("Member ID (blank to generate)")
	if !ok {
		return
	}
	if id == "" {
		id = library.NewMemberID()
	}
	name, ok := s.field("Name")
	if !ok {
		return
	}
	email, ok := s.field("Email")
	if !ok {
		return
	}

	if err := s.cat.AddMember(id, name, email); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "Added member '%s' with ID %s\n", name, id)
}

func (s *Shell) handleUpdateMember() {
	id, ok := s.field("Member ID")
	if !ok {
		return
	}
	var u library.MemberUpdate
	if u.Name, ok = s.optional("Name"); !ok {
		return
	}
	if u.Email, ok = s.optional("Email"); !ok {
		return
	}

	if err := s.cat.UpdateMember(id, u); err != nil {
		s.fail(err)
		return
	}
	m, _ := s.cat.GetMember(id)
	fmt.Fprintf(s.out, "Updated %s\n", m)
}

func (s *Shell) handleDeleteMember() {
	id, ok := s.field("Member ID")
	if !ok {
		return
	}
	if err := s.cat.DeleteMember(id); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "Deleted member %s\n", id)
}

func (s *Shell) handleListMembers() {
	WriteMembers(s.out, s.cat.ListAllMembers())
}

// ------------------ Circulation ------------------

func (s *Shell) memberAndBook() (memberID, isbn string, ok bool) {
	if memberID, ok = s.field("Member ID"); !ok {
		return
	}
	isbn, ok = s.field("ISBN")
	return
}

func (s *Shell) handleBorrow() {
	memberID, isbn, ok := s.memberAndBook()
	if !ok {
		return
	}
	if err := s.cat.BorrowBook(memberID, isbn); err != nil {
		s.fail(err)
		return
	}
	m, _ := s.cat.GetMember(memberID)
	b, _ := s.cat.GetBook(isbn)
	fmt.Fprintf(s.out, "%s borrowed '%s'\n", m.Name, b.Title)
}

func (s *Shell) handleReturn() {
	memberID, isbn, ok := s.memberAndBook()
	if !ok {
		return
	}
	if err := s.cat.ReturnBook(memberID, isbn); err != nil {
		s.fail(err)
		return
	}
	m, _ := s.cat.GetMember(memberID)
	b, _ := s.cat.GetBook(isbn)
	fmt.Fprintf(s.out, "%s returned '%s'\n", m.Name, b.Title)
}

func (s *Shell) handleLoans() {
	loans := s.cat.Loans()
	if len(loans) == 0 {
		fmt.Fprintln(s.out, "No books are on loan.")
		return
	}
	fmt.Fprintf(s.out, "%-12s %-20s %-30s\n", "Member", "ISBN", "Title")
	fmt.Fprintln(s.out, strings.Repeat("-", 64))
	for _, l := range loans {
		title := ""
		if b, err := s.cat.GetBook(l.ISBN); err == nil {
			title = b.Title
		}
		fmt.Fprintf(s.out, "%-12s %-20s %-30s\n", truncateString(l.MemberID, 12), l.ISBN, truncateString(title, 30))
	}
}

func (s *Shell) handleStatus() {
	WriteStatus(s.out, s.cat.Status())
}

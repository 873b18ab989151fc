package console

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"library-catalog/library"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteBooks prints books as a table, or a placeholder line when there are none.
func WriteBooks(w io.Writer, books []library.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books in library.")
		return
	}
	writeBookTable(w, books)
}

// WriteMembers prints members as a table, or a placeholder line when there are none.
func WriteMembers(w io.Writer, members []library.Member) {
	if len(members) == 0 {
		fmt.Fprintln(w, "No members registered.")
		return
	}
	writeMemberTable(w, members)
}

func writeBookTable(w io.Writer, books []library.Book) {
	fmt.Fprintf(w, "%-18s %-30s %-22s %-12s %s\n", "ISBN", "Title", "Author", "Genre", "Available")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	for _, b := range books {
		fmt.Fprintf(w, "%-18s %-30s %-22s %-12s %d/%d\n",
			truncateString(b.ISBN, 18),
			truncateString(b.Title, 30),
			truncateString(b.Author, 22),
			b.Genre,
			b.AvailableCopies, b.TotalCopies)
	}
}

func writeMemberTable(w io.Writer, members []library.Member) {
	fmt.Fprintf(w, "%-12s %-25s %-30s %s\n", "ID", "Name", "Email", "Borrowed")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, m := range members {
		borrowed := "None"
		if len(m.BorrowedBooks) > 0 {
			borrowed = strings.Join(m.BorrowedBooks, ", ")
		}
		fmt.Fprintf(w, "%-12s %-25s %-30s %s\n",
			truncateString(m.ID, 12),
			truncateString(m.Name, 25),
			truncateString(m.Email, 30),
			borrowed)
	}
}

// WriteStatus prints the catalog totals.
func WriteStatus(w io.Writer, s library.Status) {
	fmt.Fprintln(w, "Library Status:")
	fmt.Fprintf(w, "   Total Books: %d\n", s.TotalBooks)
	fmt.Fprintf(w, "   Total Members: %d\n", s.TotalMembers)
	fmt.Fprintf(w, "   Total Copies: %d\n", s.TotalCopies)
	fmt.Fprintf(w, "   Available Copies: %d\n", s.AvailableCopies)
	fmt.Fprintf(w, "   Borrowed Copies: %d\n", s.BorrowedCopies)
}

// truncateString cuts s to at most maxLen runes.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

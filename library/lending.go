package library

import (
	"fmt"
	"slices"
)

// BorrowBook lends one copy of isbn to the member.
//
// Checks run in a fixed order and the first failure wins:
//   - member unknown: ErrNotFound
//   - book unknown: ErrNotFound
//   - member already at MaxBorrowedBooks: ErrLimitExceeded
//   - no copy on the shelf: ErrUnavailable
//   - member already holds isbn: ErrAlreadyHeld
//
// Nothing is written until every check has passed; the member's list and
// the book's counter then change together.
func (c *Catalog) BorrowBook(memberID, isbn string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, _ := c.findMember(memberID)
	if m == nil {
		return c.rejected("borrow_book", memberNotFound(memberID))
	}
	b, ok := c.books[isbn]
	if !ok {
		return c.rejected("borrow_book", fmt.Errorf("%w: book with ISBN %s not found", ErrNotFound, isbn))
	}
	if len(m.BorrowedBooks) >= MaxBorrowedBooks {
		return c.rejected("borrow_book", fmt.Errorf("%w: member %s has reached the maximum borrowing limit of %d books", ErrLimitExceeded, memberID, MaxBorrowedBooks))
	}
	if b.AvailableCopies <= 0 {
		return c.rejected("borrow_book", fmt.Errorf("%w: book %s is not available for borrowing", ErrUnavailable, isbn))
	}
	if m.Holds(isbn) {
		return c.rejected("borrow_book", fmt.Errorf("%w: member %s already has book %s", ErrAlreadyHeld, memberID, isbn))
	}

	m.BorrowedBooks = append(m.BorrowedBooks, isbn)
	b.AvailableCopies--
	c.log.Debug().Str("member_id", memberID).Str("isbn", isbn).Int("available", b.AvailableCopies).Msg("book borrowed")
	return nil
}

// ReturnBook takes a copy of isbn back from the member.
func (c *Catalog) ReturnBook(memberID, isbn string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, _ := c.findMember(memberID)
	if m == nil {
		return c.rejected("return_book", memberNotFound(memberID))
	}
	b, ok := c.books[isbn]
	if !ok {
		return c.rejected("return_book", fmt.Errorf("%w: book with ISBN %s not found", ErrNotFound, isbn))
	}
	i := slices.Index(m.BorrowedBooks, isbn)
	if i < 0 {
		return c.rejected("return_book", fmt.Errorf("%w: member %s does not have book %s", ErrNotHeld, memberID, isbn))
	}

	m.BorrowedBooks = slices.Delete(m.BorrowedBooks, i, i+1)
	b.AvailableCopies++
	c.log.Debug().Str("member_id", memberID).Str("isbn", isbn).Int("available", b.AvailableCopies).Msg("book returned")
	return nil
}

// Loans lists every active loan, grouped by member in registration order.
func (c *Catalog) Loans() []Loan {
	c.mu.RLock()
	defer c.mu.RUnlock()

	loans := []Loan{}
	for _, m := range c.members {
		for _, isbn := range m.BorrowedBooks {
			loans = append(loans, Loan{MemberID: m.ID, ISBN: isbn})
		}
	}
	return loans
}

// Status recounts the catalog totals from the current books.
func (c *Catalog) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Status{TotalBooks: len(c.books), TotalMembers: len(c.members)}
	for _, b := range c.books {
		s.TotalCopies += b.TotalCopies
		s.AvailableCopies += b.AvailableCopies
	}
	s.BorrowedCopies = s.TotalCopies - s.AvailableCopies
	return s
}

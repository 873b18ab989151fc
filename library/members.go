package library

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// NewMemberID returns a short random member identifier of the form M-XXXXXXXX.
func NewMemberID() string {
	return "M-" + strings.ToUpper(uuid.NewString()[:8])
}

func (c *Catalog) findMember(id string) (*Member, int) {
	for i, m := range c.members {
		if m.ID == id {
			return m, i
		}
	}
	return nil, -1
}

func memberNotFound(id string) error {
	return fmt.Errorf("%w: member with ID %s not found", ErrNotFound, id)
}

// AddMember registers a member with no loans.
func (c *Catalog) AddMember(id, name, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, _ := c.findMember(id); m != nil {
		return c.rejected("add_member", fmt.Errorf("%w: member with ID %s already exists", ErrDuplicateKey, id))
	}
	if !ValidEmail(email) {
		return c.rejected("add_member", fmt.Errorf("%w: invalid email format %q", ErrInvalidArgument, email))
	}

	c.members = append(c.members, &Member{ID: id, Name: name, Email: email, BorrowedBooks: []string{}})
	c.log.Debug().Str("member_id", id).Msg("member added")
	return nil
}

// GetMember returns a copy of the member with the given id.
func (c *Catalog) GetMember(id string) (Member, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, _ := c.findMember(id)
	if m == nil {
		return Member{}, memberNotFound(id)
	}
	return m.clone(), nil
}

// UpdateMember applies the supplied fields of u. A new email must pass the
// same check as AddMember.
func (c *Catalog) UpdateMember(id string, u MemberUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, _ := c.findMember(id)
	if m == nil {
		return c.rejected("update_member", memberNotFound(id))
	}
	if u.Email != nil && !ValidEmail(*u.Email) {
		return c.rejected("update_member", fmt.Errorf("%w: invalid email format %q", ErrInvalidArgument, *u.Email))
	}

	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Email != nil {
		m.Email = *u.Email
	}
	c.log.Debug().Str("member_id", id).Msg("member updated")
	return nil
}

// DeleteMember removes a member. It refuses while the member holds any book.
func (c *Catalog) DeleteMember(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, i := c.findMember(id)
	if m == nil {
		return c.rejected("delete_member", memberNotFound(id))
	}
	if n := len(m.BorrowedBooks); n > 0 {
		return c.rejected("delete_member", fmt.Errorf("%w: cannot delete member %s - they have %d borrowed books", ErrConflict, id, n))
	}

	c.members = slices.Delete(c.members, i, i+1)
	c.log.Debug().Str("member_id", id).Msg("member deleted")
	return nil
}

// ListAllMembers returns every member in registration order.
func (c *Catalog) ListAllMembers() []Member {
	c.mu.RLock()
	defer c.mu.RUnlock()

	members := make([]Member, 0, len(c.members))
	for _, m := range c.members {
		members = append(members, m.clone())
	}
	return members
}

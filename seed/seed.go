// Package seed loads a YAML description of books, members and loans into a
// fresh catalog.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"library-catalog/library"
)

// Fixture is the decoded seed document.
type Fixture struct {
	Books   []Book   `yaml:"books"`
	Members []Member `yaml:"members"`
	Loans   []Loan   `yaml:"loans"`
}

type Book struct {
	ISBN   string `yaml:"isbn"`
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Genre  string `yaml:"genre"`
	Copies int    `yaml:"copies"`
}

// Member is a seeded member. A blank ID is generated on Apply.
type Member struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type Loan struct {
	Member string `yaml:"member"`
	ISBN   string `yaml:"isbn"`
}

// Load decodes a fixture from r. Unknown keys are an error.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &f, nil
}

// LoadFile opens path and decodes it with Load.
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Apply adds the books, then the members, then the loans to c. It stops at
// the first rejected entry.
func (f *Fixture) Apply(c *library.Catalog) error {
	for i, b := range f.Books {
		if err := c.AddBook(b.ISBN, b.Title, b.Author, library.Genre(b.Genre), b.Copies); err != nil {
			return fmt.Errorf("books[%d]: %w", i, err)
		}
	}
	for i, m := range f.Members {
		id := m.ID
		if strings.TrimSpace(id) == "" {
			id = library.NewMemberID()
		}
		if err := c.AddMember(id, m.Name, m.Email); err != nil {
			return fmt.Errorf("members[%d]: %w", i, err)
		}
	}
	for i, l := range f.Loans {
		if err := c.BorrowBook(l.Member, l.ISBN); err != nil {
			return fmt.Errorf("loans[%d]: %w", i, err)
		}
	}
	return nil
}

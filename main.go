package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"library-catalog/console"
	"library-catalog/demo"
	"library-catalog/library"
	"library-catalog/logger"
	"library-catalog/seed"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state one invocation works on.
type app struct {
	cfg Config
	log zerolog.Logger
	cat *library.Catalog
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "library-catalog",
		Short:         "In-memory library catalog of books, members and loans",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(errOut)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.shell(in, out)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.SeedPath, "seed", "", "YAML file of books, members and loans to start from (env LIBRARY_SEED)")
	flags.BoolVar(&a.cfg.JSON, "json", false, "print listings as JSON")
	flags.BoolVar(&a.cfg.Debug, "debug", false, "enable debug logging (env LIBRARY_DEBUG)")

	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive shell (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.shell(in, out)
			},
		},
		&cobra.Command{
			Use:   "demo",
			Short: "Walk through every catalog feature",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				// The walkthrough expects an empty catalog.
				return demo.Run(out, library.NewCatalog(library.WithLogger(a.log)))
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print catalog totals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if a.cfg.JSON {
					return console.WriteJSON(out, a.cat.Status())
				}
				console.WriteStatus(out, a.cat.Status())
				return nil
			},
		},
		&cobra.Command{
			Use:   "books",
			Short: "List every book",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.printBooks(out, a.cat.ListAllBooks())
			},
		},
		&cobra.Command{
			Use:   "members",
			Short: "List every member",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				members := a.cat.ListAllMembers()
				if a.cfg.JSON {
					return console.WriteJSON(out, members)
				}
				console.WriteMembers(out, members)
				return nil
			},
		},
		&cobra.Command{
			Use:   "search [query]",
			Short: "Find books by title or author",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printBooks(out, a.cat.SearchBooks(strings.Join(args, " ")))
			},
		},
	)
	return root
}

// setup builds the logger and the catalog, applying the seed file when one is configured.
func (a *app) setup(errOut io.Writer) error {
	cfg, err := a.cfg.resolve()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(errOut, a.cfg.Debug)
	a.cat = library.NewCatalog(library.WithLogger(a.log))

	if a.cfg.SeedPath == "" {
		return nil
	}
	fixture, err := seed.LoadFile(a.cfg.SeedPath)
	if err == nil {
		err = fixture.Apply(a.cat)
	}
	if err != nil {
		a.log.Error().Err(err).Str("seed", a.cfg.SeedPath).Msg("loading seed failed")
		return fmt.Errorf("seed %s: %w", a.cfg.SeedPath, err)
	}
	a.log.Debug().Str("seed", a.cfg.SeedPath).Int("books", len(fixture.Books)).Int("members", len(fixture.Members)).Msg("seed applied")
	return nil
}

func (a *app) shell(in io.Reader, out io.Writer) error {
	return console.New(a.cat, in, out, a.log).Run()
}

func (a *app) printBooks(out io.Writer, books []library.Book) error {
	if a.cfg.JSON {
		return console.WriteJSON(out, books)
	}
	console.WriteBooks(out, books)
	return nil
}

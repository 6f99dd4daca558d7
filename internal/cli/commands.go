package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/shelf/internal/defaults"
	"github.com/Makepad-fr/shelf/internal/library"
	"github.com/Makepad-fr/shelf/internal/store"
	"github.com/Makepad-fr/shelf/internal/ui"
)

func (a *app) listCommand() *cobra.Command {
	var group, asJSON bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List books",
		Args:    usageArgs(cobra.NoArgs, "usage: shelf ls [--group] [--json]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			books := a.lib.Books()
			if asJSON {
				b, err := json.MarshalIndent(books, "", "  ")
				if err != nil {
					return fmt.Errorf("json marshal: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}

			t := ui.Current()
			read, _ := ui.Stats(books)
			lines := []string{
				ui.Header(books),
				t.Muted.Render(ui.ProgressBar(read, len(books), 28)),
				"",
			}
			if group {
				lines = append(lines, ui.GroupLines(books)...)
			} else {
				lines = append(lines, ui.FlatLines(books)...)
			}
			lines = append(lines, "", t.Muted.Render("Tip: add with `shelf add \"Dune\" --author \"Frank Herbert\" --pages 412`"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(lines))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by unread/read")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")
	return cmd
}

func (a *app) addCommand() *cobra.Command {
	var (
		author string
		pages  int
		read   bool
	)
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a book (title can be multiple words)",
		Example: `  shelf add "The Left Hand of Darkness" --author "Ursula K. Le Guin" --pages 304
  shelf add Dune -a "Frank Herbert" -p 412 --read`,
		Args: usageArgs(cobra.MinimumNArgs(1), "usage: shelf add <title...> --author <name> --pages <n>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.lib.Add(strings.Join(args, " "), author, pages, read)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %q (#%d)", ui.DisplayTitle(b.Title), a.lib.Len()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&author, "author", "a", "", "author of the book")
	cmd.Flags().IntVarP(&pages, "pages", "p", 0, "number of pages")
	cmd.Flags().BoolVar(&read, "read", false, "mark the book as already read")
	return cmd
}

func (a *app) toggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "read <index>",
		Aliases: []string{"toggle", "done"},
		Short:   "Toggle read for the book at a 1-based index",
		Args:    usageArgs(cobra.ExactArgs(1), "usage: shelf read <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex("read", args[0])
			if err != nil {
				return err
			}
			b, err := a.lib.Toggle(idx)
			if err != nil {
				return a.wrapIndex("read", idx, err)
			}
			state := "unread"
			if b.Read {
				state = "read"
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("marked %q %s", ui.DisplayTitle(b.Title), state))
			return nil
		},
	}
}

func (a *app) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove the book at a 1-based index",
		Long: `Remove the book at a 1-based index.

Default books come back on the next run; only books you added stay gone.`,
		Args: usageArgs(cobra.ExactArgs(1), "usage: shelf rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex("rm", args[0])
			if err != nil {
				return err
			}
			b, err := a.lib.Remove(idx)
			if err != nil {
				return a.wrapIndex("rm", idx, err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %q", ui.DisplayTitle(b.Title)))
			return nil
		},
	}
}

func (a *app) showCommand() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Show one book in detail",
		Args:  usageArgs(cobra.ExactArgs(1), "usage: shelf show <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex("show", args[0])
			if err != nil {
				return err
			}
			b, err := a.lib.Get(idx)
			if err != nil {
				return a.wrapIndex("show", idx, err)
			}
			out, err := ui.RenderMarkdown(ui.Card(idx+1, b), width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "wrap width")
	return cmd
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store location and defaults signature",
		Args:  usageArgs(cobra.NoArgs, "usage: shelf status"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := a.lib.Status()
			out := cmd.OutOrStdout()
			path := a.cfg.Path
			if a.cfg.Backend == store.BackendMemory {
				path = "(in memory)"
			}
			changed := "no"
			switch {
			case st.StoredSignature == "":
				changed = "first run"
			case st.DefaultsChanged:
				changed = "yes"
			}
			fmt.Fprintf(out, "backend:   %s\n", a.cfg.Backend)
			fmt.Fprintf(out, "store:     %s\n", path)
			fmt.Fprintf(out, "books:     %d (%d read)\n", st.Total, st.Read)
			fmt.Fprintf(out, "defaults:  %d books, signature %s\n", len(a.lib.Defaults()), shortSig(st.Signature))
			fmt.Fprintf(out, "changed since last run: %s\n", changed)
			return nil
		},
	}
}

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON book list, e.g. a browser local-storage export",
		Long: `Import a JSON array of {title, author, pages, read} objects.

Books whose title is already on the list are skipped, except default books,
whose read flag is taken from the file.`,
		Args: usageArgs(cobra.ExactArgs(1), "usage: shelf import <file>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			books, err := store.DecodeBooks(raw)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			for i, b := range books {
				if err := b.Validate(); err != nil {
					return fmt.Errorf("import entry %d: %w", i+1, err)
				}
			}
			n, err := a.lib.Import(books)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("imported %d new %s", n, plural(n, "book", "books")))
			return nil
		},
	}
}

func (a *app) defaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default books as YAML (usable with --defaults)",
		Args:  usageArgs(cobra.NoArgs, "usage: shelf defaults"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := defaults.Marshal(a.lib.Defaults())
			if err != nil {
				return fmt.Errorf("yaml marshal: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

// wrapIndex reports range errors with the 1-based numbers the user typed.
func (a *app) wrapIndex(op string, idx int, err error) error {
	if errors.Is(err, library.ErrIndexOutOfRange) {
		return fmt.Errorf("%s: %w: have %d, got %d", op, library.ErrIndexOutOfRange, a.lib.Len(), idx+1)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// parseIndex converts a 1-based index argument to a 0-based position.
func parseIndex(op, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageError{op + ": not a number: " + s}
	}
	return n - 1, nil
}

func shortSig(sig string) string {
	if len(sig) > 12 {
		return sig[:12]
	}
	return sig
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}


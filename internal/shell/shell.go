package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ekisa-team/speeddial/internal/service"
	"github.com/ekisa-team/speeddial/internal/speeddial"
)

const help = `
--- Commands ---
add    : Add a speed dial entry to a directory.
get    : Retrieve the phone number of a speed dial code.
remove : Remove a speed dial entry.
list   : List the entries of a directory.
dirs   : List all directories.
dial   : Dial the number of a speed dial code.
help   : Show this help message.
exit   : Exit the shell.
----------------
`

// Shell is an interactive line-oriented front-end over the service.
type Shell struct {
	service *service.SpeedDial
	in      *bufio.Scanner
	out     io.Writer
}

// New creates a shell reading commands from in and writing to out.
func New(svc *service.SpeedDial, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		service: svc,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run reads commands until "exit", end of input or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.printf("Welcome to the speed dial shell!\nType 'help' for commands.\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		command, ok := s.prompt("Enter command (add, get, remove, list, dirs, dial, help, exit): ")
		if !ok {
			return s.in.Err()
		}

		switch strings.ToLower(command) {
		case "add":
			s.add()
		case "get":
			s.get()
		case "remove":
			s.remove()
		case "list":
			s.list()
		case "dirs":
			s.dirs()
		case "dial":
			s.dial(ctx)
		case "help":
			s.printf("%s", help)
		case "exit", "quit":
			s.printf("Goodbye!\n")
			return nil
		case "":
		default:
			s.printf("Unknown command. Type 'help' for available commands.\n")
		}
	}
}

func (s *Shell) add() {
	dir, code, ok := s.promptEntry()
	if !ok {
		return
	}

	number, ok := s.prompt("Phone number: ")
	if !ok {
		return
	}

	name, ok := s.prompt("Contact name (optional): ")
	if !ok {
		return
	}

	stored, err := s.service.AddEntry(dir, speeddial.Entry{Code: code, Number: number, Name: name})
	if err != nil {
		s.printf("Error: %s\n", describe(err))
		return
	}

	s.printf("Added '%s' (%s) to '%s'.\n", stored.Code, stored.Number, dir)
}

func (s *Shell) get() {
	dir, code, ok := s.promptEntry()
	if !ok {
		return
	}

	entry, err := s.service.Entry(dir, code)
	if err != nil {
		s.printf("Error: %s\n", describe(err))
		return
	}

	s.printf("%s\n", formatEntry(entry))
}

func (s *Shell) remove() {
	dir, code, ok := s.promptEntry()
	if !ok {
		return
	}

	if err := s.service.RemoveNumber(dir, code); err != nil {
		s.printf("Error: %s\n", describe(err))
		return
	}

	s.printf("Removed '%s' from '%s'.\n", code, dir)
}

func (s *Shell) list() {
	dir, ok := s.prompt("Directory: ")
	if !ok {
		return
	}

	if err := PrintDirectory(s.out, s.service, dir); err != nil {
		s.printf("Error: %s\n", describe(err))
	}
}

func (s *Shell) dirs() {
	if err := PrintDirectories(s.out, s.service); err != nil {
		s.printf("Error: %s\n", describe(err))
	}
}

func (s *Shell) dial(ctx context.Context) {
	dir, code, ok := s.promptEntry()
	if !ok {
		return
	}

	entry, err := s.service.Dial(ctx, dir, code)
	if err != nil {
		s.printf("Cannot dial: %s\n", describe(err))
		return
	}

	s.printf("Dialing %s (%s via %s)\n", entry.Number, contact(entry), s.service.Driver())
}

func (s *Shell) promptEntry() (dir, code string, ok bool) {
	if dir, ok = s.prompt("Directory: "); !ok {
		return "", "", false
	}
	if code, ok = s.prompt("Speed dial code: "); !ok {
		return "", "", false
	}

	return dir, code, true
}

// prompt writes label and reads one trimmed line.
func (s *Shell) prompt(label string) (string, bool) {
	s.printf("%s", label)
	if !s.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// PrintDirectory writes the entries of a directory.
func PrintDirectory(w io.Writer, svc *service.SpeedDial, name string) error {
	info, err := svc.Directory(name)
	if err != nil {
		return err
	}

	entries, err := svc.Entries(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n--- Listing numbers in '%s' (%d/%d) ---\n", name, info.Size, info.Capacity)
	if len(entries) == 0 {
		fmt.Fprintln(w, "  Directory is empty.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(w, "  %s\n", formatEntry(e))
	}

	return nil
}

// PrintDirectories writes the directory names.
func PrintDirectories(w io.Writer, svc *service.SpeedDial) error {
	names, err := svc.DirectoryNames()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\n--- All available directories ---")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}

	return nil
}

// formatEntry renders "code: number", followed by the contact name when set.
func formatEntry(e speeddial.Entry) string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Number)
	}

	return fmt.Sprintf("%s: %s [%s]", e.Code, e.Number, e.Name)
}

// contact names an entry by its contact name, falling back to the code.
func contact(e speeddial.Entry) string {
	if e.Name == "" {
		return e.Code
	}

	return e.Name + ", " + e.Code
}

// describe returns the first line of an error message for display.
func describe(err error) string {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/service"
	"github.com/nootencorp/worklog/internal/storage"
	"go.uber.org/zap"
)

// State is a screen of the interactive shell
type State int

const (
	StateMain State = iota
	StateSearch
	StateQuit
)

func (s State) String() string {
	switch s {
	case StateMain:
		return "main"
	case StateSearch:
		return "search"
	case StateQuit:
		return "quit"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	mainMenu = `WORK LOG
What would you like to do?
a) Add new entry
b) Search in existing entries
c) Quit program
`
	searchMenu = `How would you like to search?
a) Employee
b) Date
c) Duration
d) Term (Employee Name or Notes)
e) Return to Main Menu
`
	clearSequence = "\033[H\033[2J"
	choicePrompt  = "> "
	pausePrompt   = "Please press enter to return to the menu."
)

// Shell is the interactive menu loop. It moves between the main and search
// screens until the user quits or input ends.
type Shell struct {
	in       *bufio.Reader
	out      io.Writer
	services *service.Services
	logger   *zap.Logger
	clear    bool
	state    State

	// AddEntry runs the add-entry flow for menu choice "a".
	// Defaults to the interactive prompts; tests may replace it.
	AddEntry func() error
}

// Option configures a Shell
type Option func(*Shell)

// WithLogger sets the shell's logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

// WithClearScreen enables clearing the terminal between screens
func WithClearScreen(enabled bool) Option {
	return func(s *Shell) {
		s.clear = enabled
	}
}

// NewShell creates a shell reading answers from in and writing screens to out
func NewShell(services *service.Services, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		in:       bufio.NewReader(in),
		out:      out,
		services: services,
		logger:   zap.NewNop(),
		state:    StateMain,
	}
	s.AddEntry = s.addEntry

	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("shell")
	return s
}

// State returns the current screen
func (s *Shell) State() State {
	return s.state
}

// Run drives the shell until StateQuit. End of input counts as quitting.
// Only failures outside user input, such as a store error, are returned.
func (s *Shell) Run() error {
	for s.state != StateQuit {
		var err error
		switch s.state {
		case StateMain:
			err = s.mainScreen()
		case StateSearch:
			err = s.searchScreen()
		default:
			return fmt.Errorf("unknown shell state %v", s.state)
		}

		if errors.Is(err, io.EOF) {
			s.logger.Debug("input closed")
			s.transition(StateQuit)
			break
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) transition(next State) {
	s.logger.Debug("state change", zap.Stringer("from", s.state), zap.Stringer("to", next))
	s.state = next
}

func (s *Shell) mainScreen() error {
	fmt.Fprint(s.out, mainMenu)
	for {
		choice, err := s.readChoice()
		if err != nil {
			return err
		}
		switch choice {
		case "a":
			return s.AddEntry()
		case "b":
			s.transition(StateSearch)
			return nil
		case "c":
			s.transition(StateQuit)
			return nil
		}
	}
}

func (s *Shell) searchScreen() error {
	s.clearScreen()
	fmt.Fprint(s.out, searchMenu)
	for {
		choice, err := s.readChoice()
		if err != nil {
			return err
		}

		var search func() error
		switch choice {
		case "a":
			search = s.searchByEmployee
		case "b":
			search = s.searchByDate
		case "c":
			search = s.searchByTimeSpent
		case "d":
			search = s.searchByTerm
		case "e":
			s.transition(StateMain)
			return nil
		default:
			continue
		}

		if err := search(); err != nil {
			return err
		}
		s.transition(StateMain)
		return nil
	}
}

func (s *Shell) addEntry() error {
	s.clearScreen()

	name, err := s.ask("Employee name: ", entry.ValidateName)
	if err != nil {
		return err
	}
	title, err := s.ask("Task title: ", entry.ValidateTitle)
	if err != nil {
		return err
	}
	timeSpent, err := s.ask("Time spent (in minutes): ", func(v string) error {
		_, err := entry.ParseTimeSpent(v)
		return err
	})
	if err != nil {
		return err
	}
	notes, err := s.prompt("Notes (optional): ")
	if err != nil {
		return err
	}

	if _, err := s.services.Entry.Add(entry.Fields{
		EmployeeName: name,
		TaskTitle:    title,
		TimeSpent:    timeSpent,
		TaskNotes:    notes,
	}); err != nil {
		return err
	}

	s.clearScreen()
	fmt.Fprintln(s.out, "Entry added to work log!")
	return nil
}

func (s *Shell) searchByEmployee() error {
	names, err := s.services.Search.Employees()
	if err != nil {
		return err
	}
	s.clearScreen()
	if line := FormatEmployeesFound(names); line != "" {
		fmt.Fprintln(s.out, line)
	}
	return s.search("Search for entries written by: ", s.services.Search.ByEmployee)
}

func (s *Shell) searchByDate() error {
	dates, err := s.services.Search.Dates()
	if err != nil {
		return err
	}
	s.clearScreen()
	if line := FormatDatesFound(dates); line != "" {
		fmt.Fprintln(s.out, line)
	}
	return s.search("Show entries for (MM/DD/YYYY): ", s.services.Search.ByDate)
}

func (s *Shell) searchByTimeSpent() error {
	return s.search("Time spent (in minutes): ", s.services.Search.ByTimeSpent)
}

func (s *Shell) searchByTerm() error {
	return s.search("Show entries containing: ", s.services.Search.ByTerm)
}

// search prompts until query accepts the input, then shows the results.
// Search answers are passed on as typed, surrounding spaces included.
func (s *Shell) search(label string, query func(raw string) (*storage.Cursor, error)) error {
	for {
		raw, err := s.readLine(label)
		if err != nil {
			return err
		}

		c, err := query(raw)
		if entry.IsInvalidInput(err) {
			s.clearScreen()
			s.correct(err)
			continue
		}
		if err != nil {
			return err
		}
		return s.showResults(c)
	}
}

// showResults prints each entry of c. Nothing is printed for an empty result.
func (s *Shell) showResults(c *storage.Cursor) error {
	defer func() { _ = c.Close() }()

	s.clearScreen()
	shown := 0
	for c.Next() {
		if shown == 0 {
			fmt.Fprintln(s.out, MatchedHeader)
		}
		fmt.Fprintf(s.out, "\n%s\n", FormatEntry(c.Entry()))
		shown++
	}
	if err := c.Err(); err != nil {
		return err
	}
	s.logger.Debug("results shown", zap.Int("count", shown))

	if shown == 0 {
		return nil
	}
	if _, err := s.prompt(pausePrompt); err != nil {
		return err
	}
	s.clearScreen()
	return nil
}

// ask prompts until validate accepts the trimmed answer
func (s *Shell) ask(label string, validate func(string) error) (string, error) {
	for {
		answer, err := s.prompt(label)
		if err != nil {
			return "", err
		}
		if err := validate(answer); err != nil {
			s.clearScreen()
			s.correct(err)
			continue
		}
		return answer, nil
	}
}

// correct shows a validation error as a sentence
func (s *Shell) correct(err error) {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	fmt.Fprintln(s.out, string(unicode.ToUpper(r))+msg[size:])
}

func (s *Shell) readChoice() (string, error) {
	choice, err := s.prompt(choicePrompt)
	return strings.ToLower(choice), err
}

// prompt writes label and reads one trimmed line. Returns io.EOF when input ends.
func (s *Shell) prompt(label string) (string, error) {
	line, err := s.readLine(label)
	return strings.TrimSpace(line), err
}

// readLine writes label and reads one line of any length without its line
// ending. A final line with no newline is returned before io.EOF.
func (s *Shell) readLine(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *Shell) clearScreen() {
	if s.clear {
		fmt.Fprint(s.out, clearSequence)
	}
}

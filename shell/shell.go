package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/brettbedarf/yshell/config"
	"github.com/brettbedarf/yshell/filesystem"
	"github.com/brettbedarf/yshell/internal/util"
)

// ErrNoSuchCommand is returned for an unknown first word
var ErrNoSuchCommand = errors.New("no such command")

// UsageError reports a command invoked with the wrong arguments
type UsageError struct {
	Cmd   string
	Cause string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Cmd, e.Cause)
}

// ExitStatusInvalid is the status used when exit is given a non-numeric code
const ExitStatusInvalid = 127

// Shell reads command lines and runs them against a namespace.
// Commands are serialized; a Shell may be driven from several goroutines.
type Shell struct {
	mu         sync.Mutex
	cfg        *config.Config
	ns         *filesystem.Namespace
	commands   map[string]CommandFn
	prompt     string
	out        io.Writer
	errOut     io.Writer
	exitStatus int
	exiting    bool
}

// New creates a Shell over ns writing command output to out and
// diagnostics to errOut.
func New(cfg *config.Config, ns *filesystem.Namespace, out, errOut io.Writer) *Shell {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Shell{
		cfg:      cfg,
		ns:       ns,
		commands: builtinCommands(),
		prompt:   cfg.Prompt,
		out:      out,
		errOut:   errOut,
	}
}

// Namespace returns the namespace the shell operates on
func (s *Shell) Namespace() *filesystem.Namespace {
	return s.ns
}

func (s *Shell) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// ExitStatus is the status the process should exit with
func (s *Shell) ExitStatus() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitStatus
}

// Exiting reports whether an exit command has run
func (s *Shell) Exiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exiting
}

// Run prompts for and executes lines from in until end of input or an exit
// command, and returns the exit status.
func (s *Shell) Run(in io.Reader) int {
	logger := util.GetLogger("Shell.Run")
	scanner := bufio.NewScanner(in)

	for !s.Exiting() {
		fmt.Fprint(s.out, s.Prompt()+" ")
		if !scanner.Scan() {
			if s.cfg.Echo {
				fmt.Fprint(s.out, "^D")
			}
			fmt.Fprintln(s.out)
			logger.Debug().Msg("EOF")
			break
		}
		line := scanner.Text()
		if s.cfg.Echo {
			fmt.Fprintln(s.out, line)
		}
		if err := s.Execute(line); err != nil && s.cfg.ExitOnError {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("Failed reading input")
		s.fail(err)
	}
	return s.ExitStatus()
}

// Execute runs a single command line. Blank lines and lines whose first word
// starts with "#" are ignored. A failed command is reported on the error
// writer, sets the exit status to 1 and is returned.
func (s *Shell) Execute(line string) error {
	logger := util.GetLogger("Shell.Execute")

	words := strings.Fields(line)
	if len(words) == 0 || strings.HasPrefix(words[0], "#") {
		return nil
	}
	logger.Debug().Strs("words", words).Msg("Executing")

	fn, ok := s.commands[words[0]]
	if !ok {
		err := fmt.Errorf("%s: %w", words[0], ErrNoSuchCommand)
		s.fail(err)
		return err
	}

	s.mu.Lock()
	err := fn(s, words[1:])
	s.mu.Unlock()
	if err != nil {
		s.fail(err)
	}
	return err
}

func (s *Shell) fail(err error) {
	fmt.Fprintf(s.errOut, "yshell: %v\n", err)
	s.mu.Lock()
	s.exitStatus = 1
	s.mu.Unlock()
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/oantby/homebridge-api/internal/accessory"
	"github.com/oantby/homebridge-api/internal/models"
	"github.com/oantby/homebridge-api/internal/render"
)

type controller interface {
	Sync() ([]*accessory.Accessory, error)
	List() ([]*accessory.Accessory, error)
	Describe(name string) (string, error)
	Set(name string, attribute string, raw string) (models.WriteOutcome, error)
	TurnOn(name string) (models.WriteOutcome, error)
	TurnOff(name string) (models.WriteOutcome, error)
	TurnAllOff() error
	Unreachable() ([]models.AccessoryStatus, error)
}

// Shell is an interactive prompt over the controller.
type Shell struct {
	logger     *log.Logger
	controller controller
	out        io.Writer
}

func NewShell(logger *log.Logger, controller controller, out io.Writer) *Shell {
	return &Shell{
		logger:     logger,
		controller: controller,
		out:        out,
	}
}

// Run reads commands until exit, EOF or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "homie> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s.out = rl.Stdout()
	s.logger.SetOutput(rl.Stderr())
	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			// EOF
			return nil
		}

		if !s.Execute(line) {
			return nil
		}
	}
}

// Execute runs a single command line. It returns false once the shell
// should stop.
func (s *Shell) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "list", "ls":
		s.cmdList(s.controller.List)

	case "refresh":
		s.cmdList(s.controller.Sync)

	case "show":
		s.cmdShow(args)

	case "set":
		s.cmdSet(args)

	case "on":
		s.cmdSwitch(args, "on", s.controller.TurnOn)

	case "off":
		s.cmdSwitch(args, "on", s.controller.TurnOff)

	case "alloff":
		if err := s.controller.TurnAllOff(); err != nil {
			s.printErr(err)
			break
		}
		fmt.Fprintln(s.out, "all accessories off")

	case "unreachable":
		statuses, err := s.controller.Unreachable()
		if err != nil {
			s.printErr(err)
			break
		}
		fmt.Fprintln(s.out, render.Unreachable(statuses))

	case "exit", "quit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return true
}

func (s *Shell) cmdList(list func() ([]*accessory.Accessory, error)) {
	accessories, err := list()
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintln(s.out, render.Accessories(accessories))
}

func (s *Shell) cmdShow(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "usage: show <name>")
		return
	}
	desc, err := s.controller.Describe(strings.Join(args, " "))
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintln(s.out, desc)
}

// set <name...> <attribute> <value>; names may contain spaces
func (s *Shell) cmdSet(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.out, "usage: set <name> <attribute> <value>")
		return
	}
	name := strings.Join(args[:len(args)-2], " ")
	attribute, raw := args[len(args)-2], args[len(args)-1]

	outcome, err := s.controller.Set(name, attribute, raw)
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintln(s.out, render.Outcome(name, attribute, outcome))
}

func (s *Shell) cmdSwitch(args []string, attribute string, fn func(string) (models.WriteOutcome, error)) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "usage: on|off <name>")
		return
	}
	name := strings.Join(args, " ")
	outcome, err := fn(name)
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintln(s.out, render.Outcome(name, attribute, outcome))
}

func (s *Shell) printErr(err error) {
	if errors.Is(err, models.ErrNotFound) {
		fmt.Fprintln(s.out, "no such accessory")
		return
	}
	fmt.Fprintf(s.out, "error: %v\n", err)
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  list                          - List accessories (cached)
  refresh                       - Reload accessories from the hub
  show <name>                   - Describe an accessory
  set <name> <attribute> <val>  - Write an attribute
  on <name> / off <name>        - Switch an accessory
  alloff                        - Switch everything off
  unreachable                   - Accessories whose last write failed
  help                          - Show this help
  exit                          - Leave the shell`)
}

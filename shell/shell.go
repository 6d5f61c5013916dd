// Package shell seats a person at a terminal. ShellPlayer implements
// game.Player by printing the situation and reading answers with readline.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/game"
	"github.com/domino14/tock/move"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")

	// ErrQuit is returned from every Choose method once the person at the
	// terminal asks to leave.
	ErrQuit = errors.New("player left the game")
)

// LineReader is the part of a readline instance the shell needs.
type LineReader interface {
	Readline() (string, error)
}

type prompter interface {
	SetPrompt(string)
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// extractFields splits a line into a command, its positional args and its
// "-name value" options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// ShellPlayer is a game.Player driven by a person at a terminal.
type ShellPlayer struct {
	sync.Mutex
	name string
	l    LineReader
	out  io.Writer
	quit bool
	// what the current prompt is about, for the completer and for "options"
	sit     game.Situation
	options []string
}

// NewShellPlayer sets up readline on the controlling terminal.
func NewShellPlayer(name, historyFile string) (*ShellPlayer, *readline.Instance, error) {
	sp := &ShellPlayer{name: name}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mtock>\033[0m ",
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sp),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, nil, err
	}
	sp.l = l
	sp.out = l.Stderr()
	return sp, l, nil
}

// NewShellPlayerWithIO reads answers from l and writes to out.
func NewShellPlayerWithIO(name string, l LineReader, out io.Writer) *ShellPlayer {
	return &ShellPlayer{name: name, l: l, out: out}
}

func (sp *ShellPlayer) showMessage(msg string) {
	writeln(msg, sp.out)
}

func (sp *ShellPlayer) showError(err error) {
	sp.showMessage("Error: " + err.Error())
}

func (sp *ShellPlayer) setPrompt(p string) {
	if pr, ok := sp.l.(prompter); ok {
		pr.SetPrompt(p)
	}
}

func (sp *ShellPlayer) showOptions() {
	for i, o := range sp.options {
		sp.showMessage(fmt.Sprintf("%3d) %s", i+1, o))
	}
}

func (sp *ShellPlayer) showHand() {
	h := cards.NewHand(sp.sit.Nickname, sp.sit.Hand)
	sp.showMessage(h.String())
}

// readLine reads one trimmed line. Interrupts on an empty line and EOF
// both mean the person wants out.
func (sp *ShellPlayer) readLine(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := sp.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sp.quit = true
				return "", ErrQuit
			}
			continue
		} else if err == io.EOF {
			sp.quit = true
			return "", ErrQuit
		} else if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

// ask shows the numbered options and loops until one is picked. parse gets
// a first look at anything that isn't a shell command or an index; it
// returns -1 if it doesn't understand the line either.
func (sp *ShellPlayer) ask(ctx context.Context, header string, describe func(i int) string,
	parse func(line string) int) (int, error) {

	if sp.quit {
		return 0, ErrQuit
	}
	sp.showMessage(header)
	sp.showOptions()
	sp.setPrompt(fmt.Sprintf("\033[31mtock (%s)>\033[0m ", sp.sit.Color))
	for {
		line, err := sp.readLine(ctx)
		if err != nil {
			return 0, err
		}
		cmd, err := extractFields(line)
		if err == errNoData {
			continue
		} else if err != nil {
			sp.showError(err)
			continue
		}
		if i, ok := sp.index(cmd.cmd); ok && len(cmd.args) == 0 {
			return i, nil
		}
		switch cmd.cmd {
		case "board", "b":
			sp.showMessage(sp.sit.Board.ToDisplayText())
		case "hand", "h":
			sp.showHand()
		case "options", "o":
			sp.showOptions()
		case "help", "?":
			if len(cmd.args) > 0 {
				usageTopic(sp.out, cmd.args[0])
			} else {
				usage(sp.out)
			}
		case "exit", "quit":
			sp.quit = true
			return 0, ErrQuit
		case "describe", "d", "play", "p":
			if len(cmd.args) != 1 {
				sp.showError(fmt.Errorf("%s <n>", cmd.cmd))
				continue
			}
			i, ok := sp.index(cmd.args[0])
			if !ok {
				sp.showError(fmt.Errorf("no option %s", cmd.args[0]))
				continue
			}
			if cmd.cmd == "play" || cmd.cmd == "p" {
				return i, nil
			}
			sp.showMessage(describe(i))
		default:
			if parse != nil {
				if i := parse(line); i >= 0 {
					return i, nil
				}
			}
			msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
			log.Debug().Msg(msg)
			sp.showError(errors.New(msg))
		}
	}
}

func (sp *ShellPlayer) index(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(sp.options) {
		return 0, false
	}
	return n - 1, true
}

func (sp *ShellPlayer) ChooseCard(ctx context.Context, sit game.Situation, hand []cards.Card) (cards.Card, error) {
	sp.Lock()
	defer sp.Unlock()
	sp.sit = sit
	sp.options = make([]string, len(hand))
	for i, c := range hand {
		sp.options[i] = c.String()
	}
	i, err := sp.ask(ctx, "Pick a card to give to your partner:",
		func(i int) string { return "Give " + hand[i].String() + " to your partner." },
		func(line string) int {
			c, err := cards.FromString(line)
			if err != nil {
				return -1
			}
			for i := range hand {
				if hand[i] == c {
					return i
				}
			}
			return -1
		})
	if err != nil {
		return cards.Card{}, err
	}
	return hand[i], nil
}

func (sp *ShellPlayer) chooseFrom(ctx context.Context, header string, sit game.Situation,
	options []move.Move, showTable bool) (move.Move, error) {

	sp.Lock()
	defer sp.Unlock()
	sp.sit = sit
	if showTable && !sp.quit {
		sp.showMessage(sit.Board.ToDisplayText())
		sp.showHand()
	}
	sp.options = make([]string, len(options))
	for i, m := range options {
		sp.options[i] = m.ShortDescription()
	}
	i, err := sp.ask(ctx, header,
		func(i int) string { return options[i].Description(sit.Board) }, nil)
	if err != nil {
		return move.Move{}, err
	}
	return options[i], nil
}

func (sp *ShellPlayer) ChooseMove(ctx context.Context, sit game.Situation, options []move.Move) (move.Move, error) {
	return sp.chooseFrom(ctx, "Your move:", sit, options, true)
}

func (sp *ShellPlayer) ChooseSevenStep(ctx context.Context, sit game.Situation, options []move.Move) (move.Move, error) {
	return sp.chooseFrom(ctx, "Next step of the seven:", sit, options, false)
}

func (sp *ShellPlayer) ConfirmSevenSplit(ctx context.Context, sit game.Situation, plan []move.Move) (bool, error) {
	sp.Lock()
	defer sp.Unlock()
	if sp.quit {
		return false, ErrQuit
	}
	sp.showMessage("Your seven:\n" + move.PlanString(plan))
	sp.setPrompt("\033[31mplay it? (y/n)>\033[0m ")
	for {
		line, err := sp.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "exit", "quit":
			sp.quit = true
			return false, ErrQuit
		case "":
		default:
			sp.showMessage("Please answer y or n.")
		}
	}
}

func (sp *ShellPlayer) Notify(evt game.Event) {
	switch evt.Kind {
	case game.EventDeal, game.EventExchange:
		return
	case game.EventWin:
		sp.showMessage(fmt.Sprintf("Team %d wins!", evt.Team))
	case game.EventFold:
		sp.showMessage(evt.PlayerID + " folds.")
	default:
		if evt.PlayerID != sp.name && evt.Description != "" {
			sp.showMessage(evt.PlayerID + ": " + evt.Description)
		}
	}
}

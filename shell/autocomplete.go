package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter completes commands, help topics and option numbers.
type ShellCompleter struct {
	sp *ShellPlayer
}

func NewShellCompleter(sp *ShellPlayer) *ShellCompleter {
	return &ShellCompleter{sp: sp}
}

var commandNames = []string{
	"board", "hand", "options", "describe", "play", "help", "exit", "quit",
}

var helpTopics = []string{"cards", "seven"}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		switch fields[0] {
		case "help", "?":
			completions = helpTopics
		case "describe", "d", "play", "p":
			// The options are set before the prompt comes up and stay put
			// until it's answered.
			for i := range c.sp.options {
				completions = append(completions, strconv.Itoa(i+1))
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Args []string
}

var commandMetadata = map[string]CommandMetadata{
	"god":  {Args: []string{"on", "off"}},
	"show": {Args: []string{"yaml"}},
	"help": {Args: []string{"play", "hint", "god"}},
}

var commandNames = []string{
	"tray", "cell", "wild", "play", "hint", "save", "god", "edit",
	"shuffle", "show", "msgs", "help", "exit",
}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// an open quote; fall back to simple space splitting
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
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		nargs := len(fields) - 1
		if !endsWithSpace {
			nargs--
		}
		switch {
		case cmdName == "tray" && nargs == 0, cmdName == "wild" && nargs == 0:
			completions = c.slots()
		case nargs == 0:
			completions = commandMetadata[cmdName].Args
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

// slots offers the indexes of tray slots that hold a tile.
func (c *ShellCompleter) slots() []string {
	if c.sc == nil || c.sc.session == nil {
		return nil
	}
	var out []string
	for i, s := range c.sc.session.View().Tray {
		if s.Letter != "" {
			out = append(out, strconv.Itoa(i))
		}
	}
	return out
}

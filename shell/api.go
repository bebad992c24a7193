package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/domino14/xwordclient/presentation"
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

// Message is what the shell prints for the response.
func (r *Response) Message() string {
	if r == nil {
		return ""
	}
	return r.message
}

type handler func(sc *ShellController, cmd *shellcmd) (*Response, error)

var handlers = map[string]handler{
	"tray":    (*ShellController).trayCmd,
	"cell":    (*ShellController).cellCmd,
	"play":    (*ShellController).play,
	"hint":    (*ShellController).hint,
	"save":    (*ShellController).save,
	"god":     (*ShellController).god,
	"wild":    (*ShellController).wild,
	"edit":    (*ShellController).edit,
	"shuffle": (*ShellController).shuffle,
	"show":    (*ShellController).show,
	"msgs":    (*ShellController).msgs,
	"help":    (*ShellController).help,
	"exit":    (*ShellController).exit,
}

var errBusy = errors.New("the engine is busy with the game, try again")

func intArgs(cmd *shellcmd, names ...string) ([]int, error) {
	if len(cmd.args) != len(names) {
		return nil, fmt.Errorf("%s takes %s", cmd.cmd, strings.Join(names, " "))
	}
	out := make([]int, len(names))
	for i, a := range cmd.args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number: %w", names[i], err)
		}
		out[i] = n
	}
	return out, nil
}

// clicked turns a dropped click into an error the user can see.
func clicked(applied bool, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, errBusy
	}
	return nil, nil
}

func (sc *ShellController) trayCmd(cmd *shellcmd) (*Response, error) {
	n, err := intArgs(cmd, "slot")
	if err != nil {
		return nil, err
	}
	return clicked(sc.session.ClickTray(n[0]))
}

func (sc *ShellController) cellCmd(cmd *shellcmd) (*Response, error) {
	n, err := intArgs(cmd, "row", "col")
	if err != nil {
		return nil, err
	}
	return clicked(sc.session.ClickCell(n[0], n[1]))
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	command, err := sc.session.MakePlay()
	if err != nil {
		return nil, err
	}
	if command == "" {
		return msg("no tiles on the board"), nil
	}
	return msg("sent " + command), nil
}

func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if !sc.session.RequestHint() {
		return msg("no hint: needs god mode, an empty set of placed tiles, and no hint already asked for"), nil
	}
	return msg("asked the engine for a hint"), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("save takes a filename")
	}
	if err := sc.session.RequestSave(cmd.args[0]); err != nil {
		return nil, err
	}
	return msg("asked the engine to save to " + cmd.args[0]), nil
}

func (sc *ShellController) god(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(fmt.Sprintf("god mode is %v", onOff(sc.session.GodMode()))), nil
	}
	switch cmd.args[0] {
	case "on":
		sc.session.SetGodMode(true)
	case "off":
		sc.session.SetGodMode(false)
	default:
		return nil, errors.New("god takes on or off")
	}
	return msg("god mode " + cmd.args[0]), nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (sc *ShellController) wild(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("wild takes a slot and a letter")
	}
	slot, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, fmt.Errorf("slot must be a number: %w", err)
	}
	if utf8.RuneCountInString(cmd.args[1]) != 1 {
		return nil, errors.New("give the wildcard a single letter")
	}
	r, _ := utf8.DecodeRuneInString(cmd.args[1])
	return clicked(sc.session.EnterWildcardLetter(slot, r))
}

func (sc *ShellController) edit(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("edit takes the letters to type")
	}
	return nil, sc.session.EditTray(cmd.args[0])
}

func (sc *ShellController) shuffle(cmd *shellcmd) (*Response, error) {
	return nil, sc.session.Shuffle()
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	v := sc.session.View()
	if len(cmd.args) > 0 {
		if cmd.args[0] != "yaml" {
			return nil, errors.New("show takes nothing or yaml")
		}
		out, err := presentation.DumpYAML(v)
		if err != nil {
			return nil, err
		}
		return msg(strings.TrimRight(out, "\n")), nil
	}
	if sc.board == nil {
		return msg(sc.session.ToDisplayText()), nil
	}
	sc.board.Render(v)
	return msg(sc.board.String()), nil
}

func (sc *ShellController) msgs(cmd *shellcmd) (*Response, error) {
	ms := sc.session.Messages()
	if len(ms) == 0 {
		return msg("no messages"), nil
	}
	return msg(strings.Join(ms, "\n")), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage()), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}

func (sc *ShellController) exit(cmd *shellcmd) (*Response, error) {
	return nil, errExit
}

// Package shell is the keyboard front end of the client. Every command
// maps onto one user interaction of the session.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/xwordclient/common"
	"github.com/domino14/xwordclient/config"
	"github.com/domino14/xwordclient/game"
	"github.com/domino14/xwordclient/presentation"
	"github.com/domino14/xwordclient/protocol"
)

var (
	errNoData = errors.New("no data in line")
	errExit   = errors.New("exit")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	session *game.Session
	adapter *protocol.Adapter
	board   *presentation.TextBoard
}

type shellcmd struct {
	cmd  string
	args []string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController sets up a readline prompt in front of the session.
// tb may be nil, in which case `show` falls back to the session's own
// text rendering.
func NewShellController(cfg *config.Config, a *protocol.Adapter,
	tb *presentation.TextBoard) (*ShellController, error) {

	sc := &ShellController{
		session: a.Session(),
		adapter: a,
		board:   tb,
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mxword>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc, nil
}

// newController builds a controller without a terminal. Output goes to w.
func newController(a *protocol.Adapter, tb *presentation.TextBoard, w io.Writer) *ShellController {
	return &ShellController{
		out:     w,
		session: a.Session(),
		adapter: a,
		board:   tb,
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	return &shellcmd{cmd: strings.ToLower(fields[0]), args: fields[1:]}, nil
}

// Execute runs one command line.
func (sc *ShellController) Execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("cmd", cmd.cmd).Strs("args", cmd.args).Msg("shell")
	h, ok := handlers[cmd.cmd]
	if !ok {
		return nil, errors.New("command not recognized: " + cmd.cmd)
	}
	return h(sc, cmd)
}

// Loop reads commands until the user exits, the context ends, or the
// session is terminated. Leaving the loop sends SIGINT on sig.
func (sc *ShellController) Loop(ctx context.Context, sig chan os.Signal) error {
	defer sc.l.Close()
	defer func() {
		select {
		case sig <- syscall.SIGINT:
		default:
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
		case <-sc.adapter.Done():
		}
		sc.l.Close()
	}()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err != nil {
			// io.EOF, or the instance was closed under us
			break
		}
		resp, err := sc.Execute(strings.TrimSpace(line))
		if errors.Is(err, errNoData) {
			continue
		}
		if errors.Is(err, errExit) {
			break
		}
		if err != nil {
			if errors.Is(err, common.ErrIllegalState) {
				log.Error().Err(err).Msg("session")
			}
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
	if err := sc.adapter.Err(); err != nil && !errors.Is(err, protocol.ErrTerminated) {
		return err
	}
	return nil
}

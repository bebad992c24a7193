package shell

import (
	"context"

	"github.com/domino14/xwordclient/game"
)

// Watch redraws the board for every view that arrives on views, until the
// channel closes or the context ends. With no text board it prints the
// session's plain rendering.
func (sc *ShellController) Watch(ctx context.Context, views <-chan game.View) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-views:
			if !ok {
				return nil
			}
			if sc.board == nil {
				sc.showMessage(sc.session.ToDisplayText())
				continue
			}
			sc.board.Render(v)
			sc.showMessage(sc.board.String())
		}
	}
}

package board

var (
	// CrosswordGameBoard is a board for a fun Crossword Game, featuring lots
	// of wingos and blonks.
	CrosswordGameBoard []string
)

func init() {
	CrosswordGameBoard = []string{
		`=  '   =   '  =`,
		` -   "   "   - `,
		`  -   ' '   -  `,
		`'  -   '   -  '`,
		`    -     -    `,
		` "   "   "   " `,
		`  '   ' '   '  `,
		`=  '   -   '  =`,
		`  '   ' '   '  `,
		` "   "   "   " `,
		`    -     -    `,
		`'  -   '   -  '`,
		`  -   ' '   -  `,
		` -   "   "   - `,
		`=  '   =   '  =`,
	}
}

// LayoutFromDesc turns a board description (one string per row, bonus runes
// per column) into the board-init placements the engine would send.
func LayoutFromDesc(desc []string) []Placement {
	layout := []Placement{}
	for row, s := range desc {
		col := 0
		for _, c := range s {
			if code := BonusSquare(c).Wire(); code != 0 {
				layout = append(layout, Placement{Row: row, Col: col, Letter: code})
			}
			col++
		}
	}
	return layout
}

// StandardLayout is the bonus layout of CrosswordGameBoard.
func StandardLayout() []Placement {
	return LayoutFromDesc(CrosswordGameBoard)
}

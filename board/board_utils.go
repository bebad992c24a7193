package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board with engine coordinates, rows down the
// side and columns across the top.
func (g *GameBoard) ToDisplayText() string {
	var str strings.Builder
	n := g.Dim()
	str.WriteString("   ")
	for col := 0; col < n; col++ {
		str.WriteString(fmt.Sprintf("%-2d", col%100))
	}
	str.WriteString("\n   " + strings.Repeat("-", n*2) + "\n")
	for row := 0; row < n; row++ {
		str.WriteString(fmt.Sprintf("%2d|", row))
		for col := 0; col < n; col++ {
			str.WriteString(g.squares[col][row].DisplayString() + " ")
		}
		str.WriteString("|\n")
	}
	str.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	return "\n" + str.String()
}

package game

import (
	"fmt"
	"strings"
)

// ExportPGN renders the game's tag roster and movetext as a PGN string, so
// a recorded game can be handed back in a format every chess client
// already reads. Only export exists; there is no PGN parser.
func (g *Game) ExportPGN() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[Event \"CheckAI game\"]\n")
	fmt.Fprintf(&sb, "[Site \"?\"]\n")
	fmt.Fprintf(&sb, "[Date \"%s\"]\n", g.CreatedAt.Format("2006.01.02"))
	fmt.Fprintf(&sb, "[Round \"?\"]\n")
	fmt.Fprintf(&sb, "[White \"?\"]\n")
	fmt.Fprintf(&sb, "[Black \"?\"]\n")
	fmt.Fprintf(&sb, "[Result \"%s\"]\n", pgnResult(g.terminal))
	fmt.Fprintf(&sb, "[GameId \"%s\"]\n", g.ID)
	if g.terminal != nil {
		fmt.Fprintf(&sb, "[Termination \"%s\"]\n", g.terminal.Reason)
	}
	sb.WriteByte('\n')

	for i, h := range g.history {
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d. ", h.MoveNumber)
		}
		sb.WriteString(h.SAN)
		sb.WriteByte(' ')
	}
	sb.WriteString(pgnResult(g.terminal))
	return sb.String()
}

func pgnResult(o *Outcome) string {
	if o == nil {
		return "*"
	}
	switch o.Result {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

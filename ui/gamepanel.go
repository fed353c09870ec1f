package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"goban-replay/sgf"
	"goban-replay/types"
)

// emphasisNames labels move and position annotations, in display order.
var emphasisNames = []struct {
	ident  string
	normal string
	strong string
}{
	{"TE", "Tesuji", "Brilliant tesuji"},
	{"BM", "Bad move", "Very bad move"},
	{"DO", "Doubtful move", ""},
	{"IT", "Interesting move", ""},
	{"DM", "Even position", "Very even position"},
	{"GB", "Good for black", "Very good for black"},
	{"GW", "Good for white", "Very good for white"},
	{"UC", "Unclear position", "Very unclear position"},
	{"HO", "Hotspot", "Major hotspot"},
}

// AnnotationPanel displays the record's game info and the current node's
// annotations alongside the board.
type AnnotationPanel struct {
	box *tview.TextView
}

// NewAnnotationPanel creates an empty annotation panel.
func NewAnnotationPanel() *AnnotationPanel {
	panel := &AnnotationPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetWrap(true)
	panel.box.SetWordWrap(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *AnnotationPanel) Box() *tview.TextView {
	return p.box
}

// Show replaces the panel text with info, node and board.
func (p *AnnotationPanel) Show(info sgf.GameInfo, node sgf.Node, board types.BoardState) {
	p.box.SetText(annotationText(info, node, board))
}

// annotationText renders the panel contents with tview color tags.
func annotationText(info sgf.GameInfo, node sgf.Node, board types.BoardState) string {
	var b strings.Builder

	b.WriteString("[white::b]Black[-:-:-]")
	fmt.Fprintf(&b, "  [dimgray]captures %d[-]\n", board.BlackCaptures)
	b.WriteString(playerLine(info.PlayerBlack, info.BlackRank))
	b.WriteString("[white::b]White[-:-:-]")
	fmt.Fprintf(&b, "  [dimgray]captures %d[-]\n", board.WhiteCaptures)
	b.WriteString(playerLine(info.PlayerWhite, info.WhiteRank))
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")

	if info.GameName != "" {
		fmt.Fprintf(&b, "[white::b]%s[-:-:-]\n", tview.Escape(info.GameName))
	}
	if info.Event != "" {
		fmt.Fprintf(&b, "%s\n", tview.Escape(info.Event))
	}
	fmt.Fprintf(&b, "[white]Komi:[-:-:-] %g\n", info.Komi)
	if info.Handicap > 0 {
		fmt.Fprintf(&b, "[white]Handicap:[-:-:-] %d\n", info.Handicap)
	}
	if strings.TrimSpace(info.Result.Raw) != "" {
		fmt.Fprintf(&b, "[white]Result:[-:-:-] %s\n", tview.Escape(info.Result.String()))
	}
	fmt.Fprintf(&b, "[white]Move:[-:-:-] %d", board.MoveNumber)
	if board.LastMove.Valid() {
		fmt.Fprintf(&b, " (%s)", PosLabel(board.LastMove, board.Width(), board.Height()))
	}
	b.WriteString("\n")

	var notes []string
	if p, ok := node.Property("N"); ok {
		notes = append(notes, "[white::b]"+tview.Escape(p.(sgf.Text).Value)+"[-:-:-]")
	}
	for _, e := range emphasisNames {
		p, ok := node.Property(e.ident)
		if !ok {
			continue
		}
		label := e.normal
		if em, ok := p.(sgf.Emphasis); ok && em.Value == sgf.DoubleEmphasized && e.strong != "" {
			label = e.strong
		}
		notes = append(notes, "[::i]"+label+"[-:-:-]")
	}
	if p, ok := node.Property("C"); ok {
		notes = append(notes, tview.Escape(strings.TrimSpace(p.(sgf.Text).Value)))
	}
	if len(notes) > 0 {
		b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
		b.WriteString(strings.Join(notes, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func playerLine(name, rank string) string {
	if name == "" {
		name = "?"
	}
	if rank != "" {
		return fmt.Sprintf("%s (%s)\n", tview.Escape(name), tview.Escape(rank))
	}
	return tview.Escape(name) + "\n"
}

// CreateReplayLayout creates the main layout: the board with the annotation
// panel to its right, or the board alone when panel is nil.
func CreateReplayLayout(board *BoardView, panel *AnnotationPanel, status *tview.TextView) *tview.Flex {
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, false) // Board (flexible, takes remaining space)
	if panel != nil {
		boardRow.AddItem(panel.Box(), 30, 0, false) // Info panel (fixed width)
	}

	// Main vertical flex: board area on top, compact status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, false)
	mainFlex.AddItem(status, 1, 0, false)

	return mainFlex
}

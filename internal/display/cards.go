package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-player/internal/deck"
)

// Styles colours suits the way the table display does
type Styles struct {
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
}

// NewStyles creates card styles bound to renderer
func NewStyles(renderer *lipgloss.Renderer) Styles {
	return Styles{
		CardRed: renderer.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: renderer.NewStyle().
			Bold(true),
	}
}

// PlainRenderer returns a renderer that never emits colours, for log files
// and tests.
func PlainRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
}

// CardsFormatter renders cards either inline ("[A of ♠] [10 of ♥]") or as
// boxed cards drawn over seven lines.
type CardsFormatter struct {
	compact bool
	styles  Styles
}

// NewCardsFormatter creates a formatter. A nil renderer uses lipgloss'
// default, which detects the terminal's colour support.
func NewCardsFormatter(compact bool, renderer *lipgloss.Renderer) *CardsFormatter {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return &CardsFormatter{compact: compact, styles: NewStyles(renderer)}
}

// Format renders cards in the formatter's layout
func (f *CardsFormatter) Format(cards []deck.Card) string {
	if f.compact {
		return f.Compact(cards)
	}
	return f.Visual(cards)
}

// Compact renders cards on a single line
func (f *CardsFormatter) Compact(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = fmt.Sprintf("[%s of %s]", card.Rank, f.suit(card))
	}
	return strings.Join(parts, " ")
}

// Visual renders cards side by side as ASCII boxes
func (f *CardsFormatter) Visual(cards []deck.Card) string {
	var lines [7]strings.Builder
	for _, card := range cards {
		rank := card.Rank.String()
		lines[0].WriteString("+-------+")
		fmt.Fprintf(&lines[1], "| %-2s    |", rank)
		lines[2].WriteString("|       |")
		fmt.Fprintf(&lines[3], "|   %s   |", f.suit(card))
		lines[4].WriteString("|       |")
		fmt.Fprintf(&lines[5], "|    %2s |", rank)
		lines[6].WriteString("+-------+")
	}

	out := make([]string, len(lines))
	for i := range lines {
		out[i] = lines[i].String()
	}
	return strings.Join(out, "\n")
}

func (f *CardsFormatter) suit(card deck.Card) string {
	if card.IsRed() {
		return f.styles.CardRed.Render(card.Suit.String())
	}
	return f.styles.CardBlack.Render(card.Suit.String())
}

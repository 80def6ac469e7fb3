package main

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-player/internal/deck"
	"github.com/lox/holdem-player/internal/display"
	"github.com/lox/holdem-player/internal/evaluator"
	"github.com/lox/holdem-player/internal/randutil"
)

type CLI struct {
	Hands         []string `arg:"" help:"Player hands in format 'AcKd QhJs' (space separated, quoted)" required:"true"`
	Board         string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Possibilities bool     `short:"p" help:"Show detailed hand type probabilities"`
	Iterations    int      `short:"i" help:"Number of Monte Carlo iterations" default:"10000"`
	Simulations   int      `short:"s" help:"Virtual boards per hand strength estimate" default:"100"`
	Seed          int64    `help:"Random seed for reproducible results (0 picks one)"`
	NoColor       bool     `help:"Disable coloured output"`
}

type styles struct {
	header   lipgloss.Style
	hand     lipgloss.Style
	win      lipgloss.Style
	tie      lipgloss.Style
	strength lipgloss.Style
	category lipgloss.Style
	percent  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		hand:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		win:      r.NewStyle().Foreground(lipgloss.Color("10")),
		tie:      r.NewStyle().Foreground(lipgloss.Color("11")),
		strength: r.NewStyle().Foreground(lipgloss.Color("13")),
		category: r.NewStyle().Foreground(lipgloss.Color("12")),
		percent:  r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("Estimate win odds and hand strength of hold'em hands."))

	hands, err := parseHands(cli.Hands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hands: %v\n", err)
		ctx.Exit(1)
	}

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
			ctx.Exit(1)
		}
		if len(board) > evaluator.BoardSize {
			fmt.Fprintf(os.Stderr, "Board cannot have more than %d cards\n", evaluator.BoardSize)
			ctx.Exit(1)
		}
	}

	if err := validateNoDuplicates(hands, board); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}

	renderer := lipgloss.DefaultRenderer()
	if cli.NoColor {
		renderer = display.PlainRenderer()
	}

	rng := randutil.New(cli.Seed)
	detector := evaluator.NewDetector(evaluator.Holdem)

	startTime := time.Now()
	results := calculateMonteCarlo(detector, hands, board, cli.Iterations, rng)

	strengths := evaluator.NewHandEvaluator(detector,
		evaluator.WithSimulations(cli.Simulations),
		evaluator.WithRand(rng))
	for i := range results {
		results[i].Strength, err = strengths.HandStrength(results[i].Hand, board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error estimating hand %d: %v\n", i+1, err)
			ctx.Exit(1)
		}
	}
	duration := time.Since(startTime)

	displayResults(os.Stdout, newStyles(renderer), results, board, cli.Possibilities, cli.Iterations, duration)
}

type PlayerResult struct {
	Hand          []deck.Card
	Wins          int
	Ties          int
	Total         int
	Strength      float64
	Possibilities map[evaluator.Category]int
}

func parseHands(handStrings []string) ([][]deck.Card, error) {
	var hands [][]deck.Card
	for i, handStr := range handStrings {
		hand, err := deck.ParseCards(strings.TrimSpace(handStr))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func validateNoDuplicates(hands [][]deck.Card, board []deck.Card) error {
	groups := append([][]deck.Card{board}, hands...)
	if deck.HasDuplicates(groups...) {
		return fmt.Errorf("duplicate cards between hands and board")
	}
	return nil
}

// calculateMonteCarlo deals the rest of the board iterations times and
// records who holds the best hand each time.
func calculateMonteCarlo(detector *evaluator.Detector, hands [][]deck.Card, board []deck.Card, iterations int, rng *rand.Rand) []PlayerResult {
	results := make([]PlayerResult, len(hands))
	for i := range results {
		results[i].Hand = hands[i]
		results[i].Total = iterations
		results[i].Possibilities = make(map[evaluator.Category]int)
	}

	available := deck.Remaining(append([][]deck.Card{board}, hands...)...)
	needed := min(evaluator.BoardSize-len(board), len(available))

	fullBoard := make([]deck.Card, 0, evaluator.BoardSize)
	scores := make([]evaluator.Score, len(hands))
	for range iterations {
		rng.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})
		fullBoard = append(append(fullBoard[:0], board...), available[:needed]...)

		best := 0
		for i, hand := range hands {
			cards := append(append(make([]deck.Card, 0, 7), hand...), fullBoard...)
			scores[i] = detector.Score(cards)
			results[i].Possibilities[scores[i].Category]++
			if scores[i].Compare(scores[best]) > 0 {
				best = i
			}
		}

		winners := 0
		for i := range scores {
			if scores[i].Compare(scores[best]) == 0 {
				winners++
			}
		}
		for i := range scores {
			if scores[i].Compare(scores[best]) != 0 {
				continue
			}
			if winners == 1 {
				results[i].Wins++
			} else {
				results[i].Ties++
			}
		}
	}

	return results
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func displayResults(out io.Writer, st styles, results []PlayerResult, board []deck.Card, showPossibilities bool, iterations int, duration time.Duration) {
	if len(board) > 0 {
		fmt.Fprintf(out, "%s\n", st.header.Render("board"))
		fmt.Fprintf(out, "%s\n\n", formatCards(board))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		st.header.Render("hand"),
		st.header.Render("win"),
		st.header.Render("tie"),
		st.header.Render("strength"))

	for _, result := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			st.hand.Render(formatCards(result.Hand)),
			st.win.Render(fmt.Sprintf("%.1f%%", percent(result.Wins, result.Total))),
			st.tie.Render(fmt.Sprintf("%.1f%%", percent(result.Ties, result.Total))),
			st.strength.Render(fmt.Sprintf("%.3f", result.Strength)))
	}
	_ = w.Flush()

	if showPossibilities && len(results) > 0 {
		fmt.Fprintln(out)
		displayPossibilities(out, st, results)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d iterations in %v\n", iterations, duration.Truncate(time.Millisecond))
}

// categoryOrder lists hold'em categories strongest first
var categoryOrder = []evaluator.Category{
	evaluator.StraightFlush,
	evaluator.Quads,
	evaluator.FullHouse,
	evaluator.Flush,
	evaluator.Straight,
	evaluator.Trips,
	evaluator.TwoPair,
	evaluator.Pair,
	evaluator.NoPair,
}

func displayPossibilities(out io.Writer, st styles, results []PlayerResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s", st.category.Render("hand"))
	for _, result := range results {
		fmt.Fprintf(w, "\t%s", st.hand.Render(formatCards(result.Hand)))
	}
	fmt.Fprintln(w)

	for _, category := range categoryOrder {
		seen := false
		for _, result := range results {
			if result.Possibilities[category] > 0 {
				seen = true
				break
			}
		}
		if !seen {
			continue
		}

		fmt.Fprintf(w, "%s", st.category.Render(category.String()))
		for _, result := range results {
			if count := result.Possibilities[category]; count > 0 {
				fmt.Fprintf(w, "\t%s", st.percent.Render(fmt.Sprintf("%.1f%%", percent(count, result.Total))))
			} else {
				fmt.Fprintf(w, "\t%s", st.percent.Render("."))
			}
		}
		fmt.Fprintln(w)
	}

	_ = w.Flush()
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

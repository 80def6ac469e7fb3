package strategy

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-player/internal/display"
	"github.com/lox/holdem-player/internal/evaluator"
	"github.com/lox/holdem-player/internal/randutil"
)

const (
	NameRandom = "random"
	NameSmart  = "smart"
)

// Names lists the strategies New can build
var Names = []string{NameRandom, NameSmart}

type options struct {
	rng         *rand.Rand
	logger      *log.Logger
	simulations int
	formatter   *display.CardsFormatter
}

// Option configures a strategy built by New
type Option func(*options)

// WithRand sets the random source shared by the strategy and its evaluator.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger sets the logger the strategy reports its reasoning to.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSimulations sets the number of virtual boards the smart strategy
// samples per decision.
func WithSimulations(n int) Option {
	return func(o *options) { o.simulations = n }
}

// WithFormatter sets how the smart strategy draws cards in its log.
func WithFormatter(formatter *display.CardsFormatter) Option {
	return func(o *options) { o.formatter = formatter }
}

// New builds the named strategy. The random preset calls far more often than
// it raises.
func New(name string, opts ...Option) (Strategy, error) {
	o := options{simulations: evaluator.DefaultSimulations}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = randutil.New(0)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	switch name {
	case NameRandom:
		random, err := NewRandom(o.rng, 2, 7, 1)
		if err != nil {
			return nil, err
		}
		return random, nil
	case NameSmart:
		hands := evaluator.NewHandEvaluator(
			evaluator.NewDetector(evaluator.Holdem),
			evaluator.WithSimulations(o.simulations),
			evaluator.WithRand(o.rng),
		)
		return NewSmart(hands, o.rng, o.logger, o.formatter), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

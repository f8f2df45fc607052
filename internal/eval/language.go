package eval

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chriserin/pegast/internal/peg"
)

// Outcome classifies a pipeline run.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeParseError Outcome = "parse_error"
	OutcomeBuildError Outcome = "build_error"
)

// Observer is notified after every run.
type Observer interface {
	ObserveRun(language string, outcome Outcome, elapsed time.Duration)
}

// Language ties a built grammar to the registry constructor for its actions.
type Language[ID ~int, N any] struct {
	name        string
	grammar     *peg.Rule
	newRegistry func() (*Registry[ID, N], error)
	logger      *slog.Logger
	observer    Observer
}

// NewLanguage checks once that newRegistry produces a sealed registry
// covering every action id the grammar attaches. A mismatch is a programmer
// error and is reported here rather than during parsing.
func NewLanguage[ID ~int, N any](name string, grammar *peg.Rule, grammarActions []int, newRegistry func() (*Registry[ID, N], error)) (*Language[ID, N], error) {
	reg, err := newRegistry()
	if err != nil {
		return nil, fmt.Errorf("language %s: building registry: %w", name, err)
	}
	if !reg.sealed {
		if err := reg.Seal(); err != nil {
			return nil, fmt.Errorf("language %s: %w", name, err)
		}
	}
	if err := reg.Check(grammarActions); err != nil {
		return nil, fmt.Errorf("language %s: %w", name, err)
	}
	return &Language[ID, N]{
		name:        name,
		grammar:     grammar,
		newRegistry: newRegistry,
		logger:      slog.New(slog.DiscardHandler),
	}, nil
}

func (l *Language[ID, N]) Name() string { return l.name }

// WithLogger returns a copy of l that logs each run to logger.
func (l *Language[ID, N]) WithLogger(logger *slog.Logger) *Language[ID, N] {
	c := *l
	if logger != nil {
		c.logger = logger
	}
	return &c
}

// WithObserver returns a copy of l that reports each run to o.
func (l *Language[ID, N]) WithObserver(o Observer) *Language[ID, N] {
	c := *l
	c.observer = o
	return &c
}

// Run parses input and evaluates the parse tree with a fresh registry. user
// is passed to every action.
func (l *Language[ID, N]) Run(input string, user any) *Result[N] {
	start := time.Now()
	res := l.run(input, user)
	res.Elapsed = time.Since(start)

	outcome := res.Outcome()
	if l.observer != nil {
		l.observer.ObserveRun(l.name, outcome, res.Elapsed)
	}
	if err := res.Err(); err != nil {
		l.logger.Warn("parse failed", "language", l.name, "outcome", string(outcome), "error", err)
	} else {
		l.logger.Debug("parsed", "language", l.name, "bytes", len(input), "elapsed", res.Elapsed)
	}
	return res
}

func (l *Language[ID, N]) run(input string, user any) *Result[N] {
	res := &Result[N]{}

	tree, err := peg.Parse(l.grammar, input)
	if err != nil {
		var pe *peg.ParseError
		if !errors.As(err, &pe) {
			pe = &peg.ParseError{Message: err.Error()}
		}
		res.ParseErr = pe
		return res
	}

	reg, err := l.newRegistry()
	if err == nil && !reg.sealed {
		err = reg.Seal()
	}
	if err != nil {
		res.BuildErr = newBuildError(-1, "building registry: %v", err)
		return res
	}

	root, abandoned, err := reg.Evaluate(tree, user)
	if err != nil {
		var be *BuildError
		if !errors.As(err, &be) {
			be = newBuildError(-1, "%v", err)
		}
		res.BuildErr = be
		res.abandoned = abandoned
		res.free = reg.Free
		return res
	}
	res.Root = root
	return res
}

// Result is the outcome of one Run. At most one of ParseErr and BuildErr is
// set; Root is only valid when both are nil.
type Result[N any] struct {
	Root     N
	ParseErr *peg.ParseError
	BuildErr *BuildError
	Elapsed  time.Duration

	abandoned []N
	free      func(N)
}

func (r *Result[N]) OK() bool {
	return r.ParseErr == nil && r.BuildErr == nil
}

// Err returns the parse-phase error if parsing failed, else the AST-phase
// error, else nil.
func (r *Result[N]) Err() error {
	if r.ParseErr != nil {
		return r.ParseErr
	}
	if r.BuildErr != nil {
		return r.BuildErr
	}
	return nil
}

func (r *Result[N]) Outcome() Outcome {
	switch {
	case r.ParseErr != nil:
		return OutcomeParseError
	case r.BuildErr != nil:
		return OutcomeBuildError
	}
	return OutcomeOK
}

// Abandoned reports how many partial results are waiting for Cleanup.
func (r *Result[N]) Abandoned() int { return len(r.abandoned) }

// Cleanup frees every partial result left by a failed evaluation. It is safe
// to call more than once and on successful results, where it does nothing.
func (r *Result[N]) Cleanup() {
	for _, n := range r.abandoned {
		r.free(n)
	}
	r.abandoned = nil
}

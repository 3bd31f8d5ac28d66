package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/abhisek/pbi/internal/assessment"
	assessmentscreen "github.com/abhisek/pbi/internal/screens/assessment"
	"github.com/abhisek/pbi/internal/screens/result"
	"github.com/abhisek/pbi/internal/screen"
	"github.com/abhisek/pbi/internal/store"
)

// recordTimeout bounds the synchronous save of a finished session.
const recordTimeout = 5 * time.Second

// sessionFactory builds assessment sessions wired to the store and export.
type sessionFactory struct {
	ctx         context.Context
	opts        Options
	completions *atomic.Int64
}

// newSession starts a fresh session at the intro step.
func (f *sessionFactory) newSession() screen.Screen {
	state := assessment.New(f.opts.Catalog, assessment.OnComplete(f.complete))
	f.opts.Logger.Debug("session started", "session", state.SessionID())
	return assessmentscreen.New(state, f.completions.Load(), f.resultScreen)
}

func (f *sessionFactory) resultScreen(state *assessment.State) screen.Screen {
	return result.New(state, f.newSession)
}

// complete persists a finished session and hands it to the exporter. It
// runs once per session; failures are logged and never reach the screen.
func (f *sessionFactory) complete(c assessment.Completion) {
	logger := f.opts.Logger.With("session", c.SessionID)
	logger.Info("assessment completed", "level", c.Assessment.Level.Name)

	switch {
	case f.opts.Results != nil:
		ctx, cancel := context.WithTimeout(f.ctx, recordTimeout)
		defer cancel()

		r := &store.Result{
			SessionID:    c.SessionID,
			CompletedAt:  c.CompletedAt,
			Scores:       c.Assessment.Scores,
			Level:        c.Assessment.Level.Name,
			Answers:      c.Answers,
			Demographics: c.Demographics,
		}
		if err := f.opts.Results.Record(ctx, r); err != nil {
			logger.Error("record result", "err", err)
		} else {
			f.completions.Store(r.Sequence)
		}

	case f.opts.Counter != nil:
		// Recording a result bumps the counter itself; without a result
		// repo the count still advances.
		ctx, cancel := context.WithTimeout(f.ctx, recordTimeout)
		defer cancel()

		n, err := f.opts.Counter.Increment(ctx)
		if err != nil {
			logger.Error("count completion", "err", err)
		} else {
			f.completions.Store(n)
		}
	}

	if f.opts.Dispatcher != nil {
		f.opts.Dispatcher.Dispatch(c.SessionID, c.Answers, c.Demographics)
	}
}

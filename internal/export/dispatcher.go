package export

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/scoring"
)

// Dispatcher sends completed assessments in the background. Failures are
// logged and never reach the caller.
type Dispatcher struct {
	cat     *catalog.Catalog
	sender  Sender
	logger  *log.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

// NewDispatcher creates a dispatcher. timeout bounds a single submission
// including retries; zero means no bound.
func NewDispatcher(cat *catalog.Catalog, sender Sender, logger *log.Logger, timeout time.Duration) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		cat:     cat,
		sender:  sender,
		logger:  logger,
		timeout: timeout,
	}
}

// Dispatch starts an asynchronous export and returns immediately.
// Incomplete answer maps are skipped.
func (d *Dispatcher) Dispatch(sessionID string, answers scoring.Answers, demo demographic.Record) {
	logger := d.logger.With("session", sessionID)

	if v := Validate(d.cat, answers); !v.IsComplete {
		logger.Warn("skipping export of incomplete assessment",
			"answered", v.AnsweredQuestions, "total", v.TotalQuestions)
		return
	}
	if d.sender == nil || !d.sender.Configured() {
		logger.Warn("export endpoint not configured, skipping")
		return
	}

	rec := BuildRecord(d.cat, answers, demo)
	if err := ValidateRecord(d.cat, rec); err != nil {
		logger.Error("export record rejected", "err", err)
		return
	}
	p := BuildPayload(d.cat, answers, demo, time.Now())
	logger.Debug("export payload",
		"range", p.Range,
		"timestamp", p.Timestamp,
		"answered", p.RawData.AnsweredQuestions,
		"total", p.RawData.TotalQuestions,
		"profile_fields", p.RawData.DemographicFieldsProvided)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx := context.Background()
		if d.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.timeout)
			defer cancel()
		}

		start := time.Now()
		err := d.sender.Send(ctx, rec)
		switch {
		case err == nil:
			logger.Info("assessment exported",
				"profile_fields", demo.Provided(), "duration", time.Since(start))
		case errors.Is(err, ErrNotConfigured):
			logger.Warn("export endpoint not configured")
		default:
			logger.Error("assessment export failed", "err", err)
		}
	}()
}

// Wait blocks until in-flight exports finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

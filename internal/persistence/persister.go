package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code.cloudfoundry.org/lager/v3"
	backoff "github.com/cenkalti/backoff/v4"
)

// Target names where a record ended up
type Target string

const (
	TargetRemote Target = "remote"
	TargetLocal  Target = "local"
	TargetNone   Target = "none"
)

// Outcome is the terminal result of a persistence attempt
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Target  Target `json:"target"`
}

// Sink appends records to one storage backend
type Sink interface {
	Name() string
	Append(ctx context.Context, rec *Record) error
}

// Persister stores a record and reports where it went
type Persister interface {
	Persist(ctx context.Context, rec *Record) Outcome
}

// ErrNoSink is returned when a Fallback has neither a remote nor a local sink.
var ErrNoSink = errors.New("no persistence sink configured")

// Fallback writes to a remote sink with retries, then to a local sink.
type Fallback struct {
	remote       Sink
	local        Sink
	logger       lager.Logger
	buildBackoff func() backoff.BackOff

	// OnOutcome, when set, is called after every Persist.
	OnOutcome func(Outcome)
}

// NewFallback creates a Fallback. Either sink may be nil. A nil factory retries the
// remote sink with exponential backoff for at most maxTries attempts.
func NewFallback(logger lager.Logger, remote, local Sink, maxTries uint64, factory func() backoff.BackOff) *Fallback {
	if factory == nil {
		factory = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			if maxTries == 0 {
				return backoff.WithMaxRetries(b, 0)
			}
			return backoff.WithMaxRetries(b, maxTries-1)
		}
	}
	return &Fallback{
		remote:       remote,
		local:        local,
		logger:       logger.Session("persistence"),
		buildBackoff: factory,
	}
}

// Persist tries the remote sink first and falls back to the local sink. It never
// returns an error: failure is reported in the Outcome.
func (f *Fallback) Persist(ctx context.Context, rec *Record) Outcome {
	out := f.persist(ctx, rec)
	if f.OnOutcome != nil {
		f.OnOutcome(out)
	}
	return out
}

func (f *Fallback) persist(ctx context.Context, rec *Record) Outcome {
	logger := f.logger.Session("persist", lager.Data{"record": rec.ID.String()})

	if f.remote == nil && f.local == nil {
		logger.Error("no-sink", ErrNoSink)
		return Outcome{Success: false, Message: ErrNoSink.Error(), Target: TargetNone}
	}

	var remoteErr error
	if f.remote != nil {
		attempt := 0
		remoteErr = backoff.Retry(func() error {
			attempt++
			err := f.remote.Append(ctx, rec)
			if err != nil {
				logger.Info("remote-attempt-failed", lager.Data{"sink": f.remote.Name(), "attempt": attempt, "error": err.Error()})
			}
			return err
		}, backoff.WithContext(f.buildBackoff(), ctx))
		if remoteErr == nil {
			logger.Info("saved", lager.Data{"sink": f.remote.Name()})
			return Outcome{Success: true, Message: fmt.Sprintf("Saved to %s", f.remote.Name()), Target: TargetRemote}
		}
		logger.Error("remote-failed", remoteErr, lager.Data{"sink": f.remote.Name()})
	}

	if f.local == nil {
		return Outcome{Success: false, Message: fmt.Sprintf("Could not save results: %v", remoteErr), Target: TargetNone}
	}

	if err := f.local.Append(ctx, rec); err != nil {
		logger.Error("local-failed", err, lager.Data{"sink": f.local.Name()})
		if remoteErr != nil {
			err = fmt.Errorf("%w (remote: %v)", err, remoteErr)
		}
		return Outcome{Success: false, Message: fmt.Sprintf("Could not save results: %v", err), Target: TargetNone}
	}

	logger.Info("saved-locally", lager.Data{"sink": f.local.Name()})
	if f.remote == nil {
		return Outcome{Success: true, Message: fmt.Sprintf("Saved to %s", f.local.Name()), Target: TargetLocal}
	}
	return Outcome{
		Success: true,
		Message: fmt.Sprintf("%s unavailable; saved to %s", f.remote.Name(), f.local.Name()),
		Target:  TargetLocal,
	}
}

// Pending lists records held locally that have not reached the remote sink.
type Pending interface {
	Pending(ctx context.Context, limit int) ([]*Record, error)
	MarkSynced(ctx context.Context, id string) error
}

// Replay pushes locally held records to the remote sink, oldest first. It stops at the
// first remote failure and returns how many records were synced.
func (f *Fallback) Replay(ctx context.Context, store Pending, limit int) (int, error) {
	if f.remote == nil {
		return 0, ErrNoSink
	}
	logger := f.logger.Session("replay")

	records, err := store.Pending(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending records: %w", err)
	}

	synced := 0
	for _, rec := range records {
		if err := f.remote.Append(ctx, rec); err != nil {
			logger.Error("remote-failed", err, lager.Data{"record": rec.ID.String()})
			return synced, fmt.Errorf("failed to replay record %s: %w", rec.ID, err)
		}
		if err := store.MarkSynced(ctx, rec.ID.String()); err != nil {
			return synced, fmt.Errorf("failed to mark record %s synced: %w", rec.ID, err)
		}
		synced++
	}
	logger.Info("done", lager.Data{"synced": synced})
	return synced, nil
}

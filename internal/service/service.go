// Package service implements the auction engine: bid acceptance, the
// proxy-bid cascade, lifecycle sweeps and settlement.  Every mutation of an
// auction runs inside one store transaction that holds the auction's
// exclusive lock; realtime events and mail are delivered after commit.
package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iliyamo/auction-house/internal/repository"
)

var tracer = otel.Tracer("github.com/iliyamo/auction-house/internal/service")

// Options tunes the engine.
type Options struct {
	// BidIncrement is how far a proxy bid raises the price.
	BidIncrement int64
	// FeeRate is the platform's share of the final price.
	FeeRate decimal.Decimal
}

// DefaultOptions returns the reference tuning: 1000 units per proxy step
// and a 10% fee.
func DefaultOptions() Options {
	return Options{
		BidIncrement: 1000,
		FeeRate:      decimal.RequireFromString("0.10"),
	}
}

// AuctionService is the auction engine.  It is safe for concurrent use;
// all serialization happens in the store.
type AuctionService struct {
	store  repository.Store
	events Broadcaster
	mail   Mailer
	opts   Options
}

// NewAuctionService wires the engine to its store and boundaries.
func NewAuctionService(store repository.Store, events Broadcaster, mail Mailer, opts Options) *AuctionService {
	if opts.BidIncrement <= 0 {
		opts.BidIncrement = DefaultOptions().BidIncrement
	}
	return &AuctionService{store: store, events: events, mail: mail, opts: opts}
}

// withTx runs fn in a transaction and commits when it returns nil.  Any
// error rolls back every write made by fn.
func (s *AuctionService) withTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// endSpan records err on the span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

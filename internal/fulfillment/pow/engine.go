// Package pow implements the bounded nonce search at the heart of wish
// fulfillment.
package pow

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strconv"
	"time"

	"northpole/internal/fulfillment/santahash"
	"northpole/internal/platform/metrics"
	dErrors "northpole/pkg/domain-errors"
)

// DefaultNonceMax bounds the search, matching a signed 32-bit counter.
const DefaultNonceMax = math.MaxInt32

// checkInterval is the nonce stride between progress reports and
// cancellation checks.
const checkInterval = 100_000

// Solution is a nonce whose santa hash is numerically below the target.
type Solution struct {
	Nonce       int
	Hash        string
	BlockHeader string
	Elapsed     time.Duration
}

// Engine searches for proof-of-work solutions. A single search is sequential
// and single-threaded; the engine holds no mutable state, so concurrent
// searches do not interact.
type Engine struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	nonceMax int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithNonceMax overrides the inclusive upper bound of the nonce search.
func WithNonceMax(max int) Option {
	return func(e *Engine) { e.nonceMax = max }
}

// NewEngine constructs a proof-of-work engine.
func NewEngine(logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Engine {
	e := &Engine{
		logger:   logger,
		metrics:  m,
		nonceMax: DefaultNonceMax,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindNonce searches nonce = 0, 1, 2, ... for a block header whose santa hash
// is strictly below target. The block header is the concatenation, with no
// separators, of the timestamp, the target as 64 lowercase zero-padded hex
// characters, the decimal nonce, and the product name; only the nonce varies,
// so the search is deterministic for fixed inputs.
//
// The context is checked every 100 000 nonces; cancellation aborts with a
// pow_cancelled error. If the bound is exhausted the search fails with
// pow_exhausted.
func (e *Engine) FindNonce(ctx context.Context, timestamp string, target *big.Int, productName string) (Solution, error) {
	start := time.Now()
	targetHex := fmt.Sprintf("%064x", target)
	prefix := timestamp + targetHex

	hashValue := new(big.Int)
	for nonce := 0; nonce <= e.nonceMax; nonce++ {
		if nonce%checkInterval == 0 && nonce > 0 {
			if err := ctx.Err(); err != nil {
				e.observe(nonce, start)
				return Solution{}, dErrors.Wrap(err, dErrors.CodePoWCancelled,
					fmt.Sprintf("search cancelled after %d nonces in %d ms", nonce, time.Since(start).Milliseconds()))
			}
			e.logger.InfoContext(ctx, fmt.Sprintf("Tried %d nonces so far...", nonce))
		}

		header := prefix + strconv.Itoa(nonce) + productName
		hash := santahash.Sum(header)
		hashValue.SetString(hash, 16)

		if hashValue.Cmp(target) < 0 {
			elapsed := e.observe(nonce+1, start)
			return Solution{
				Nonce:       nonce,
				Hash:        hash,
				BlockHeader: header,
				Elapsed:     elapsed,
			}, nil
		}
	}

	tried := e.nonceMax + 1
	e.observe(tried, start)
	return Solution{}, dErrors.New(dErrors.CodePoWExhausted,
		fmt.Sprintf("no valid santa hash within %d nonces in %d ms", tried, time.Since(start).Milliseconds()))
}

// observe records the tried-nonce count and search duration, returning the
// elapsed time so successful searches report the same value they observed.
func (e *Engine) observe(tried int, start time.Time) time.Duration {
	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.NoncesTried.Add(float64(tried))
		e.metrics.SearchDuration.Observe(elapsed.Seconds())
	}
	return elapsed
}

package pow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"northpole/internal/fulfillment/difficulty"
	"northpole/internal/fulfillment/santahash"
	dErrors "northpole/pkg/domain-errors"
)

func testEngine(opts ...Option) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(logger, nil, opts...)
}

func TestFindNonceWithMaxTarget(t *testing.T) {
	// With the easiest target every hash qualifies, so nonce 0 wins.
	sol, err := testEngine().FindNonce(context.Background(), "2025-01-01T12:00:00", difficulty.MaxTarget(), "pony")
	require.NoError(t, err)
	assert.Equal(t, 0, sol.Nonce)
	assert.Equal(t, "90bc54ba0c25d5c1c2167b2b1adc289bf816f2943c45a234f4bc33859ffb272f", sol.Hash)
}

func TestFindNonceKnownSearch(t *testing.T) {
	// MAX/16: the first hash starting with a zero nibble wins, at nonce 5
	// for this fixed timestamp and product.
	target := new(big.Int).Div(difficulty.MaxTarget(), big.NewInt(16))
	sol, err := testEngine().FindNonce(context.Background(), "2025-01-01T12:00:00", target, "pony")
	require.NoError(t, err)

	assert.Equal(t, 5, sol.Nonce)
	assert.Equal(t, "03e680624426f58c452ee04f3f65303799d88f8c078e20c45b1a30968d6e8a95", sol.Hash)

	wantHeader := "2025-01-01T12:00:00" + fmt.Sprintf("%064x", target) + "5" + "pony"
	assert.Equal(t, wantHeader, sol.BlockHeader)
}

func TestSolutionSatisfiesContract(t *testing.T) {
	target := new(big.Int).Div(difficulty.MaxTarget(), big.NewInt(256))
	sol, err := testEngine().FindNonce(context.Background(), "2025-01-01T12:00:00", target, "teddy bear")
	require.NoError(t, err)

	// The reported hash hashes back from the reported header and is below
	// the target.
	assert.Equal(t, sol.Hash, santahash.Sum(sol.BlockHeader))
	assert.Negative(t, santahash.Value(sol.Hash).Cmp(target))
	assert.Equal(t, 116, sol.Nonce)
}

func TestFindNonceIsDeterministic(t *testing.T) {
	target := new(big.Int).Div(difficulty.MaxTarget(), big.NewInt(16))
	first, err := testEngine().FindNonce(context.Background(), "2025-01-01T12:00:00", target, "pony")
	require.NoError(t, err)
	second, err := testEngine().FindNonce(context.Background(), "2025-01-01T12:00:00", target, "pony")
	require.NoError(t, err)

	assert.Equal(t, first.Nonce, second.Nonce)
	assert.Equal(t, first.Hash, second.Hash)
	assert.Equal(t, first.BlockHeader, second.BlockHeader)
}

func TestFindNonceExhausted(t *testing.T) {
	// Target 1 is effectively unreachable; a tiny bound exhausts fast.
	engine := testEngine(WithNonceMax(50))
	_, err := engine.FindNonce(context.Background(), "2025-01-01T12:00:00", big.NewInt(1), "pony")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodePoWExhausted))
	assert.Contains(t, err.Error(), "51 nonces")
}

func TestFindNonceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cancellation is only checked at the 100k boundary, so the bound must
	// exceed it.
	engine := testEngine(WithNonceMax(500_000))
	start := time.Now()
	_, err := engine.FindNonce(ctx, "2025-01-01T12:00:00", big.NewInt(1), "pony")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodePoWCancelled))
	assert.ErrorIs(t, err, context.Canceled)
	// Aborted at the first boundary rather than grinding to exhaustion.
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestTargetHexIsZeroPadded(t *testing.T) {
	target := big.NewInt(255)
	engine := testEngine(WithNonceMax(0))
	_, err := engine.FindNonce(context.Background(), "ts", target, "pony")
	require.Error(t, err) // nonce 0 will not beat a 255 target

	// The padding contract is what matters: 64 chars, left-padded.
	assert.Equal(t,
		"00000000000000000000000000000000000000000000000000000000000000ff",
		fmt.Sprintf("%064x", target))
}

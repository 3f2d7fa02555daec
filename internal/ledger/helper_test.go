package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tally/internal/blobstore"
	"github.com/tallybook/tally/internal/model"
)

// now is "today" for every test store: 2025-03-10 in the afternoon.
var now = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// countingStore wraps a blob store, counts writes and can be told to fail.
type countingStore struct {
	blobstore.Store
	sets    int
	failGet bool
	failSet bool
}

var errDisk = errors.New("disk on fire")

func (c *countingStore) Get(key string) ([]byte, error) {
	if c.failGet {
		return nil, errDisk
	}
	return c.Store.Get(key)
}

func (c *countingStore) Set(key string, value []byte) error {
	if c.failSet {
		return errDisk
	}
	c.sets++
	return c.Store.Set(key, value)
}

func newBlobs() *countingStore {
	return &countingStore{Store: blobstore.NewMemory()}
}

// newStore returns a loaded store on fresh memory blobs, seeded with the defaults.
func newStore(t *testing.T) (*Store, *countingStore) {
	t.Helper()
	blobs := newBlobs()
	s := NewStore(blobs, WithClock(func() time.Time { return now }))
	require.Equal(t, Seeded, s.Load())
	return s, blobs
}

func lunch() TransactionInput {
	return TransactionInput{
		Date:        date(2025, 3, 10),
		Description: "lunch",
		Amount:      dec("20"),
		Currency:    model.CurrencyBRL,
		CategoryID:  1,
	}
}

func assertSameLedger(t *testing.T, want, got model.Ledger) {
	t.Helper()
	require.Len(t, got.Transactions, len(want.Transactions))
	require.Len(t, got.Categories, len(want.Categories))
	for i := range want.Transactions {
		w, g := want.Transactions[i], got.Transactions[i]
		assert.Equal(t, w.ID, g.ID)
		assert.True(t, w.Date.Equal(g.Date), "date mismatch row %d", i)
		assert.Equal(t, w.Description, g.Description)
		assert.True(t, w.Amount.Equal(g.Amount), "amount mismatch row %d: %s != %s", i, w.Amount, g.Amount)
		assert.Equal(t, w.Currency, g.Currency)
		assert.Equal(t, w.CategoryID, g.CategoryID)
		assert.Equal(t, w.CategoryName, g.CategoryName)
	}
	assert.Equal(t, want.Categories, got.Categories)
}

package checkout

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"vastra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^ORD-(\d+)-(\d{3})$`)

	before := time.Now().UnixMilli()
	num := GenerateOrderNumber()
	after := time.Now().UnixMilli()

	m := re.FindStringSubmatch(num)
	require.NotNil(t, m, "unexpected order number %q", num)

	millis, err := strconv.ParseInt(m[1], 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, millis, before)
	assert.LessOrEqual(t, millis, after)
}

func TestSnapshotItemsResolvesFromCatalog(t *testing.T) {
	catalog := map[string]models.Product{
		"p1": {ID: "p1", Title: "Denim Jacket", Price: 2499, Images: []string{"/static/productpic/p1.jpg"}},
	}
	lines := []CartLine{{Product: "p1", Quantity: 2, Price: 2499}}

	items := SnapshotItems(lines, catalog)
	require.Len(t, items, 1)
	assert.Equal(t, "Denim Jacket", items[0].Title)
	assert.Equal(t, "/static/productpic/p1.jpg", items[0].Image)
	assert.Equal(t, 2499.0, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestSnapshotItemsFallbacks(t *testing.T) {
	catalog := map[string]models.Product{
		"p1": {ID: "p1", Title: "Denim Jacket", Price: 2499},
	}

	t.Run("missing product keeps line as-is", func(t *testing.T) {
		items := SnapshotItems([]CartLine{{Product: "gone", Quantity: 1, Price: 999}}, catalog)
		require.Len(t, items, 1)
		assert.Equal(t, "Product", items[0].Title)
		assert.Equal(t, 999.0, items[0].Price)
		assert.Empty(t, items[0].Image)
	})

	t.Run("zero line price uses catalog price", func(t *testing.T) {
		items := SnapshotItems([]CartLine{{Product: "p1", Quantity: 1}}, catalog)
		require.Len(t, items, 1)
		assert.Equal(t, 2499.0, items[0].Price)
	})

	t.Run("quantity clamps to at least one", func(t *testing.T) {
		items := SnapshotItems([]CartLine{{Product: "p1", Quantity: 0, Price: 2499}}, catalog)
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})
}

func TestSnapshotTotal(t *testing.T) {
	items := []models.OrderItem{
		{Price: 2499, Quantity: 2},
		{Price: 799.50, Quantity: 1},
	}
	assert.InDelta(t, 5797.50, SnapshotTotal(items), 0.001)
	assert.Zero(t, SnapshotTotal(nil))
}

func TestClassifyVerify(t *testing.T) {
	tests := []struct {
		name   string
		status string
		valid  bool
		want   VerifyOutcome
	}{
		{"awaiting payment accepts valid", models.OrderCreated, true, VerifyAccept},
		{"awaiting payment rejects invalid", models.OrderCreated, false, VerifyReject},
		{"repeat valid verify is a no-op", models.OrderProcessing, true, VerifyRepeat},
		{"invalid against fulfilled conflicts", models.OrderProcessing, false, VerifyConflict},
		{"failed order conflicts", models.OrderFailed, true, VerifyConflict},
		{"shipped order conflicts", models.OrderShipped, true, VerifyConflict},
		{"delivered order conflicts", models.OrderDelivered, true, VerifyConflict},
		{"cancelled order conflicts", models.OrderCancelled, true, VerifyConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyVerify(tt.status, tt.valid))
		})
	}
}

func TestTotalsMatch(t *testing.T) {
	assert.True(t, TotalsMatch(100.00, 100.00))
	assert.True(t, TotalsMatch(100.004, 100.00))
	assert.True(t, TotalsMatch(99.995, 100.00))

	assert.False(t, TotalsMatch(100.02, 100.00))
	assert.False(t, TotalsMatch(0, 100.00))
}

func TestOrderNumbersAreDistinctEnough(t *testing.T) {
	seen := map[string]bool{}
	dupes := 0
	for i := 0; i < 50; i++ {
		n := GenerateOrderNumber()
		assert.True(t, strings.HasPrefix(n, "ORD-"))
		if seen[n] {
			dupes++
		}
		seen[n] = true
	}
	// same-millisecond collisions are possible but should be rare
	assert.Less(t, dupes, 10)
}

package orders

import (
	"fmt"
	"testing"
	"time"

	"vastra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTrackingStageCount(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// stage count = 1 + |{1,3,5,7} ∩ [1,D]|
	expected := map[int]int{0: 1, 1: 2, 2: 2, 3: 3, 4: 3, 5: 4, 6: 4, 7: 5, 8: 5, 30: 5}

	for days, want := range expected {
		t.Run(fmt.Sprintf("day_%d", days), func(t *testing.T) {
			now := createdAt.Add(time.Duration(days) * day)
			stages := BuildTracking(createdAt, nil, now)
			assert.Len(t, stages, want)
			assert.Equal(t, models.StageProcessing, stages[0].Stage)
		})
	}
}

func TestBuildTrackingStageOrderAndBackdating(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	deliveryDate := createdAt.Add(7 * day)
	now := createdAt.Add(8 * day)

	stages := BuildTracking(createdAt, &deliveryDate, now)
	require.Len(t, stages, 5)

	assert.Equal(t, models.StageProcessing, stages[0].Stage)
	assert.Equal(t, createdAt, stages[0].UpdatedAt)

	assert.Equal(t, models.StageShipped, stages[1].Stage)
	assert.Equal(t, createdAt.Add(1*day), stages[1].UpdatedAt)

	assert.Equal(t, models.StageInTransit, stages[2].Stage)
	assert.Equal(t, createdAt.Add(3*day), stages[2].UpdatedAt)

	assert.Equal(t, models.StageOutForDelivery, stages[3].Stage)
	assert.Equal(t, createdAt.Add(5*day), stages[3].UpdatedAt)

	// delivered stage uses the stored delivery date, not createdAt+7d
	assert.Equal(t, models.StageDelivered, stages[4].Stage)
	assert.Equal(t, deliveryDate, stages[4].UpdatedAt)
}

func TestBuildTrackingDeliveredWithoutDeliveryDate(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(9 * day)

	stages := BuildTracking(createdAt, nil, now)
	require.Len(t, stages, 5)
	assert.Equal(t, now, stages[4].UpdatedAt)
}

func TestBuildTrackingIdempotent(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := createdAt.Add(4 * day)

	first := BuildTracking(createdAt, nil, now)
	second := BuildTracking(createdAt, nil, now)
	assert.Equal(t, first, second)
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current string
		days    int
		want    string
	}{
		{models.OrderProcessing, 0, models.OrderProcessing},
		{models.OrderProcessing, 1, models.OrderShipped},
		{models.OrderProcessing, 6, models.OrderShipped},
		{models.OrderProcessing, 7, models.OrderDelivered},
		{models.OrderShipped, 2, models.OrderShipped},
		{models.OrderShipped, 10, models.OrderDelivered},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextStatus(tt.current, tt.days), "current=%s days=%d", tt.current, tt.days)
	}
}

func TestDaysSince(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysSince(base, base))
	assert.Equal(t, 0, DaysSince(base, base.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysSince(base, base.Add(24*time.Hour)))
	assert.Equal(t, 2, DaysSince(base, base.Add(49*time.Hour)))
	// clock skew: a future createdAt never yields negative days
	assert.Equal(t, 0, DaysSince(base, base.Add(-time.Hour)))
}

func TestCanCancel(t *testing.T) {
	assert.True(t, CanCancel(models.OrderCreated))
	assert.True(t, CanCancel(models.OrderProcessing))
	assert.True(t, CanCancel(models.OrderShipped))
	// failed is not explicitly blocked
	assert.True(t, CanCancel(models.OrderFailed))

	assert.False(t, CanCancel(models.OrderDelivered))
	assert.False(t, CanCancel(models.OrderCancelled))
}

func TestTrackingCurrent(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	stages := func(n int) []models.TrackingStage {
		return make([]models.TrackingStage, n)
	}

	tests := []struct {
		name  string
		order models.Order
		days  int
		want  bool
	}{
		{"fresh order is current", models.Order{Status: models.OrderProcessing, TrackingStatus: stages(1)}, 0, true},
		{"day 1 needs the shipped stage", models.Order{Status: models.OrderProcessing, TrackingStatus: stages(1)}, 1, false},
		{"day 2 shipped with 2 stages is current", models.Order{Status: models.OrderShipped, TrackingStatus: stages(2)}, 2, true},
		{"day 3 needs in_transit", models.Order{Status: models.OrderShipped, TrackingStatus: stages(2)}, 3, false},
		{"day 6 shipped with 4 stages is current", models.Order{Status: models.OrderShipped, TrackingStatus: stages(4)}, 6, true},
		{"day 7 needs delivery", models.Order{Status: models.OrderShipped, TrackingStatus: stages(4)}, 7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.order.CreatedAt = createdAt
			now := createdAt.Add(time.Duration(tt.days) * day)
			assert.Equal(t, tt.want, TrackingCurrent(&tt.order, now))
		})
	}
}

func TestTrackable(t *testing.T) {
	assert.True(t, Trackable(models.OrderProcessing))
	assert.True(t, Trackable(models.OrderShipped))

	assert.False(t, Trackable(models.OrderCreated))
	assert.False(t, Trackable(models.OrderFailed))
	assert.False(t, Trackable(models.OrderDelivered))
	assert.False(t, Trackable(models.OrderCancelled))
}

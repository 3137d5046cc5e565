package utils

import (
	"testing"

	"hms/src/models"
	"hms/src/types"

	"github.com/stretchr/testify/assert"
)

func testRoom() *models.Room {
	return &models.Room{
		ID:       1,
		Capacity: 2,
		PricingPlans: []models.PricingPlan{
			{ID: 10, RoomID: 1, Duration: 6, Unit: types.PLAN_UNIT_MONTHS, Price: 10000},
			{ID: 11, RoomID: 1, Duration: 1, Unit: types.PLAN_UNIT_YEAR, Price: 18000},
		},
	}
}

func TestResolvePrice(t *testing.T) {
	room := testRoom()
	price, err := ResolvePrice(room, 11)
	assert.NoError(t, err)
	assert.Equal(t, 18000.0, price)
}

func TestResolvePriceUnknownPlan(t *testing.T) {
	room := testRoom()
	_, err := ResolvePrice(room, 999)
	assert.ErrorIs(t, err, types.ErrPlanNotFound)
}

func TestResolvePricePercentageDiscount(t *testing.T) {
	room := testRoom()
	room.ActiveDiscount = &models.Discount{
		Type:     types.DISCOUNT_PERCENTAGE,
		Value:    20,
		IsActive: true,
	}
	price, err := ResolvePrice(room, 10)
	assert.NoError(t, err)
	assert.InDelta(t, 8000.0, price, 0.001)
}

func TestApplyDiscountFixedFloorsAtZero(t *testing.T) {
	discount := &models.Discount{
		Type:     types.DISCOUNT_FIXED,
		Value:    10000,
		IsActive: true,
	}
	assert.Equal(t, 0.0, ApplyDiscount(8000, discount))
	assert.Equal(t, 2000.0, ApplyDiscount(12000, discount))
}

func TestApplyDiscountInactiveIgnored(t *testing.T) {
	discount := &models.Discount{
		Type:     types.DISCOUNT_PERCENTAGE,
		Value:    50,
		IsActive: false,
	}
	assert.Equal(t, 10000.0, ApplyDiscount(10000, discount))
	assert.Equal(t, 10000.0, ApplyDiscount(10000, nil))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1200000), ToMinorUnits(12000))
	assert.Equal(t, int64(999999), ToMinorUnits(9999.99))
	assert.Equal(t, int64(1), ToMinorUnits(0.005))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}

func TestAgeFromDOB(t *testing.T) {
	dob, _ := ParseDate("2005-06-15")
	now, _ := ParseDate("2026-06-14")
	assert.Equal(t, uint(20), AgeFromDOB(dob, now))
	now, _ = ParseDate("2026-06-15")
	assert.Equal(t, uint(21), AgeFromDOB(dob, now))
}

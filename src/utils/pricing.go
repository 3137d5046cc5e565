package utils

import (
	"math"

	"hms/src/models"
	"hms/src/types"
)

// ResolvePrice computes the payable amount in rupees for one of the
// room's embedded pricing plans, with the room's active discount
// applied. Pure function; the result is captured into the gateway order
// and reused at commit time, never recomputed.
func ResolvePrice(room *models.Room, planId uint) (float64, error) {
	plan := room.PlanByID(planId)
	if plan == nil {
		return 0, types.ErrPlanNotFound
	}
	return ApplyDiscount(plan.Price, room.ActiveDiscount), nil
}

// ApplyDiscount reduces base by the discount. Fixed discounts floor at
// zero; Percentage discounts are a proportional reduction.
func ApplyDiscount(base float64, discount *models.Discount) float64 {
	if discount == nil || !discount.IsActive {
		return base
	}
	switch discount.Type {
	case types.DISCOUNT_FIXED:
		return math.Max(0, base-discount.Value)
	case types.DISCOUNT_PERCENTAGE:
		return base * (1 - discount.Value/100)
	}
	return base
}

// ToMinorUnits converts rupees to paise with round-half-up, the
// deterministic rounding the gateway expects for fractional amounts.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

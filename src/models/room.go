package models

import "hms/src/types"

// PricingPlan is a value type owned by a Room and referenced by its
// stable ID at checkout time. A booking captures the resolved price, so
// later edits to the plan list never change an existing booking.
type PricingPlan struct {
	ID       uint           `gorm:"primarykey" json:"id"`
	RoomID   uint           `json:"room_id,omitempty"`
	Duration uint           `json:"duration,omitempty"`
	Unit     types.PlanUnit `gorm:"default:'months'" json:"unit,omitempty"`
	Price    float64        `json:"price"`

	types.Timestamps
}

type Room struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	RoomNumber   string             `gorm:"uniqueIndex:idx_rooms_floor_number" json:"room_number,omitempty"`
	FloorID      uint               `gorm:"uniqueIndex:idx_rooms_floor_number" json:"floor_id,omitempty"`
	Capacity     uint               `json:"capacity,omitempty"`
	Type         types.RoomType     `json:"type,omitempty"`
	BathroomType types.BathroomType `json:"bathroom_type,omitempty"`

	// OccupantCount is the compare-and-swap guard for concurrent
	// bookings; IsOccupied is kept equal to OccupantCount >= Capacity.
	OccupantCount uint `gorm:"default:0" json:"occupant_count"`
	IsOccupied    bool `gorm:"default:false" json:"is_occupied"`

	IsStaffRoom bool    `gorm:"default:false" json:"is_staff_room,omitempty"`
	StaffRole   *string `json:"staff_role,omitempty"`

	ActiveDiscountID *uint `json:"active_discount_id,omitempty"`

	Floor          Floor         `gorm:"foreignKey:floor_id" json:"-"`
	PricingPlans   []PricingPlan `gorm:"foreignKey:room_id" json:"pricing_plans,omitempty"`
	Occupants      []*User       `gorm:"many2many:room_occupants;" json:"occupants,omitempty"`
	ActiveDiscount *Discount     `gorm:"foreignKey:active_discount_id" json:"active_discount,omitempty"`

	types.Timestamps
}

// PlanByID looks up an embedded pricing plan by its stable identifier.
func (r *Room) PlanByID(planId uint) *PricingPlan {
	for i := range r.PricingPlans {
		if r.PricingPlans[i].ID == planId {
			return &r.PricingPlans[i]
		}
	}
	return nil
}

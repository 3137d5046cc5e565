package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type RoomType string

const (
	ROOM_AC    RoomType = "AC"
	ROOM_NONAC RoomType = "Non-AC"
)

type BathroomType string

const (
	BATHROOM_ATTACHED BathroomType = "Attached"
	BATHROOM_COMMON   BathroomType = "Common"
)

type PlanUnit string

const (
	PLAN_UNIT_MONTHS PlanUnit = "months"
	PLAN_UNIT_YEAR   PlanUnit = "year"
)

type BookingStatus string

const (
	BOOKING_PENDING    BookingStatus = "pending"
	BOOKING_ACTIVE     BookingStatus = "active"
	BOOKING_CHECKED_IN BookingStatus = "checked_in"
	BOOKING_CHECKED_OUT BookingStatus = "checked_out"
	BOOKING_CANCELED   BookingStatus = "canceled"
)

type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "pending"
	PAYMENT_PAID    PaymentStatus = "paid"
	PAYMENT_FAILED  PaymentStatus = "failed"
)

type InvoiceStatus string

const (
	INVOICE_PENDING InvoiceStatus = "Pending"
	INVOICE_PAID    InvoiceStatus = "Paid"
	INVOICE_OVERDUE InvoiceStatus = "Overdue"
)

type DiscountType string

const (
	DISCOUNT_PERCENTAGE DiscountType = "Percentage"
	DISCOUNT_FIXED      DiscountType = "Fixed"
)

type AuditStatus string

const (
	AUDIT_ORDER_CREATED AuditStatus = "order_created"
	AUDIT_COMMITTED     AuditStatus = "committed"
	AUDIT_REFUND_DUE    AuditStatus = "refund_due"
)

type QueryStatus string

const (
	QUERY_OPEN     QueryStatus = "Open"
	QUERY_PROGRESS QueryStatus = "In Progress"
	QUERY_RESOLVED QueryStatus = "Resolved"
)

type NotificationType string

const (
	NOTIFY_BOOKING NotificationType = "Booking"
	NOTIFY_PAYMENT NotificationType = "Payment"
	NOTIFY_FINE    NotificationType = "Fine"
	NOTIFY_GENERAL NotificationType = "General"
)

const (
	ROLE_ADMIN   = "admin"
	ROLE_WARDEN  = "warden"
	ROLE_RT      = "rt"
	ROLE_STUDENT = "student"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type PricingPlanBody struct {
	Duration uint    `json:"duration" binding:"required,min=1"`
	Unit     string  `json:"unit" binding:"required,planunit"`
	Price    float64 `json:"price" binding:"required,gt=0"`
}

type CreateRoomRequestBody struct {
	FloorID      uint              `json:"floor_id" binding:"required"`
	RoomNumber   string            `json:"room_number" binding:"required"`
	Capacity     uint              `json:"capacity" binding:"required,min=1,max=5"`
	Type         string            `json:"type" binding:"required,oneof=AC Non-AC"`
	PricingPlans []PricingPlanBody `json:"pricing_plans" binding:"required,min=1,dive"`
	IsStaffRoom  bool              `json:"is_staff_room,omitempty"`
	StaffRole    *string           `json:"staff_role,omitempty"`
}

type BulkCreateRoomsRequestBody struct {
	FloorID      uint              `json:"floor_id" binding:"required"`
	StartNumber  uint              `json:"start_number" binding:"required"`
	EndNumber    uint              `json:"end_number" binding:"required,gtefield=StartNumber"`
	Capacity     uint              `json:"capacity" binding:"required,min=1,max=5"`
	Type         string            `json:"type" binding:"required,oneof=AC Non-AC"`
	PricingPlans []PricingPlanBody `json:"pricing_plans" binding:"required,min=1,dive"`
}

type CheckoutRequestBody struct {
	RoomID uint `json:"room_id" binding:"required"`
	PlanID uint `json:"plan_id" binding:"required"`
}

type ResidentDetailsBody struct {
	FullName     string `json:"full_name" binding:"required"`
	DateOfBirth  string `json:"date_of_birth" binding:"required"`
	MobileNumber string `json:"mobile_number" binding:"required"`
	Street       string `json:"street,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Pincode      string `json:"pincode,omitempty"`
}

type VerifyPaymentRequestBody struct {
	OrderID   string              `json:"order_id" binding:"required"`
	PaymentID string              `json:"payment_id" binding:"required"`
	Signature string              `json:"signature" binding:"required"`
	RoomID    uint                `json:"room_id" binding:"required"`
	PlanID    uint                `json:"plan_id" binding:"required"`
	Resident  ResidentDetailsBody `json:"resident" binding:"required"`
}

type CreateChargeRequestBody struct {
	StudentID   uint    `json:"student_id" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=Fine Service Utility"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	DueDate     *string `json:"due_date,omitempty"`
}

type ApplyCreditRequestBody struct {
	StudentID   uint    `json:"student_id" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

type SendReminderRequestBody struct {
	StudentID uint    `json:"student_id" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Name      string  `json:"name" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
}

type CreateDiscountRequestBody struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description,omitempty"`
	Type           string  `json:"type" binding:"required,oneof=Percentage Fixed"`
	Value          float64 `json:"value" binding:"required,gt=0"`
	TargetCategory string  `json:"target_category" binding:"required,oneof=Room Fine Service All"`
}

type ApplyRoomDiscountRequestBody struct {
	DiscountID *uint `json:"discount_id"`
}

type CreateBlockRequestBody struct {
	Name string `json:"name" binding:"required"`
}

type CreateFloorRequestBody struct {
	BlockID uint   `json:"block_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Number  int    `json:"number" binding:"required"`
}

type CreateAnnouncementRequestBody struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type CreateQueryRequestBody struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category,omitempty"`
}

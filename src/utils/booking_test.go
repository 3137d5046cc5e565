package utils

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"hms/src/config"
	"hms/src/db"
	"hms/src/lib"
	"hms/src/models"
	"hms/src/types"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type fakeGateway struct {
	next       int
	failCreate bool
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency string, receipt string) (string, error) {
	if g.failCreate {
		return "", types.ErrGatewayUnavailable
	}
	g.next++
	return fmt.Sprintf("order_fake_%03d", g.next), nil
}

func (g *fakeGateway) VerifySignature(orderId, paymentId, signature string) bool {
	return signature == "sig_valid"
}

type BookingSuite struct {
	suite.Suite
	db      *gorm.DB
	gateway *fakeGateway
}

func (s *BookingSuite) SetupTest() {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	sqlDB, err := gdb.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Block{},
		&models.Floor{},
		&models.Discount{},
		&models.Room{},
		&models.PricingPlan{},
		&models.Booking{},
		&models.Invoice{},
		&models.PaymentAudit{},
		&models.Notification{},
	))
	db.NewDB(gdb)
	s.db = gdb
	config.NewConfig(&config.Config{Currency: "INR", TempDir: s.T().TempDir()})
	s.gateway = &fakeGateway{}
	lib.NewPaymentGateway(s.gateway)
}

func (s *BookingSuite) seedRoom(capacity uint, discount *models.Discount) *models.Room {
	block := models.Block{Name: "A Block"}
	s.Require().NoError(s.db.Create(&block).Error)
	floor := models.Floor{BlockID: block.ID, Name: "First Floor", Number: 1}
	s.Require().NoError(s.db.Create(&floor).Error)
	room := models.Room{
		FloorID:      floor.ID,
		RoomNumber:   "101",
		Capacity:     capacity,
		Type:         types.ROOM_AC,
		BathroomType: types.BATHROOM_ATTACHED,
		PricingPlans: []models.PricingPlan{
			{Duration: 6, Unit: types.PLAN_UNIT_MONTHS, Price: 10000},
			{Duration: 1, Unit: types.PLAN_UNIT_YEAR, Price: 18000},
		},
	}
	if discount != nil {
		s.Require().NoError(s.db.Create(discount).Error)
		room.ActiveDiscountID = &discount.ID
	}
	s.Require().NoError(s.db.Create(&room).Error)
	return &room
}

func (s *BookingSuite) seedStudent(email string) *models.User {
	user := models.User{Username: email, Email: email, Role: types.ROLE_STUDENT}
	s.Require().NoError(s.db.Create(&user).Error)
	return &user
}

func residentDetails() types.ResidentDetailsBody {
	return types.ResidentDetailsBody{
		FullName:     "Asha Verma",
		DateOfBirth:  "2004-03-21",
		MobileNumber: "9876543210",
		Street:       "12 MG Road",
		City:         "Pune",
		State:        "Maharashtra",
		Pincode:      "411001",
	}
}

func verifyParams(order *CheckoutOrder, planId uint) *types.VerifyPaymentRequestBody {
	return &types.VerifyPaymentRequestBody{
		OrderID:   order.OrderID,
		PaymentID: "pay_" + order.OrderID,
		Signature: "sig_valid",
		RoomID:    order.Room.ID,
		PlanID:    planId,
		Resident:  residentDetails(),
	}
}

func (s *BookingSuite) TestCheckoutCreatesOrderAndAudit() {
	room := s.seedRoom(2, nil)
	student := s.seedStudent("asha@example.com")

	order, err := InitiateCheckout(context.Background(), student.ID, room.ID, room.PricingPlans[0].ID)
	s.Require().NoError(err)
	s.NotEmpty(order.OrderID)
	s.Equal(int64(1000000), order.Amount)
	s.Equal("INR", order.Currency)

	var audit models.PaymentAudit
	s.Require().NoError(s.db.Where("order_id = ?", order.OrderID).First(&audit).Error)
	s.Equal(types.AUDIT_ORDER_CREATED, audit.Status)
	s.Equal(student.ID, audit.StudentID)
	s.Equal(10000.0, audit.Amount)
}

func (s *BookingSuite) TestCheckoutUnknownRoom() {
	student := s.seedStudent("asha@example.com")
	_, err := InitiateCheckout(context.Background(), student.ID, 999, 1)
	s.ErrorIs(err, types.ErrRoomNotFound)
}

func (s *BookingSuite) TestCheckoutUnknownPlan() {
	room := s.seedRoom(2, nil)
	student := s.seedStudent("asha@example.com")
	_, err := InitiateCheckout(context.Background(), student.ID, room.ID, 999)
	s.ErrorIs(err, types.ErrPlanNotFound)
}

func (s *BookingSuite) TestCheckoutOccupiedRoom() {
	room := s.seedRoom(1, nil)
	s.Require().NoError(s.db.Model(room).Updates(map[string]any{
		"occupant_count": 1,
		"is_occupied":    true,
	}).Error)
	student := s.seedStudent("asha@example.com")
	_, err := InitiateCheckout(context.Background(), student.ID, room.ID, room.PricingPlans[0].ID)
	s.ErrorIs(err, types.ErrRoomNoLongerAvailable)
}

func (s *BookingSuite) TestCheckoutGatewayDown() {
	room := s.seedRoom(2, nil)
	student := s.seedStudent("asha@example.com")
	s.gateway.failCreate = true
	_, err := InitiateCheckout(context.Background(), student.ID, room.ID, room.PricingPlans[0].ID)
	s.ErrorIs(err, types.ErrGatewayUnavailable)

	var audits int64
	s.db.Model(&models.PaymentAudit{}).Count(&audits)
	s.Zero(audits)
}

func (s *BookingSuite) TestVerifyAndCommit() {
	room := s.seedRoom(2, nil)
	student := s.seedStudent("asha@example.com")
	planId := room.PricingPlans[0].ID

	order, err := InitiateCheckout(context.Background(), student.ID, room.ID, planId)
	s.Require().NoError(err)

	actor := Actor{ID: student.ID, Role: types.ROLE_STUDENT}
	bookingId, err := VerifyAndCommit(actor, verifyParams(order, planId))
	s.Require().NoError(err)
	s.NotZero(bookingId)

	var booking models.Booking
	s.Require().NoError(s.db.First(&booking, bookingId).Error)
	s.Equal(types.BOOKING_PENDING, booking.Status)
	s.Equal(types.PAYMENT_PAID, booking.PaymentStatus)
	s.Equal(10000.0, booking.TotalAmount)
	s.Equal(order.OrderID, *booking.OrderID)

	var fresh models.Room
	s.Require().NoError(s.db.First(&fresh, room.ID).Error)
	s.Equal(uint(1), fresh.OccupantCount)
	s.False(fresh.IsOccupied)

	var invoice models.Invoice
	s.Require().NoError(s.db.Where("booking_id = ?", bookingId).First(&invoice).Error)
	s.Equal(types.INVOICE_PAID, invoice.Status)
	s.Equal(10000.0, invoice.TotalAmount)
	s.NotNil(invoice.PaidAt)

	var audit models.PaymentAudit
	s.Require().NoError(s.db.Where("order_id = ?", order.OrderID).First(&audit).Error)
	s.Equal(types.AUDIT_COMMITTED, audit.Status)

	var profile models.Profile
	s.Require().NoError(s.db.Where("user_id = ?", student.ID).First(&profile).Error)
	s.Equal("Asha Verma", profile.FullName)
	s.NotZero(profile.Age)
}

func (s *BookingSuite) TestVerifyReplayIsIdempotent() {
	room := s.seedRoom(2, nil)
	student := s.seedStudent("asha@example.com")
	planId := room.PricingPlans[0].ID

	order, err := InitiateCheckout(context.Background(), student.ID, room.ID, planId)
	s.Require().NoError(err)

	actor := Actor{ID: student.ID, Role: types.ROLE_STUDENT}
	params := verifyParams(order, planId)
	first, err := VerifyAndCommit(actor, params)
	s.Require().NoError(err)
	second, err := VerifyAndCommit(actor, params)
	s.Require().NoError(err)
	s.Equal(first, second)

	var bookings int64
	s.db.Model(&models.Booking{}).Count(&bookings)
	s.Equal(int64(1), bookings)

	var fresh models.Room
	s.Require().NoError(s.db.First(&fresh, room.ID).Error)
	s.Equal(uint(1), fresh.OccupantCount)
}

func (s *BookingSuite) TestConcurrentReplayCommitsOnce() {
	room := s.seedRoom(2, nil)
	student := s.seedStudent("asha@example.com")
	planId := room.PricingPlans[0].ID

	order, err := InitiateCheckout(context.Background(), student.ID, room.ID, planId)
	s.Require().NoError(err)

	actor := Actor{ID: student.ID, Role: types.ROLE_STUDENT}
	params := verifyParams(order, planId)

	ids := make(chan uint, 2)
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := VerifyAndCommit(actor, params)
			ids <- id
			errs <- err
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
	seen := map[uint]bool{}
	for id := range ids {
		seen[id] = true
	}
	s.Len(seen, 1)

	var bookings int64
	s.db.Model(&models.Booking{}).Count(&bookings)
	s.Equal(int64(1), bookings)

	var fresh models.Room
	s.Require().NoError(s.db.First(&fresh, room.ID).Error)
	s.Equal(uint(1), fresh.OccupantCount)

	// The losing call resolves to the committed booking and must not
	// flag the order for refund.
	var audit models.PaymentAudit
	s.Require().NoError(s.db.Where("order_id = ?", order.OrderID).First(&audit).Error)
	s.Equal(types.AUDIT_COMMITTED, audit.Status)
}

func (s *BookingSuite) TestVerifyBadSignatureMutatesNothing() {
	room := s.seedRoom(2, nil)
	student := s.seedStudent("asha@example.com")
	planId := room.PricingPlans[0].ID

	order, err := InitiateCheckout(context.Background(), student.ID, room.ID, planId)
	s.Require().NoError(err)

	actor := Actor{ID: student.ID, Role: types.ROLE_STUDENT}
	params := verifyParams(order, planId)
	params.Signature = "sig_forged"
	_, err = VerifyAndCommit(actor, params)
	s.ErrorIs(err, types.ErrInvalidPaymentSignature)

	var bookings int64
	s.db.Model(&models.Booking{}).Count(&bookings)
	s.Zero(bookings)

	var fresh models.Room
	s.Require().NoError(s.db.First(&fresh, room.ID).Error)
	s.Zero(fresh.OccupantCount)

	var audit models.PaymentAudit
	s.Require().NoError(s.db.Where("order_id = ?", order.OrderID).First(&audit).Error)
	s.Equal(types.AUDIT_ORDER_CREATED, audit.Status)
}

func (s *BookingSuite) TestVerifyUsesPriceCapturedAtCheckout() {
	discount := &models.Discount{
		Name:           "Early Bird",
		Type:           types.DISCOUNT_PERCENTAGE,
		Value:          20,
		TargetCategory: "Room",
		IsActive:       true,
	}
	room := s.seedRoom(2, discount)
	student := s.seedStudent("asha@example.com")
	planId := room.PricingPlans[0].ID

	order, err := InitiateCheckout(context.Background(), student.ID, room.ID, planId)
	s.Require().NoError(err)
	s.Equal(int64(800000), order.Amount)

	// Discount removed between payment and verification.
	s.Require().NoError(s.db.Model(&models.Room{}).
		Where("id = ?", room.ID).
		Update("active_discount_id", nil).Error)

	actor := Actor{ID: student.ID, Role: types.ROLE_STUDENT}
	bookingId, err := VerifyAndCommit(actor, verifyParams(order, planId))
	s.Require().NoError(err)

	var booking models.Booking
	s.Require().NoError(s.db.First(&booking, bookingId).Error)
	s.Equal(8000.0, booking.TotalAmount)
}

func (s *BookingSuite) TestSecondResidentFillsRoom() {
	room := s.seedRoom(2, nil)
	first := s.seedStudent("asha@example.com")
	second := s.seedStudent("ravi@example.com")
	planId := room.PricingPlans[0].ID

	orderA, err := InitiateCheckout(context.Background(), first.ID, room.ID, planId)
	s.Require().NoError(err)
	_, err = VerifyAndCommit(Actor{ID: first.ID, Role: types.ROLE_STUDENT}, verifyParams(orderA, planId))
	s.Require().NoError(err)

	orderB, err := InitiateCheckout(context.Background(), second.ID, room.ID, planId)
	s.Require().NoError(err)
	_, err = VerifyAndCommit(Actor{ID: second.ID, Role: types.ROLE_STUDENT}, verifyParams(orderB, planId))
	s.Require().NoError(err)

	var fresh models.Room
	s.Require().NoError(s.db.First(&fresh, room.ID).Error)
	s.Equal(uint(2), fresh.OccupantCount)
	s.True(fresh.IsOccupied)

	third := s.seedStudent("meera@example.com")
	_, err = InitiateCheckout(context.Background(), third.ID, room.ID, planId)
	s.ErrorIs(err, types.ErrRoomNoLongerAvailable)
}

func (s *BookingSuite) TestVerifyAfterRoomFilledFlagsRefund() {
	room := s.seedRoom(1, nil)
	winner := s.seedStudent("asha@example.com")
	loser := s.seedStudent("ravi@example.com")
	planId := room.PricingPlans[0].ID

	// Both paid while the room still had a slot.
	orderA, err := InitiateCheckout(context.Background(), winner.ID, room.ID, planId)
	s.Require().NoError(err)
	orderB, err := InitiateCheckout(context.Background(), loser.ID, room.ID, planId)
	s.Require().NoError(err)

	_, err = VerifyAndCommit(Actor{ID: winner.ID, Role: types.ROLE_STUDENT}, verifyParams(orderA, planId))
	s.Require().NoError(err)

	_, err = VerifyAndCommit(Actor{ID: loser.ID, Role: types.ROLE_STUDENT}, verifyParams(orderB, planId))
	s.ErrorIs(err, types.ErrRoomNoLongerAvailable)

	var fresh models.Room
	s.Require().NoError(s.db.First(&fresh, room.ID).Error)
	s.Equal(uint(1), fresh.OccupantCount)

	var bookings int64
	s.db.Model(&models.Booking{}).Count(&bookings)
	s.Equal(int64(1), bookings)

	var audit models.PaymentAudit
	s.Require().NoError(s.db.Where("order_id = ?", orderB.OrderID).First(&audit).Error)
	s.Equal(types.AUDIT_REFUND_DUE, audit.Status)
	s.NotNil(audit.PaymentID)
}

func (s *BookingSuite) TestVerifySecondBookingRejected() {
	room := s.seedRoom(2, nil)
	student := s.seedStudent("asha@example.com")
	planId := room.PricingPlans[0].ID

	orderA, err := InitiateCheckout(context.Background(), student.ID, room.ID, planId)
	s.Require().NoError(err)
	orderB, err := InitiateCheckout(context.Background(), student.ID, room.ID, planId)
	s.Require().NoError(err)

	actor := Actor{ID: student.ID, Role: types.ROLE_STUDENT}
	_, err = VerifyAndCommit(actor, verifyParams(orderA, planId))
	s.Require().NoError(err)

	_, err = VerifyAndCommit(actor, verifyParams(orderB, planId))
	s.ErrorIs(err, types.ErrAlreadyBooked)
}

func (s *BookingSuite) TestCheckInCheckOutLifecycle() {
	room := s.seedRoom(1, nil)
	student := s.seedStudent("asha@example.com")
	planId := room.PricingPlans[0].ID

	order, err := InitiateCheckout(context.Background(), student.ID, room.ID, planId)
	s.Require().NoError(err)
	bookingId, err := VerifyAndCommit(Actor{ID: student.ID, Role: types.ROLE_STUDENT}, verifyParams(order, planId))
	s.Require().NoError(err)

	admin := Actor{ID: 999, Role: types.ROLE_ADMIN}

	_, err = CheckInResident(Actor{ID: student.ID, Role: types.ROLE_STUDENT}, bookingId)
	s.ErrorIs(err, types.ErrNotAllowed)

	booking, err := CheckInResident(admin, bookingId)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_CHECKED_IN, booking.Status)
	s.NotNil(booking.CheckInDate)

	_, err = CheckInResident(admin, bookingId)
	s.ErrorIs(err, types.ErrInvalidBookingStatus)

	booking, err = CheckOutResident(admin, bookingId)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_CHECKED_OUT, booking.Status)
	s.NotNil(booking.CheckOutDate)

	var fresh models.Room
	s.Require().NoError(s.db.First(&fresh, room.ID).Error)
	s.Zero(fresh.OccupantCount)
	s.False(fresh.IsOccupied)

	var occupants int64
	s.db.Raw("SELECT COUNT(*) FROM room_occupants WHERE room_id = ?", room.ID).Scan(&occupants)
	s.Zero(occupants)
}

func (s *BookingSuite) TestCancelBookingReleasesSlot() {
	room := s.seedRoom(1, nil)
	student := s.seedStudent("asha@example.com")
	stranger := s.seedStudent("ravi@example.com")
	planId := room.PricingPlans[0].ID

	order, err := InitiateCheckout(context.Background(), student.ID, room.ID, planId)
	s.Require().NoError(err)
	bookingId, err := VerifyAndCommit(Actor{ID: student.ID, Role: types.ROLE_STUDENT}, verifyParams(order, planId))
	s.Require().NoError(err)

	err = CancelBooking(Actor{ID: stranger.ID, Role: types.ROLE_STUDENT}, bookingId)
	s.ErrorIs(err, types.ErrNotAllowed)

	s.Require().NoError(CancelBooking(Actor{ID: student.ID, Role: types.ROLE_STUDENT}, bookingId))

	var booking models.Booking
	s.Require().NoError(s.db.First(&booking, bookingId).Error)
	s.Equal(types.BOOKING_CANCELED, booking.Status)

	var fresh models.Room
	s.Require().NoError(s.db.First(&fresh, room.ID).Error)
	s.Zero(fresh.OccupantCount)
	s.False(fresh.IsOccupied)

	// The slot is claimable again.
	other := s.seedStudent("meera@example.com")
	_, err = InitiateCheckout(context.Background(), other.ID, room.ID, planId)
	s.NoError(err)
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

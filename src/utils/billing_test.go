package utils

import (
	"testing"
	"time"

	"hms/src/config"
	"hms/src/db"
	"hms/src/models"
	"hms/src/types"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type BillingSuite struct {
	suite.Suite
	db *gorm.DB
}

func (s *BillingSuite) SetupTest() {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	sqlDB, err := gdb.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(gdb.AutoMigrate(
		&models.User{},
		&models.Invoice{},
		&models.Notification{},
	))
	db.NewDB(gdb)
	s.db = gdb
	config.NewConfig(&config.Config{Currency: "INR"})
}

func (s *BillingSuite) seedStudent() *models.User {
	user := models.User{Username: "ravi", Email: "ravi@example.com", Role: types.ROLE_STUDENT}
	s.Require().NoError(s.db.Create(&user).Error)
	return &user
}

func (s *BillingSuite) TestCreateChargePendingInvoice() {
	student := s.seedStudent()
	due := "2026-10-01"
	invoice, err := CreateCharge(&types.CreateChargeRequestBody{
		StudentID:   student.ID,
		Type:        "Fine",
		Description: "Late night entry",
		Amount:      500,
		DueDate:     &due,
	})
	s.Require().NoError(err)
	s.Equal(types.INVOICE_PENDING, invoice.Status)
	s.Equal(500.0, invoice.TotalAmount)
	s.Require().Len(invoice.Items, 1)
	s.Equal("Late night entry", invoice.Items[0].Description)
	s.Require().NotNil(invoice.DueDate)
	s.Equal("2026-10-01", invoice.DueDate.Format("2006-01-02"))

	var notification models.Notification
	s.Require().NoError(s.db.Where("user_id = ?", student.ID).First(&notification).Error)
	s.Equal(types.NOTIFY_FINE, notification.Type)
}

func (s *BillingSuite) TestCreateChargeUnknownStudent() {
	_, err := CreateCharge(&types.CreateChargeRequestBody{
		StudentID:   999,
		Type:        "Service",
		Description: "Laundry",
		Amount:      100,
	})
	s.Error(err)
}

func (s *BillingSuite) TestApplyCreditNegativePaidInvoice() {
	student := s.seedStudent()
	invoice, err := ApplyCredit(&types.ApplyCreditRequestBody{
		StudentID:   student.ID,
		Description: "Merit scholarship",
		Amount:      1500,
	})
	s.Require().NoError(err)
	s.Equal(types.INVOICE_PAID, invoice.Status)
	s.Equal(-1500.0, invoice.TotalAmount)
	s.NotNil(invoice.PaidAt)
	s.Require().Len(invoice.Items, 1)
	s.Equal(-1500.0, invoice.Items[0].Amount)
}

func (s *BillingSuite) TestSweepOverdueInvoices() {
	student := s.seedStudent()
	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	paidAt := time.Now()

	lapsed := models.Invoice{InvoiceID: "FIN-1", StudentID: student.ID, TotalAmount: 500, Status: types.INVOICE_PENDING, DueDate: &past}
	upcoming := models.Invoice{InvoiceID: "FIN-2", StudentID: student.ID, TotalAmount: 300, Status: types.INVOICE_PENDING, DueDate: &future}
	settled := models.Invoice{InvoiceID: "FIN-3", StudentID: student.ID, TotalAmount: 200, Status: types.INVOICE_PAID, DueDate: &past, PaidAt: &paidAt}
	s.Require().NoError(s.db.Create(&lapsed).Error)
	s.Require().NoError(s.db.Create(&upcoming).Error)
	s.Require().NoError(s.db.Create(&settled).Error)

	SweepOverdueInvoices()

	var flipped, untouched, closed models.Invoice
	s.Require().NoError(s.db.First(&flipped, lapsed.ID).Error)
	s.Equal(types.INVOICE_OVERDUE, flipped.Status)
	s.Require().NoError(s.db.First(&untouched, upcoming.ID).Error)
	s.Equal(types.INVOICE_PENDING, untouched.Status)
	s.Require().NoError(s.db.First(&closed, settled.ID).Error)
	s.Equal(types.INVOICE_PAID, closed.Status)

	var notifications int64
	s.db.Model(&models.Notification{}).Where("user_id = ?", student.ID).Count(&notifications)
	s.Equal(int64(1), notifications)
}

func TestBillingSuite(t *testing.T) {
	suite.Run(t, new(BillingSuite))
}

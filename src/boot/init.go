package boot

import (
	"log"
	"time"

	"hms/src/db"
	"hms/src/lib"
	"hms/src/models"
	"hms/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
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
		&models.Announcement{},
		&models.Query{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	// Backstop for the application-level single-active-booking check.
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_one_active
			 ON bookings (student_id)
			 WHERE status IN ('pending', 'active', 'checked_in')`,
		).Error; err != nil {
			log.Printf("Could not create active booking index: %s\n", err.Error())
		}
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(utils.SweepOverdueInvoices, 24*time.Hour)
	if err != nil {
		log.Printf("Error scheduling overdue sweep: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled overdue invoice sweep: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("Error shutting down Scheduler: %s\n", err.Error())
	}
}

package main

import (
	"errors"
	"net/http"

	"hms/src/db"
	"hms/src/models"
	"hms/src/types"
	"hms/src/utils"

	"github.com/gin-gonic/gin"
)

func residentStatusError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrBookingNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrNotAllowed):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrInvalidBookingStatus):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func residentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	resident := g.Group("/resident")
	resident.
		GET("/my-invoices", func(ctx *gin.Context) {
			studentId := ctx.GetUint("id")
			db := db.GetDb()
			var invoices []models.Invoice
			if err := db.
				Where("student_id = ?", studentId).
				Order("created_at desc").
				Find(&invoices).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": invoices})
		}).
		GET("/dashboard", func(ctx *gin.Context) {
			studentId := ctx.GetUint("id")
			db := db.GetDb()
			var booking models.Booking
			hasBooking := db.
				Preload("Room").
				Where("student_id = ? AND status IN ?", studentId, []types.BookingStatus{types.BOOKING_PENDING, types.BOOKING_ACTIVE, types.BOOKING_CHECKED_IN}).
				First(&booking).Error == nil
			var pendingDue float64
			db.Model(&models.Invoice{}).
				Where("student_id = ? AND status IN ?", studentId, []types.InvoiceStatus{types.INVOICE_PENDING, types.INVOICE_OVERDUE}).
				Select("COALESCE(SUM(total_amount), 0)").
				Scan(&pendingDue)
			var unread int64
			db.Model(&models.Notification{}).
				Where("user_id = ? AND read = ?", studentId, false).
				Count(&unread)
			data := gin.H{
				"has_booking":          hasBooking,
				"pending_due":          pendingDue,
				"unread_notifications": unread,
			}
			if hasBooking {
				data["booking"] = booking
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data})
		})
	return g
}

func adminResidentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	resident := g.Group("/resident")
	resident.
		POST("/check-in/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actor := utils.ActorFromContext(ctx.GetUint("id"), ctx.GetString("role"))
			booking, err := utils.CheckInResident(actor, params.ID)
			if err != nil {
				residentStatusError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Resident checked in", "data": booking})
		}).
		POST("/check-out/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actor := utils.ActorFromContext(ctx.GetUint("id"), ctx.GetString("role"))
			booking, err := utils.CheckOutResident(actor, params.ID)
			if err != nil {
				residentStatusError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Resident checked out", "data": booking})
		}).
		GET("/", func(ctx *gin.Context) {
			db := db.GetDb()
			var bookings []models.Booking
			if err := db.
				Preload("Student").
				Preload("Room").
				Where("status = ?", types.BOOKING_CHECKED_IN).
				Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		})
	return g
}

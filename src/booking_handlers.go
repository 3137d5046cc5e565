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

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	bookings := g.Group("/bookings")
	bookings.
		GET("/status", func(ctx *gin.Context) {
			studentId := ctx.GetUint("id")
			db := db.GetDb()
			var count int64
			db.Model(&models.Booking{}).
				Where("student_id = ? AND status IN ?", studentId, []types.BookingStatus{types.BOOKING_PENDING, types.BOOKING_ACTIVE, types.BOOKING_CHECKED_IN}).
				Count(&count)
			ctx.JSON(http.StatusOK, gin.H{"has_booking": count > 0})
		}).
		GET("/my", func(ctx *gin.Context) {
			studentId := ctx.GetUint("id")
			db := db.GetDb()
			var booking models.Booking
			if err := db.
				Preload("Room").
				Preload("Room.Floor").
				Preload("Room.Floor.Block").
				Where("student_id = ? AND status IN ?", studentId, []types.BookingStatus{types.BOOKING_PENDING, types.BOOKING_ACTIVE, types.BOOKING_CHECKED_IN}).
				First(&booking).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "No active booking"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actor := utils.ActorFromContext(ctx.GetUint("id"), ctx.GetString("role"))
			if err := utils.CancelBooking(actor, params.ID); err != nil {
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
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking canceled"})
		})
	return g
}

func adminBookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	bookings := g.Group("/bookings")
	bookings.
		GET("/", func(ctx *gin.Context) {
			db := db.GetDb()
			var bookings []models.Booking
			query := db.
				Preload("Student").
				Preload("Room").
				Order("created_at desc")
			if status := ctx.Query("status"); status != "" {
				query = query.Where("status = ?", status)
			}
			if err := query.Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		})
	return g
}

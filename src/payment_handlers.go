package main

import (
	"errors"
	"log"
	"net/http"

	"hms/src/types"
	"hms/src/utils"

	"github.com/gin-gonic/gin"
)

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	payments := g.Group("/payments")
	payments.
		POST("/checkout", func(ctx *gin.Context) {
			var body types.CheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			studentId := ctx.GetUint("id")
			log.Printf("Initializing checkout for room %d plan %d by student %d\n", body.RoomID, body.PlanID, studentId)
			order, err := utils.InitiateCheckout(ctx.Request.Context(), studentId, body.RoomID, body.PlanID)
			if err != nil {
				switch {
				case errors.Is(err, types.ErrRoomNotFound), errors.Is(err, types.ErrPlanNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.Is(err, types.ErrRoomNoLongerAvailable):
					ctx.JSON(http.StatusConflict, gin.H{"error": "Room is full"})
				case errors.Is(err, types.ErrAlreadyBooked):
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				case errors.Is(err, types.ErrGatewayUnavailable):
					ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway unavailable, please retry"})
				default:
					log.Printf("Checkout error: %s\n", err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Payment init failed"})
				}
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"order_id": order.OrderID,
				"amount":   order.Amount,
				"currency": order.Currency,
				"room":     order.Room,
			})
		}).
		POST("/verify", func(ctx *gin.Context) {
			var body types.VerifyPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actor := utils.ActorFromContext(ctx.GetUint("id"), ctx.GetString("role"))
			bookingId, err := utils.VerifyAndCommit(actor, &body)
			if err != nil {
				switch {
				case errors.Is(err, types.ErrInvalidPaymentSignature):
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Payment Signature"})
				case errors.Is(err, types.ErrRoomNotFound), errors.Is(err, types.ErrPlanNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.Is(err, types.ErrRoomNoLongerAvailable), errors.Is(err, types.ErrAlreadyBooked):
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				case errors.Is(err, types.ErrPersistenceFailure):
					// Payment went through; never report it as failed.
					ctx.JSON(http.StatusAccepted, gin.H{
						"message":    "Payment received, booking pending confirmation",
						"order_id":   body.OrderID,
						"payment_id": body.PaymentID,
					})
				default:
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				}
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Booking Successful", "booking_id": bookingId})
		})
	return g
}

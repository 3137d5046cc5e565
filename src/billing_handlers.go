package main

import (
	"log"
	"net/http"

	"hms/src/db"
	"hms/src/models"
	"hms/src/types"
	"hms/src/utils"

	"github.com/gin-gonic/gin"
)

func billingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	billing := g.Group("/billing")
	billing.
		GET("/my-pending", func(ctx *gin.Context) {
			studentId := ctx.GetUint("id")
			db := db.GetDb()
			var invoices []models.Invoice
			if err := db.
				Where("student_id = ? AND status IN ?", studentId, []types.InvoiceStatus{types.INVOICE_PENDING, types.INVOICE_OVERDUE}).
				Order("created_at desc").
				Find(&invoices).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			var total float64
			for _, inv := range invoices {
				total += inv.TotalAmount
			}
			ctx.JSON(http.StatusOK, gin.H{"data": invoices, "total_due": total})
		})
	return g
}

func adminBillingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	billing := g.Group("/billing")
	billing.
		POST("/create-charge", func(ctx *gin.Context) {
			var body types.CreateChargeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invoice, err := utils.CreateCharge(&body)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": invoice})
		}).
		POST("/apply-discount", func(ctx *gin.Context) {
			var body types.ApplyCreditRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invoice, err := utils.ApplyCredit(&body)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": invoice})
		}).
		GET("/history/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var invoices []models.Invoice
			if err := db.
				Where("student_id = ?", params.ID).
				Order("created_at desc").
				Find(&invoices).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": invoices})
		}).
		GET("/all-invoices", func(ctx *gin.Context) {
			db := db.GetDb()
			var invoices []models.Invoice
			query := db.Preload("Student").Order("created_at desc")
			if status := ctx.Query("status"); status != "" {
				query = query.Where("status = ?", status)
			}
			if err := query.Find(&invoices).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": invoices})
		}).
		POST("/send-reminder", func(ctx *gin.Context) {
			var body types.SendReminderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			utils.CreateNotification(body.StudentID, types.NOTIFY_PAYMENT, "Reminder: you have pending dues. Please clear them at the earliest.")
			go func() {
				if err := utils.SendDueReminder(body.Email, body.Name, body.Amount); err != nil {
					log.Printf("Could not send due reminder to %s: %s\n", body.Email, err.Error())
				}
			}()
			ctx.JSON(http.StatusOK, gin.H{"message": "Reminder sent"})
		})
	return g
}

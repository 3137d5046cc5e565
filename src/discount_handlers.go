package main

import (
	"net/http"

	"hms/src/db"
	"hms/src/models"
	"hms/src/types"

	"github.com/gin-gonic/gin"
)

func discountHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	discounts := g.Group("/discounts")
	discounts.
		GET("/", func(ctx *gin.Context) {
			db := db.GetDb()
			var discounts []models.Discount
			query := db.Order("created_at desc")
			if ctx.Query("active") == "true" {
				query = query.Where("is_active = ?", true)
			}
			if err := query.Find(&discounts).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": discounts})
		}).
		POST("/", func(ctx *gin.Context) {
			var body types.CreateDiscountRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			discount := models.Discount{
				Name:           body.Name,
				Description:    body.Description,
				Type:           types.DiscountType(body.Type),
				Value:          body.Value,
				TargetCategory: body.TargetCategory,
				IsActive:       true,
			}
			if err := db.Create(&discount).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": discount})
		}).
		PUT("/:id/deactivate", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var discount models.Discount
			if err := db.First(&discount, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
				return
			}
			if err := db.Model(&discount).Update("is_active", false).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			invalidateStructureCache()
			ctx.JSON(http.StatusOK, gin.H{"message": "Discount deactivated"})
		})
	return g
}

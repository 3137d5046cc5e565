package main

import (
	"net/http"

	"hms/src/db"
	"hms/src/models"
	"hms/src/types"

	"github.com/gin-gonic/gin"
)

func notificationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	notifications := g.Group("/notifications")
	notifications.
		GET("/", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var notifications []models.Notification
			if err := db.
				Where("user_id = ?", userId).
				Order("created_at desc").
				Limit(50).
				Find(&notifications).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications})
		}).
		PUT("/:id/read", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			res := db.Model(&models.Notification{}).
				Where("id = ? AND user_id = ?", params.ID, userId).
				Update("read", true)
			if res.Error != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
		}).
		PUT("/read-all", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			if err := db.Model(&models.Notification{}).
				Where("user_id = ? AND read = ?", userId, false).
				Update("read", true).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "All marked as read"})
		})
	return g
}

package main

import (
	"fmt"
	"net/http"
	"time"

	"hms/src/db"
	"hms/src/models"
	"hms/src/types"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

func announcementHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	announcements := g.Group("/announcements")
	announcements.
		GET("/", func(ctx *gin.Context) {
			db := db.GetDb()
			var announcements []models.Announcement
			if err := db.
				Order("created_at desc").
				Limit(20).
				Find(&announcements).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": announcements})
		}).
		GET("/:slug", func(ctx *gin.Context) {
			db := db.GetDb()
			var announcement models.Announcement
			if err := db.Where("slug = ?", ctx.Param("slug")).First(&announcement).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": announcement})
		})
	return g
}

func managerAnnouncementHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	announcements := g.Group("/announcements")
	announcements.
		POST("/", func(ctx *gin.Context) {
			var body types.CreateAnnouncementRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			announcement := models.Announcement{
				Title:    body.Title,
				Slug:     fmt.Sprintf("%s-%d", slug.Make(body.Title), time.Now().UnixMilli()),
				Content:  body.Content,
				PostedBy: ctx.GetUint("id"),
			}
			if err := db.Create(&announcement).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": announcement})
		}).
		DELETE("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Delete(&models.Announcement{}, params.ID)
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
		})
	return g
}

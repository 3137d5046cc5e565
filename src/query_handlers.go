package main

import (
	"net/http"

	"hms/src/db"
	"hms/src/models"
	"hms/src/types"
	"hms/src/utils"

	"github.com/gin-gonic/gin"
)

func queryHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	queries := g.Group("/queries")
	queries.
		POST("/", func(ctx *gin.Context) {
			var body types.CreateQueryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			query := models.Query{
				StudentID:   ctx.GetUint("id"),
				Subject:     body.Subject,
				Description: body.Description,
				Category:    body.Category,
				Status:      types.QUERY_OPEN,
			}
			if err := db.Create(&query).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": query})
		}).
		GET("/my", func(ctx *gin.Context) {
			db := db.GetDb()
			var queries []models.Query
			if err := db.
				Where("student_id = ?", ctx.GetUint("id")).
				Order("created_at desc").
				Find(&queries).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": queries})
		})
	return g
}

func managerQueryHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	queries := g.Group("/queries")
	queries.
		GET("/", func(ctx *gin.Context) {
			db := db.GetDb()
			var queries []models.Query
			query := db.Preload("Student").Order("created_at desc")
			if status := ctx.Query("status"); status != "" {
				query = query.Where("status = ?", status)
			}
			if err := query.Find(&queries).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": queries})
		}).
		PUT("/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body struct {
				Status string `json:"status" binding:"required,oneof=Open 'In Progress' Resolved"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var ticket models.Query
			if err := db.First(&ticket, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Query not found"})
				return
			}
			if err := db.Model(&ticket).Update("status", types.QueryStatus(body.Status)).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if types.QueryStatus(body.Status) == types.QUERY_RESOLVED {
				utils.CreateNotification(ticket.StudentID, types.NOTIFY_GENERAL, "Your maintenance query has been resolved: "+ticket.Subject)
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Query updated"})
		})
	return g
}

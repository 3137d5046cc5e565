package main

import (
	"net/http"

	"hms/src/db"
	"hms/src/models"
	"hms/src/types"

	"github.com/gin-gonic/gin"
)

func structureHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	blocks := g.Group("/blocks")
	blocks.
		GET("/", func(ctx *gin.Context) {
			db := db.GetDb()
			var blocks []models.Block
			if err := db.Preload("Floors").Order("name asc").Find(&blocks).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": blocks})
		}).
		POST("/", func(ctx *gin.Context) {
			var body types.CreateBlockRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			block := models.Block{Name: body.Name}
			if err := db.Create(&block).Error; err != nil {
				ctx.JSON(http.StatusConflict, gin.H{"error": "Block already exists"})
				return
			}
			invalidateStructureCache()
			ctx.JSON(http.StatusCreated, gin.H{"data": block})
		})

	floors := g.Group("/floors")
	floors.
		GET("/", func(ctx *gin.Context) {
			db := db.GetDb()
			var floors []models.Floor
			query := db.Preload("Rooms").Order("number asc")
			if block := ctx.Query("block"); block != "" {
				query = query.Where("block_id = ?", block)
			}
			if err := query.Find(&floors).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": floors})
		}).
		POST("/", func(ctx *gin.Context) {
			var body types.CreateFloorRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var block models.Block
			if err := db.First(&block, body.BlockID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
				return
			}
			floor := models.Floor{BlockID: block.ID, Name: body.Name, Number: body.Number}
			if err := db.Create(&floor).Error; err != nil {
				ctx.JSON(http.StatusConflict, gin.H{"error": "Floor already exists in this block"})
				return
			}
			invalidateStructureCache()
			ctx.JSON(http.StatusCreated, gin.H{"data": floor})
		})
	return g
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"hms/src/db"
	"hms/src/lib"
	"hms/src/models"
	"hms/src/types"

	"github.com/gin-gonic/gin"
)

const structureCacheKey = "hostel:structure"
const structureCacheTTL = 5 * time.Minute

func loadStructure() ([]models.Block, error) {
	db := db.GetDb()
	var blocks []models.Block
	err := db.
		Preload("Floors").
		Preload("Floors.Rooms").
		Preload("Floors.Rooms.PricingPlans").
		Preload("Floors.Rooms.ActiveDiscount").
		Order("name asc").
		Find(&blocks).Error
	return blocks, err
}

func invalidateStructureCache() {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	cctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rd.Del(cctx, structureCacheKey).Err(); err != nil {
		log.Printf("[cache] Could not invalidate structure: %s\n", err.Error())
	}
}

func deriveBathroomType(roomType types.RoomType) types.BathroomType {
	if roomType == types.ROOM_AC {
		return types.BATHROOM_ATTACHED
	}
	return types.BATHROOM_COMMON
}

func plansFromBody(bodies []types.PricingPlanBody) []models.PricingPlan {
	plans := make([]models.PricingPlan, 0, len(bodies))
	for _, p := range bodies {
		plans = append(plans, models.PricingPlan{
			Duration: p.Duration,
			Unit:     types.PlanUnit(p.Unit),
			Price:    p.Price,
		})
	}
	return plans
}

func roomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	rooms := g.Group("/rooms")
	rooms.
		GET("/structure", func(ctx *gin.Context) {
			if rd := lib.GetRedisClient(); rd != nil {
				cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
				defer cancel()
				if cached, err := rd.Get(cctx, structureCacheKey).Result(); err == nil {
					var blocks []models.Block
					if err := json.Unmarshal([]byte(cached), &blocks); err == nil {
						ctx.JSON(http.StatusOK, gin.H{"data": blocks, "cached": true})
						return
					}
				}
			}
			blocks, err := loadStructure()
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if rd := lib.GetRedisClient(); rd != nil {
				if raw, err := json.Marshal(blocks); err == nil {
					cctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					if err := rd.Set(cctx, structureCacheKey, raw, structureCacheTTL).Err(); err != nil {
						log.Printf("[cache] Could not store structure: %s\n", err.Error())
					}
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": blocks})
		}).
		GET("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var room models.Room
			if err := db.
				Preload("PricingPlans").
				Preload("ActiveDiscount").
				Preload("Occupants").
				First(&room, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		})
	return g
}

func adminRoomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	rooms := g.Group("/rooms")
	rooms.
		POST("/add", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var floor models.Floor
			if err := db.First(&floor, body.FloorID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Floor not found"})
				return
			}
			room := models.Room{
				FloorID:      floor.ID,
				RoomNumber:   body.RoomNumber,
				Capacity:     body.Capacity,
				Type:         types.RoomType(body.Type),
				BathroomType: deriveBathroomType(types.RoomType(body.Type)),
				IsStaffRoom:  body.IsStaffRoom,
				StaffRole:    body.StaffRole,
				PricingPlans: plansFromBody(body.PricingPlans),
			}
			if err := db.Create(&room).Error; err != nil {
				ctx.JSON(http.StatusConflict, gin.H{"error": "Room already exists on this floor"})
				return
			}
			invalidateStructureCache()
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		POST("/bulk-create", func(ctx *gin.Context) {
			var body types.BulkCreateRoomsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var floor models.Floor
			if err := db.First(&floor, body.FloorID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Floor not found"})
				return
			}
			rooms := make([]models.Room, 0, body.EndNumber-body.StartNumber+1)
			for n := body.StartNumber; n <= body.EndNumber; n++ {
				rooms = append(rooms, models.Room{
					FloorID:      floor.ID,
					RoomNumber:   fmt.Sprintf("%d", n),
					Capacity:     body.Capacity,
					Type:         types.RoomType(body.Type),
					BathroomType: deriveBathroomType(types.RoomType(body.Type)),
					PricingPlans: plansFromBody(body.PricingPlans),
				})
			}
			if err := db.Create(&rooms).Error; err != nil {
				ctx.JSON(http.StatusConflict, gin.H{"error": "One or more rooms already exist on this floor"})
				return
			}
			invalidateStructureCache()
			ctx.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("%d rooms created", len(rooms)), "data": rooms})
		}).
		PUT("/apply-discount/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ApplyRoomDiscountRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var room models.Room
			if err := db.First(&room, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
				return
			}
			if body.DiscountID != nil {
				var discount models.Discount
				if err := db.First(&discount, *body.DiscountID).Error; err != nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
					return
				}
			}
			// New checkouts see the new price immediately; in-flight orders
			// keep the amount captured when the order was created.
			if err := db.Model(&room).Update("active_discount_id", body.DiscountID).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			invalidateStructureCache()
			ctx.JSON(http.StatusOK, gin.H{"message": "Room discount updated"})
		}).
		DELETE("/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var room models.Room
			if err := db.First(&room, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
				return
			}
			if room.OccupantCount > 0 {
				ctx.JSON(http.StatusConflict, gin.H{"error": "Room has occupants"})
				return
			}
			if err := db.Delete(&room).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			invalidateStructureCache()
			ctx.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
		})
	return g
}

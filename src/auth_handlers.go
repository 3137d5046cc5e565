package main

import (
	"net/http"
	"os"

	"hms/src/db"
	"hms/src/models"
	"hms/src/utils"

	"github.com/gin-gonic/gin"
)

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	auth := apiv1.Group("/auth")
	auth.
		POST("/register", func(ctx *gin.Context) {
			var body struct {
				Username string `json:"username" binding:"required"`
				Email    string `json:"email" binding:"required,email"`
				Gender   string `json:"gender,omitempty"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			user := models.User{
				Username: body.Username,
				Email:    body.Email,
				Gender:   body.Gender,
			}
			if err := db.Create(&user).Error; err != nil {
				ctx.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": user})
		}).
		POST("/token", func(ctx *gin.Context) {
			// Dev convenience only. Production tokens come from the
			// identity provider in front of this API.
			if os.Getenv("API_ENV") != "local" {
				ctx.Status(http.StatusNotFound)
				return
			}
			var body struct {
				Email string `json:"email" binding:"required,email"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var user models.User
			if err := db.Where("email = ?", body.Email).First(&user).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			token, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"token": token})
		})
	return apiv1
}

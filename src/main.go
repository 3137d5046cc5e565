package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"

	"hms/src/boot"
	"hms/src/middlewares"
	"hms/src/types"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

var planUnitValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	unit, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch types.PlanUnit(unit) {
	case types.PLAN_UNIT_MONTHS, types.PLAN_UNIT_YEAR:
		return true
	}
	return false
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("planunit", planUnitValidatorFunc)
	}
}

func registerRoutes(router *gin.Engine) {
	guestAuthRoutes(router)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	{
		paymentHandlers(authorized)
		bookingHandlers(authorized)
		residentHandlers(authorized)
		roomHandlers(authorized)
		billingHandlers(authorized)
		notificationHandlers(authorized)
		announcementHandlers(authorized)
		queryHandlers(authorized)
	}

	admin := router.Group(apiPrefix)
	admin.Use(middlewares.AuthMiddleware, middlewares.AdminOnly)
	{
		adminBookingHandlers(admin)
		adminResidentHandlers(admin)
		adminRoomHandlers(admin)
		adminBillingHandlers(admin)
		structureHandlers(admin)
		discountHandlers(admin)
	}

	manager := router.Group(apiPrefix)
	manager.Use(middlewares.AuthMiddleware, middlewares.ManagerOnly)
	{
		managerAnnouncementHandlers(manager)
		managerQueryHandlers(manager)
	}
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()
	boot.InitScheduler()
	defer boot.StopScheduler()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	registerValidators()
	registerRoutes(router)

	if err := router.Run(":9090"); err != nil {
		log.Fatalf("Could not start server: %s\n", err.Error())
	}
}

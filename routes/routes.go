package routes

import (
	"os"

	"github.com/aadijha14/NutritionApp/controllers"
	"github.com/aadijha14/NutritionApp/middlewares"
	"github.com/aadijha14/NutritionApp/services"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Planner     *services.PlannerService
	Logs        *services.MealLogService
	Restaurants *services.RestaurantService
	Analytics   *services.AnalyticsService
	Hub         *services.RealtimeHub
	Nutrition   services.NutritionClient
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	planCtl := controllers.NewPlanController(d.Planner)
	logCtl := controllers.NewMealLogController(d.Logs, d.Hub, d.Nutrition)
	restCtl := controllers.NewRestaurantController(d.Restaurants)
	analyticsCtl := controllers.NewAnalyticsController(d.Analytics)
	rtCtl := controllers.NewRealtimeController(d.Hub)

	auth := middlewares.AuthMiddleware()

	plan := r.Group("/plan")
	plan.Use(auth)
	{
		plan.GET("/today", planCtl.GetPlan)
		plan.GET("/remaining", planCtl.Remaining)
		plan.POST("/generate", planCtl.Generate)
		plan.POST("/save", planCtl.Save)
		plan.POST("/cancel", planCtl.Cancel)
		plan.PATCH("/slots/:slotId/time", planCtl.UpdateTime)
		plan.POST("/slots/:slotId/location", planCtl.ToggleLocation)
		plan.POST("/slots/:slotId/swap", planCtl.Swap)
		plan.POST("/slots/:slotId/log", planCtl.LogSlot)
	}

	meals := r.Group("/meals")
	meals.Use(auth)
	{
		meals.POST("/logs", logCtl.QuickLog)
		meals.GET("/logs/today", logCtl.Today)
		meals.GET("/logs", logCtl.History)
		meals.GET("/home-recipes", logCtl.HomeRecipes)
		meals.GET("/nutrition", logCtl.LookupNutrition)
	}

	restaurants := r.Group("/restaurants")
	restaurants.Use(auth)
	{
		restaurants.GET("/nearby", restCtl.Nearby)
		restaurants.GET("/nearby/menu", restCtl.NearbyMenu)
		restaurants.GET("/favorites", restCtl.Favorites)
		restaurants.POST("/favorites/:placeId", restCtl.Favorite)
		restaurants.DELETE("/favorites/:placeId", restCtl.Unfavorite)
	}

	user := r.Group("/user")
	user.Use(auth)
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	analytics := r.Group("/analytics")
	analytics.Use(auth)
	{
		analytics.GET("/summary", analyticsCtl.Summary)
	}

	r.GET("/ws", auth, rtCtl.EventsWS)

	if os.Getenv("DEV_ROUTES") == "true" {
		dev := controllers.NewDevController()
		r.POST("/dev/token", dev.MintToken)
	}

	return r
}

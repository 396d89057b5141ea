package main

import (
	"github.com/aadijha14/NutritionApp/config"
	"github.com/aadijha14/NutritionApp/routes"
	"github.com/aadijha14/NutritionApp/services"
)

func main() {
	config.InitDB()

	hub := services.NewRealtimeHub()
	logs := services.NewMealLogService(config.DB)
	restaurants := services.NewRestaurantService(config.DB)
	chat := services.NewDeepSeekService()
	nutrition := services.NewEdamamService()
	planner := services.NewPlannerService(config.DB, chat, restaurants, logs, hub)
	analytics := services.NewAnalyticsService(config.DB)

	r := routes.SetupRouter(routes.Deps{
		Planner:     planner,
		Logs:        logs,
		Restaurants: restaurants,
		Analytics:   analytics,
		Hub:         hub,
		Nutrition:   nutrition,
	})
	r.Run(":8080")
}

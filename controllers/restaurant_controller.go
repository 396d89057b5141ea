package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aadijha14/NutritionApp/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RestaurantController struct {
	Restaurants *services.RestaurantService
}

func NewRestaurantController(rs *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Restaurants: rs}
}

func floatQuery(c *gin.Context, name string) (float64, bool) {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	return v, err == nil
}

// Nearby lists the restaurants (with menus) within ?radius km of ?lat,?lng.
func (rc *RestaurantController) Nearby(c *gin.Context) {
	lat, okLat := floatQuery(c, "lat")
	lng, okLng := floatQuery(c, "lng")
	if !okLat || !okLng {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query params are required"})
		return
	}
	radius, _ := floatQuery(c, "radius")

	restaurants, err := rc.Restaurants.Nearby(lat, lng, radius)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// NearbyMenu returns the flattened one-record-per-dish list used to build
// generation prompts; handy for debugging what the model is offered.
func (rc *RestaurantController) NearbyMenu(c *gin.Context) {
	lat, okLat := floatQuery(c, "lat")
	lng, okLng := floatQuery(c, "lng")
	if !okLat || !okLng {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query params are required"})
		return
	}
	radius, _ := floatQuery(c, "radius")

	items, err := rc.Restaurants.NearbyMenuItems(lat, lng, radius)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Favorite stars the restaurant with the given place id for the caller.
func (rc *RestaurantController) Favorite(c *gin.Context) {
	r, err := rc.Restaurants.Favorite(c.GetUint("userID"), c.Param("placeId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (rc *RestaurantController) Unfavorite(c *gin.Context) {
	if err := rc.Restaurants.Unfavorite(c.GetUint("userID"), c.Param("placeId")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (rc *RestaurantController) Favorites(c *gin.Context) {
	favorites, err := rc.Restaurants.Favorites(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, favorites)
}

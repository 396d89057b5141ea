package controllers

import (
	"net/http"
	"time"

	"github.com/aadijha14/NutritionApp/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(a *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: a}
}

// Summary aggregates ?from..?to (YYYY-MM-DD); defaults to the last 7 days.
func (ac *AnalyticsController) Summary(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -6)

	if q := c.Query("from"); q != "" {
		t, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date, use YYYY-MM-DD"})
			return
		}
		from = t
	}
	if q := c.Query("to"); q != "" {
		t, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date, use YYYY-MM-DD"})
			return
		}
		to = t
	}

	summary, err := ac.Analytics.Summary(c.Request.Context(), c.GetUint("userID"), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/aadijha14/NutritionApp/services"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	Planner *services.PlannerService
}

func NewPlanController(p *services.PlannerService) *PlanController {
	return &PlanController{Planner: p}
}

// dateKeyParam resolves the plan day: ?date=YYYY-MM-DD, defaulting to today.
func dateKeyParam(c *gin.Context) string {
	if d := c.Query("date"); d != "" {
		return d
	}
	return services.DateKey(time.Now())
}

// planError maps planner failures onto responses. Busy plans and exhausted
// budgets are conflicts the user must resolve; empty or discarded
// generations are retryable and must never look like a successful plan.
func planError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlanBusy),
		errors.Is(err, services.ErrSlotBusy),
		errors.Is(err, services.ErrNoCaloriesRemaining):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": false})
	case errors.Is(err, services.ErrEmptyPlan),
		errors.Is(err, services.ErrPlanDiscarded):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (pc *PlanController) GetPlan(c *gin.Context) {
	view, err := pc.Planner.Plan(c.GetUint("userID"), dateKeyParam(c))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (pc *PlanController) Generate(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, requested, err := pc.Planner.Generate(c.Request.Context(), c.GetUint("userID"), dateKeyParam(c), req)
	if err != nil {
		planError(c, err)
		return
	}
	// planned may be lower than requested when some records were malformed;
	// the client surfaces the shortfall instead of pretending the day is
	// fully planned.
	c.JSON(http.StatusOK, gin.H{
		"plan":      view,
		"requested": requested,
		"planned":   len(view.Slots),
	})
}

func (pc *PlanController) Save(c *gin.Context) {
	view, err := pc.Planner.Save(c.GetUint("userID"), dateKeyParam(c))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (pc *PlanController) UpdateTime(c *gin.Context) {
	var body struct {
		Time string `json:"time"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := pc.Planner.UpdateTime(c.GetUint("userID"), dateKeyParam(c), c.Param("slotId"), body.Time)
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (pc *PlanController) ToggleLocation(c *gin.Context) {
	view, err := pc.Planner.ToggleLocation(c.GetUint("userID"), dateKeyParam(c), c.Param("slotId"))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (pc *PlanController) Swap(c *gin.Context) {
	var body struct {
		Reason   string  `json:"reason"`
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
		RadiusKm float64 `json:"radiusKm"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, swapped, err := pc.Planner.Swap(
		c.Request.Context(), c.GetUint("userID"), dateKeyParam(c), c.Param("slotId"), body.Reason,
		services.GenerateRequest{Lat: body.Lat, Lng: body.Lng, RadiusKm: body.RadiusKm},
	)
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": view, "swapped": swapped})
}

func (pc *PlanController) LogSlot(c *gin.Context) {
	view, logged, err := pc.Planner.Complete(c.GetUint("userID"), dateKeyParam(c), c.Param("slotId"))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": view, "logged": logged})
}

func (pc *PlanController) Remaining(c *gin.Context) {
	remaining, err := pc.Planner.Remaining(c.GetUint("userID"), dateKeyParam(c))
	if err != nil {
		planError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"remaining": remaining})
}

func (pc *PlanController) Cancel(c *gin.Context) {
	pc.Planner.Abandon(c.GetUint("userID"), dateKeyParam(c))
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"metrobook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/times?interval_minutes=&all_day= — bookable slots for today.
func GetTimes(c *gin.Context) {
	interval := 0
	if raw := c.Query("interval_minutes"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			interval = v
		}
	}
	allDay := strings.EqualFold(c.Query("all_day"), "true")

	svc := services.ScheduleService{}
	c.JSON(http.StatusOK, svc.DaySlots(interval, allDay, time.Now()))
}

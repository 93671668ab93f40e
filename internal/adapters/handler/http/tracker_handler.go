package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
	"github.com/comitanigiacomo/ramadan-tracker/internal/core/services"
)

type TrackerHandler struct {
	svc *services.Tracker
}

func NewTrackerHandler(svc *services.Tracker) *TrackerHandler {
	return &TrackerHandler{svc: svc}
}

type pointerRequest struct {
	Type        string  `json:"type" binding:"required" example:"down"`
	X           float64 `json:"x" example:"120.5"`
	Y           float64 `json:"y" example:"48"`
	TimestampMs *int64  `json:"timestamp_ms,omitempty" example:"1740855600000"`
}

type intentRequest struct {
	Intent string `json:"intent" binding:"required" example:"tap"`
}

type shiftRequest struct {
	Delta int `json:"delta" binding:"required" example:"-1"`
}

type intentResponse struct {
	Intent   domain.Intent   `json:"intent" swaggertype:"string" example:"tap"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

type yearsResponse struct {
	Years    []int              `json:"years"`
	Overview []domain.YearStats `json:"overview"`
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tracker", h.GetSnapshot)
	router.GET("/years", h.ListYears)

	days := router.Group("/days/:day")
	{
		days.POST("/pointer", h.DayPointer)
		days.POST("/intent", h.DayIntent)
	}

	year := router.Group("/year")
	{
		year.POST("/pointer", h.YearPointer)
		year.POST("/shift", h.ShiftYear)
	}
}

// GetSnapshot godoc
// @Summary  Current tracker state
// @Tags     tracker
// @Produce  json
// @Success  200 {object} domain.Snapshot
// @Router   /tracker [get]
func (h *TrackerHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot(c.Request.Context()))
}

// ListYears godoc
// @Summary  Years with a record and their summaries
// @Tags     tracker
// @Produce  json
// @Success  200 {object} yearsResponse
// @Router   /years [get]
func (h *TrackerHandler) ListYears(c *gin.Context) {
	overview := h.svc.Overview()
	years := make([]int, 0, len(overview))
	for _, s := range overview {
		years = append(years, s.Year)
	}
	c.JSON(http.StatusOK, yearsResponse{Years: years, Overview: overview})
}

// DayPointer godoc
// @Summary  Feed one pointer event of a day cell
// @Tags     gestures
// @Accept   json
// @Produce  json
// @Param    day  path int            true "Day number (1-30)"
// @Param    body body pointerRequest true "Pointer event"
// @Success  200 {object} intentResponse
// @Failure  400 {object} map[string]string
// @Router   /days/{day}/pointer [post]
func (h *TrackerHandler) DayPointer(c *gin.Context) {
	index, ok := dayIndex(c)
	if !ok {
		return
	}

	ev, ok := bindPointer(c)
	if !ok {
		return
	}

	intent, snap, err := h.svc.HandleDayPointer(c.Request.Context(), index, ev)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, intentResponse{Intent: intent, Snapshot: snap})
}

// DayIntent godoc
// @Summary  Apply an already classified intent to a day
// @Tags     gestures
// @Accept   json
// @Produce  json
// @Param    day  path int           true "Day number (1-30)"
// @Param    body body intentRequest true "Intent"
// @Success  200 {object} intentResponse
// @Failure  400 {object} map[string]string
// @Router   /days/{day}/intent [post]
func (h *TrackerHandler) DayIntent(c *gin.Context) {
	index, ok := dayIndex(c)
	if !ok {
		return
	}

	var req intentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	intent, err := domain.ParseIntent(req.Intent)
	if err != nil {
		handleError(c, err)
		return
	}

	snap, err := h.svc.ApplyDayIntent(c.Request.Context(), index, intent)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, intentResponse{Intent: intent, Snapshot: snap})
}

// YearPointer godoc
// @Summary  Feed one pointer event of the year switcher
// @Tags     gestures
// @Accept   json
// @Produce  json
// @Param    body body pointerRequest true "Pointer event"
// @Success  200 {object} intentResponse
// @Failure  400 {object} map[string]string
// @Router   /year/pointer [post]
func (h *TrackerHandler) YearPointer(c *gin.Context) {
	ev, ok := bindPointer(c)
	if !ok {
		return
	}

	intent, snap := h.svc.HandleYearPointer(c.Request.Context(), ev)
	c.JSON(http.StatusOK, intentResponse{Intent: intent, Snapshot: snap})
}

// ShiftYear godoc
// @Summary  Move the selected year (previous/next buttons)
// @Tags     tracker
// @Accept   json
// @Produce  json
// @Param    body body shiftRequest true "Delta in years"
// @Success  200 {object} domain.Snapshot
// @Failure  400 {object} map[string]string
// @Router   /year/shift [post]
func (h *TrackerHandler) ShiftYear(c *gin.Context) {
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.svc.ShiftYear(c.Request.Context(), req.Delta))
}

func dayIndex(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || !domain.ValidDayIndex(day-1) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be a number between 1 and 30"})
		return 0, false
	}
	return day - 1, true
}

func bindPointer(c *gin.Context) (domain.PointerEvent, bool) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return domain.PointerEvent{}, false
	}

	kind, err := domain.ParsePointerKind(req.Type)
	if err != nil {
		handleError(c, err)
		return domain.PointerEvent{}, false
	}

	at := time.Now()
	if req.TimestampMs != nil {
		at = time.UnixMilli(*req.TimestampMs)
	}

	return domain.PointerEvent{Kind: kind, X: req.X, Y: req.Y, At: at}, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDayOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be a number between 1 and 30"})

	case errors.Is(err, domain.ErrInvalidIntent),
		errors.Is(err, domain.ErrInvalidPointerKind),
		errors.Is(err, domain.ErrInvalidDayStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		slog.Error("request failed",
			"component", "http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

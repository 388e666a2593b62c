package web

import (
	"net/http"
	"time"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// planJSON is the API view of a plan. Budget amounts are decimal strings
// ("10.50" stays exact) and null when unset; total_budget likewise.
type planJSON struct {
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Date     string              `json:"date"`
	Time     string              `json:"time"`
	Location string              `json:"location"`
	Category string              `json:"category"`
	Color    string              `json:"color"`
	Icon     string              `json:"icon"`
	Budget   decimal.NullDecimal `json:"budget"`
	Notes    string              `json:"notes"`
	Priority string              `json:"priority"`
	Created  string              `json:"created"`
}

type summaryJSON struct {
	TotalPlans  int             `json:"total_plans"`
	TripDays    int             `json:"trip_days"`
	DaysPlanned int             `json:"days_planned"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	TripStart   string          `json:"trip_start"`
	TripEnd     string          `json:"trip_end"`
}

func (s *Server) toJSON(p *domain.Plan) planJSON {
	style := s.cfg.Categories.Style(p.Category)
	out := planJSON{
		ID:       p.ID,
		Title:    p.Title,
		Date:     p.Date.Format(domain.DateLayout),
		Time:     p.Time.String(),
		Location: p.Location,
		Category: string(p.Category),
		Color:    style.Color,
		Icon:     style.Icon,
		Budget:   p.Budget,
		Notes:    p.Notes,
		Priority: string(p.Priority),
	}
	if !p.Created.IsZero() {
		out.Created = p.Created.Format(domain.CreatedLayout)
	}
	return out
}

func (s *Server) apiError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// available answers 503 and returns false when the store is not connected.
func (s *Server) available(c *gin.Context) bool {
	if s.cfg.Unavailable != nil {
		s.apiError(c, s.cfg.Unavailable)
		return false
	}
	return true
}

func (s *Server) apiHealth(c *gin.Context) {
	status := "ok"
	if s.cfg.Unavailable != nil {
		status = "unavailable"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "time": s.now().UTC().Format(time.RFC3339)})
}

// apiList returns plans sorted by date and time, optionally one category.
func (s *Server) apiList(c *gin.Context) {
	if !s.available(c) {
		return
	}
	plans, err := s.plans.List(c.Request.Context())
	if err != nil {
		s.apiError(c, err)
		return
	}
	out := make([]planJSON, 0, len(plans))
	for _, p := range service.Filter(plans, domain.Category(c.Query("category"))) {
		out = append(out, s.toJSON(p))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) apiGet(c *gin.Context) {
	if !s.available(c) {
		return
	}
	p, err := s.plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.toJSON(p))
}

// planInput is the API request body. Budget may be a number or a string.
type planInput struct {
	Title    string              `json:"title" binding:"required"`
	Date     string              `json:"date" binding:"required"`
	Time     string              `json:"time"`
	Location string              `json:"location"`
	Category string              `json:"category"`
	Budget   decimal.NullDecimal `json:"budget"`
	Priority string              `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Notes    string              `json:"notes"`
}

func (s *Server) bindPlan(c *gin.Context) (*domain.Plan, bool) {
	var in planInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	form := planForm{
		Title:    in.Title,
		Date:     in.Date,
		Time:     in.Time,
		Location: in.Location,
		Category: in.Category,
		Priority: in.Priority,
		Notes:    in.Notes,
	}
	if form.Time == "" {
		form.Time = defaultTime
	}
	if in.Budget.Valid {
		form.Budget = in.Budget.Decimal.String()
	}
	p, err := form.toPlan(s.cfg.Categories.Default())
	if err != nil {
		s.apiError(c, err)
		return nil, false
	}
	return p, true
}

func (s *Server) apiCreate(c *gin.Context) {
	if !s.available(c) {
		return
	}
	p, ok := s.bindPlan(c)
	if !ok {
		return
	}
	if err := s.plans.Create(c.Request.Context(), p); err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.toJSON(p))
}

func (s *Server) apiUpdate(c *gin.Context) {
	if !s.available(c) {
		return
	}
	p, ok := s.bindPlan(c)
	if !ok {
		return
	}
	p.ID = c.Param("id")
	if err := s.plans.Update(c.Request.Context(), p); err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.toJSON(p))
}

func (s *Server) apiDelete(c *gin.Context) {
	if !s.available(c) {
		return
	}
	if err := s.plans.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}

func (s *Server) apiSummary(c *gin.Context) {
	if !s.available(c) {
		return
	}
	plans, err := s.plans.List(c.Request.Context())
	if err != nil {
		s.apiError(c, err)
		return
	}
	trip := s.plans.Trip()
	sum := service.Summarize(plans, trip)
	c.JSON(http.StatusOK, summaryJSON{
		TotalPlans:  sum.TotalPlans,
		TripDays:    sum.TripDays,
		DaysPlanned: sum.DaysPlanned,
		TotalBudget: sum.TotalBudget,
		TripStart:   trip.Start.Format(domain.DateLayout),
		TripEnd:     trip.End.Format(domain.DateLayout),
	})
}

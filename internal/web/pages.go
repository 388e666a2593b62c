package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/repository"
	"github.com/alexanderramin/itinerary/internal/service"
	"github.com/gin-gonic/gin"
)

var notices = map[string]string{
	"added":   "Plan added successfully!",
	"updated": "Plan updated successfully!",
	"deleted": "Deleted!",
}

// pageState carries what a failed submission needs to re-render.
type pageState struct {
	tab    string
	err    string
	add    *formView
	edit   *formView
	editID string
}

func (s *Server) index(c *gin.Context) {
	s.renderPage(c, http.StatusOK, pageState{
		tab:    c.Query("tab"),
		editID: c.Query("edit"),
	})
}

func (s *Server) renderPage(c *gin.Context, status int, st pageState) {
	if s.cfg.Unavailable != nil {
		s.renderSetup(c, s.cfg.Unavailable)
		return
	}
	ctx := c.Request.Context()

	plans, err := s.plans.List(ctx)
	if err != nil {
		if storeDown(err) {
			s.renderSetup(c, err)
			return
		}
		_ = c.Error(err)
		plans = nil
		st.err = joinMessages(st.err, fmt.Sprintf("Error loading data: %v", err))
	}

	trip := s.plans.Trip()
	if !tabs[st.tab] {
		st.tab = tabTimeline
	}

	var selected []domain.Category
	for _, name := range c.QueryArray("cat") {
		selected = append(selected, domain.Category(name))
	}
	listCategory := c.Query("category")

	data := pageData{
		Title:        s.cfg.Title,
		Subtitle:     s.cfg.Subtitle,
		Tab:          st.tab,
		Notice:       notices[c.Query("notice")],
		Error:        st.err,
		TripStart:    trip.Start.Format(domain.DateLayout),
		TripEnd:      trip.End.Format(domain.DateLayout),
		Stats:        s.statsView(service.Summarize(plans, trip)),
		Categories:   s.categoryOptions(selected),
		Priorities:   priorityNames(),
		Timeline:     s.timelineView(service.Timeline(plans, trip, selected), domain.DateOf(s.now().In(s.cfg.Location))),
		ListCategory: listCategory,
		HasPlans:     len(plans) > 0,
	}
	for _, p := range service.Filter(plans, domain.Category(listCategory)) {
		data.List = append(data.List, s.card(p))
	}

	if st.add != nil {
		data.Add = *st.add
	} else {
		data.Add = formView{
			Date:     data.TripStart,
			Time:     defaultTime,
			Category: string(s.cfg.Categories.Default()),
		}
	}
	data.Add.Action, data.Add.Submit = "/plans", "Add Plan"

	data.EditOptions, data.Edit = s.editSection(plans, st)
	c.HTML(status, "index.html", data)
}

// editSection lists plans for the edit picker and pre-populates the form
// for the selected one, defaulting to the first plan.
func (s *Server) editSection(plans []*domain.Plan, st pageState) ([]editOption, *formView) {
	if len(plans) == 0 {
		return nil, nil
	}
	var chosen *domain.Plan
	for _, p := range plans {
		if p.ID == st.editID {
			chosen = p
		}
	}
	if chosen == nil {
		chosen = plans[0]
	}
	opts := make([]editOption, len(plans))
	for i, p := range plans {
		opts[i] = editOption{ID: p.ID, Label: p.Label(), Selected: p == chosen}
	}

	var f formView
	if st.edit != nil {
		f = *st.edit
	} else {
		f = formFromPlan(chosen)
	}
	f.Action = "/plans/" + url.PathEscape(f.ID)
	f.Submit = "Update Plan"
	return opts, &f
}

func (s *Server) renderSetup(c *gin.Context, err error) {
	_ = c.Error(err)
	data := setupData{
		Title:    s.cfg.Title,
		Subtitle: s.cfg.Subtitle,
		Account:  s.cfg.Account,
		Detail:   err.Error(),
	}
	if errors.Is(err, repository.ErrProvision) {
		data.Quota = true
		data.Problem = "Could not obtain a spreadsheet to store plans in."
	} else {
		data.Problem = "The spreadsheet connection is not configured."
	}
	c.HTML(http.StatusServiceUnavailable, "setup.html", data)
}

func (s *Server) redirect(c *gin.Context, tab, notice string) {
	q := url.Values{}
	q.Set("tab", tab)
	q.Set("notice", notice)
	c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}

func (s *Server) createPlan(c *gin.Context) {
	if s.cfg.Unavailable != nil {
		s.renderSetup(c, s.cfg.Unavailable)
		return
	}
	var form planForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderPage(c, http.StatusBadRequest, pageState{tab: tabManage, err: err.Error()})
		return
	}
	failed := func(err error) {
		if storeDown(err) {
			s.renderSetup(c, err)
			return
		}
		_ = c.Error(err)
		add := form.view("", "", "")
		s.renderPage(c, statusFor(err), pageState{tab: tabManage, err: message(err), add: &add})
	}

	p, err := form.toPlan(s.cfg.Categories.Default())
	if err != nil {
		failed(err)
		return
	}
	if err := s.plans.Create(c.Request.Context(), p); err != nil {
		failed(err)
		return
	}
	s.redirect(c, tabManage, "added")
}

func (s *Server) updatePlan(c *gin.Context) {
	if s.cfg.Unavailable != nil {
		s.renderSetup(c, s.cfg.Unavailable)
		return
	}
	id := c.Param("id")
	var form planForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderPage(c, http.StatusBadRequest, pageState{tab: tabManage, err: err.Error(), editID: id})
		return
	}
	failed := func(err error) {
		if storeDown(err) {
			s.renderSetup(c, err)
			return
		}
		_ = c.Error(err)
		st := pageState{tab: tabManage, err: message(err), editID: id}
		if !errors.Is(err, repository.ErrPlanNotFound) {
			edit := form.view("", "", id)
			st.edit = &edit
		}
		s.renderPage(c, statusFor(err), st)
	}

	p, err := form.toPlan(s.cfg.Categories.Default())
	if err != nil {
		failed(err)
		return
	}
	p.ID = id
	if err := s.plans.Update(c.Request.Context(), p); err != nil {
		failed(err)
		return
	}
	q := url.Values{}
	q.Set("tab", tabManage)
	q.Set("notice", "updated")
	q.Set("edit", id)
	c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}

func (s *Server) deletePlan(c *gin.Context) {
	if s.cfg.Unavailable != nil {
		s.renderSetup(c, s.cfg.Unavailable)
		return
	}
	tab := c.PostForm("tab")
	if !tabs[tab] {
		tab = tabTimeline
	}
	if err := s.plans.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if storeDown(err) {
			s.renderSetup(c, err)
			return
		}
		_ = c.Error(err)
		s.renderPage(c, statusFor(err), pageState{tab: tab, err: "Error deleting plan: " + message(err)})
		return
	}
	s.redirect(c, tab, "deleted")
}

func joinMessages(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

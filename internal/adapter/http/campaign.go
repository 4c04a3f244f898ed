package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campaign-manager/internal/core/domain"
)

// campaignView is the wire form of a campaign: the stored document plus
// derived figures that are never persisted.
type campaignView struct {
	domain.Campaign
	DurationDays      int     `json:"durationDays"`
	BudgetUtilization float64 `json:"budgetUtilization"`
}

func view(c *domain.Campaign) campaignView {
	return campaignView{
		Campaign:          *c,
		DurationDays:      c.DurationDays(),
		BudgetUtilization: c.Budget.Utilization(),
	}
}

type listView struct {
	Campaigns []campaignView `json:"campaigns"`
	Page      int            `json:"page"`
	Limit     int            `json:"limit"`
	Total     int64          `json:"total"`
	Pages     int64          `json:"pages"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateCampaignInput
	if err := decode(r, &in, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Create(r.Context(), principal(r), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/campaigns/"+c.ID)
	h.writeJSON(w, http.StatusCreated, view(c))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view(c))
}

// handleList returns one page of campaigns. Query parameters: status, type,
// priority, tag, search, page (1-based) and limit (clamped to 100).
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.svc.List(r.Context(), principal(r), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := listView{
		Campaigns: make([]campaignView, 0, len(res.Campaigns)),
		Page:      res.Page,
		Limit:     res.Limit,
		Total:     res.Total,
		Pages:     res.Pages,
	}
	for i := range res.Campaigns {
		out.Campaigns = append(out.Campaigns, view(&res.Campaigns[i]))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decode(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.Update(r.Context(), principal(r), chi.URLParam(r, "id"), req.Patch, req.Version))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), principal(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respond returns a sink for the (campaign, error) pair every mutating use
// case returns.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request) func(*domain.Campaign, error) {
	return func(c *domain.Campaign, err error) {
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, view(c))
	}
}

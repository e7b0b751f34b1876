package view

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"prism/pkg/domain"
)

type pageData struct {
	Title       string
	Query       string
	Cards       []cardView
	Placeholder *cardView
	NoMatches   bool
	Selected    *cardView
	Form        formView
	Stages      []domain.FundingStage
	Statuses    []domain.Status
}

type cardView struct {
	ID             string
	Name           string
	Description    string
	Industry       string
	Employees      string
	Founded        string
	Age            string
	Funding        string
	FundingCompact string
	Stage          domain.FundingStage
	StageClass     string
	Status         domain.Status
	StatusClass    string
	Placeholder    bool
}

func (h *Handler) card(s domain.Startup) cardView {
	return cardView{
		ID:             s.ID,
		Name:           s.Name,
		Description:    s.Description,
		Industry:       s.Industry,
		Employees:      h.format.Employees(s.TeamSize),
		Founded:        h.format.Date(s.StartupFields),
		Age:            h.format.Age(s.StartupFields),
		Funding:        h.format.Currency(s.FundingAmount),
		FundingCompact: h.format.CompactCurrency(s.FundingAmount),
		Stage:          s.FundingStage,
		StageClass:     stageClass(s.FundingStage),
		Status:         s.Status,
		StatusClass:    StatusClass(s.Status),
	}
}

// listPage projects the store's query, visible records and selection.
func (h *Handler) listPage() pageData {
	query := h.store.Query()
	visible := h.store.Visible()
	data := pageData{Title: "Prism", Query: query, Cards: make([]cardView, 0, len(visible))}
	for _, s := range visible {
		data.Cards = append(data.Cards, h.card(s))
	}
	if len(visible) == 0 {
		if query == "" {
			placeholder := h.card(Placeholder)
			placeholder.Placeholder = true
			data.Placeholder = &placeholder
		} else {
			data.NoMatches = true
		}
	}
	if selected, ok := h.store.Selected(); ok {
		detail := h.card(selected)
		data.Selected = &detail
	}
	return data
}

func (h *Handler) formPage(form formView) pageData {
	return pageData{
		Title:    "Add New Startup - Prism",
		Form:     form,
		Stages:   domain.FundingStages(),
		Statuses: domain.Statuses(),
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if values := r.URL.Query(); values.Has("q") {
		h.store.SetQuery(values.Get("q"))
	}
	h.render(w, http.StatusOK, "index", h.listPage())
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	if !h.store.Select(chi.URLParam(r, "id")) {
		http.NotFound(w, r)
		return
	}
	h.render(w, http.StatusOK, "index", h.listPage())
}

func (h *Handler) handleCloseDetail(w http.ResponseWriter, r *http.Request) {
	h.store.ClearSelection()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleNewForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, "form", h.formPage(newForm()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	form, err := readForm(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	fields, err := form.fields()
	if err != nil {
		form.Errors = fieldErrors(err)
		h.render(w, http.StatusUnprocessableEntity, "form", h.formPage(form))
		return
	}
	if _, err := h.store.Add(r.Context(), fields); err != nil {
		h.logger.Error("add startup failed", "error", err)
		http.Error(w, "could not save startup", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("remove startup failed", "error", err)
		http.Error(w, "could not save catalog", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

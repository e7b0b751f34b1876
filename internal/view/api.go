package view

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prism/pkg/domain"
)

func (h *Handler) apiList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List(r.URL.Query().Get("q")))
}

func (h *Handler) apiGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		jsonErr(w, "startup not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// createRequest mirrors domain.StartupFields with the numeric fields as
// pointers so an omitted number is told apart from zero.
type createRequest struct {
	domain.StartupFields
	FundingAmount *float64 `json:"fundingAmount"`
	TeamSize      *int     `json:"teamSize"`
}

func (c createRequest) fields() (domain.StartupFields, error) {
	out := c.StartupFields
	var problems []domain.FieldError
	if err := out.Validate(); err != nil {
		var ve domain.ValidationError
		if !errors.As(err, &ve) {
			return out, err
		}
		problems = append(problems, ve.Fields...)
	}
	if c.FundingAmount == nil {
		problems = append(problems, domain.FieldError{Field: "fundingAmount", Message: "is required"})
	} else {
		out.FundingAmount = *c.FundingAmount
	}
	if c.TeamSize == nil {
		problems = append(problems, domain.FieldError{Field: "teamSize", Message: "is required"})
	} else {
		out.TeamSize = *c.TeamSize
	}
	if len(problems) > 0 {
		return out, domain.ValidationError{Fields: problems}
	}
	return out, nil
}

func (h *Handler) apiCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var req createRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		jsonErr(w, "invalid request body", http.StatusBadRequest)
		return
	}
	fields, err := req.fields()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  err.Error(),
			"fields": fieldErrors(err),
		})
		return
	}
	created, err := h.store.Add(r.Context(), fields)
	if err != nil {
		h.logger.Error("add startup failed", "error", err)
		jsonErr(w, "could not save startup", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) apiDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("remove startup failed", "error", err)
		jsonErr(w, "could not save catalog", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "startups": h.store.Len()})
}

func fieldErrors(err error) []domain.FieldError {
	var ve domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return []domain.FieldError{{Field: "form", Message: err.Error()}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

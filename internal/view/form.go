package view

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"prism/pkg/domain"
)

// formView is the creation form buffer. Values stay as submitted so a
// rejected form re-renders with the user's input.
type formView struct {
	Name          string
	Description   string
	Industry      string
	FundingStage  string
	FundingAmount string
	FoundedDate   string
	TeamSize      string
	Status        string
	Errors        []domain.FieldError
}

// newForm returns the buffer shown when the form opens.
func newForm() formView {
	return formView{
		FundingStage:  string(domain.StagePreSeed),
		FundingAmount: "0",
		TeamSize:      "1",
		Status:        string(domain.StatusActive),
	}
}

func readForm(r *http.Request) (formView, error) {
	if err := r.ParseForm(); err != nil {
		return formView{}, err
	}
	get := func(key string) string { return strings.TrimSpace(r.PostForm.Get(key)) }
	return formView{
		Name:          get("name"),
		Description:   get("description"),
		Industry:      get("industry"),
		FundingStage:  get("fundingStage"),
		FundingAmount: get("fundingAmount"),
		FoundedDate:   get("foundedDate"),
		TeamSize:      get("teamSize"),
		Status:        get("status"),
	}, nil
}

// fields converts the buffer into record fields. Missing values are reported
// as a domain.ValidationError; numbers that do not parse are reported the
// same way since the browser never submits them.
func (f formView) fields() (domain.StartupFields, error) {
	out := domain.StartupFields{
		Name:         f.Name,
		Description:  f.Description,
		Industry:     f.Industry,
		FundingStage: domain.FundingStage(f.FundingStage),
		FoundedDate:  f.FoundedDate,
		Status:       domain.Status(f.Status),
	}
	var problems []domain.FieldError
	if err := out.Validate(); err != nil {
		var ve domain.ValidationError
		if !errors.As(err, &ve) {
			return out, err
		}
		problems = append(problems, ve.Fields...)
	}
	amount, problem := parseNumber("fundingAmount", f.FundingAmount, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	if problem != nil {
		problems = append(problems, *problem)
	}
	out.FundingAmount = amount
	size, problem := parseNumber("teamSize", f.TeamSize, strconv.Atoi)
	if problem != nil {
		problems = append(problems, *problem)
	}
	out.TeamSize = size
	if len(problems) > 0 {
		return out, domain.ValidationError{Fields: problems}
	}
	return out, nil
}

func parseNumber[T int | float64](field, raw string, parse func(string) (T, error)) (T, *domain.FieldError) {
	var zero T
	if raw == "" {
		return zero, &domain.FieldError{Field: field, Message: "is required"}
	}
	v, err := parse(raw)
	if err != nil || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return zero, &domain.FieldError{Field: field, Message: "must be a number"}
	}
	return v, nil
}

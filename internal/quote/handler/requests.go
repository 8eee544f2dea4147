package handler

import (
	"strings"
	"time"

	"bima/internal/payment"
	"bima/internal/quote/models"
	"bima/internal/rating"
	dErrors "bima/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// holderPayload carries the policyholder fields shared by every quotation
// form.
type holderPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (h *holderPayload) validate() error {
	h.FullName = strings.TrimSpace(h.FullName)
	h.Email = strings.TrimSpace(h.Email)
	h.Phone = strings.TrimSpace(h.Phone)

	if h.FullName == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "holder.full_name is required")
	}
	if len(h.FullName) > 128 {
		return dErrors.New(dErrors.CodeInvalidInput, "holder.full_name must be 128 characters or less")
	}
	if h.Email == "" || !strings.Contains(h.Email, "@") {
		return dErrors.New(dErrors.CodeInvalidInput, "holder.email must be a valid email address")
	}
	if h.Phone == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "holder.phone is required")
	}
	return nil
}

func (h holderPayload) toModel() models.Holder {
	return models.Holder{FullName: h.FullName, Email: h.Email, Phone: h.Phone}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, field+" must be a YYYY-MM-DD date")
	}
	return t, nil
}

// CreateTravelRequest is the HTTP request body for POST /quotes/travel.
type CreateTravelRequest struct {
	Holder       holderPayload `json:"holder"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Travelers    int           `json:"travelers"`
	Plan         string        `json:"plan"`
	WinterSports bool          `json:"winter_sports"`
	DateOfBirth  string        `json:"date_of_birth,omitempty"`

	parsed rating.TravelInput
}

func (r *CreateTravelRequest) Validate() error {
	if err := r.Holder.validate(); err != nil {
		return err
	}
	if r.StartDate == "" || r.EndDate == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "start_date and end_date are required")
	}

	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return err
	}

	var dob time.Time
	if r.DateOfBirth != "" {
		dob, err = parseDate("date_of_birth", r.DateOfBirth)
		if err != nil {
			return err
		}
	}

	r.parsed = rating.TravelInput{
		StartDate:    start,
		EndDate:      end,
		Travelers:    r.Travelers,
		Plan:         strings.ToUpper(strings.TrimSpace(r.Plan)),
		WinterSports: r.WinterSports,
		DateOfBirth:  dob,
	}
	return nil
}

func (r *CreateTravelRequest) Parsed() rating.TravelInput { return r.parsed }

// CreateGolfRequest is the HTTP request body for POST /quotes/golf.
type CreateGolfRequest struct {
	Holder      holderPayload `json:"holder"`
	CoverOption string        `json:"cover_option"`
}

func (r *CreateGolfRequest) Validate() error {
	if err := r.Holder.validate(); err != nil {
		return err
	}
	r.CoverOption = strings.ToUpper(strings.TrimSpace(r.CoverOption))
	if r.CoverOption == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "cover_option is required")
	}
	return nil
}

func (r *CreateGolfRequest) Parsed() rating.GolfInput {
	return rating.GolfInput{CoverOption: r.CoverOption}
}

// CreateMarineRequest is the HTTP request body for POST /quotes/marine.
type CreateMarineRequest struct {
	Holder       holderPayload `json:"holder"`
	SumInsured   float64       `json:"sum_insured"`
	Clause       string        `json:"clause"`
	Intermediary bool          `json:"intermediary"`
}

func (r *CreateMarineRequest) Validate() error {
	if err := r.Holder.validate(); err != nil {
		return err
	}
	if r.SumInsured <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "sum_insured must be positive")
	}
	r.Clause = strings.ToUpper(strings.TrimSpace(r.Clause))
	if r.Clause == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "clause is required")
	}
	return nil
}

func (r *CreateMarineRequest) Parsed() rating.MarineInput {
	return rating.MarineInput{SumInsured: r.SumInsured, Clause: r.Clause, Intermediary: r.Intermediary}
}

// CreateAccidentRequest is the HTTP request body for POST /quotes/personal-accident.
type CreateAccidentRequest struct {
	Holder             holderPayload `json:"holder"`
	CoverOption        string        `json:"cover_option"`
	AgeRange           string        `json:"age_range"`
	ExcludedActivities bool          `json:"excluded_activities"`
	ExtensionOfCover   bool          `json:"extension_of_cover"`
}

func (r *CreateAccidentRequest) Validate() error {
	if err := r.Holder.validate(); err != nil {
		return err
	}
	r.CoverOption = strings.ToUpper(strings.TrimSpace(r.CoverOption))
	r.AgeRange = strings.TrimSpace(r.AgeRange)
	if r.CoverOption == "" || r.AgeRange == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "cover_option and age_range are required")
	}
	return nil
}

func (r *CreateAccidentRequest) Parsed() rating.AccidentInput {
	return rating.AccidentInput{
		CoverOption:        r.CoverOption,
		AgeRange:           r.AgeRange,
		ExcludedActivities: r.ExcludedActivities,
		ExtensionOfCover:   r.ExtensionOfCover,
	}
}

// PayRequest is the HTTP request body for POST /quotes/{product}/{quoteID}/pay.
type PayRequest struct {
	Method string `json:"method"`
	Payer  string `json:"payer"`

	parsedMethod payment.Method
}

func (r *PayRequest) Validate() error {
	method, err := payment.ParseMethod(strings.TrimSpace(r.Method))
	if err != nil {
		return err
	}
	r.parsedMethod = method

	r.Payer = strings.TrimSpace(r.Payer)
	if r.Payer == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "payer is required")
	}
	return nil
}

func (r *PayRequest) ParsedMethod() payment.Method { return r.parsedMethod }

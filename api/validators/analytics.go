package validators

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/orderpulse/backend/pkg/enums"
	pkgerrors "github.com/orderpulse/backend/pkg/errors"
)

const (
	maxForecastPeriods = 24
	maxTopN            = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// AnalyticsQuery carries the validated query parameters of the analytics
// endpoints. Fields the endpoint does not use stay at their zero value.
type AnalyticsQuery struct {
	TimeFilter  enums.TimeFilter  `query:"time_filter" validate:"omitempty,oneof=last_7_days last_30_days last_365_days all_time"`
	Granularity enums.Granularity `query:"granularity" validate:"omitempty,oneof=week month"`
	Periods     int               `query:"periods"`
	TopN        int               `query:"top_n"`
}

// ParseAnalyticsQuery validates the shared analytics query surface.
// requireFilter and requireGranularity mark the parameters the endpoint
// cannot work without; an unknown value always rejects the request.
func ParseAnalyticsQuery(r *http.Request, requireFilter, requireGranularity bool) (AnalyticsQuery, error) {
	q := AnalyticsQuery{
		TimeFilter:  enums.TimeFilter(strings.TrimSpace(r.URL.Query().Get("time_filter"))),
		Granularity: enums.Granularity(strings.TrimSpace(r.URL.Query().Get("granularity"))),
	}

	if requireFilter && q.TimeFilter == "" {
		return q, pkgerrors.New(pkgerrors.CodeValidation, "time_filter is required").
			WithDetails(map[string]any{"field": "time_filter"})
	}
	if requireGranularity && q.Granularity == "" {
		return q, pkgerrors.New(pkgerrors.CodeValidation, "granularity is required").
			WithDetails(map[string]any{"field": "granularity"})
	}
	if err := validate.Struct(q); err != nil {
		return q, formatValidationErrors(err)
	}

	periods, err := ParseQueryInt(r, "periods", 0, 1, maxForecastPeriods)
	if err != nil {
		return q, err
	}
	q.Periods = periods

	topN, err := ParseQueryInt(r, "top_n", 0, 1, maxTopN)
	if err != nil {
		return q, err
	}
	q.TopN = topN

	return q, nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

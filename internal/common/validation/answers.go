// internal/common/validation/answers.go
package validation

import (
	"sort"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"roi-assessment-workers/internal/models"
)

// AnswersSchema accepts the loosely typed payload the questionnaire posts:
// numeric answers may be numbers, numeric strings or null.
const AnswersSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["avgPrice", "commissionRate"],
  "properties": {
    "yearsInBusiness":     {"type": ["string", "null"]},
    "serviceArea":         {"type": ["string", "null"], "maxLength": 200},
    "avgPrice":            {"type": ["number", "string", "null"]},
    "commissionRate":      {"type": ["number", "string", "null"]},
    "databaseSize":        {"type": ["number", "string", "null"]},
    "usesPaidAds":         {"type": ["boolean", "string", "null"]},
    "monthlyAdSpend":      {"type": ["number", "string", "null"]},
    "monthlyNewLeads":     {"type": ["number", "string", "null"]},
    "whoFollowsUp":        {"type": ["array", "string", "null"], "items": {"type": "string"}},
    "hasISA":              {"type": ["boolean", "string", "null"]},
    "isaCost":             {"type": ["number", "string", "null"]},
    "prospectingHours":    {"type": ["number", "string", "null"]},
    "currentAppointments": {"type": ["number", "string", "null"]}
  }
}`

var answersSchema = MustCompileSchema(AnswersSchema)

// ValidateAnswersShape runs the JSON schema check only.
func ValidateAnswersShape(raw map[string]interface{}) (*ValidationResult, error) {
	return answersSchema.Validate(raw)
}

// DecodeAnswers coerces the raw form map and then applies the form rules.
// Every problem is reported; the returned answers are only meaningful when
// the error slice is empty.
func DecodeAnswers(raw map[string]interface{}) (models.QuestionnaireAnswers, []ValidationError) {
	var (
		a    models.QuestionnaireAnswers
		errs []ValidationError
	)

	coerce := func(field string, fn func(interface{}) error) {
		if err := fn(raw[field]); err != nil {
			errs = append(errs, ValidationError{Field: field, Message: err.Error(), Code: "INVALID_TYPE"})
		}
	}

	coerce("yearsInBusiness", func(v interface{}) (err error) { a.YearsInBusiness, err = ToString(v); return })
	coerce("serviceArea", func(v interface{}) (err error) { a.ServiceArea, err = ToString(v); return })
	coerce("avgPrice", func(v interface{}) (err error) { a.AvgPrice, err = ToFloat(v); return })
	coerce("commissionRate", func(v interface{}) (err error) { a.CommissionRate, err = ToFloat(v); return })
	coerce("databaseSize", func(v interface{}) (err error) { a.DatabaseSize, err = ToInt(v); return })
	coerce("usesPaidAds", func(v interface{}) (err error) { a.UsesPaidAds, err = ToOptionalBool(v); return })
	coerce("monthlyAdSpend", func(v interface{}) (err error) { a.MonthlyAdSpend, err = ToFloat(v); return })
	coerce("monthlyNewLeads", func(v interface{}) (err error) { a.MonthlyNewLeads, err = ToInt(v); return })
	coerce("whoFollowsUp", func(v interface{}) (err error) { a.WhoFollowsUp, err = ToStringSlice(v); return })
	coerce("hasISA", func(v interface{}) (err error) { a.HasISA, err = ToOptionalBool(v); return })
	coerce("isaCost", func(v interface{}) (err error) { a.ISACost, err = ToFloat(v); return })
	coerce("prospectingHours", func(v interface{}) (err error) { a.ProspectingHours, err = ToFloat(v); return })
	coerce("currentAppointments", func(v interface{}) (err error) { a.CurrentAppointments, err = ToInt(v); return })

	if len(errs) > 0 {
		return a, errs
	}

	if err := a.Validate(); err != nil {
		errs = append(errs, fromRuleErrors(err)...)
	}
	return a, errs
}

// fromRuleErrors flattens ozzo's field map in a stable order.
func fromRuleErrors(err error) []ValidationError {
	fieldErrs, ok := err.(ozzo.Errors)
	if !ok {
		return []ValidationError{{Message: err.Error(), Code: "RULE_VIOLATION"}}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]ValidationError, 0, len(fields))
	for _, field := range fields {
		code := "RULE_VIOLATION"
		if e, ok := fieldErrs[field].(ozzo.Error); ok {
			code = e.Code()
		}
		out = append(out, ValidationError{Field: field, Message: fieldErrs[field].Error(), Code: code})
	}
	return out
}

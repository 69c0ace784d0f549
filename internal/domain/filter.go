package domain

import (
	"fmt"
	"strconv"
)

// FilterField is a conference field that may appear in a filter criterion.
// The set is closed; unknown external names are rejected at the boundary.
type FilterField string

const (
	FilterFieldCity         FilterField = "city"
	FilterFieldTopic        FilterField = "topics"
	FilterFieldMonth        FilterField = "month"
	FilterFieldMaxAttendees FilterField = "maxAttendees"
)

// ParseFilterField maps an external field name to a FilterField.
func ParseFilterField(name string) (FilterField, error) {
	switch name {
	case "CITY":
		return FilterFieldCity, nil
	case "TOPIC":
		return FilterFieldTopic, nil
	case "MONTH":
		return FilterFieldMonth, nil
	case "MAX_ATTENDEES":
		return FilterFieldMaxAttendees, nil
	}
	return "", fmt.Errorf("%w: filter contains invalid field or operator", ErrInvalidInput)
}

// Numeric reports whether values for this field are integers and must be
// coerced from their string representation before comparison.
func (f FilterField) Numeric() bool {
	return f == FilterFieldMonth || f == FilterFieldMaxAttendees
}

// FilterOp is a comparison operator in a filter criterion.
type FilterOp string

const (
	OpEq  FilterOp = "="
	OpGt  FilterOp = ">"
	OpGte FilterOp = ">="
	OpLt  FilterOp = "<"
	OpLte FilterOp = "<="
	OpNe  FilterOp = "!="
)

// ParseFilterOp maps an external operator name to a FilterOp.
func ParseFilterOp(name string) (FilterOp, error) {
	switch name {
	case "EQ":
		return OpEq, nil
	case "GT":
		return OpGt, nil
	case "GTEQ":
		return OpGte, nil
	case "LT":
		return OpLt, nil
	case "LTEQ":
		return OpLte, nil
	case "NE":
		return OpNe, nil
	}
	return "", fmt.Errorf("%w: filter contains invalid field or operator", ErrInvalidInput)
}

// FilterSpec is a raw, user-supplied filter criterion as received on the wire.
type FilterSpec struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Filter is a validated criterion. Str holds the value for string fields,
// Int for numeric ones.
type Filter struct {
	Field FilterField
	Op    FilterOp
	Str   string
	Int   int
}

// ConferenceQuery is a compiled, validated filter query. All criteria are
// AND-combined. When InequalityField is set the results are ordered by that
// field first and by name second; otherwise by name alone.
type ConferenceQuery struct {
	Filters         []Filter
	InequalityField FilterField
}

// CompileFilters validates and compiles raw filter criteria.
//
// At most one distinct field may use a non-equality operator across the whole
// set; this is a business rule inherited from the original store's indexing
// limits and kept for compatible query semantics. Violations, unknown fields
// or operators, and unparsable numeric values all fail with ErrInvalidInput
// before any store access.
func CompileFilters(specs []FilterSpec) (*ConferenceQuery, error) {
	q := &ConferenceQuery{}
	for _, spec := range specs {
		field, err := ParseFilterField(spec.Field)
		if err != nil {
			return nil, err
		}
		op, err := ParseFilterOp(spec.Operator)
		if err != nil {
			return nil, err
		}

		f := Filter{Field: field, Op: op}
		if field.Numeric() {
			n, err := strconv.Atoi(spec.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: value %q is not an integer", ErrInvalidInput, spec.Value)
			}
			f.Int = n
		} else {
			f.Str = spec.Value
		}

		if op != OpEq {
			if q.InequalityField != "" && q.InequalityField != field {
				return nil, fmt.Errorf("%w: inequality filter is allowed on only one field", ErrInvalidInput)
			}
			q.InequalityField = field
		}
		q.Filters = append(q.Filters, f)
	}
	return q, nil
}

package request

import (
	"net/http"
	"time"

	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
)

// Filters turns optional query parameters of a listing into a filter group.
// Parameters that are missing or empty add nothing.
type Filters struct {
	query interface{ Get(key string) string }
	table string
	group gDto.FilterGroup
}

func NewFilters(r *http.Request, table string) *Filters {
	return &Filters{
		query: r.URL.Query(),
		table: table,
		group: gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd},
	}
}

// Search matches the search parameter against any of fields.
func (f *Filters) Search(fields ...string) *Filters {
	value := f.query.Get(constant.RequestParamSearch)
	if value == constant.Empty || len(fields) == 0 {
		return f
	}

	search := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}
	for _, field := range fields {
		search.Filters = append(search.Filters, gDto.Filter{
			ArgName:  "search_" + field,
			Field:    field,
			Value:    value,
			Operator: gDto.FilterOperatorLike,
			Table:    f.table,
		})
	}

	f.group.Add(search)

	return f
}

// Equal adds an equality filter for each field named by its query parameter.
func (f *Filters) Equal(fields ...string) *Filters {
	for _, field := range fields {
		if value := f.query.Get(field); value != constant.Empty {
			f.group.Add(gDto.Filter{
				Field:    field,
				Value:    value,
				Operator: gDto.FilterOperatorEq,
				Table:    f.table,
			})
		}
	}

	return f
}

// Bool is Equal for boolean columns. Unparseable values are ignored.
func (f *Filters) Bool(fields ...string) *Filters {
	for _, field := range fields {
		if value := shared.ConvertStringToBool(f.query.Get(field)); value != nil {
			f.group.Add(gDto.Filter{
				Field:    field,
				Value:    *value,
				Operator: gDto.FilterOperatorEq,
				Table:    f.table,
			})
		}
	}

	return f
}

// Range bounds field by the from and to dates (YYYY-MM-DD). The to date is inclusive.
// Dates that do not parse are ignored.
func (f *Filters) Range(field string) *Filters {
	if from, err := time.Parse(time.DateOnly, f.query.Get(constant.RequestParamFrom)); err == nil {
		f.group.Add(gDto.Filter{
			ArgName:  field + "_from",
			Field:    field,
			Value:    from,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    f.table,
		})
	}

	if to, err := time.Parse(time.DateOnly, f.query.Get(constant.RequestParamTo)); err == nil {
		f.group.Add(gDto.Filter{
			ArgName:  field + "_to",
			Field:    field,
			Value:    to.AddDate(0, 0, 1),
			Operator: gDto.FilterOperatorLess,
			Table:    f.table,
		})
	}

	return f
}

func (f *Filters) Group() gDto.FilterGroup {
	return f.group
}

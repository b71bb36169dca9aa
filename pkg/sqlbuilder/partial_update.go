package sqlbuilder

import (
	"strings"

	"jobly/pkg/apperror"

	"github.com/lib/pq"
)

// Field is one named value of a partial update.
type Field struct {
	Name  string
	Value interface{}
}

// PartialUpdate is a SET clause with "?" placeholders and its bound values, in order.
type PartialUpdate struct {
	SetClause string
	Values    []interface{}
}

// ForPartialUpdate builds the SET clause for the given fields. columns translates
// field names to column names; names without an entry are used as-is.
// Column names are always quoted and never interpolated from values.
func ForPartialUpdate(fields []Field, columns map[string]string) (*PartialUpdate, error) {
	if len(fields) == 0 {
		return nil, apperror.BadRequest("No data")
	}

	sets := make([]string, 0, len(fields))
	values := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		col := f.Name
		if mapped, ok := columns[f.Name]; ok {
			col = mapped
		}
		sets = append(sets, pq.QuoteIdentifier(col)+" = ?")
		values = append(values, f.Value)
	}

	return &PartialUpdate{
		SetClause: strings.Join(sets, ", "),
		Values:    values,
	}, nil
}

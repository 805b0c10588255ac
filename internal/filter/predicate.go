// Package filter turns optional product search parameters into a typed
// predicate that compiles to a parameterized WHERE clause.
package filter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Field is a filterable product column. Only the values declared here can
// reach generated SQL.
type Field int

const (
	FieldBrand Field = iota + 1
	FieldColor
	FieldMRP
)

func (f Field) column() string {
	switch f {
	case FieldBrand:
		return "brand"
	case FieldColor:
		return "color"
	case FieldMRP:
		return "mrp"
	default:
		panic(fmt.Sprintf("filter: unknown field %d", int(f)))
	}
}

func (f Field) String() string {
	return f.column()
}

// Clause is a single condition. Implementations are Substring and Range.
type Clause interface {
	// where renders the clause using placeholders starting at $next and
	// returns the values to bind to them.
	where(next int) (string, []any)
}

// Substring matches rows whose field contains Text, ignoring case.
type Substring struct {
	Field Field
	Text  string
}

func (s Substring) where(next int) (string, []any) {
	return fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", s.Field.column(), next), []any{escapeLike(s.Text)}
}

// Range matches rows whose field lies within [Lo, Hi].
type Range struct {
	Field Field
	Lo    decimal.Decimal
	Hi    decimal.Decimal
}

func (r Range) where(next int) (string, []any) {
	return fmt.Sprintf("%s BETWEEN $%d AND $%d", r.Field.column(), next, next+1), []any{r.Lo, r.Hi}
}

// Predicate is a conjunction of clauses. The zero value matches everything.
type Predicate struct {
	clauses []Clause
}

// And returns a predicate that additionally requires c.
func (p Predicate) And(c Clause) Predicate {
	clauses := make([]Clause, len(p.clauses), len(p.clauses)+1)
	copy(clauses, p.clauses)
	return Predicate{clauses: append(clauses, c)}
}

func (p Predicate) Clauses() []Clause {
	return p.clauses
}

func (p Predicate) IsEmpty() bool {
	return len(p.clauses) == 0
}

// Where renders the predicate as a WHERE clause (without the keyword) whose
// placeholders start at $firstArg. An empty predicate renders as "TRUE".
func (p Predicate) Where(firstArg int) (string, []any) {
	if p.IsEmpty() {
		return "TRUE", nil
	}

	parts := make([]string, 0, len(p.clauses))
	var args []any
	next := firstArg
	for _, c := range p.clauses {
		sql, vals := c.where(next)
		parts = append(parts, sql)
		args = append(args, vals...)
		next += len(vals)
	}
	return strings.Join(parts, " AND "), args
}

// Params holds the optional search inputs. Nil means "not supplied".
type Params struct {
	Brand    *string
	Color    *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Build converts search parameters into a predicate. Blank text filters are
// ignored, and the price range applies only when both bounds are given.
func Build(params Params) Predicate {
	var p Predicate

	if text, ok := nonBlank(params.Color); ok {
		p = p.And(Substring{Field: FieldColor, Text: text})
	}
	if text, ok := nonBlank(params.Brand); ok {
		p = p.And(Substring{Field: FieldBrand, Text: text})
	}
	if params.MinPrice != nil && params.MaxPrice != nil {
		p = p.And(Range{Field: FieldMRP, Lo: *params.MinPrice, Hi: *params.MaxPrice})
	}

	return p
}

func nonBlank(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*s)
	return trimmed, trimmed != ""
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

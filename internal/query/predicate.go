package query

import (
	"fmt"
	"strings"
)

// Op identifies the comparison operator of a predicate.
type Op int

const (
	OpEq Op = iota
	OpLt
	OpLe
	OpGt
	OpGe
	OpIn
)

// String returns the SQL spelling of the operator.
func (o Op) String() string {
	switch o {
	case OpEq:
		return "="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpIn:
		return "in"
	default:
		return "?"
	}
}

// Predicate represents a single comparison between a column and one or
// more constant values (e.g., status = 'confirmed', created_at >= '2025-01-01',
// status in ('pending', 'confirmed')). Predicates on the same Scan node are
// implicitly ANDed together.
type Predicate struct {
	column string
	op     Op
	value  Constant
	values []Constant
}

// NewComparison creates a predicate comparing a column against a single constant.
func NewComparison(column string, op Op, value Constant) Predicate {
	return Predicate{
		column: column,
		op:     op,
		value:  value,
	}
}

// NewEquals creates an equality predicate on a column.
func NewEquals(column string, value Constant) Predicate {
	return NewComparison(column, OpEq, value)
}

// NewIn creates an in-list predicate on a column.
func NewIn(column string, values []Constant) Predicate {
	return Predicate{
		column: column,
		op:     OpIn,
		values: values,
	}
}

// Column returns the column the predicate constrains.
func (p Predicate) Column() string {
	return p.column
}

// Operator returns the predicate's comparison operator.
func (p Predicate) Operator() Op {
	return p.op
}

// Value returns the constant for a single-value comparison.
func (p Predicate) Value() Constant {
	return p.value
}

// Values returns the constants of an in-list predicate.
func (p Predicate) Values() []Constant {
	return p.values
}

// String returns a string representation of the predicate.
func (p Predicate) String() string {
	if p.op == OpIn {
		parts := make([]string, len(p.values))
		for i, v := range p.values {
			parts[i] = v.String()
		}
		return fmt.Sprintf("%s in (%s)", p.column, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s %s %s", p.column, p.op, p.value)
}

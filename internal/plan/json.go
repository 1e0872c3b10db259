package plan

import (
	"encoding/json"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/yashagw/craneplan/internal/query"
)

// nodeJSON is the one-of wire form of a logical plan node, as produced by
// the external parser/binder.
type nodeJSON struct {
	Scan  *scanJSON  `json:"scan,omitempty"`
	Join  *joinJSON  `json:"join,omitempty"`
	Order *orderJSON `json:"order,omitempty"`
}

type scanJSON struct {
	Table      string          `json:"table"`
	Columns    []string        `json:"columns,omitempty"`
	Predicates []predicateJSON `json:"predicates,omitempty"`
}

type predicateJSON struct {
	Column string        `json:"column"`
	Op     string        `json:"op"`
	Value  interface{}   `json:"value,omitempty"`
	Values []interface{} `json:"values,omitempty"`
}

type joinJSON struct {
	Left        nodeJSON `json:"left"`
	Right       nodeJSON `json:"right"`
	LeftColumn  string   `json:"left_column"`
	RightColumn string   `json:"right_column"`
}

type orderJSON struct {
	Child nodeJSON      `json:"child"`
	Keys  []sortKeyJSON `json:"keys"`
}

type sortKeyJSON struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc,omitempty"`
}

// UnmarshalNode decodes a logical plan tree from its JSON wire form.
func UnmarshalNode(data []byte) (Node, error) {
	var nj nodeJSON
	if err := json.Unmarshal(data, &nj); err != nil {
		return nil, errors.Wrap(err, "decoding logical plan")
	}
	return nodeFromJSON(&nj)
}

func nodeFromJSON(nj *nodeJSON) (Node, error) {
	switch {
	case nj.Scan != nil:
		predicates := make([]query.Predicate, 0, len(nj.Scan.Predicates))
		for _, pj := range nj.Scan.Predicates {
			pred, err := predicateFromJSON(pj)
			if err != nil {
				return nil, err
			}
			predicates = append(predicates, pred)
		}
		return NewScanNode(nj.Scan.Table, predicates, nj.Scan.Columns), nil
	case nj.Join != nil:
		left, err := nodeFromJSON(&nj.Join.Left)
		if err != nil {
			return nil, err
		}
		right, err := nodeFromJSON(&nj.Join.Right)
		if err != nil {
			return nil, err
		}
		return NewJoinNode(left, right, nj.Join.LeftColumn, nj.Join.RightColumn), nil
	case nj.Order != nil:
		child, err := nodeFromJSON(&nj.Order.Child)
		if err != nil {
			return nil, err
		}
		keys := make([]SortKey, len(nj.Order.Keys))
		for i, kj := range nj.Order.Keys {
			keys[i] = SortKey{Column: kj.Column, Descending: kj.Desc}
		}
		return NewOrderNode(child, keys), nil
	default:
		return nil, errors.New("logical plan node must be one of scan, join, order")
	}
}

func predicateFromJSON(pj predicateJSON) (query.Predicate, error) {
	if pj.Op == "in" {
		values := make([]query.Constant, len(pj.Values))
		for i, raw := range pj.Values {
			v, err := constantFromJSON(raw)
			if err != nil {
				return query.Predicate{}, errors.Wrapf(err, "predicate on %q", pj.Column)
			}
			values[i] = v
		}
		return query.NewIn(pj.Column, values), nil
	}

	op, err := opFromJSON(pj.Op)
	if err != nil {
		return query.Predicate{}, errors.Wrapf(err, "predicate on %q", pj.Column)
	}
	v, err := constantFromJSON(pj.Value)
	if err != nil {
		return query.Predicate{}, errors.Wrapf(err, "predicate on %q", pj.Column)
	}
	return query.NewComparison(pj.Column, op, v), nil
}

func opFromJSON(op string) (query.Op, error) {
	switch op {
	case "=", "eq":
		return query.OpEq, nil
	case "<", "lt":
		return query.OpLt, nil
	case "<=", "le":
		return query.OpLe, nil
	case ">", "gt":
		return query.OpGt, nil
	case ">=", "ge":
		return query.OpGe, nil
	default:
		return 0, errors.Newf("unknown operator %q", op)
	}
}

func constantFromJSON(raw interface{}) (query.Constant, error) {
	switch v := raw.(type) {
	case string:
		return query.NewStringConstant(v), nil
	case float64:
		if v != math.Trunc(v) {
			return query.Constant{}, errors.Newf("non-integer numeric value %v", v)
		}
		return query.NewIntConstant(int(v)), nil
	case nil:
		return query.Constant{}, errors.New("missing value")
	default:
		return query.Constant{}, errors.Newf("unsupported value type %T", raw)
	}
}

package plan

import (
	"time"

	"github.com/golang/glog"

	"github.com/yashagw/craneplan/internal/catalog"
	"github.com/yashagw/craneplan/internal/query"
)

// prunePartitions computes the minimal partition set that can contain rows
// matching the predicate set. Pruning is false-positive safe: when in doubt
// (unparseable value, type mismatch, no usable predicate) it returns every
// partition rather than risk excluding a match.
func prunePartitions(scheme *catalog.PartitionScheme, ps *query.PredicateSet) []catalog.Partition {
	all := scheme.Partitions()
	b := ps.Bounds(scheme.Column())
	if b == nil || b.Empty() {
		return all
	}

	if b.IsEquality() {
		key, ok := partitionValue(b.EqValue(), scheme.Transform())
		if !ok {
			return all
		}
		for i, p := range all {
			if partitionContains(all, i, key) {
				glog.V(2).Infof("[PRUNE] Table %s: %s pinned to partition %s", scheme.Table(), scheme.Column(), p.Name())
				return []catalog.Partition{p}
			}
		}
		return all
	}

	if b.IsInList() {
		var result []catalog.Partition
		for i, p := range all {
			for _, v := range b.InValues() {
				key, ok := partitionValue(v, scheme.Transform())
				if !ok {
					return all
				}
				if partitionContains(all, i, key) {
					result = append(result, p)
					break
				}
			}
		}
		if len(result) == 0 {
			return all
		}
		return result
	}

	if b.HasRange() {
		low, high, ok := rangePartitionKeys(b, scheme.Transform())
		if !ok {
			return all
		}
		var result []catalog.Partition
		for i, p := range all {
			if partitionIntersects(all, i, low, high) {
				result = append(result, p)
			}
		}
		glog.V(2).Infof("[PRUNE] Table %s: range on %s keeps %d of %d partitions",
			scheme.Table(), scheme.Column(), len(result), len(all))
		return result
	}

	return all
}

// partitionValue maps a predicate constant into the partition key domain.
func partitionValue(v query.Constant, transform catalog.Transform) (query.Constant, bool) {
	switch transform {
	case catalog.TransformYear:
		if v.IsInt() {
			// Already a year.
			return v, true
		}
		t, err := time.Parse("2006-01-02", v.AsString())
		if err != nil {
			return query.Constant{}, false
		}
		return query.NewIntConstant(t.Year()), true
	default:
		return v, true
	}
}

// rangePartitionKeys maps a range's endpoints into the partition key domain,
// widening to an inclusive interval. Two refinements keep pruning exact for
// the common "whole year" shapes: an exclusive upper bound falling on
// January 1st excludes that year entirely, and an exclusive lower bound
// falling on December 31st excludes its own year.
func rangePartitionKeys(b *query.ColumnBounds, transform catalog.Transform) (*query.Constant, *query.Constant, bool) {
	var low, high *query.Constant

	if lo, loIncl := b.Low(); lo != nil {
		key, ok := partitionValue(*lo, transform)
		if !ok {
			return nil, nil, false
		}
		if transform == catalog.TransformYear && !loIncl && lo.IsString() {
			if t, err := time.Parse("2006-01-02", lo.AsString()); err == nil && t.Month() == time.December && t.Day() == 31 {
				key = query.NewIntConstant(t.Year() + 1)
			}
		}
		low = &key
	}
	if hi, hiIncl := b.High(); hi != nil {
		key, ok := partitionValue(*hi, transform)
		if !ok {
			return nil, nil, false
		}
		if transform == catalog.TransformYear && !hiIncl && hi.IsString() {
			if t, err := time.Parse("2006-01-02", hi.AsString()); err == nil && t.Month() == time.January && t.Day() == 1 {
				key = query.NewIntConstant(t.Year() - 1)
			}
		}
		high = &key
	}
	return low, high, true
}

// partitionContains reports whether partition i covers the key value:
// values from the previous partition's upper bound (inclusive) up to its
// own upper bound (exclusive).
func partitionContains(partitions []catalog.Partition, i int, key query.Constant) bool {
	if i > 0 {
		prev := partitions[i-1].UpperBound()
		if !sameKind(key, *prev) {
			return true // type confusion: never prune on uncertain input
		}
		if key.CompareTo(*prev) < 0 {
			return false
		}
	}
	upper := partitions[i].UpperBound()
	if upper == nil {
		return true
	}
	if !sameKind(key, *upper) {
		return true
	}
	return key.CompareTo(*upper) < 0
}

// partitionIntersects reports whether partition i overlaps the inclusive
// interval [low, high]; a nil endpoint is unbounded.
func partitionIntersects(partitions []catalog.Partition, i int, low, high *query.Constant) bool {
	if high != nil {
		if i > 0 {
			prev := partitions[i-1].UpperBound()
			if sameKind(*high, *prev) && high.CompareTo(*prev) < 0 {
				return false
			}
		}
	}
	if low != nil {
		upper := partitions[i].UpperBound()
		if upper != nil && sameKind(*low, *upper) && low.CompareTo(*upper) >= 0 {
			return false
		}
	}
	return true
}

func sameKind(a, b query.Constant) bool {
	return a.IsInt() == b.IsInt()
}

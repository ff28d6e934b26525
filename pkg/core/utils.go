package core

// standardAggregations are the aggregate functions the query service
// is known to accept.
var standardAggregations = map[Aggregation]struct{}{
	AggregationCount: {},
	AggregationSum:   {},
	AggregationAvg:   {},
	AggregationMin:   {},
	AggregationMax:   {},
}

// IsStandard reports whether the aggregation is one of the known
// aggregate functions. BuildSelectArgs emits unknown names unchanged;
// this exists so callers can warn before shipping a query off.
func (a Aggregation) IsStandard() bool {
	_, ok := standardAggregations[a]
	return ok
}

package core

// DisplayMode controls whether a filter's dimension appears in the
// projection and grouping output. Hidden filters still constrain the
// result set through the WHERE clause.
type DisplayMode string

const (
	DisplayModeVisible DisplayMode = "visible"
	DisplayModeHidden  DisplayMode = "hidden"
)

// MatchRule is a SQL comparison operator token, emitted verbatim
// between a dimension and its match value.
type MatchRule string

const (
	MatchRuleEq   MatchRule = "="
	MatchRuleNeq  MatchRule = "!="
	MatchRuleLt   MatchRule = "<"
	MatchRuleLte  MatchRule = "<="
	MatchRuleGt   MatchRule = ">"
	MatchRuleGte  MatchRule = ">="
	MatchRuleLike MatchRule = "LIKE"
)

// FilterValue represents the supported data types for match values.
type FilterValue any // string, number, bool, or a raw SQL fragment

// FilterClause is one comparison rule within a Filter. The first
// MatchOn element is the compared value; string values are quoted
// unless IsFunction is set, which emits the value as a raw fragment
// (e.g. a function call like DATE()).
type FilterClause struct {
	MatchRule  MatchRule     `json:"matchRule"`
	MatchOn    []FilterValue `json:"matchOn"`
	IsFunction bool          `json:"isFunction,omitempty"`
}

// Filter is a single comparable dimension: a raw table field or a
// metadata key, with zero or more match clauses.
type Filter struct {
	FieldName   string         `json:"fieldName"`
	FieldAlias  string         `json:"fieldAlias,omitempty"`
	DisplayMode DisplayMode    `json:"displayMode,omitempty"`
	Clauses     []FilterClause `json:"clauses,omitempty"`
}

// Aggregation names a SQL aggregate function applied to the
// conventional value column (e.g. "sum", "avg").
type Aggregation string

const (
	AggregationCount Aggregation = "count"
	AggregationSum   Aggregation = "sum"
	AggregationAvg   Aggregation = "avg"
	AggregationMin   Aggregation = "min"
	AggregationMax   Aggregation = "max"
)

// SortDirection for sorting order.
type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// SortClause defines sorting for a field.
type SortClause struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// QueryProperties is the full declarative description of one query:
// filters over raw table fields, filters over keys extracted from the
// packed labels column, aggregations over the value column, and sort
// order.
type QueryProperties struct {
	FieldFilters    []Filter      `json:"fieldFilters,omitempty"`
	MetadataFilters []Filter      `json:"metadataFilters,omitempty"`
	Aggregations    []Aggregation `json:"aggregations,omitempty"`
	Sort            []SortClause  `json:"sort,omitempty"`
}

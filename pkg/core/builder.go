package core

import (
	"fmt"
	"regexp"
	"strings"
)

// NoLimit disables the LIMIT clause in FormatQuery and BuildQuery.
const NoLimit = -1

var nonWordChars = regexp.MustCompile(`\W`)

// SanitizeAlias replaces every non-word character in alias with an
// underscore so the result is usable as a bare SQL identifier.
func SanitizeAlias(alias string) string {
	return nonWordChars.ReplaceAllString(alias, "_")
}

// MetadataExpr returns the extraction expression for one key of the
// packed labels column. Labels are stored as pipe-delimited key:value
// pairs in a single string column; the delimiters are escaped so the
// pattern is a valid regular expression. The key itself is emitted
// verbatim, so callers must supply a safe identifier.
func MetadataExpr(name string) string {
	return `REGEXP_EXTRACT(labels, "\|` + name + `:(.*?)\|")`
}

// FormatQuery assembles a statement from pre-formatted SQL fragments.
// Sections appear in fixed order and are omitted when their fragment
// list is empty; every fragment is placed on its own tab-indented
// line. WHERE fragments are AND-joined, all other sections are
// comma-joined. Pass NoLimit to omit the LIMIT clause.
func FormatQuery(selectArgs, fromArgs, whereArgs, groupArgs, orderArgs []string, rowLimit int) string {
	var sections []string
	if len(selectArgs) > 0 {
		sections = append(sections, "SELECT\n"+indentJoin(selectArgs, ",\n"))
	}
	if len(fromArgs) > 0 {
		sections = append(sections, "FROM\n"+indentJoin(fromArgs, ",\n"))
	}
	if len(whereArgs) > 0 {
		sections = append(sections, "WHERE\n"+indentJoin(whereArgs, " AND\n"))
	}
	if len(groupArgs) > 0 {
		sections = append(sections, "GROUP BY\n"+indentJoin(groupArgs, ",\n"))
	}
	if len(orderArgs) > 0 {
		sections = append(sections, "ORDER BY\n"+indentJoin(orderArgs, ",\n"))
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(sections, "\n"))
	if rowLimit >= 0 {
		sb.WriteString(fmt.Sprintf("\nLIMIT %d", rowLimit))
	}
	sb.WriteString(";")
	return sb.String()
}

func indentJoin(args []string, sep string) string {
	indented := make([]string, len(args))
	for i, arg := range args {
		indented[i] = "\t" + arg
	}
	return strings.Join(indented, sep)
}

// BuildSelectArgs produces the SELECT fragments for props, in fixed
// order: visible field filters, then visible metadata filters, then
// aggregations. A field filter is aliased only when its alias is
// non-empty and differs from the field name; a metadata filter is
// always aliased to its sanitized field name so the extraction
// expression gets a usable column name.
func BuildSelectArgs(props *QueryProperties) []string {
	var args []string
	for _, f := range props.FieldFilters {
		if f.DisplayMode == DisplayModeHidden {
			continue
		}
		arg := f.FieldName
		if f.FieldAlias != "" && f.FieldAlias != f.FieldName {
			arg += " AS " + SanitizeAlias(f.FieldAlias)
		}
		args = append(args, arg)
	}
	for _, f := range props.MetadataFilters {
		if f.DisplayMode == DisplayModeHidden {
			continue
		}
		args = append(args, MetadataExpr(f.FieldName)+" AS "+SanitizeAlias(f.FieldName))
	}
	for _, agg := range props.Aggregations {
		name := string(agg)
		args = append(args, fmt.Sprintf("%s(value) AS %s", strings.ToUpper(name), strings.ToLower(name)))
	}
	return args
}

// BuildWhereArgs produces one WHERE fragment per filter that has at
// least one clause. A filter's clauses are OR-joined and parenthesized
// when there is more than one; the fragments themselves are later
// AND-joined by FormatQuery. Hidden filters still contribute here:
// a dimension can constrain the result set without being displayed.
func BuildWhereArgs(props *QueryProperties) ([]string, error) {
	var args []string
	for _, f := range props.FieldFilters {
		clauses := make([]string, 0, len(f.Clauses))
		for _, c := range f.Clauses {
			if len(c.MatchOn) == 0 {
				return nil, fmt.Errorf("field filter %q: %w: empty matchOn", f.FieldName, ErrInvalidFilterClause)
			}
			clauses = append(clauses, fmt.Sprintf("%s %s %s", f.FieldName, c.MatchRule, matchValue(c)))
		}
		if arg := disjoin(clauses); arg != "" {
			args = append(args, arg)
		}
	}
	for _, f := range props.MetadataFilters {
		expr := MetadataExpr(f.FieldName)
		clauses := make([]string, 0, len(f.Clauses))
		for _, c := range f.Clauses {
			if len(c.MatchOn) == 0 {
				return nil, fmt.Errorf("metadata filter %q: %w: empty matchOn", f.FieldName, ErrInvalidFilterClause)
			}
			// Metadata values are emitted raw, without the string
			// quoting applied to field values.
			clauses = append(clauses, fmt.Sprintf("%s %s %v", expr, c.MatchRule, c.MatchOn[0]))
		}
		if arg := disjoin(clauses); arg != "" {
			args = append(args, arg)
		}
	}
	return args, nil
}

// matchValue renders the compared value of a clause. String values are
// double quoted unless the clause carries a function call fragment.
func matchValue(c FilterClause) string {
	v := c.MatchOn[0]
	if s, ok := v.(string); ok && !c.IsFunction {
		return `"` + s + `"`
	}
	return fmt.Sprintf("%v", v)
}

// disjoin OR-joins a filter's clause fragments. A single clause stays
// bare; several are parenthesized so the surrounding AND binds
// correctly.
func disjoin(clauses []string) string {
	switch len(clauses) {
	case 0:
		return ""
	case 1:
		return clauses[0]
	default:
		return "(" + strings.Join(clauses, " OR ") + ")"
	}
}

// BuildGroupArgs produces the GROUP BY fragments for props. Grouping
// is only meaningful alongside aggregation, so the result is empty
// when no aggregations are requested. Field filters come before
// metadata filters; hidden filters are excluded.
func BuildGroupArgs(props *QueryProperties) []string {
	if len(props.Aggregations) == 0 {
		return nil
	}
	var args []string
	for _, filters := range [][]Filter{props.FieldFilters, props.MetadataFilters} {
		for _, f := range filters {
			if f.DisplayMode == DisplayModeHidden {
				continue
			}
			if f.FieldAlias != "" {
				args = append(args, SanitizeAlias(f.FieldAlias))
			} else {
				args = append(args, f.FieldName)
			}
		}
	}
	return args
}

// BuildOrderArgs produces the ORDER BY fragments for props.
func BuildOrderArgs(props *QueryProperties) []string {
	var args []string
	for _, s := range props.Sort {
		args = append(args, fmt.Sprintf("%s %s", s.Field, strings.ToUpper(string(s.Direction))))
	}
	return args
}

// BuildQuery composes the argument builders into one statement over
// table. Pass NoLimit to omit the LIMIT clause.
func BuildQuery(table string, props *QueryProperties, rowLimit int) (string, error) {
	if props == nil {
		return "", fmt.Errorf("query properties cannot be nil")
	}
	if table == "" {
		return "", fmt.Errorf("table name cannot be empty")
	}

	whereArgs, err := BuildWhereArgs(props)
	if err != nil {
		return "", err
	}
	selectArgs := BuildSelectArgs(props)
	groupArgs := BuildGroupArgs(props)
	orderArgs := BuildOrderArgs(props)

	return FormatQuery(selectArgs, []string{table}, whereArgs, groupArgs, orderArgs, rowLimit), nil
}

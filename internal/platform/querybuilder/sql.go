package querybuilder

import (
	"strconv"
	"strings"
)

func bind(buf *strings.Builder, args *[]any, argIndex *int, value any) {
	buf.WriteString(placeholder(*argIndex))
	*args = append(*args, value)
	*argIndex = *argIndex + 1
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

func appendWhereClause(buf *strings.Builder, conditions []Condition, args *[]any, argIndex *int) {
	if len(conditions) == 0 {
		return
	}
	buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		c.appendSQL(buf, args, argIndex)
	}
}

func appendList(buf *strings.Builder, keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	buf.WriteString(" ")
	buf.WriteString(keyword)
	buf.WriteString(" ")
	buf.WriteString(strings.Join(parts, ", "))
}

func appendSuffix(buf *strings.Builder, suffix string, args *[]any, argIndex *int) {
	if suffix == "" {
		return
	}
	buf.WriteString(" ")
	buf.WriteString(rewritePlaceholders(suffix, nil, args, argIndex))
}

// rewritePlaceholders swaps each ? for the next $n. Extra markers are kept.
func rewritePlaceholders(expr string, exprArgs []any, args *[]any, argIndex *int) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] != '?' || next >= len(exprArgs) {
			out.WriteByte(expr[i])
			continue
		}
		bind(&out, args, argIndex, exprArgs[next])
		next++
	}
	return out.String()
}

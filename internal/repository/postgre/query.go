package postgre

import (
	"fmt"
	"strings"
	"time"
)

// buildUserRangeQuery builds the WHERE, ORDER and LIMIT tail shared by the
// per-user history listings. timeCol is both the range and the sort column.
func buildUserRangeQuery(timeCol, userID string, from, to time.Time, limit int) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}
	idx := 2

	if !from.IsZero() {
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", timeCol, idx))
		args = append(args, from)
		idx++
	}
	if !to.IsZero() {
		conditions = append(conditions, fmt.Sprintf("%s < $%d", timeCol, idx))
		args = append(args, to)
		idx++
	}

	q := fmt.Sprintf("WHERE %s ORDER BY %s DESC", strings.Join(conditions, " AND "), timeCol)
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d", idx)
		args = append(args, limit)
	}
	return q, args
}

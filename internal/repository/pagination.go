package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Filter is a single predicate applied to a listing query. Equality by
// default; Substring switches to a case-insensitive contains match.
type Filter struct {
	Column    string
	Value     any
	Substring bool
}

// Equals builds an equality filter.
func Equals(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// ContainsFold builds a case-insensitive substring filter.
func ContainsFold(column, value string) Filter {
	return Filter{Column: column, Value: value, Substring: true}
}

// whereClause renders filters into a WHERE clause and its arguments.
// Returns an empty clause when there are no filters.
func whereClause(filters []Filter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		if f.Substring {
			parts = append(parts, fmt.Sprintf("%s ILIKE $%d", f.Column, i+1))
			args = append(args, "%"+fmt.Sprintf("%v", f.Value)+"%")
		} else {
			parts = append(parts, fmt.Sprintf("%s = $%d", f.Column, i+1))
			args = append(args, f.Value)
		}
	}

	return "WHERE " + strings.Join(parts, " AND "), args
}

// Page is the result of a paginated listing: the full filtered count
// plus one window of rows.
type Page[T any] struct {
	Total int64
	Items []T
}

// queryPage runs the two-query pagination pattern: a count query and a
// windowed items query built from the same filter set. Building the
// WHERE clause once guarantees total and items can never disagree on
// what matched. Rows are ordered by ascending id (insertion order), so
// advancing offset by limit walks the filtered set without duplicates
// or gaps.
func queryPage[T any](
	ctx context.Context,
	db DBTX,
	table, columns string,
	filters []Filter,
	offset, limit int,
	scan func(*sql.Rows) (T, error),
) (*Page[T], error) {
	where, args := whereClause(filters)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", table, where)
	var total int64
	if err := db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", table, err)
	}

	itemsQuery := fmt.Sprintf(
		"SELECT %s FROM %s %s ORDER BY id ASC LIMIT $%d OFFSET $%d",
		columns, table, where, len(args)+1, len(args)+2,
	)
	rows, err := db.QueryContext(ctx, itemsQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, err)
	}

	return &Page[T]{Total: total, Items: items}, nil
}

// exists runs a keyed existence check against a table.
func exists(ctx context.Context, db DBTX, table string, id int64) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)
	var found bool
	if err := db.QueryRowContext(ctx, query, id).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", table, err)
	}
	return found, nil
}

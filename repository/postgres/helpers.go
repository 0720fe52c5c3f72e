package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskpress/backend/domain"
)

// setBuilder accumulates SET clauses for a dynamic UPDATE. Placeholder
// numbering starts after the ones reserved for the WHERE clause, so the
// caller prepends its identifiers to Args.
type setBuilder struct {
	clauses []string
	args    []interface{}
	next    int
}

func newSetBuilder(reserved int) *setBuilder {
	return &setBuilder{next: reserved + 1}
}

func (b *setBuilder) Set(column string, value interface{}) {
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", column, b.next))
	b.args = append(b.args, value)
	b.next++
}

func (b *setBuilder) Empty() bool {
	return len(b.clauses) == 0
}

func (b *setBuilder) Clause() string {
	return strings.Join(b.clauses, ", ")
}

func (b *setBuilder) Args() []interface{} {
	return b.args
}

// storeErr classifies a driver failure as a store outage.
func storeErr(resource string, err error) error {
	return domain.WrapError(domain.ErrCodeUnavailable, resource+" store unavailable", err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}

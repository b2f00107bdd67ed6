package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"proofsheet/models"
)

const (
	columnID        = "id"
	columnName      = "name"
	columnStatus    = "status"
	columnToken     = "token"
	columnSelected  = "selected"
	columnOwnerID   = "owner_id"
	columnCreatedAt = "created_at"
	columnUpdatedAt = "updated_at"
)

var projectColumns = strings.Join([]string{
	columnID, columnName, columnStatus, columnToken, columnSelected,
	columnOwnerID, columnCreatedAt, columnUpdatedAt,
}, ", ")

// ProjectFilter narrows ListProjects. Zero values match everything.
type ProjectFilter struct {
	OwnerID uuid.UUID
	Status  models.Status
	Limit   int
}

// Placeholder renders the n-th (1-based) bind parameter for a SQL dialect.
type Placeholder func(n int) string

func dollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func questionPlaceholder(int) string { return "?" }

// QueryBuilder helps build WHERE clauses safely
type QueryBuilder struct {
	conditions  []string
	args        []interface{}
	argCount    int
	placeholder Placeholder
}

func NewQueryBuilder(placeholder Placeholder) *QueryBuilder {
	return &QueryBuilder{
		conditions:  []string{},
		args:        []interface{}{},
		argCount:    1,
		placeholder: placeholder,
	}
}

func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = %s", column, qb.placeholder(qb.argCount)))
	qb.args = append(qb.args, value)
	qb.argCount++
}

// AddFilter applies the non-zero fields of a ProjectFilter. ownerValue
// converts the owner id to the driver's representation.
func (qb *QueryBuilder) AddFilter(filter ProjectFilter, ownerValue func(uuid.UUID) interface{}) {
	if filter.OwnerID != uuid.Nil {
		qb.AddCondition(columnOwnerID, ownerValue(filter.OwnerID))
	}
	if filter.Status != "" {
		qb.AddCondition(columnStatus, string(filter.Status))
	}
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

// LimitClause appends a bound LIMIT when limit is positive.
func (qb *QueryBuilder) LimitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	clause := "LIMIT " + qb.placeholder(qb.argCount)
	qb.args = append(qb.args, validateLimit(limit, defaultLimit, maxLimit))
	qb.argCount++
	return clause
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

const (
	defaultLimit = 50
	maxLimit     = 1000
)

func validateLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

package infra_pg_errors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation     = "unique_violation"
	foreignKeyViolation = "foreign_key_violation"
	rightTruncation     = "string_data_right_truncation"
	checkViolation      = "check_violation"
)

func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolation)
}

// IsDataViolation reports values the schema rejects: overlong strings and failed CHECK constraints.
func IsDataViolation(err error) bool {
	return hasCode(err, rightTruncation) || hasCode(err, checkViolation)
}

func hasCode(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == name
	}
	return false
}

package postgres

import (
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jwalitptl/hospital-api/pkg/errors"
)

// Postgres error codes the API distinguishes.
const (
	codeUniqueViolation       = "23505"
	codeForeignKeyViolation   = "23503"
	codeNotNullViolation      = "23502"
	codeCheckViolation        = "23514"
	codeInvalidTextRepr       = "22P02"
	codeInvalidDatetimeFormat = "22007"
	codeDatetimeOverflow      = "22008"
)

// translate maps a store error onto the application error taxonomy.
// resource names the entity in not-found and conflict messages.
func translate(resource string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFound(resource, err)
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			return errors.Conflict(fmt.Sprintf("%s already exists", resource), err)
		case codeForeignKeyViolation:
			return errors.Validation(foreignKeyMessage(pqErr), err)
		case codeNotNullViolation:
			return errors.Validation(fmt.Sprintf("%s is required", pqErr.Column), err)
		case codeCheckViolation, codeInvalidTextRepr, codeInvalidDatetimeFormat, codeDatetimeOverflow:
			return errors.Validation(pqErr.Message, err)
		}
	}
	return errors.Internal(err)
}

func foreignKeyMessage(pqErr *pq.Error) string {
	if pqErr.Detail != "" {
		return pqErr.Detail
	}
	return "referenced record does not exist"
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation
}

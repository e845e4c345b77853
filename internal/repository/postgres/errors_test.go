package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   apperrors.ErrorCode
		status int
	}{
		{"no rows", fmt.Errorf("failed to get patient: %w", sql.ErrNoRows), apperrors.ErrNotFound, http.StatusNotFound},
		{"unique", &pq.Error{Code: "23505"}, apperrors.ErrConflict, http.StatusBadRequest},
		{"foreign key", fmt.Errorf("failed to add medication M9: %w", &pq.Error{Code: "23503", Detail: `Key (medication_code)=(M9) is not present in table "medication".`}), apperrors.ErrValidation, http.StatusBadRequest},
		{"not null", &pq.Error{Code: "23502", Column: "blood_type"}, apperrors.ErrValidation, http.StatusBadRequest},
		{"bad date", &pq.Error{Code: "22007", Message: "invalid input syntax for type date"}, apperrors.ErrValidation, http.StatusBadRequest},
		{"other pq", &pq.Error{Code: "42P01"}, apperrors.ErrInternal, http.StatusInternalServerError},
		{"other", errors.New("connection reset"), apperrors.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr, ok := apperrors.As(translate("patient", tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.StatusCode())
		})
	}
}

func TestTranslate_Messages(t *testing.T) {
	assert.Equal(t, "patient not found", translate("patient", sql.ErrNoRows).(*apperrors.AppError).Message)
	assert.Equal(t, "blood_type is required", translate("patient", &pq.Error{Code: "23502", Column: "blood_type"}).(*apperrors.AppError).Message)
	assert.Nil(t, translate("patient", nil))

	existing := apperrors.NotFound("treatment", nil)
	assert.Same(t, existing, translate("patient", existing))
}

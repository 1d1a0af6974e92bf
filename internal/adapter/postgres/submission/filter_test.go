package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

func TestBuildWhere(t *testing.T) {
	t.Parallel()

	sql, args, err := buildWhere(domain.SubmissionFilter{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(deleted = ?)", sql)
	assert.Equal(t, []any{false}, args)

	status := domain.StatusAccepted
	sql, args, err = buildWhere(domain.SubmissionFilter{
		FormKey:    "anmeldung_2025",
		Status:     &status,
		ActiveOnly: true,
	}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(deleted = ? AND form_key = ? AND status = ? AND status <> ?)", sql)
	assert.Equal(t, []any{false, "anmeldung_2025", "accepted", "archived"}, args)
}

func TestClampPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, defaultLimit, 0},
		{-5, -1, defaultLimit, 0},
		{10, 20, 10, 20},
		{maxLimit + 1, 0, maxLimit, 0},
	}
	for _, tt := range tests {
		l, o := clampPage(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLimit, l)
		assert.Equal(t, tt.wantOffset, o)
	}
}

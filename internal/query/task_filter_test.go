package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskmanager/internal/errors"
)

var fixedNow = time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)

func sqls(f *TaskFilter) []string {
	out := make([]string, 0, len(f.Predicates))
	for _, p := range f.Predicates {
		out = append(out, p.SQL)
	}
	return out
}

func TestBuildTaskFilter_AlwaysScopesToOwner(t *testing.T) {
	f, err := BuildTaskFilter(7, url.Values{}, fixedNow)
	require.NoError(t, err)

	require.Len(t, f.Predicates, 1)
	assert.Equal(t, "user_id = ?", f.Predicates[0].SQL)
	assert.Equal(t, []interface{}{uint(7)}, f.Predicates[0].Args)
	assert.Equal(t, []string{DefaultOrder}, f.Order)
}

func TestBuildTaskFilter_IgnoresUnknownAndEmptyParams(t *testing.T) {
	params := url.Values{
		"colour":    {"blue"},
		"page":      {"2"},
		"page_size": {"5"},
		"title":     {""},
	}

	f, err := BuildTaskFilter(1, params, fixedNow)
	require.NoError(t, err)
	assert.Len(t, f.Predicates, 1)
}

func TestBuildTaskFilter_Predicates(t *testing.T) {
	tests := []struct {
		name     string
		params   url.Values
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "status exact",
			params:   url.Values{"status": {"pending"}},
			wantSQL:  "status = ?",
			wantArgs: []interface{}{"pending"},
		},
		{
			name:     "title substring case-insensitive",
			params:   url.Values{"title": {"Meeting"}},
			wantSQL:  "LOWER(title) LIKE ? ESCAPE '!'",
			wantArgs: []interface{}{"%meeting%"},
		},
		{
			name:     "description escapes wildcards",
			params:   url.Values{"description": {"50%_off!"}},
			wantSQL:  "LOWER(description) LIKE ? ESCAPE '!'",
			wantArgs: []interface{}{"%50!%!_off!!%"},
		},
		{
			name:     "due date exact",
			params:   url.Values{"due_date": {"2024-06-15"}},
			wantSQL:  "due_date = ?",
			wantArgs: []interface{}{"2024-06-15"},
		},
		{
			name:     "due date after is inclusive",
			params:   url.Values{"due_date_after": {"2024-06-01"}},
			wantSQL:  "due_date >= ?",
			wantArgs: []interface{}{"2024-06-01"},
		},
		{
			name:     "due date before is inclusive",
			params:   url.Values{"due_date_before": {"2024-07-01"}},
			wantSQL:  "due_date <= ?",
			wantArgs: []interface{}{"2024-07-01"},
		},
		{
			name:     "status changed after",
			params:   url.Values{"status_changed_after": {"2024-01-15T08:00:00Z"}},
			wantSQL:  "status_changed_at >= ?",
			wantArgs: []interface{}{time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)},
		},
		{
			name:     "overdue relative to now",
			params:   url.Values{"is_overdue": {"TRUE"}},
			wantSQL:  "due_date < ? AND status IN ?",
			wantArgs: []interface{}{"2024-02-01", []string{"pending", "in_progress"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := BuildTaskFilter(1, tt.params, fixedNow)
			require.NoError(t, err)
			require.Len(t, f.Predicates, 2)
			assert.Equal(t, tt.wantSQL, f.Predicates[1].SQL)
			assert.Equal(t, tt.wantArgs, f.Predicates[1].Args)
		})
	}
}

func TestBuildTaskFilter_OverdueOnlyWhenTrue(t *testing.T) {
	for _, v := range []string{"false", "1", "yes"} {
		f, err := BuildTaskFilter(1, url.Values{"is_overdue": {v}}, fixedNow)
		require.NoError(t, err)
		assert.Len(t, f.Predicates, 1, "is_overdue=%s", v)
	}
}

func TestBuildTaskFilter_RepeatedParamsAreANDed(t *testing.T) {
	f, err := BuildTaskFilter(1, url.Values{"title": {"Meeting", "Project"}}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"user_id = ?",
		"LOWER(title) LIKE ? ESCAPE '!'",
		"LOWER(title) LIKE ? ESCAPE '!'",
	}, sqls(f))
	assert.Equal(t, []interface{}{"%meeting%"}, f.Predicates[1].Args)
	assert.Equal(t, []interface{}{"%project%"}, f.Predicates[2].Args)
}

func TestBuildTaskFilter_SearchSplitsTerms(t *testing.T) {
	f, err := BuildTaskFilter(1, url.Values{"search": {"board, Meeting"}}, fixedNow)
	require.NoError(t, err)

	require.Len(t, f.Predicates, 3)
	assert.Equal(t, "(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", f.Predicates[1].SQL)
	assert.Equal(t, []interface{}{"%board%", "%board%"}, f.Predicates[1].Args)
	assert.Equal(t, []interface{}{"%meeting%", "%meeting%"}, f.Predicates[2].Args)
}

func TestBuildTaskFilter_Ordering(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		want   []string
	}{
		{name: "default", params: url.Values{}, want: []string{"id ASC"}},
		{name: "ascending", params: url.Values{"ordering": {"due_date"}}, want: []string{"due_date ASC", "id ASC"}},
		{name: "descending", params: url.Values{"ordering": {"-created_at"}}, want: []string{"created_at DESC", "id ASC"}},
		{name: "multiple", params: url.Values{"ordering": {"-status_changed_at,due_date"}}, want: []string{"status_changed_at DESC", "due_date ASC", "id ASC"}},
		{name: "unknown key ignored", params: url.Values{"ordering": {"password,-title"}}, want: []string{"id ASC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := BuildTaskFilter(1, tt.params, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Order)
		})
	}
}

func TestBuildTaskFilter_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		params    url.Values
		wantField string
	}{
		{name: "malformed due_date", params: url.Values{"due_date": {"15/06/2024"}}, wantField: "due_date"},
		{name: "malformed due_date_after", params: url.Values{"due_date_after": {"tomorrow"}}, wantField: "due_date_after"},
		{name: "malformed due_date_before", params: url.Values{"due_date_before": {"2024-13-01"}}, wantField: "due_date_before"},
		{name: "malformed status_changed_after", params: url.Values{"status_changed_after": {"yesterday"}}, wantField: "status_changed_after"},
		{name: "unknown status", params: url.Values{"status": {"archived"}}, wantField: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := BuildTaskFilter(1, tt.params, fixedNow)
			assert.Nil(t, f)

			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestBuildTaskFilter_MalformedDateFailsWholeRequest(t *testing.T) {
	params := url.Values{
		"status":   {"pending"},
		"due_date": {"not-a-date"},
	}

	_, err := BuildTaskFilter(1, params, fixedNow)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{apperrors.MsgInvalidDate}, verr.Fields["due_date"])
}

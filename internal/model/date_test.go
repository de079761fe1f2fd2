package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate_DropsTimeOfDay(t *testing.T) {
	d := NewDate(time.Date(2024, 7, 1, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, "2024-07-01", d.String())
	assert.True(t, d.Before(NewDate(time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC))))
	assert.False(t, d.Before(d))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	for _, bad := range []string{"2023-02-29", "29/02/2024", "2024-2-1", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDate_JSON(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)

	data, err := json.Marshal(struct {
		Due Date `json:"due"`
	}{Due: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-12-31"}`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-01-15"`), &decoded))
	assert.Equal(t, "2025-01-15", decoded.String())

	assert.Error(t, json.Unmarshal([]byte(`"15-01-2025"`), &decoded))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    string
		wantErr bool
	}{
		{name: "time", value: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), want: "2024-05-06"},
		{name: "string", value: "2024-05-06", want: "2024-05-06"},
		{name: "sqlite datetime text", value: "2024-05-06 00:00:00+00:00", want: "2024-05-06"},
		{name: "bytes", value: []byte("2024-05-06"), want: "2024-05-06"},
		{name: "garbage", value: "soon", wantErr: true},
		{name: "unsupported type", value: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())

			v, err := d.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestTaskStatus(t *testing.T) {
	assert.True(t, TaskStatusPending.Valid())
	assert.True(t, TaskStatusInProgress.Open())
	assert.False(t, TaskStatusCompleted.Open())
	assert.False(t, TaskStatus("archived").Valid())
}

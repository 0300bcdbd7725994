package challonge

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2015-01-19T16:57:17.000-05:00")
	require.NoError(t, err)
	require.True(t, got.Valid)

	want := time.Date(2015, 1, 19, 21, 57, 17, 0, time.UTC)
	require.True(t, want.Equal(got.Time))
	require.Equal(t, "2015-01-19T16:57:17.000-05:00", FormatTimestamp(got.Time))
}

func TestParseTimestampAbsent(t *testing.T) {
	for _, s := range []string{"null", ""} {
		got, err := ParseTimestamp(s)
		require.NoError(t, err)
		require.False(t, got.Valid)
	}
}

func TestParseTimestampWithoutMillis(t *testing.T) {
	got, err := ParseTimestamp("2015-01-19T16:57:17-05:00")
	require.NoError(t, err)
	require.True(t, got.Valid)
	require.Equal(t, 17, got.Time.Second())
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	_, err := ParseTimestamp("yesterday")
	require.Error(t, err)
}

func TestNullTimeJSON(t *testing.T) {
	var v struct {
		A NullTime `json:"a"`
		B NullTime `json:"b"`
		C NullTime `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a":"2020-03-01T10:00:00.000+01:00","b":null,"c":"null"}`), &v)
	require.NoError(t, err)
	require.True(t, v.A.Valid)
	require.False(t, v.B.Valid)
	require.False(t, v.C.Valid)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":"2020-03-01T10:00:00.000+01:00","b":null,"c":null}`, string(data))
}

func TestFloatDecodesStringOrNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want Float
	}{
		{`"1.0"`, 1},
		{`0.5`, 0.5},
		{`"0.25"`, 0.25},
		{`3`, 3},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var got Float
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			require.Equal(t, tt.want, got)
		})
	}

	var bad Float
	require.Error(t, json.Unmarshal([]byte(`"one"`), &bad))

	data, err := json.Marshal(Float(1.5))
	require.NoError(t, err)
	require.Equal(t, `"1.5"`, string(data))
}

func TestNullInt(t *testing.T) {
	tests := []struct {
		raw  string
		want NullInt
	}{
		{`4`, NullInt{Int: 4, Valid: true}},
		{`"8"`, NullInt{Int: 8, Valid: true}},
		{`""`, NullInt{}},
		{`null`, NullInt{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var got NullInt
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			require.Equal(t, tt.want, got)
		})
	}
}

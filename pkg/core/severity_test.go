package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   Severity
		wantOK bool
	}{
		{"off", SeverityOff, true},
		{"0", SeverityOff, true},
		{"warn", SeverityWarn, true},
		{"Warning", SeverityWarn, true},
		{"1", SeverityWarn, true},
		{" ERROR ", SeverityError, true},
		{"2", SeverityError, true},
		{"fatal", SeverityOff, false},
		{"3", SeverityOff, false},
		{"", SeverityOff, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSeverity(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityFromValue(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    Severity
		wantErr bool
	}{
		{"string", "warn", SeverityWarn, false},
		{"int", 2, SeverityError, false},
		{"int64", int64(0), SeverityOff, false},
		{"uint64", uint64(1), SeverityWarn, false},
		{"float", float64(2), SeverityError, false},
		{"severity", SeverityWarn, SeverityWarn, false},
		{"fractional", 1.5, SeverityOff, true},
		{"out of range", 5, SeverityOff, true},
		{"negative", -1, SeverityOff, true},
		{"bool", true, SeverityOff, true},
		{"nil", nil, SeverityOff, true},
		{"invalid severity value", Severity(7), SeverityOff, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SeverityFromValue(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "off", SeverityOff.String())
	assert.Equal(t, "warn", SeverityWarn.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}

func TestSeverity_Ordering(t *testing.T) {
	assert.Less(t, SeverityOff, SeverityWarn)
	assert.Less(t, SeverityWarn, SeverityError)
	assert.Equal(t, 2, int(SeverityError))
}

func TestSeverity_Text(t *testing.T) {
	text, err := SeverityWarn.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warn", string(text))

	_, err = Severity(4).MarshalText()
	assert.Error(t, err)

	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("error")))
	assert.Equal(t, SeverityError, s)
	assert.Error(t, s.UnmarshalText([]byte("loud")))
}

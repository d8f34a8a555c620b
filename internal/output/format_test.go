package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
	}{
		{"yaml", FormatYAML},
		{"YML", FormatYAML},
		{"json", FormatJSON},
		{"table", FormatTable},
		{"", FormatYAML},
		{"xml", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOutputFormat(tt.input))
		})
	}
}

func TestOutputFormat_IsValid(t *testing.T) {
	for _, f := range ValidFormats() {
		assert.True(t, OutputFormat(f).IsValid(), f)
	}
	assert.False(t, OutputFormat("dir").IsValid())
}

func TestOutputFormat_Ext(t *testing.T) {
	assert.Equal(t, ".json", FormatJSON.Ext())
	assert.Equal(t, ".yaml", FormatYAML.Ext())
}

package helpers_test

import (
	"bytes"
	"errors"
	"testing"

	"repo-flatten/helpers"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, helpers.FormatBytes(tt.in))
	}
}

func TestPrinterPlain(t *testing.T) {
	helpers.SetColorEnabled(false)

	var buf bytes.Buffer
	p := helpers.NewPrinter(&buf)
	p.Label("Cloning repository:", "https://github.com/acme/widgets.git")
	p.Step("Processing: %s", "a.txt")
	p.Success("Content has been saved to %s", "output/widgets_docs.txt")

	assert.Equal(t,
		"Cloning repository: https://github.com/acme/widgets.git\n"+
			"Processing: a.txt\n"+
			"Content has been saved to output/widgets_docs.txt\n",
		buf.String())
}

func TestErrorLine(t *testing.T) {
	helpers.SetColorEnabled(false)

	var buf bytes.Buffer
	helpers.Error(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestIsTerminalNonFile(t *testing.T) {
	assert.False(t, helpers.IsTerminal(&bytes.Buffer{}))
}

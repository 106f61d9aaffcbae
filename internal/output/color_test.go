package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	tests := []struct {
		name         string
		useColor     bool
		method       func(p *Printer)
		wantContains string
		wantNoColor  string
		wantErr      bool
	}{
		{
			name:     "success with color",
			useColor: true,
			method: func(p *Printer) {
				p.Success("Operation completed")
			},
			wantContains: "✓ Operation completed",
		},
		{
			name:     "success without color",
			useColor: false,
			method: func(p *Printer) {
				p.Success("Operation completed")
			},
			wantNoColor: "✓ Operation completed\n",
		},
		{
			name:     "error with color",
			useColor: true,
			method: func(p *Printer) {
				p.Error("Something went wrong")
			},
			wantContains: "✗ Something went wrong",
			wantErr:      true,
		},
		{
			name:     "warning with format",
			useColor: false,
			method: func(p *Printer) {
				p.Warning("File %s not found", "test.txt")
			},
			wantNoColor: "⚠ File test.txt not found\n",
			wantErr:     true,
		},
		{
			name:     "info message",
			useColor: false,
			method: func(p *Printer) {
				p.Info("Processing %d items", 42)
			},
			wantNoColor: "→ Processing 42 items\n",
		},
		{
			name:     "step message",
			useColor: false,
			method: func(p *Printer) {
				p.Step("Snapshotting latest run (%s)...", "dev")
			},
			wantNoColor: "▶ Snapshotting latest run (dev)...\n",
		},
		{
			name:     "detail message",
			useColor: false,
			method: func(p *Printer) {
				p.Detail("status: %s", "COMPLETED")
			},
			wantNoColor: "  status: COMPLETED\n",
		},
		{
			name:     "saved file with size",
			useColor: false,
			method: func(p *Printer) {
				p.Saved("Snapshot saved to", "/tmp/latest.md", 1500)
			},
			wantNoColor: "✓ Snapshot saved to: /tmp/latest.md (1.5 kB)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			p := NewPrinterWithWriters(&out, &errOut, tt.useColor)

			tt.method(p)

			got := out.String()
			if tt.wantErr {
				got = errOut.String()
				assert.Empty(t, out.String())
			} else {
				assert.Empty(t, errOut.String())
			}

			if tt.wantNoColor != "" {
				assert.Equal(t, tt.wantNoColor, got)
			}
			if tt.wantContains != "" {
				assert.Contains(t, got, tt.wantContains)
			}
			if tt.useColor {
				assert.True(t, strings.Contains(got, "\x1b["), "expected ANSI escape in %q", got)
			}
		})
	}
}

func TestIsTerminalRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, isTerminal())
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Backland-Labs/runsnap/internal/output"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantErr      bool
		wantInOutput []string
	}{
		{
			name:    "help flag shows usage",
			args:    []string{"--help"},
			wantErr: false,
			wantInOutput: []string{
				"snapshot the latest Trigger.dev run",
				"Usage:",
				"runsnap [--prod | --dev]",
				"Flags:",
				"--prod",
				"--dev",
				"TRIGGER_SECRET_KEY_PROD",
			},
		},
		{
			name:    "positional arguments are rejected",
			args:    []string{"run_1"},
			wantErr: true,
			wantInOutput: []string{
				`Error: unknown command "run_1" for "runsnap`,
			},
		},
		{
			name:    "invalid flag shows error",
			args:    []string{"--invalid"},
			wantErr: true,
			wantInOutput: []string{
				"unknown flag: --invalid",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			deps := &Dependencies{Printer: output.NewPrinterWithWriters(&out, &errOut, false)}

			rootCmd := NewRootCommand(deps)
			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)
			rootCmd.SetArgs(tt.args)

			err := rootCmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			got := buf.String()
			for _, want := range tt.wantInOutput {
				if !strings.Contains(got, want) {
					t.Errorf("Execute() output missing %q\nGot: %s", want, got)
				}
			}
		})
	}
}

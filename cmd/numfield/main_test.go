package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

const overrideTable = "../../testdata/separators_override.json"

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "format with locale flag",
			args: []string{"--locale", "de-DE", "format", "1234.5", "abc"},
			want: "1234.5\t1.234,5\nabc\t\n",
		},
		{
			name: "parse with locale separators",
			args: []string{"--locale", "en-US", "parse", "1,234.5"},
			want: "1,234.5\t1234.5\n",
		},
		{
			name: "parse naive",
			args: []string{"parse", "--naive", "1.234,56", "1,5"},
			want: "1.234,56\t1234.56\n1,5\t1.5\n",
		},
		{
			name: "format with separator table",
			args: []string{"--separators", overrideTable, "--locale", "de-CH", "format", "1234.5"},
			want: "1234.5\t1'234,5\n",
		},
		{
			name: "separators with table",
			args: []string{"--separators", overrideTable, "separators", "de-CH"},
			want: "de-CH\tdecimal=\",\" group=\"'\" sizes=3/3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := newApp(&out).Run(context.Background(), append([]string{appName}, tt.args...))
			if err != nil {
				t.Fatalf("Run(%q) returned error: %v", tt.args, err)
			}
			if out.String() != tt.want {
				t.Fatalf("Run(%q) printed %q; want %q", tt.args, out.String(), tt.want)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), []string{appName, "--locale", "de-DE", "format"})
	if !errors.Is(err, errNoArguments) {
		t.Fatalf("format without values error = %v; want errNoArguments", err)
	}

	err = newApp(&out).Run(context.Background(), []string{appName, "--separators", "missing.yaml", "separators", "de"})
	if err == nil {
		t.Fatalf("missing separator table was accepted")
	}
	if out.Len() != 0 {
		t.Fatalf("failed commands printed %q", out.String())
	}
}

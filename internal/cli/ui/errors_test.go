package ui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

func TestFormatError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "not found",
				Problem: "Храната не е намерена",
			},
			contains: []string{"❌", "NOT FOUND: Храната не е намерена"},
		},
		{
			name: "details and suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Problem:     "bad goal",
				Details:     []string{"goal: невалидна цел"},
				Suggestions: []string{"LOSE_WEIGHT", "GAIN_WEIGHT"},
			},
			contains: []string{"   • goal: невалидна цел", "Did you mean: LOSE_WEIGHT, GAIN_WEIGHT?"},
		},
		{
			name: "help commands",
			opts: ErrorOptions{
				Level:        ErrorLevelError,
				Problem:      "Трябва да сте влезли в профила си",
				HelpCommands: []string{"Sign in: fitdump login"},
			},
			contains: []string{"→ Sign in: fitdump login"},
		},
		{
			name:     "warning",
			opts:     ErrorOptions{Level: ErrorLevelWarning, Problem: "careful"},
			contains: []string{"⚠️", "careful"},
		},
		{
			name:     "info",
			opts:     ErrorOptions{Level: ErrorLevelInfo, Problem: "fyi"},
			contains: []string{"ℹ️", "fyi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.NoColor = true
			result := FormatError(tt.opts)
			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("FormatError() output missing %q\nGot:\n%s", expected, result)
				}
			}
		})
	}
}

func TestFormatSuccess(t *testing.T) {
	var buf bytes.Buffer
	WriteSuccess(&buf, "Записът е добавен", true)
	if got := buf.String(); got != "✓ Записът е добавен\n" {
		t.Errorf("WriteSuccess() = %q", got)
	}
}

func TestDescribeError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ve := &model.ValidationError{}
	ve.Add("name", "полето е задължително")

	tests := []struct {
		name     string
		err      error
		contains []string
		excludes []string
	}{
		{
			name:     "validation",
			err:      fmt.Errorf("create food: %w", ve),
			contains: []string{"VALIDATION FAILED", "• name: полето е задължително", "fitdump foods create --help"},
		},
		{
			name:     "sign in",
			err:      resource.ErrSignInRequired,
			contains: []string{resource.MsgSignInRequired, "fitdump login"},
		},
		{
			name:     "server message",
			err:      &api.Error{StatusCode: 409, Message: "Категорията съдържа упражнения"},
			contains: []string{"HTTP 409: Категорията съдържа упражнения"},
		},
		{
			name:     "plain",
			err:      errors.New("dial tcp: refused"),
			contains: []string{"❌ dial tcp: refused"},
			excludes: []string{"HTTP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribeError(tt.err, "foods create", true)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("DescribeError() missing %q\nGot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("DescribeError() should not contain %q\nGot:\n%s", s, got)
				}
			}
		})
	}
}

func TestUnknownValueError(t *testing.T) {
	got := UnknownValueError("GOAL", "LOSE_WIEGHT", []string{"LOSE_WEIGHT", "MAINTAIN_WEIGHT", "GAIN_WEIGHT"}, true)

	for _, s := range []string{"UNKNOWN GOAL", "'LOSE_WIEGHT' is not a valid goal.", "Did you mean: LOSE_WEIGHT", "Valid values: LOSE_WEIGHT, MAINTAIN_WEIGHT, GAIN_WEIGHT"} {
		if !strings.Contains(got, s) {
			t.Errorf("UnknownValueError() missing %q\nGot:\n%s", s, got)
		}
	}
}

func TestConfigError(t *testing.T) {
	got := ConfigError("storage.driver must be one of memory, sqlite, postgres, redis", true)
	if !strings.Contains(got, "CONFIGURATION ERROR") || !strings.Contains(got, "fitdump.yaml") {
		t.Errorf("ConfigError() = %s", got)
	}
}

func TestWarning(t *testing.T) {
	got := Warning("Нямате запазени лични настройки", []string{"fitdump settings set --weight 80"}, true)

	for _, s := range []string{"⚠️ Нямате запазени лични настройки", "→ fitdump settings set --weight 80"} {
		if !strings.Contains(got, s) {
			t.Errorf("Warning() missing %q\nGot:\n%s", s, got)
		}
	}
	if strings.Contains(got, "Did you mean") {
		t.Errorf("Warning() renders next steps as suggestions:\n%s", got)
	}
}

package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Details      []string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ VALIDATION FAILED: Моля, коригирайте полетата
//	   • name: полето е задължително
//
//	   → Get help: fitdump foods create --help
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠️"
	case ErrorLevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "ℹ️"
	default:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "❌"
	}

	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	for _, d := range opts.Details {
		bodyColor.Fprintf(&b, "   • %s\n", d)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// CollectionError renders the message a store recorded for a failed
// operation. message is already the text meant for the user.
func CollectionError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Problem: message,
		NoColor: noColor,
	})
}

// ValidationError lists the fields that failed the local checks.
func ValidationError(ve *model.ValidationError, command string, noColor bool) string {
	details := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		details = append(details, fe.Field+": "+fe.Message)
	}
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "VALIDATION FAILED",
		Problem: "Моля, коригирайте полетата",
		Details: details,
		NoColor: noColor,
	}
	if command != "" {
		opts.HelpCommands = []string{"Get help: fitdump " + command + " --help"}
	}
	return FormatError(opts)
}

// SignInRequired is shown when a command needs a signed-in user.
func SignInRequired(noColor bool) string {
	return FormatError(ErrorOptions{
		Level:        ErrorLevelError,
		Problem:      resource.MsgSignInRequired,
		HelpCommands: []string{"Sign in: fitdump login"},
		NoColor:      noColor,
	})
}

// UnknownValueError reports an enum value that is not one of choices.
func UnknownValueError(kind, value string, choices []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:        ErrorLevelError,
		Context:      "UNKNOWN " + kind,
		Problem:      fmt.Sprintf("'%s' is not a valid %s.", value, strings.ToLower(kind)),
		Suggestions:  FindSimilar(value, choices, nil),
		HelpCommands: []string{"Valid values: " + strings.Join(choices, ", ")},
		NoColor:      noColor,
	})
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "CONFIGURATION ERROR",
		Problem: message,
		HelpCommands: []string{
			"View config: cat fitdump.yaml",
			"Override with env: FITDUMP_API_BASE_URL=http://localhost:8080/api",
		},
		NoColor: noColor,
	})
}

// DescribeError picks the rendering for err: local validation, a missing
// sign-in, a server message, or the plain error text.
func DescribeError(err error, command string, noColor bool) string {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return ValidationError(ve, command, noColor)
	case resource.IsSignInRequired(err):
		return SignInRequired(noColor)
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return FormatError(ErrorOptions{
			Level:   ErrorLevelError,
			Context: fmt.Sprintf("HTTP %d", apiErr.StatusCode),
			Problem: apiErr.Message,
			NoColor: noColor,
		})
	}
	return FormatError(ErrorOptions{Level: ErrorLevelError, Problem: err.Error(), NoColor: noColor})
}

// Warning creates a standardized warning message followed by the commands
// that resolve it
func Warning(message string, next []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:        ErrorLevelWarning,
		Problem:      message,
		HelpCommands: next,
		NoColor:      noColor,
	})
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelInfo,
		Problem: message,
		NoColor: noColor,
	})
}

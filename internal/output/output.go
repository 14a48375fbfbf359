// Package output prints styled terminal messages for the weaver CLI.
// Styling goes through lipgloss; callers only pick the kind of message.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	writer      io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetOutput redirects all messages, e.g. to a cobra command's writer.
// A nil writer restores stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	writer = w
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(writer, s)
}

// Success prints a completed operation.
//
//	output.Success("Wrote 3 files")
func Success(msg string) {
	emit(successStyle.Render("🕸️  " + msg))
}

// Error prints a failure that needs attention.
func Error(msg string) {
	emit(errorStyle.Render("❌ " + msg))
}

// Warn prints something the user should know about but that did not stop
// the command.
func Warn(msg string) {
	emit(warnStyle.Render("⚠️  " + msg))
}

// Info prints a status update.
func Info(msg string) {
	emit(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented sub-item in gray.
//
//	output.Step("out/graph.html")
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Verbose prints only when verbose mode is enabled.
func Verbose(msg string) {
	mu.Lock()
	enabled := verboseMode
	mu.Unlock()
	if enabled {
		emit(stepStyle.Render("🔍 " + msg))
	}
}

// Rule prints a horizontal separator.
func Rule() {
	emit(ruleStyle.Render(strings.Repeat("━", 36)))
}

// Plain prints msg unstyled.
func Plain(msg string) {
	emit(msg)
}

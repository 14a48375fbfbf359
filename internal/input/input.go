// Package input reads answers to interactive prompts.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Confirm asks a yes/no question on stdin.
//
//	if input.Confirm("Export anyway?", false) {
//	    ...
//	}
//	// Displays: Export anyway? [y/N]: _
func Confirm(message string, defaultYes bool) bool {
	return ConfirmFrom(os.Stdin, os.Stdout, message, defaultYes)
}

// ConfirmFrom is Confirm over arbitrary streams. A read error or empty
// answer returns defaultYes.
func ConfirmFrom(r io.Reader, w io.Writer, message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(w, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && answer == "" {
		return defaultYes
	}

	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer == "" {
		return defaultYes
	}
	return answer == "y" || answer == "yes"
}

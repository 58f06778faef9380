package infrastructure

import "strings"

// shellSpecial are the characters that force an argument into quotes
// when a command line is rendered for the logs.
const shellSpecial = " \t'\"$`\\!*?[](){}|;<>&~#%\n\r"

// ShellEscape renders s safely for display in a logged command line.
// exec.Command passes arguments to the process directly, so this is
// for display only.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecial) {
		return s
	}
	// Single-quote the argument. An embedded single quote closes the
	// quote, emits a double-quoted quote and reopens: ' becomes '"'"'
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// ShellEscapeCommand renders a binary and its arguments as one
// shell-safe command line for the logs
func ShellEscapeCommand(binary string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, ShellEscape(binary))
	for _, arg := range args {
		parts = append(parts, ShellEscape(arg))
	}
	return strings.Join(parts, " ")
}

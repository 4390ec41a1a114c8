package command

import "strings"

// shellUnsafe lists the characters that make an argument require quoting
// in a POSIX shell command line.
const shellUnsafe = " \t\n'\"\\$`&|;<>()*?[]#~!{}"

// ShellJoin renders a command invocation as a single shell line,
// single-quoting every argument that would otherwise be split or
// interpreted. Used by DryRun implementations so generated scripts stay
// valid for paths containing spaces or quotes.
func ShellJoin(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// shellQuote single-quotes an argument if needed, escaping embedded
// single quotes as '\''.
func shellQuote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, shellUnsafe) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

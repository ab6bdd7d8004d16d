package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell script is generated from flagRegistry.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Help      string   // description text
	Values    []string // suggested values; nil for booleans and free values
	ValueName string   // label of the value; empty for booleans
	IsFile    bool     // the value is a file path
	IsVariant bool     // the values come from the variant registry
}

var flagRegistry = []FlagCompletion{
	{Name: "help", Help: "Show help message"},
	{Name: "version", Help: "Show version information"},
	{Name: "variant", Help: "Library variant", IsVariant: true, ValueName: "variant"},
	{Name: "backend", Help: "Library backend", Values: []string{"builtin", "plugin", "script"}, ValueName: "backend"},
	{Name: "path", Help: "Plugin or script file", IsFile: true, ValueName: "file"},
	{Name: "label", Help: "Language tag of builtin variants", Values: []string{"Go", "C", "Rust"}, ValueName: "label"},
	{Name: "count", Help: "Number of loop iterations", ValueName: "number"},
	{Name: "offset", Help: "Index offset passed to printfib", ValueName: "number"},
	{Name: "delay", Help: "Pause between iterations", Values: []string{"0s", "1s", "10s"}, ValueName: "duration"},
	{Name: "timeout", Help: "Maximum run time", Values: []string{"30s", "1m", "5m"}, ValueName: "duration"},
	{Name: "banner", Help: "Print the host banner"},
	{Name: "measure", Help: "Append call durations"},
	{Name: "mark-last", Help: "Mark the last exact index"},
	{Name: "compare", Help: "Compare variants"},
	{Name: "compare-max", Help: "Highest compared index", ValueName: "number"},
	{Name: "verbose", Help: "List compared values"},
	{Name: "tui", Help: "Interactive dashboard"},
	{Name: "repl", Help: "Interactive library shell"},
	{Name: "list", Help: "List builtin variants"},
	{Name: "metrics-addr", Help: "Prometheus listen address", ValueName: "address"},
	{Name: "log-level", Help: "Log level", Values: []string{"trace", "debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Name: "no-color", Help: "Disable colors"},
	{Name: "quiet", Help: "Suppress informational output"},
	{Name: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh"
// or "fish") to out. variants lists the builtin variant names.
func GenerateCompletion(out io.Writer, shell string, variants []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(variants)
	case "zsh":
		script = zshCompletion(variants)
	case "fish":
		script = fishCompletion(variants)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func variantWords(variants []string) string {
	return strings.Join(append(append([]string(nil), variants...), "all"), " ")
}

func bashCompletion(variants []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Name)
		var body string
		switch {
		case f.IsVariant:
			body = `COMPREPLY=( $(compgen -W "${variants}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        -%s|--%s)\n            %s\n            return 0\n            ;;\n", f.Name, f.Name, body)
	}

	return fmt.Sprintf(`# Bash completion script for fibhost
# Add this to your ~/.bashrc or ~/.bash_completion

_fibhost_completions() {
    local cur prev opts variants
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    variants="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibhost_completions fibhost
`, strings.Join(opts, " "), variantWords(variants), cases.String())
}

func zshCompletion(variants []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		suffix := ""
		switch {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case f.IsVariant:
			suffix = fmt.Sprintf(":%s:($variants)", f.ValueName)
		case len(f.Values) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
		case f.ValueName != "":
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}
		args = append(args, fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, suffix))
	}

	return fmt.Sprintf(`#compdef fibhost

# Zsh completion script for fibhost
# Place this file in a directory of your $fpath

_fibhost() {
    local -a variants
    variants=(%s)

    _arguments \
%s
}

_fibhost "$@"
`, variantWords(variants), strings.Join(args, " \\\n"))
}

func fishCompletion(variants []string) string {
	lines := []string{
		"# Fish completion script for fibhost",
		"# Add this to ~/.config/fish/completions/fibhost.fish",
		"",
		"complete -c fibhost -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c fibhost", "-o " + f.Name, fmt.Sprintf("-d '%s'", f.Help)}
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsVariant:
			parts = append(parts, fmt.Sprintf("-xa '%s'", variantWords(variants)))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

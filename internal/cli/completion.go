package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Name: "help", Help: "Show help message"},
	{Name: "version", Help: "Show version information"},
	{Name: "tick-interval", Help: "Delay between regenerations", Values: []string{"40ms", "80ms", "120ms"}, ValueName: "duration"},
	{Name: "ticks", Help: "Regenerations before the final draw", Values: []string{"4", "8", "16"}, ValueName: "number"},
	{Name: "settle", Help: "Hold time before counting", Values: []string{"0s", "600ms", "1.2s"}, ValueName: "duration"},
	{Name: "seed", Help: "Random seed", ValueName: "number"},
	{Name: "placeholder", Help: "Show a count before the first roll"},
	{Name: "plain", Help: "Roll without the dashboard"},
	{Name: "rolls", Help: "Number of rolls in plain mode", ValueName: "number"},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "fullscreen", Help: "Start the dashboard fullscreen"},
	{Name: "history", Help: "Open the history panel"},
	{Name: "log-file", Help: "Log file", IsFile: true, ValueName: "file"},
	{Name: "v", Help: "Enable debug logging"},
	{Name: "verbose", Help: "Enable debug logging"},
	{Name: "metrics-addr", Help: "Metrics listen address", Values: []string{":9100", "127.0.0.1:9100"}, ValueName: "address"},
	{Name: "trace-file", Help: "Trace output file", IsFile: true, ValueName: "file"},
	{Name: "config", Help: "YAML config file", IsFile: true, ValueName: "file"},
	{Name: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh"
// or "fish") to out.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer) error {
	opts := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Name)
	}

	var caseBody strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, "-"+f.Name)
		case len(f.Values) > 0:
			fmt.Fprintf(&caseBody, "        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.Name, strings.Join(f.Values, " "))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&caseBody, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(filePatterns, "|"))
	}

	script := fmt.Sprintf(`# Bash completion script for d100
# Add this to your ~/.bashrc or ~/.bash_completion

_d100_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _d100_completions d100
`, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef d100

# Zsh completion script for d100
# Add this to your ~/.zshrc or place in $fpath

_d100() {
    _arguments -s \
%s
}

_d100 "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer) error {
	lines := []string{
		"# Fish completion script for d100",
		"# Add this to ~/.config/fish/completions/d100.fish",
		"",
		"# Disable file completion by default",
		"complete -c d100 -f",
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
// Go's flag package takes single-dash long names, hence -o.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c d100"}
	if len(f.Name) == 1 {
		parts = append(parts, "-s "+f.Name)
	} else {
		parts = append(parts, "-o "+f.Name)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

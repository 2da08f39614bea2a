package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell is a shell completion scripts can be generated for.
type Shell string

// Supported shells.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string
	Short  string
	Desc   string
	Bool   bool
	Values []string // enum values
	Glob   string   // file pattern, e.g. "*.yaml"
	Dir    bool
}

// commandDef describes a command for completion.
type commandDef struct {
	Name      string
	Desc      string
	Flags     []flagDef
	FileGlobs []string // accepted positional file patterns
}

// completionMeta enriches FlagSet flags with value hints. Flag names, types
// and help text come from the FlagSets themselves.
var completionMeta = map[string]flagDef{
	"backend":      {Values: []string{"rod", "chromedp"}},
	"mode":         {Values: []string{"portrait", "landscape"}},
	"cache-driver": {Values: []string{"file", "memory", "postgres"}},
	"log-level":    {Values: []string{"debug", "info", "warn", "error"}},
	"format":       {Values: []string{"json", "yaml"}},
	"config":       {Glob: "*.yaml"},
	"style":        {Glob: "*.css"},
	"browser-bin":  {Glob: "*"},
	"output":       {Dir: true},
	"cache-dir":    {Dir: true},
	"asset-path":   {Dir: true},
}

// extractFlags reads flag definitions out of fs.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
			Bool:  f.Value.Type() == "bool",
		}
		if meta, ok := completionMeta[f.Name]; ok {
			fd.Values, fd.Glob, fd.Dir = meta.Values, meta.Glob, meta.Dir
		}
		flags = append(flags, fd)
	})
	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	discard := io.Discard
	brochureGlobs := []string{"*.json", "*.yaml", "*.yml"}

	doctor := newFlagSet("doctor", discard)
	doctor.Bool("json", false, "print results as JSON")
	doctor.StringP("config", "c", "", "config file name or path")

	return []commandDef{
		{Name: "serve", Desc: "Run the editor HTTP API", Flags: extractFlags(buildServeFlagSet(&serveFlags{}, discard))},
		{Name: "render", Desc: "Render brochure files to PDF", Flags: extractFlags(buildRenderFlagSet(&renderFlags{}, discard)), FileGlobs: brochureGlobs},
		{Name: "plan", Desc: "Print the page plan of a brochure", Flags: extractFlags(buildPlanFlagSet(&planFlags{}, discard)), FileGlobs: brochureGlobs},
		{Name: "defaults", Desc: "Print the default brochure", Flags: extractFlags(buildDefaultsFlagSet(&defaultsFlags{}, discard))},
		{Name: "doctor", Desc: "Check the system for rendering", Flags: extractFlags(doctor)},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(cmds)
	case ShellZsh:
		script = zshScript(cmds)
	case ShellFish:
		script = fishScript(cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for brochure\n")
	b.WriteString("_brochure_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")

	// Values of the previous flag.
	b.WriteString("    case \"$prev\" in\n")
	for _, fd := range uniqueValueFlags(cmds) {
		pattern := "--" + fd.Long
		if fd.Short != "" {
			pattern += "|-" + fd.Short
		}
		switch {
		case len(fd.Values) > 0:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n            return ;;\n",
				pattern, strings.Join(fd.Values, " "))
		case fd.Dir:
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -d -- \"$cur\"))\n            return ;;\n", pattern)
		case fd.Glob != "":
			fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -f -- \"$cur\"))\n            return ;;\n", pattern)
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.FileGlobs) == 0 {
			continue
		}
		var words []string
		for _, fd := range c.Flags {
			words = append(words, "--"+fd.Long)
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		fmt.Fprintf(&b, "            if [[ \"$cur\" == -* ]]; then\n                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(words, " "))
		if len(c.FileGlobs) > 0 {
			b.WriteString("            else\n                COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		}
		b.WriteString("            fi ;;\n")
	}
	b.WriteString("        completion)\n            COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\")) ;;\n")
	b.WriteString("    esac\n}\n\n")
	b.WriteString("complete -F _brochure_completions brochure\n")
	return b.String()
}

// uniqueValueFlags returns every flag that completes a value, once, sorted.
func uniqueValueFlags(cmds []commandDef) []flagDef {
	seen := map[string]flagDef{}
	for _, c := range cmds {
		for _, fd := range c.Flags {
			if len(fd.Values) > 0 || fd.Dir || fd.Glob != "" {
				seen[fd.Long] = fd
			}
		}
	}
	out := make([]flagDef, 0, len(seen))
	for _, fd := range seen {
		out = append(out, fd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Long < out[j].Long })
	return out
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func zshAction(fd flagDef) string {
	switch {
	case fd.Bool:
		return ""
	case len(fd.Values) > 0:
		return ":value:(" + strings.Join(fd.Values, " ") + ")"
	case fd.Dir:
		return ":directory:_files -/"
	case fd.Glob != "" && fd.Glob != "*":
		return ":file:_files -g \"" + fd.Glob + "\""
	case fd.Glob != "":
		return ":file:_files"
	default:
		return ":value:"
	}
}

func zshScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef brochure\n\n")
	b.WriteString("_brochure() {\n")
	b.WriteString("    local -a commands\n    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n        _describe 'command' commands\n        return\n    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.FileGlobs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n            _arguments \\\n", c.Name)
		for _, fd := range c.Flags {
			spec := fmt.Sprintf("--%s[%s]%s", fd.Long, zshEscape(fd.Desc), zshAction(fd))
			if fd.Short != "" {
				spec = fmt.Sprintf("{-%s,--%s}'[%s]%s'", fd.Short, fd.Long, zshEscape(fd.Desc), zshAction(fd))
				fmt.Fprintf(&b, "                %s \\\n", spec)
				continue
			}
			fmt.Fprintf(&b, "                '%s' \\\n", spec)
		}
		if len(c.FileGlobs) > 0 {
			fmt.Fprintf(&b, "                '*:file:_files -g \"%s\"'\n", strings.Join(c.FileGlobs, " "))
		} else {
			b.WriteString("                && return\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("        completion)\n            _values 'shell' bash zsh fish ;;\n")
	b.WriteString("    esac\n}\n\n")
	b.WriteString("compdef _brochure brochure\n")
	return b.String()
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for brochure\n\n")
	b.WriteString("function __fish_brochure_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n    test (count $cmd) -eq 1\nend\n\n")
	b.WriteString("function __fish_brochure_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\nend\n\n")
	b.WriteString("complete -c brochure -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c brochure -n __fish_brochure_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")
	for _, c := range cmds {
		cond := "'__fish_brochure_using_command " + c.Name + "'"
		for _, fd := range c.Flags {
			line := fmt.Sprintf("complete -c brochure -n %s -l %s", cond, fd.Long)
			if fd.Short != "" {
				line += " -s " + fd.Short
			}
			switch {
			case len(fd.Values) > 0:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(fd.Values, " "))
			case fd.Dir:
				line += " -x -a '(__fish_complete_directories)'"
			case fd.Glob != "":
				line += " -r -F"
			case !fd.Bool:
				line += " -x"
			}
			fmt.Fprintf(&b, "%s -d '%s'\n", line, fishEscape(fd.Desc))
		}
		if len(c.FileGlobs) > 0 {
			fmt.Fprintf(&b, "complete -c brochure -n %s -F\n", cond)
		}
	}
	b.WriteString("complete -c brochure -n '__fish_brochure_using_command completion' -a 'bash zsh fish'\n")
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: brochure completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash   Bash completion script")
	fmt.Fprintln(w, "  zsh    Zsh completion script")
	fmt.Fprintln(w, "  fish   Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(brochure completion bash)\"          # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(brochure completion zsh)\"           # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  brochure completion fish > ~/.config/fish/completions/brochure.fish")
}

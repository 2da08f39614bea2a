package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: brochure <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve       Run the editor HTTP API")
	fmt.Fprintln(w, "  render      Render brochure files to A4 PDF")
	fmt.Fprintln(w, "  plan        Print the page plan of a brochure")
	fmt.Fprintln(w, "  defaults    Print the default brochure")
	fmt.Fprintln(w, "  doctor      Check the system for rendering")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'brochure help <command>' for details on a specific command.")
}

func printExportFlags(w io.Writer) {
	fmt.Fprintln(w, "Export:")
	fmt.Fprintln(w, "      --backend <s>         PDF backend: rod, chromedp")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF export timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium executable")
	fmt.Fprintln(w, "      --style <s>           CSS style name, file path or inline CSS")
	fmt.Fprintln(w, "      --template-set <s>    Page template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding embedded styles and templates")
	fmt.Fprintln(w)
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only print errors")
	fmt.Fprintln(w, "  -v, --verbose             Print timings and debug logs")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: brochure serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the editor HTTP API: document edits, image uploads, text")
	fmt.Fprintln(w, "suggestions, live preview and PDF export.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "  -m, --mode <s>            Default preview mode: portrait, landscape")
	fmt.Fprintln(w, "      --ai-model <s>        Model used for text suggestions")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cache:")
	fmt.Fprintln(w, "      --cache-driver <s>    file, memory, postgres")
	fmt.Fprintln(w, "      --cache-dir <dir>     Directory for the file cache")
	fmt.Fprintln(w, "      --cache-dsn <dsn>     Postgres connection string")
	fmt.Fprintln(w, "      --cache-key <s>       Cache entry name")
	fmt.Fprintln(w)
	printExportFlags(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Text suggestions need GEMINI_API_KEY or BROCHURE_AI_API_KEY.")
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: brochure render <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render brochure files to A4 PDF, one page per sheet.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Brochure file (.json, .yaml, .yml) or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .pdf file or directory")
	fmt.Fprintln(w, "  -m, --mode <s>            Arrangement: portrait, landscape")
	fmt.Fprintln(w, "      --title <s>           Document title (default: brochure title)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --html                Also write the printed HTML")
	fmt.Fprintln(w)
	printExportFlags(w)
	printCommonFlags(w)
}

func printPlanUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: brochure plan <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the pages a brochure renders to, without rendering them.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print page descriptors as JSON")
	printCommonFlags(w)
}

func printDefaultsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: brochure defaults [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the default brochure, a valid starting document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>       Write to file instead of stdout")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: json, yaml")
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: brochure doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the browser, environment, configuration and cache.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "plan":
		printPlanUsage(env.Stdout)
	case "defaults":
		printDefaultsUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: brochure version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: brochure help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

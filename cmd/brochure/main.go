package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-brochure/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	// maxprocs.Set only fails on an invalid GOMAXPROCS; runtime defaults apply then.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}
	cmd, rest := args[1], args[2:]

	ctx, stop := notifyContext(context.Background())
	defer stop()

	warnUnknownEnvVars(env)

	var err error
	switch cmd {
	case "serve":
		err = runServe(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "plan":
		err = runPlan(rest, env)
	case "defaults":
		err = runDefaults(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "brochure %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hints.For(err))
	return exitCodeFor(err)
}

// muxer picks a target — a local project directory or an SSH host — from a
// fuzzy-searchable list and attaches to (or creates) a persistent tmux
// session for it.
//
// Usage:
//
//	muxer [flags] [query]
//
// Candidates come from two sources: directories listed in ~/.muxer.rc (with
// built-in defaults when the file is absent) and literal Host aliases from
// ~/.ssh/config. The chosen candidate is reconciled against live tmux state:
// create, attach, or switch, depending on whether a same-named session exists
// and whether muxer itself runs inside tmux.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/pflag"

	"muxer/pkg/muxer"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("muxer", pflag.ContinueOnError)
	flagWindow := fs.BoolP("window", "w", false, "open a new window in the current session, rather than a new session")
	flagList := fs.Bool("list", false, "print candidates and exit (works without a terminal)")
	flagDryRun := fs.Bool("dry-run", false, "log the tmux invocation without executing it")
	flagConfig := fs.String("config", "", "path to the YAML settings file")
	flagVerbose := fs.BoolP("verbose", "v", false, "debug logging")
	flagVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "muxer - tmux session launcher for projects and ssh hosts\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n  muxer [flags] [query]\n\nFlags:\n")
		fmt.Fprint(os.Stderr, fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "muxer: %v\n", err)
		return 2
	}
	if *flagVersion {
		fmt.Printf("muxer %s\n", version)
		return 0
	}

	level := slog.LevelInfo
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	query := ""
	if fs.NArg() > 0 {
		query = fs.Arg(0)
	}

	settings, settingsPath, err := muxer.LoadSettings(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "muxer: %v\n", err)
		return 1
	}
	if settingsPath != "" {
		logger.Debug("loaded settings", "path", settingsPath)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "muxer: cannot determine home directory: %v\n", err)
		return 1
	}

	// SSH hosts first, then directories; each source is sorted internally.
	var candidates []muxer.Candidate
	hosts, err := muxer.DiscoverSSHHosts(settings.SSHConfigPath(home), query)
	if err != nil {
		// No sensible default exists for a missing ssh config. Degrade to
		// directory candidates only rather than aborting the whole run.
		logger.Warn("ssh host discovery skipped", "error", err)
	}
	candidates = append(candidates, hosts...)

	rules, err := muxer.LoadRules(settings.RuleFilePath(home), settings.RuleDefaults())
	if err != nil {
		logger.Warn("directory discovery skipped", "error", err)
	} else {
		candidates = append(candidates, muxer.DiscoverDirectories(logger, rules, home, query)...)
	}

	if *flagList {
		for _, c := range candidates {
			fmt.Println(c.Display())
		}
		return 0
	}

	prompt := "SESSION > "
	if *flagWindow {
		prompt = "WINDOW > "
	}
	chosen, err := muxer.Choose(candidates, prompt, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "muxer: %v\n", err)
		return 1
	}
	if chosen == nil {
		fmt.Println("Nothing chosen")
		return 0
	}

	target := chosen.Target(settings.SessionPrefix())
	logger.Debug("target resolved",
		"name", target.Name, "command", target.Command, "dir", target.Dir)

	if _, err := exec.LookPath("tmux"); err != nil {
		logger.Warn("tmux not found; connecting directly (session will not persist)")
		if *flagDryRun {
			return 0
		}
		return exitCode(directConnect(logger, target))
	}

	runner := &muxer.ExecRunner{Logger: logger, DryRun: *flagDryRun}
	mux := &muxer.Muxer{Runner: runner, WithinTmux: os.Getenv(muxer.TmuxEnvVar) != ""}

	if *flagWindow {
		err = mux.NewWindow(target)
	} else {
		err = mux.NewSession(target)
	}
	// tmux reports its own failures on the inherited terminal; all that is
	// mirrored here is the exit code of the final blocking call.
	return exitCode(err)
}

// exitCode maps an error from the final blocking call to a process exit
// status, preserving the external tool's code where available.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"markwright/internal/app"
	"markwright/internal/config"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "markwright"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := &cobra.Command{
		Use:   programName + " <input.md>",
		Short: "Render markdown to HTML and proofread it with a remote grammar checker",
		Long: `markwright renders a markdown file to a standalone HTML page and can
proofread its prose through a LanguageTool-compatible API, splitting the
document into bounded segments that are checked concurrently. Watch mode
rebuilds on save and can serve a live-reloading preview.`,
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithFlags(cmd.Flags(), args[0])
		},
	}

	rootCmd.SetVersionTemplate(`{{.Version}}
`)

	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newDictionaryCmd())
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

func newDictionaryCmd() *cobra.Command {
	dictionaryCmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Manage the accepted-words dictionary",
	}

	addCmd := &cobra.Command{
		Use:   "add <word>",
		Short: "Record a word as accepted so future reports skip it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunDictionaryAdd(app.DefaultRunParams(), cmd.Flags(), args[0])
		},
	}

	dictionaryCmd.AddCommand(addCmd)
	return dictionaryCmd
}

func runWithFlags(flags *pflag.FlagSet, inputPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.RunWithDeps(ctx, app.DefaultRunParams(), flags, inputPath)
}

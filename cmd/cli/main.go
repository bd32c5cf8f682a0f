package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/myrjola/polyglot/cmd/cli/ask"
	"github.com/myrjola/polyglot/cmd/cli/say"
	"github.com/myrjola/polyglot/cmd/cli/setup"
	"github.com/myrjola/polyglot/cmd/cli/tools"
	"github.com/myrjola/polyglot/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().BoolP(setup.VerboseFlag, "v", false, "log debug output to stderr")
	rootCmd.AddGroup(ask.Group)
	rootCmd.AddCommand(ask.Command)
	rootCmd.AddGroup(tools.Group)
	rootCmd.AddCommand(tools.Detect, tools.Translate, tools.Context)
	rootCmd.AddGroup(say.Group)
	rootCmd.AddCommand(say.Say)
}

var rootCmd = &cobra.Command{
	Use:  "polyglot-cli",
	Long: `Multilingual question answering on the command line`,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return config.LoadDotEnv()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func main() {
	Execute()
}

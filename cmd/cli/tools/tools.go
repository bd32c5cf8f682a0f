// Package tools exposes the single pipeline stages for troubleshooting.
package tools

import (
	"fmt"
	"strings"

	"github.com/myrjola/polyglot/cmd/cli/setup"
	"github.com/myrjola/polyglot/internal/qa"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "tools",
	Title: "Pipeline stages",
}

func init() {
	Translate.Flags().String("from", "en", "source language code")
	Translate.Flags().String("to", "en", "destination language code")
	Context.Flags().Bool("prompt", false, "print the answer instruction built from the context instead")
}

// printResult prints the value and, for fallbacks, the reason on stderr.
func printResult(cmd *cobra.Command, result qa.Result[string]) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Value)
	if result.Degraded() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "fallback: %v\n", result.Reason)
	}
}

var Detect = &cobra.Command{
	Use:     "detect [text]",
	GroupID: "tools",
	Short:   "Detect the language of text",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := setup.Services(cmd)
		if err != nil {
			return err
		}
		printResult(cmd, svc.Detector.Detect(cmd.Context(), strings.Join(args, " ")))
		return nil
	},
}

var Translate = &cobra.Command{
	Use:     "translate [text]",
	GroupID: "tools",
	Short:   "Translate text between languages",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := setup.Services(cmd)
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		printResult(cmd, svc.Translator.Translate(cmd.Context(), strings.Join(args, " "), from, to))
		return nil
	},
}

var Context = &cobra.Command{
	Use:     "context [query]",
	GroupID: "tools",
	Short:   "Show the Wikipedia context retrieved for a query",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := setup.Services(cmd)
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		retrieved := svc.Retriever.Retrieve(cmd.Context(), query)
		if withPrompt, _ := cmd.Flags().GetBool("prompt"); withPrompt {
			prompt := qa.BuildPrompt(query, qa.ClassifyIntent(query), retrieved.Value, qa.ContextUsable(retrieved))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		}
		printResult(cmd, retrieved)
		return nil
	},
}

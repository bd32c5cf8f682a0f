// Package ask is the line-mode console for asking questions.
package ask

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/myrjola/polyglot/cmd/cli/setup"
	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
	"github.com/myrjola/polyglot/internal/qa"
	"github.com/spf13/cobra"
)

const (
	QuestionPrompt = "Ask your question: "
	LanguagePrompt = "Enter preferred output language (e.g., hi, te, fr): "
)

var Group = &cobra.Group{
	ID:    "ask",
	Title: "Question answering",
}

func init() {
	Command.Flags().Bool("speak", false, "speak the answer with the local speech engine")
	Command.Flags().Bool("loop", false, "keep asking questions until end of input")
}

var Command = &cobra.Command{
	Use:     "ask",
	GroupID: "ask",
	Short:   "Ask questions on the console",
	Long: `Reads a question and the preferred output language from standard input, detects the question's
language, answers it with the help of Wikipedia and prints the answer in the preferred language.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, logger, err := setup.Services(cmd)
		if err != nil {
			return err
		}
		opts := Options{Speak: false, Loop: false}
		if opts.Speak, err = cmd.Flags().GetBool("speak"); err != nil {
			return errors.Wrap(err, "speak flag")
		}
		if opts.Loop, err = cmd.Flags().GetBool("loop"); err != nil {
			return errors.Wrap(err, "loop flag")
		}
		console := NewConsole(svc.Pipeline, svc.Synthesizer, logger)
		return console.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
	},
}

// Asker answers a question in the destination language.
type Asker interface {
	Ask(ctx context.Context, question, dst string) (qa.Reply, error)
}

type Options struct {
	// Speak plays each answer with the synthesizer.
	Speak bool
	// Loop returns to the question prompt after each answer until the input ends.
	Loop bool
}

type Console struct {
	asker       Asker
	synthesizer ports.Synthesizer
	logger      *slog.Logger
}

func NewConsole(asker Asker, synthesizer ports.Synthesizer, logger *slog.Logger) *Console {
	return &Console{asker: asker, synthesizer: synthesizer, logger: logger}
}

// Run converses over in and out. End of input ends the conversation without error.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	scanner := bufio.NewScanner(in)
	for {
		question, ok := prompt(scanner, out, QuestionPrompt)
		if !ok {
			return scanErr(scanner)
		}
		lang, ok := prompt(scanner, out, LanguagePrompt)
		if !ok {
			return scanErr(scanner)
		}

		reply, err := c.asker.Ask(ctx, question, lang)
		if err != nil {
			return errors.Wrap(err, "ask")
		}
		_, _ = fmt.Fprintf(out, "Detected input language: %s\n", reply.SourceLanguage)
		_, _ = fmt.Fprintf(out, "Answer: %s\n", reply.Answer)

		if opts.Speak {
			if err = c.synthesizer.Play(ctx, reply.Answer, reply.DestinationLanguage); err != nil {
				c.logger.LogAttrs(ctx, slog.LevelError, "speaking answer failed", errors.SlogError(err))
				_, _ = fmt.Fprintf(out, "Error speaking answer: %v\n", err)
			}
		}
		if !opts.Loop {
			return nil
		}
	}
}

func prompt(scanner *bufio.Scanner, out io.Writer, text string) (string, bool) {
	_, _ = fmt.Fprint(out, text)
	if !scanner.Scan() {
		_, _ = fmt.Fprintln(out)
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func scanErr(scanner *bufio.Scanner) error {
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read input")
	}
	return nil
}

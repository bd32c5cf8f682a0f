// Package say renders text as speech with the local speech engine.
package say

import (
	"os"
	"strings"

	"github.com/myrjola/polyglot/cmd/cli/setup"
	"github.com/myrjola/polyglot/internal/errors"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "speech",
	Title: "Speech operations",
}

func init() {
	Say.Flags().String("lang", "en", "language code of the text")
	Say.Flags().String("out", "", "write a WAV file instead of playing the speech")
}

var Say = &cobra.Command{
	Use:     "say [text]",
	GroupID: "speech",
	Short:   "Speak text",
	Long:    `Speaks text with espeak or writes the speech to a WAV file`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := setup.Services(cmd)
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")
		lang, _ := cmd.Flags().GetString("lang")
		outPath, _ := cmd.Flags().GetString("out")

		if outPath == "" {
			if err = svc.Synthesizer.Play(cmd.Context(), text, lang); err != nil {
				return errors.Wrap(err, "play speech")
			}
			return nil
		}

		file, err := os.Create(outPath)
		if err != nil {
			return errors.Wrap(err, "create file")
		}
		defer func(file *os.File) {
			_ = file.Close()
		}(file)
		if err = svc.Synthesizer.Render(cmd.Context(), file, text, lang); err != nil {
			return errors.Wrap(err, "render speech")
		}
		cmd.Printf("The speech was saved as %s\n", outPath)
		return nil
	},
}

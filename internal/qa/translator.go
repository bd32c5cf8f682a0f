package qa

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
)

type Translator struct {
	completer ports.Completer
	logger    *slog.Logger
}

func NewTranslator(completer ports.Completer, logger *slog.Logger) *Translator {
	return &Translator{
		completer: completer,
		logger:    logger.With("source", "Translator"),
	}
}

// Translate renders text from language src to dst. Identical languages return text untouched without calling the
// service. On any failure the original text is returned.
func (t *Translator) Translate(ctx context.Context, text, src, dst string) Result[string] {
	if src == dst {
		return Ok(text)
	}

	prompt := fmt.Sprintf("Translate the following text from %s to %s: '%s'. "+
		"Respond with only the translated text.", src, dst, text)
	translated, err := t.completer.Complete(ctx, prompt)
	if err != nil {
		reason := errors.Wrap(err, "translate", slog.String("src", src), slog.String("dst", dst))
		t.logger.LogAttrs(ctx, slog.LevelWarn, "translation failed, falling back to original text",
			errors.SlogError(reason))
		return Fallback(text, reason)
	}
	return Ok(translated)
}

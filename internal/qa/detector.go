package qa

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
)

// DefaultLanguage is used for empty input and whenever detection fails.
const DefaultLanguage = "en"

var ErrInvalidLanguageCode = errors.NewSentinel("completion reply is not a language code")

type Detector struct {
	completer ports.Completer
	logger    *slog.Logger
}

func NewDetector(completer ports.Completer, logger *slog.Logger) *Detector {
	return &Detector{
		completer: completer,
		logger:    logger.With("source", "Detector"),
	}
}

// Detect asks the completion service for the ISO 639-1 code of text. The result is always a lowercase code of two
// or three letters. Empty input short-circuits to [DefaultLanguage] without calling the service.
func (d *Detector) Detect(ctx context.Context, text string) Result[string] {
	if strings.TrimSpace(text) == "" {
		return Ok(DefaultLanguage)
	}

	prompt := fmt.Sprintf("Detect the ISO 639-1 language code of the following text: '%s'. "+
		"Respond with only the language code (e.g., 'en', 'es', 'fr', 'te', 'hi').", text)
	reply, err := d.completer.Complete(ctx, prompt)
	if err != nil {
		return d.fallback(ctx, errors.Wrap(err, "detect language"))
	}

	code, ok := NormalizeLanguageCode(reply)
	if !ok {
		return d.fallback(ctx, errors.Wrap(ErrInvalidLanguageCode, "validate reply", slog.String("reply", reply)))
	}
	return Ok(code)
}

func (d *Detector) fallback(ctx context.Context, reason error) Result[string] {
	d.logger.LogAttrs(ctx, slog.LevelWarn, "language detection failed, falling back to default",
		slog.String("fallback", DefaultLanguage), errors.SlogError(reason))
	return Fallback(DefaultLanguage, reason)
}

// NormalizeLanguageCode trims and lowercases s and accepts it when it has two or three ASCII letters.
func NormalizeLanguageCode(s string) (string, bool) {
	code := strings.ToLower(strings.TrimSpace(s))
	if len(code) < 2 || len(code) > 3 {
		return "", false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return "", false
		}
	}
	return code, true
}

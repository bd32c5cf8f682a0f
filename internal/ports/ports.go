// Package ports defines the boundaries to the external services the assistant talks to.
// The question-answering pipeline depends on these interfaces and the adapters implement them.
package ports

import (
	"context"
	"io"

	"github.com/myrjola/polyglot/internal/errors"
)

var (
	// ErrNoCandidate is returned when the completion service answered without usable text.
	ErrNoCandidate = errors.NewSentinel("no usable candidate in completion response")
	// ErrAmbiguousTitle is returned for encyclopedia titles that resolve to a disambiguation page.
	ErrAmbiguousTitle = errors.NewSentinel("ambiguous encyclopedia title")
	// ErrTitleNotFound is returned for encyclopedia titles without a page.
	ErrTitleNotFound = errors.NewSentinel("encyclopedia title not found")
	// ErrSpeechUnrecognized is returned when the audio contained no recognizable speech.
	ErrSpeechUnrecognized = errors.NewSentinel("speech not recognized")
)

// Completer sends a single instruction to a generative-language service.
type Completer interface {
	// Complete returns the trimmed text of the first candidate or ErrNoCandidate.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Encyclopedia searches titles and fetches short page summaries.
type Encyclopedia interface {
	// Search returns matching page titles ordered by relevance.
	Search(ctx context.Context, query string) ([]string, error)
	// Summary returns at most sentences sentences of the page introduction.
	Summary(ctx context.Context, title string, sentences int) (string, error)
}

// Audio is a captured voice recording.
type Audio struct {
	Data []byte
	// MIMEType such as audio/webm or audio/wav.
	MIMEType string
}

// Recognizer converts captured speech to text.
type Recognizer interface {
	// Transcribe returns the recognized text, ErrSpeechUnrecognized or a service error.
	Transcribe(ctx context.Context, audio Audio) (string, error)
}

// Synthesizer renders text as speech.
type Synthesizer interface {
	// Play speaks the text on the local audio device.
	Play(ctx context.Context, text, lang string) error
	// Render writes the speech as a WAV stream.
	Render(ctx context.Context, w io.Writer, text, lang string) error
}

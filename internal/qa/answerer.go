package qa

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
)

const (
	// NoAnswerMessage is presented when the completion service returned no usable candidate.
	NoAnswerMessage = "Sorry, I could not generate an answer."
	// minContextChars is the shortest context worth sending to the completion service.
	minContextChars = 50
	retrievalLang   = "en"
)

var ErrMissingCredential = errors.NewSentinel("completion credential is not configured")

// Credential is the completion service key together with the environment variable it is read from.
type Credential struct {
	EnvVar string
	Value  string
}

// Answer is the untranslated answer together with what was used to produce it.
type Answer struct {
	Text   string
	Intent Intent
	// Query is the question translated to English for the retrieval.
	Query Result[string]
	// Context is the retrieved background text.
	Context Result[string]
	// ContextUsed reports whether Context was included in the instruction.
	ContextUsed bool
}

type Answerer struct {
	completer  ports.Completer
	translator *Translator
	retriever  *Retriever
	credential Credential
	logger     *slog.Logger
}

// NewAnswerer creates an Answerer. An empty credential makes every Answer call fail with ErrMissingCredential.
func NewAnswerer(
	completer ports.Completer,
	translator *Translator,
	retriever *Retriever,
	credential Credential,
	logger *slog.Logger,
) *Answerer {
	return &Answerer{
		completer:  completer,
		translator: translator,
		retriever:  retriever,
		credential: credential,
		logger:     logger.With("source", "Answerer"),
	}
}

// Answer answers question written in sourceLang with the help of encyclopedia context.
//
// The only error is ErrMissingCredential. Service failures produce a fallback answer text.
func (a *Answerer) Answer(ctx context.Context, question, sourceLang string) (Result[Answer], error) {
	if strings.TrimSpace(a.credential.Value) == "" {
		return Result[Answer]{}, errors.Wrap(ErrMissingCredential,
			fmt.Sprintf("set the %s environment variable before asking questions", a.credential.EnvVar),
			slog.String("env", a.credential.EnvVar))
	}

	answer := Answer{
		Text:        "",
		Intent:      ClassifyIntent(question),
		Query:       a.translator.Translate(ctx, question, sourceLang, retrievalLang),
		Context:     Result[string]{},
		ContextUsed: false,
	}
	answer.Context = a.retriever.Retrieve(ctx, answer.Query.Value)
	answer.ContextUsed = ContextUsable(answer.Context)

	prompt := BuildPrompt(question, answer.Intent, answer.Context.Value, answer.ContextUsed)
	a.logger.LogAttrs(ctx, slog.LevelDebug, "sending answer instruction",
		slog.String("intent", answer.Intent.String()),
		slog.Bool("context_used", answer.ContextUsed),
		slog.String("prompt", prompt))

	text, err := a.completer.Complete(ctx, prompt)
	switch {
	case errors.Is(err, ports.ErrNoCandidate):
		answer.Text = NoAnswerMessage
		reason := errors.Wrap(err, "answer question")
		a.logger.LogAttrs(ctx, slog.LevelWarn, "no answer candidate", errors.SlogError(reason))
		return Fallback(answer, reason), nil
	case err != nil:
		answer.Text = fmt.Sprintf("An API error occurred while answering the question: %v", err)
		reason := errors.Wrap(err, "answer question")
		a.logger.LogAttrs(ctx, slog.LevelError, "answer request failed", errors.SlogError(reason))
		return Fallback(answer, reason), nil
	}

	answer.Text = text
	return Ok(answer), nil
}

// ContextUsable reports whether retrieved context is sent with the question: it must not be blank, must not be the
// no-context message and must have at least 50 characters. The retrieval error message passes these checks and is
// sent like any other context.
func ContextUsable(retrieved Result[string]) bool {
	trimmed := strings.TrimSpace(retrieved.Value)
	return trimmed != "" && trimmed != NoContextMessage && len([]rune(trimmed)) >= minContextChars
}

// BuildPrompt renders the instruction for the completion service. Context is appended only when withContext is
// set, otherwise the model relies on its general knowledge.
func BuildPrompt(question string, intent Intent, context string, withContext bool) string {
	var sb strings.Builder
	switch intent {
	case IntentWhoIs:
		fmt.Fprintf(&sb, "For the question '%s', state the full name of the person being asked about first. ", question)
		sb.WriteString("Your answer MUST start with 'The [role] of [country] is [Full Name].' " +
			"(e.g., 'The Prime Minister of India is Narendra Modi.') " +
			"followed by other relevant concise details if available. ")
		sb.WriteString("Use the provided context if relevant, otherwise use your general knowledge. ")
	case IntentGeneral:
		sb.WriteString("Answer the following question concisely and accurately. ")
		sb.WriteString("Use the provided context if relevant, otherwise answer based on your general knowledge. ")
	}
	sb.WriteString("Do NOT mention that you lack current information, internet access, " +
		"or that the answer is not in the context. ")
	fmt.Fprintf(&sb, "Answer in the original language of the question ('%s') if possible, otherwise in English.\n\n",
		question)
	fmt.Fprintf(&sb, "Question: '%s'\n\n", question)
	if withContext {
		fmt.Fprintf(&sb, "Context: '%s'", context)
	}
	return sb.String()
}

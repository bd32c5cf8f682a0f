package qa

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
)

const (
	// MaxHits is how many search hits are summarized.
	MaxHits = 5
	// SummarySentences bounds each summary.
	SummarySentences = 5
	// MaxContextChars caps the joined summaries. Longer context is cut and marked with TruncationMarker.
	MaxContextChars  = 2000
	ContextSeparator = " --- "
	TruncationMarker = "..."

	// NoContextMessage is returned when the search had hits but no usable summaries.
	NoContextMessage = "Sorry, no relevant context could be retrieved from Wikipedia."
	// RetrievalErrorMessage is returned when the retrieval as a whole failed.
	RetrievalErrorMessage = "Sorry, an error occurred while trying to fetch information from Wikipedia."
)

var ErrNoContext = errors.NewSentinel("no usable summaries")

type Retriever struct {
	encyclopedia ports.Encyclopedia
	logger       *slog.Logger
}

func NewRetriever(encyclopedia ports.Encyclopedia, logger *slog.Logger) *Retriever {
	return &Retriever{
		encyclopedia: encyclopedia,
		logger:       logger.With("source", "Retriever"),
	}
}

// Retrieve assembles background text for query from the summaries of the top search hits.
//
// A search without hits returns an empty context. Titles that fail are skipped one by one.
func (r *Retriever) Retrieve(ctx context.Context, query string) Result[string] {
	titles, err := r.encyclopedia.Search(ctx, query)
	if err != nil {
		reason := errors.Wrap(err, "search encyclopedia")
		r.logger.LogAttrs(ctx, slog.LevelWarn, "context retrieval failed", errors.SlogError(reason))
		return Fallback(RetrievalErrorMessage, reason)
	}
	if len(titles) == 0 {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "no search results", slog.String("query", query))
		return Ok("")
	}

	summaries := make([]string, 0, MaxHits)
	for _, title := range titles[:min(len(titles), MaxHits)] {
		summary, summaryErr := r.encyclopedia.Summary(ctx, title, SummarySentences)
		if summaryErr != nil {
			r.logSkipped(ctx, title, summaryErr)
			continue
		}
		if summary != "" {
			summaries = append(summaries, summary)
		}
	}

	text := truncate(strings.Join(summaries, ContextSeparator))
	if strings.TrimSpace(text) == "" {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "no usable summaries", slog.Int("titles", len(titles)))
		return Fallback(NoContextMessage, errors.Wrap(ErrNoContext, "assemble context"))
	}
	return Ok(text)
}

func (r *Retriever) logSkipped(ctx context.Context, title string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, ports.ErrAmbiguousTitle) || errors.Is(err, ports.ErrTitleNotFound) {
		level = slog.LevelInfo
	}
	r.logger.LogAttrs(ctx, level, "skipping title", slog.String("title", title), errors.SlogError(err))
}

// truncate cuts text to MaxContextChars characters and appends TruncationMarker when anything was cut.
func truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxContextChars {
		return text
	}
	return string([]rune(text)[:MaxContextChars]) + TruncationMarker
}

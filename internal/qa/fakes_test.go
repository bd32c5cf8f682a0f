package qa_test

import (
	"context"
	"strings"
	"sync"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
)

var errUnreachable = errors.NewSentinel("dial tcp: connection refused")

// fakeCompleter answers with reply and records every prompt.
type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.reply(prompt)
}

func (f *fakeCompleter) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// promptsWithPrefix returns the recorded prompts starting with prefix.
func (f *fakeCompleter) promptsWithPrefix(prefix string) []string {
	var matched []string
	for _, p := range f.Prompts() {
		if strings.HasPrefix(p, prefix) {
			matched = append(matched, p)
		}
	}
	return matched
}

func replyWith(reply string, err error) func(string) (string, error) {
	return func(string) (string, error) {
		return reply, err
	}
}

type fakeEncyclopedia struct {
	mu        sync.Mutex
	queries   []string
	requested []string
	titles    []string
	searchErr error
	summaries map[string]string
	errs      map[string]error
}

func (f *fakeEncyclopedia) Search(_ context.Context, query string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.titles, f.searchErr
}

func (f *fakeEncyclopedia) Summary(_ context.Context, title string, _ int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = append(f.requested, title)
	if err, ok := f.errs[title]; ok {
		return "", err
	}
	summary, ok := f.summaries[title]
	if !ok {
		return "", ports.ErrTitleNotFound
	}
	return summary, nil
}

package qa_test

import (
	"context"
	"strings"
	"testing"

	"github.com/myrjola/polyglot/internal/ports"
	"github.com/myrjola/polyglot/internal/qa"
	"github.com/myrjola/polyglot/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

const indiaSummary = "The prime minister of India is the head of government of the Republic of India. " +
	"Narendra Modi is the current prime minister."

func newAnswerer(t *testing.T, completer *fakeCompleter, encyclopedia *fakeEncyclopedia, credential string) *qa.Answerer {
	t.Helper()
	logger := testhelpers.NewTestLogger(t)
	return qa.NewAnswerer(
		completer,
		qa.NewTranslator(completer, logger),
		qa.NewRetriever(encyclopedia, logger),
		qa.Credential{EnvVar: "OPENAI_API_KEY", Value: credential},
		logger,
	)
}

func TestAnswerer_AnswerMissingCredential(t *testing.T) {
	completer := &fakeCompleter{reply: replyWith("answer", nil)}
	answerer := newAnswerer(t, completer, &fakeEncyclopedia{}, " ")

	_, err := answerer.Answer(context.Background(), "What is Go?", "en")
	require.ErrorIs(t, err, qa.ErrMissingCredential)
	require.Contains(t, err.Error(), "OPENAI_API_KEY")
	require.NotContains(t, err.Error(), "GOOGLE_API_KEY")
	require.Empty(t, completer.Prompts())
}

func TestAnswerer_AnswerWhoIsWithContext(t *testing.T) {
	completer := &fakeCompleter{reply: replyWith("The Prime Minister of India is Narendra Modi.", nil)}
	encyclopedia := &fakeEncyclopedia{
		titles:    []string{"Prime Minister of India"},
		summaries: map[string]string{"Prime Minister of India": indiaSummary},
	}
	answerer := newAnswerer(t, completer, encyclopedia, "key")

	got, err := answerer.Answer(context.Background(), "Who is the Prime Minister of India?", "en")
	require.NoError(t, err)
	require.False(t, got.Degraded())
	require.Equal(t, "The Prime Minister of India is Narendra Modi.", got.Value.Text)
	require.Equal(t, qa.IntentWhoIs, got.Value.Intent)
	require.True(t, got.Value.ContextUsed)

	prompts := completer.Prompts()
	require.Len(t, prompts, 1, "english questions are not translated for retrieval")
	require.Contains(t, prompts[0], "The [role] of [country] is [Full Name].")
	require.Contains(t, prompts[0], "Question: 'Who is the Prime Minister of India?'")
	require.True(t, strings.HasSuffix(prompts[0], "Context: '"+indiaSummary+"'"))
}

func TestAnswerer_AnswerOmitsUnusableContext(t *testing.T) {
	tests := []struct {
		name         string
		encyclopedia *fakeEncyclopedia
	}{
		{name: "no hits", encyclopedia: &fakeEncyclopedia{}},
		{
			name: "short context",
			encyclopedia: &fakeEncyclopedia{
				titles:    []string{"Go"},
				summaries: map[string]string{"Go": "Go is a language."},
			},
		},
		{
			name: "nothing usable",
			encyclopedia: &fakeEncyclopedia{
				titles: []string{"Go"},
				errs:   map[string]error{"Go": ports.ErrAmbiguousTitle},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{reply: replyWith("Go is a programming language.", nil)}
			answerer := newAnswerer(t, completer, tt.encyclopedia, "key")

			got, err := answerer.Answer(context.Background(), "What is Go?", "en")
			require.NoError(t, err)
			require.False(t, got.Value.ContextUsed)
			require.Equal(t, qa.IntentGeneral, got.Value.Intent)
			prompts := completer.Prompts()
			require.Len(t, prompts, 1)
			require.NotContains(t, prompts[0], "Context:")
			require.Contains(t, prompts[0], "Answer the following question concisely and accurately.")
		})
	}
}

func TestAnswerer_AnswerTranslatesQueryForRetrieval(t *testing.T) {
	completer := &fakeCompleter{reply: func(prompt string) (string, error) {
		if strings.HasPrefix(prompt, "Translate") {
			return "What is the capital of France?", nil
		}
		return "पेरिस", nil
	}}
	encyclopedia := &fakeEncyclopedia{}
	answerer := newAnswerer(t, completer, encyclopedia, "key")

	got, err := answerer.Answer(context.Background(), "फ्रांस की राजधानी क्या है?", "hi")
	require.NoError(t, err)
	require.Equal(t, "पेरिस", got.Value.Text)
	require.Equal(t, "What is the capital of France?", got.Value.Query.Value)
	require.Equal(t, []string{"What is the capital of France?"}, encyclopedia.queries)
	require.Len(t, completer.promptsWithPrefix("Translate the following text from hi to en"), 1)
}

func TestAnswerer_AnswerFallbacks(t *testing.T) {
	t.Run("no candidate", func(t *testing.T) {
		completer := &fakeCompleter{reply: replyWith("", ports.ErrNoCandidate)}
		answerer := newAnswerer(t, completer, &fakeEncyclopedia{}, "key")

		got, err := answerer.Answer(context.Background(), "What is Go?", "en")
		require.NoError(t, err)
		require.True(t, got.Degraded())
		require.Equal(t, "Sorry, I could not generate an answer.", got.Value.Text)
	})

	t.Run("service failure", func(t *testing.T) {
		completer := &fakeCompleter{reply: replyWith("", errUnreachable)}
		answerer := newAnswerer(t, completer, &fakeEncyclopedia{}, "key")

		got, err := answerer.Answer(context.Background(), "What is Go?", "en")
		require.NoError(t, err)
		require.True(t, got.Degraded())
		require.True(t, strings.HasPrefix(got.Value.Text,
			"An API error occurred while answering the question: "))
		require.Contains(t, got.Value.Text, errUnreachable.Error())
	})
}

func TestBuildPrompt(t *testing.T) {
	general := qa.BuildPrompt("Why is the sky blue?", qa.IntentGeneral, "ignored", false)
	require.Contains(t, general, "Do NOT mention that you lack current information")
	require.Contains(t, general, "Answer in the original language of the question ('Why is the sky blue?')")
	require.NotContains(t, general, "ignored")

	whoIs := qa.BuildPrompt("Who is the CEO of Tesla?", qa.IntentWhoIs, "Tesla, Inc. is an American company.", true)
	require.True(t, strings.HasPrefix(whoIs, "For the question 'Who is the CEO of Tesla?', state the full name"))
	require.True(t, strings.HasSuffix(whoIs, "Context: 'Tesla, Inc. is an American company.'"))
}

func TestContextUsable(t *testing.T) {
	require.True(t, qa.ContextUsable(qa.Ok(indiaSummary)))
	require.False(t, qa.ContextUsable(qa.Ok("")))
	require.False(t, qa.ContextUsable(qa.Ok("Too short to help.")))
	require.False(t, qa.ContextUsable(qa.Ok(qa.NoContextMessage)))
	require.False(t, qa.ContextUsable(qa.Fallback(qa.NoContextMessage, qa.ErrNoContext)))
	require.True(t, qa.ContextUsable(qa.Fallback(qa.RetrievalErrorMessage, errUnreachable)))
}

func TestAnswerer_AnswerSearchFailureIsSentAsContext(t *testing.T) {
	completer := &fakeCompleter{reply: replyWith("Go is a programming language.", nil)}
	answerer := newAnswerer(t, completer, &fakeEncyclopedia{searchErr: errUnreachable}, "key")

	got, err := answerer.Answer(context.Background(), "What is Go?", "en")
	require.NoError(t, err)
	require.True(t, got.Value.Context.Degraded())
	require.True(t, got.Value.ContextUsed)
	prompts := completer.Prompts()
	require.Len(t, prompts, 1)
	require.True(t, strings.HasSuffix(prompts[0], "Context: '"+qa.RetrievalErrorMessage+"'"))
}

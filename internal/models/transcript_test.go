package models_test

import (
	"testing"
	"time"

	"github.com/myrjola/polyglot/internal/models"
	"github.com/stretchr/testify/require"
)

func TestTranscript(t *testing.T) {
	transcript := models.NewTranscript()
	require.Equal(t, []models.Message{{Role: models.RoleBot, Content: models.WelcomeMessage, Language: "en"}},
		transcript.Messages)

	transcript.Append(models.RoleUser, "Who is the Prime Minister of India?", "en")
	transcript.Append(models.RoleBot, "The Prime Minister of India is Narendra Modi.", "en")
	require.Len(t, transcript.Messages, 3)

	msg, ok := transcript.Message(2)
	require.True(t, ok)
	require.Equal(t, models.RoleBot, msg.Role)
	_, ok = transcript.Message(3)
	require.False(t, ok)
	_, ok = transcript.Message(-1)
	require.False(t, ok)

	require.Equal(t, "Bot: "+models.WelcomeMessage+"\n\n"+
		"User: Who is the Prime Minister of India?\n\n"+
		"Bot: The Prime Minister of India is Narendra Modi.\n\n", transcript.Export())

	transcript.Clear()
	require.Len(t, transcript.Messages, 1)
	require.Equal(t, models.WelcomeMessage, transcript.Messages[0].Content)
}

func TestDownloadFilename(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	require.Equal(t, "chatbot_history_20240305_140709.txt", models.DownloadFilename(at))
}

func TestLookupLanguage(t *testing.T) {
	require.Len(t, models.Languages, 12)
	lang, ok := models.LookupLanguage("ml")
	require.True(t, ok)
	require.Equal(t, "Malayalam", lang.Name)
	_, ok = models.LookupLanguage("xx")
	require.False(t, ok)
}

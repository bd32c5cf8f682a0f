package qa_test

import (
	"testing"

	"github.com/myrjola/polyglot/internal/qa"
	"github.com/stretchr/testify/require"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		question string
		want     qa.Intent
	}{
		{question: "Who is the Prime Minister of India?", want: qa.IntentWhoIs},
		{question: "WHO'S the president of France", want: qa.IntentWhoIs},
		{question: "What is the name of the CEO of Tesla?", want: qa.IntentWhoIs},
		{question: "What is the capital of France?", want: qa.IntentGeneral},
		{question: "Whom should I ask?", want: qa.IntentGeneral},
		{question: "", want: qa.IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			require.Equal(t, tt.want, qa.ClassifyIntent(tt.question))
		})
	}
}

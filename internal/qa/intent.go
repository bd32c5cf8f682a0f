package qa

import "strings"

// Intent is the closed set of question kinds that select the answer instruction.
type Intent int

const (
	// IntentGeneral asks for a concise and accurate answer.
	IntentGeneral Intent = iota
	// IntentWhoIs asks for a named person to be identified.
	IntentWhoIs
)

func (i Intent) String() string {
	switch i {
	case IntentWhoIs:
		return "who-is"
	case IntentGeneral:
		return "general"
	default:
		return "unknown"
	}
}

var whoIsKeywords = []string{"who is", "who's", "name of"}

// ClassifyIntent returns IntentWhoIs when the question contains any of the who-is keywords, ignoring case.
func ClassifyIntent(question string) Intent {
	lower := strings.ToLower(question)
	for _, keyword := range whoIsKeywords {
		if strings.Contains(lower, keyword) {
			return IntentWhoIs
		}
	}
	return IntentGeneral
}

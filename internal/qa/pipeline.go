package qa

import (
	"context"
	"log/slog"
	"strings"

	"github.com/myrjola/polyglot/internal/errors"
)

// Stage names a step of the pipeline for reporting degradations.
type Stage string

const (
	StageDetect          Stage = "detect"
	StageQueryTranslate  Stage = "translate-query"
	StageRetrieve        Stage = "retrieve"
	StageAnswer          Stage = "answer"
	StageAnswerTranslate Stage = "translate-answer"
)

// Degradation records a stage that returned a fallback value.
type Degradation struct {
	Stage  Stage
	Reason error
}

// Reply is what the front ends present for one question.
type Reply struct {
	Question            string
	SourceLanguage      string
	DestinationLanguage string
	Intent              Intent
	// RawAnswer is the answer before translation to DestinationLanguage.
	RawAnswer string
	// Answer is the text to present.
	Answer       string
	Degradations []Degradation
}

// Pipeline sequences detection, answering and translation for a single question.
type Pipeline struct {
	detector   *Detector
	answerer   *Answerer
	translator *Translator
	logger     *slog.Logger
}

func NewPipeline(detector *Detector, answerer *Answerer, translator *Translator, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		detector:   detector,
		answerer:   answerer,
		translator: translator,
		logger:     logger.With("source", "Pipeline"),
	}
}

// Ask answers question in the destination language dst.
//
// Stages run one after the other and degrade to fallbacks. The only error is ErrMissingCredential.
func (p *Pipeline) Ask(ctx context.Context, question, dst string) (Reply, error) {
	dst, ok := NormalizeLanguageCode(dst)
	if !ok {
		dst = DefaultLanguage
	}
	reply := Reply{
		Question:            question,
		SourceLanguage:      "",
		DestinationLanguage: dst,
		Intent:              IntentGeneral,
		RawAnswer:           "",
		Answer:              "",
		Degradations:        nil,
	}

	detected := p.detector.Detect(ctx, question)
	reply.SourceLanguage = detected.Value
	reply.addDegradation(StageDetect, detected.Reason)

	answered, err := p.answerer.Answer(ctx, question, reply.SourceLanguage)
	if err != nil {
		return reply, errors.Wrap(err, "answer")
	}
	reply.Intent = answered.Value.Intent
	reply.RawAnswer = answered.Value.Text
	reply.addDegradation(StageQueryTranslate, answered.Value.Query.Reason)
	reply.addDegradation(StageRetrieve, answered.Value.Context.Reason)
	reply.addDegradation(StageAnswer, answered.Reason)

	translated := p.translator.Translate(ctx, reply.RawAnswer, reply.SourceLanguage, reply.DestinationLanguage)
	reply.Answer = strings.TrimSpace(translated.Value)
	reply.addDegradation(StageAnswerTranslate, translated.Reason)

	p.logger.LogAttrs(ctx, slog.LevelInfo, "answered question",
		slog.String("src", reply.SourceLanguage),
		slog.String("dst", reply.DestinationLanguage),
		slog.String("intent", reply.Intent.String()),
		slog.Int("degradations", len(reply.Degradations)))
	return reply, nil
}

func (r *Reply) addDegradation(stage Stage, reason error) {
	if reason != nil {
		r.Degradations = append(r.Degradations, Degradation{Stage: stage, Reason: reason})
	}
}

// Degraded reports whether any stage fell back.
func (r Reply) Degraded() bool {
	return len(r.Degradations) > 0
}

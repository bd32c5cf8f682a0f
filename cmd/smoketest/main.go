// Command smoketest asks a deployed chat server a question and checks the answer lands in the transcript.
package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/myrjola/polyglot/internal/e2etest"
	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/logging"
)

const (
	smokeQuestion = "What is the capital of France?"
	// apiErrorPrefix starts the answer the server shows when the completion service failed.
	apiErrorPrefix = "An API error occurred"
)

type check struct {
	name string
	run  func(ctx context.Context, client *e2etest.Client) error
}

func askQuestion(ctx context.Context, client *e2etest.Client) error {
	doc, err := client.Ask(ctx, smokeQuestion, "en")
	if err != nil {
		return errors.Wrap(err, "ask question")
	}
	if msg := strings.TrimSpace(doc.Find(".alert.error").Text()); msg != "" {
		return errors.New("question rejected", slog.String("message", msg))
	}
	answer := strings.TrimSpace(doc.Find("#answer").Text())
	if answer == "" {
		return errors.New("answer missing from page")
	}
	if strings.Contains(answer, apiErrorPrefix) {
		return errors.New("answer is a fallback", slog.String("answer", answer))
	}
	return nil
}

func downloadTranscript(ctx context.Context, client *e2etest.Client) error {
	resp, err := client.Get(ctx, "/transcript/download")
	if err != nil {
		return errors.Wrap(err, "download transcript")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status", slog.Int("status", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read transcript")
	}
	if !strings.Contains(string(body), smokeQuestion) {
		return errors.New("question missing from transcript")
	}
	return nil
}

func clearTranscript(ctx context.Context, client *e2etest.Client) error {
	if _, err := client.SubmitForm(ctx, "/", "/transcript/clear", nil); err != nil {
		return errors.Wrap(err, "clear transcript")
	}
	return nil
}

func main() {
	logger := logging.New(os.Stdout, slog.LevelDebug, false)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // program name and hostname
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}
	url := "https://" + os.Args[1]
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", errors.SlogError(err))
		os.Exit(1)
	}

	// A full pipeline run calls the completion service up to four times.
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute) //nolint:mnd // see above
	defer cancel()
	for _, c := range []check{
		{name: "ask", run: askQuestion},
		{name: "download transcript", run: downloadTranscript},
		{name: "clear transcript", run: clearTranscript},
	} {
		if err = c.run(ctx, client); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "smoke check failed", slog.String("check", c.name),
				errors.SlogError(err))
			cancel()
			os.Exit(1) //nolint:gocritic // cancel is called above
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "smoke check passed", slog.String("check", c.name))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
}

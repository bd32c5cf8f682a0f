// Package wikipedia searches Wikipedia and fetches page introductions through the MediaWiki action API.
package wikipedia

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/ports"
)

const (
	DefaultAPIURL = "https://en.wikipedia.org/w/api.php"
	userAgent     = "polyglot/1.0 (https://github.com/myrjola/polyglot)"
	searchLimit   = 10
)

var (
	ErrUnexpectedStatus = errors.NewSentinel("unexpected status code")
	ErrAPI              = errors.NewSentinel("mediawiki api error")
)

type Client struct {
	apiURL     string
	httpClient *http.Client
}

func NewClient(apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type searchResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type page struct {
	Title     string            `json:"title"`
	Missing   bool              `json:"missing"`
	Invalid   bool              `json:"invalid"`
	Extract   string            `json:"extract"`
	PageProps map[string]string `json:"pageprops"`
}

type extractResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
}

// Search returns the titles matching query in the order of relevance.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(searchLimit)},
		"srprop":   {""},
	}
	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, errors.Wrap(err, "search", slog.String("query", query))
	}
	if resp.Error != nil {
		return nil, errors.Wrap(ErrAPI, resp.Error.Info, slog.String("code", resp.Error.Code))
	}
	titles := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// Summary returns the first sentences of the page introduction as plain text.
//
// Disambiguation pages return [ports.ErrAmbiguousTitle] and missing pages [ports.ErrTitleNotFound].
func (c *Client) Summary(ctx context.Context, title string, sentences int) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts|pageprops"},
		"ppprop":      {"disambiguation"},
		"exintro":     {"1"},
		"exsentences": {strconv.Itoa(sentences)},
		"redirects":   {"1"},
		"titles":      {title},
	}
	var resp extractResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", errors.Wrap(err, "fetch extract", slog.String("title", title))
	}
	if resp.Error != nil {
		return "", errors.Wrap(ErrAPI, resp.Error.Info, slog.String("code", resp.Error.Code))
	}
	if len(resp.Query.Pages) == 0 {
		return "", errors.Wrap(ports.ErrTitleNotFound, "no pages", slog.String("title", title))
	}
	p := resp.Query.Pages[0]
	if p.Missing || p.Invalid {
		return "", errors.Wrap(ports.ErrTitleNotFound, "missing page", slog.String("title", title))
	}
	if _, ok := p.PageProps["disambiguation"]; ok {
		return "", errors.Wrap(ports.ErrAmbiguousTitle, "disambiguation page", slog.String("title", title))
	}
	text, err := plainText(p.Extract)
	if err != nil {
		return "", errors.Wrap(err, "parse extract", slog.String("title", title))
	}
	return text, nil
}

func (c *Client) get(ctx context.Context, params url.Values, v any) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return errors.Wrap(ErrUnexpectedStatus, "mediawiki response", slog.Int("status", resp.StatusCode))
	}
	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// plainText reduces the HTML extract to paragraphs of text separated by newlines.
func plainText(extract string) (string, error) {
	if strings.TrimSpace(extract) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(extract))
	if err != nil {
		return "", errors.Wrap(err, "parse html")
	}
	doc.Find("style, script, sup.reference").Remove()

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := collapseSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return collapseSpace(doc.Text()), nil
	}
	return strings.Join(paragraphs, "\n"), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

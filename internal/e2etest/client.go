package e2etest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/justinas/nosurf"
	"github.com/myrjola/polyglot/internal/errors"
)

// Client drives the chat UI like a browser would, keeping the session and CSRF cookies.
type Client struct {
	client *http.Client
	url    string
}

// plainHTTPJar keeps Secure cookies on plain HTTP so the session and CSRF cookies survive test servers.
type plainHTTPJar struct {
	*cookiejar.Jar
}

func (j plainHTTPJar) SetCookies(u *neturl.URL, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		cookie.Secure = false
	}
	j.Jar.SetCookies(u, cookies)
}

// NewClient creates a cookie-aware HTTP client for the chat server at url.
func NewClient(url string) (*Client, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}
	jar := plainHTTPJar{Jar: inner}
	return &Client{
		client: &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine for tests
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = c.client.Do(req); err == nil {
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	var (
		err  error
		resp *http.Response
	)
	if resp, err = c.Get(ctx, urlPath); err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	return documentFrom(resp)
}

func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	return req, nil
}

func documentFrom(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

func extractCSRFToken(doc *goquery.Document, formActionURLPath string) (string, error) {
	formSelector := fmt.Sprintf("form[action='%s']", formActionURLPath)
	form := doc.Find(formSelector)
	csrfToken, ok := form.Find("input[name=csrf_token]").Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form", slog.String("form", formSelector))
	}
	return csrfToken, nil
}

// SubmitForm submits a form at formUrlPath with action formActionUrlPath and returns the response document.
//
// values are sent together with the CSRF token found in the form.
func (c *Client) SubmitForm(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*goquery.Document, error) {
	resp, err := c.submitForm(ctx, formURLPath, formActionURLPath, values, nil)
	if err != nil {
		return nil, err
	}
	return documentFrom(resp)
}

// SubmitHxForm submits the form the way htmx does and returns the raw response for inspecting the swapped partial.
func (c *Client) SubmitHxForm(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*http.Response, error) {
	return c.submitForm(ctx, formURLPath, formActionURLPath, values, http.Header{"Hx-Request": {"true"}})
}

func (c *Client) submitForm(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
	header http.Header,
) (*http.Response, error) {
	var (
		doc *goquery.Document
		err error
	)
	if doc, err = c.GetDoc(ctx, formURLPath); err != nil {
		return nil, errors.Wrap(err, "get document")
	}

	var csrfToken string
	if csrfToken, err = extractCSRFToken(doc, formActionURLPath); err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}

	formData := neturl.Values{}
	for key, vals := range values {
		formData[key] = vals
	}
	formData.Set("csrf_token", csrfToken)

	var req *http.Request
	if req, err = c.newRequestWithContext(
		ctx,
		http.MethodPost,
		formActionURLPath,
		strings.NewReader(formData.Encode()),
	); err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	for key, vals := range header {
		req.Header[key] = vals
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var resp *http.Response
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// Ask submits a typed question from the front page and returns the resulting page.
func (c *Client) Ask(ctx context.Context, question, lang string) (*goquery.Document, error) {
	doc, err := c.SubmitForm(ctx, "/", "/ask", neturl.Values{
		"question": {question},
		"lang":     {lang},
	})
	if err != nil {
		return nil, errors.Wrap(err, "submit question", slog.String("question", question))
	}
	return doc, nil
}

// AskByVoice uploads a recording the way the browser's recorder does, with the CSRF token in a header, and returns
// the raw response.
func (c *Client) AskByVoice(ctx context.Context, audio []byte, mimeType, lang string) (*http.Response, error) {
	return c.uploadVoice(ctx, audio, mimeType, lang, false)
}

// UploadVoiceForm uploads a recording through the plain voice form, with the CSRF token as a form field.
func (c *Client) UploadVoiceForm(ctx context.Context, audio []byte, mimeType, lang string) (*http.Response, error) {
	return c.uploadVoice(ctx, audio, mimeType, lang, true)
}

func (c *Client) uploadVoice(
	ctx context.Context,
	audio []byte,
	mimeType, lang string,
	tokenInForm bool,
) (*http.Response, error) {
	doc, err := c.GetDoc(ctx, "/")
	if err != nil {
		return nil, errors.Wrap(err, "get document")
	}
	var csrfToken string
	if csrfToken, err = extractCSRFToken(doc, "/voice"); err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if tokenInForm {
		if err = mw.WriteField("csrf_token", csrfToken); err != nil {
			return nil, errors.Wrap(err, "write csrf_token field")
		}
		csrfToken = ""
	}
	if err = mw.WriteField("lang", lang); err != nil {
		return nil, errors.Wrap(err, "write lang field")
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="audio"; filename="question"`)
	header.Set("Content-Type", mimeType)
	var part io.Writer
	if part, err = mw.CreatePart(header); err != nil {
		return nil, errors.Wrap(err, "create audio part")
	}
	if _, err = part.Write(audio); err != nil {
		return nil, errors.Wrap(err, "write audio part")
	}
	if err = mw.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}

	return c.post(ctx, "/voice", mw.FormDataContentType(), &body, csrfToken)
}

// Speak requests the synthesized speech of the transcript message at index.
func (c *Client) Speak(ctx context.Context, index int) (*http.Response, error) {
	doc, err := c.GetDoc(ctx, "/")
	if err != nil {
		return nil, errors.Wrap(err, "get document")
	}
	var csrfToken string
	if csrfToken, err = extractCSRFToken(doc, "/speak"); err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}
	form := neturl.Values{"index": {strconv.Itoa(index)}}
	return c.post(ctx, "/speak", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), csrfToken)
}

func (c *Client) post(
	ctx context.Context,
	urlPath, contentType string,
	body io.Reader,
	csrfToken string,
) (*http.Response, error) {
	req, err := c.newRequestWithContext(ctx, http.MethodPost, urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", contentType)
	if csrfToken != "" {
		req.Header.Set(nosurf.HeaderName, csrfToken)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// Package completion sends questions to the chat-completion API and keeps
// the transcript in step with the conversation.
package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pbrown/gptcli/internal/apperr"
	"github.com/pbrown/gptcli/internal/config"
	"github.com/pbrown/gptcli/internal/debuglog"
	"github.com/pbrown/gptcli/internal/models"
	"github.com/pbrown/gptcli/internal/timing"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Log        *debuglog.Logger
	Timer      *timing.Timer
}

// Client issues one authenticated request per question. It holds no
// conversation state: the Settings are passed to each call.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *debuglog.Logger
	timer      *timing.Timer
}

// NewClient creates a completion client
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:    opts.BaseURL,
		timeout:    opts.Timeout,
		httpClient: opts.HTTPClient,
		log:        opts.Log,
		timer:      opts.Timer,
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = config.DefaultTimeout
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.log == nil {
		c.log = debuglog.Discard()
	}
	if c.timer == nil {
		c.timer = timing.New()
	}
	return c
}

// api builds an SDK client authenticated with credential as a bearer token.
// An empty credential is sent as-is and rejected by the remote service.
func (c *Client) api(credential string) *openai.Client {
	cfg := openai.DefaultConfig(credential)
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = withBearer(c.httpClient, credential)
	return openai.NewClientWithConfig(cfg)
}

// Ask appends question to the transcript, sends the whole transcript, and on
// success appends the first choice's message to the transcript and the raw
// record to the completion history.
//
// The question turn is appended before the request and is not removed when
// the request fails; whether it survives depends on the caller saving.
func (c *Client) Ask(ctx context.Context, s *models.Settings, question string) (*models.CompletionRecord, error) {
	s.AppendTurn(models.UserTurn(question))
	req := BuildRequest(s)
	c.log.LogQuestionSent(req.Model, len(req.Messages), question)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.timer.Start(timing.PhaseRequest)
	resp, err := c.api(s.Credential).CreateChatCompletion(ctx, req)
	requestMs := c.timer.End(timing.PhaseRequest).Milliseconds()
	if err != nil {
		if errors.Is(err, openai.ErrChatCompletionInvalidModel) {
			// The SDK refuses completion-only models before sending anything.
			err = apperr.UnsupportedModel(fmt.Sprintf("model %q cannot be used for chat completions, pick another with change-model", req.Model), err)
		} else {
			err = classify(err)
		}
		c.log.LogCompletionFailed(string(apperr.KindOf(err)), err, requestMs)
		return nil, err
	}

	record := recordFrom(resp)
	reply, ok := record.Reply()
	if !ok {
		err := apperr.MalformedResponse("response has no choices", nil)
		c.log.LogCompletionFailed(string(apperr.KindOf(err)), err, requestMs)
		return nil, err
	}

	s.AppendTurn(reply)
	s.RecordCompletion(*record)
	c.log.LogCompletion(record, requestMs)

	return record, nil
}

// ListModels returns the model ids available to the stored credential,
// sorted.
func (c *Client) ListModels(ctx context.Context, s *models.Settings) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.timer.Start(timing.PhaseRequest)
	list, err := c.api(s.Credential).ListModels(ctx)
	c.timer.End(timing.PhaseRequest)
	if err != nil {
		return nil, classify(err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

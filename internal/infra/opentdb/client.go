package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/telemetry"
)

const (
	// DefaultBaseURL is the public Open Trivia DB endpoint.
	DefaultBaseURL = "https://opentdb.com"
	// MaxAmount is the largest batch the provider serves per request.
	MaxAmount = 50
)

// responseMessages maps provider response codes to causes.
var responseMessages = map[int]string{
	1: "no results: not enough questions for the query",
	2: "invalid parameter",
	3: "session token not found",
	4: "session token exhausted",
	5: "rate limited",
}

// Client fetches questions from Open Trivia DB.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []apiQuestion `json:"results"`
}

type apiQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Fetch requests one batch of questions. Any failure is a *domain.FetchError
// and no questions are returned with it.
func (c *Client) Fetch(ctx context.Context, req domain.QuestionRequest) ([]domain.Question, error) {
	questions, err := c.fetch(ctx, req)
	if err != nil {
		telemetry.QuestionFetches.WithLabelValues("error").Inc()
		c.log.Error().Err(err).
			Int("amount", req.Amount).
			Int("category", req.Category).
			Str("difficulty", string(req.Difficulty)).
			Msg("error fetching questions")
		return nil, err
	}
	telemetry.QuestionFetches.WithLabelValues("ok").Inc()
	c.log.Info().
		Int("count", len(questions)).
		Int("category", req.Category).
		Str("difficulty", string(req.Difficulty)).
		Msg("fetched questions successfully")
	return questions, nil
}

func (c *Client) fetch(ctx context.Context, req domain.QuestionRequest) ([]domain.Question, error) {
	if err := validate(req); err != nil {
		return nil, &domain.FetchError{Cause: "invalid request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(req), nil)
	if err != nil {
		return nil, &domain.FetchError{Cause: "build request", Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &domain.FetchError{Cause: "transport", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, &domain.FetchError{Cause: fmt.Sprintf("provider status %d", resp.StatusCode)}
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.FetchError{Cause: "malformed response", Err: err}
	}
	if out.ResponseCode != 0 {
		msg, ok := responseMessages[out.ResponseCode]
		if !ok {
			msg = "unknown response code " + strconv.Itoa(out.ResponseCode)
		}
		return nil, &domain.FetchError{Cause: "provider rejected request: " + msg}
	}

	questions := make([]domain.Question, 0, len(out.Results))
	for i, raw := range out.Results {
		q, err := decode(raw)
		if err != nil {
			return nil, &domain.FetchError{Cause: fmt.Sprintf("malformed question %d", i+1), Err: err}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (c *Client) endpoint(req domain.QuestionRequest) string {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(req.Amount))
	if req.Category > 0 {
		q.Set("category", strconv.Itoa(req.Category))
	}
	q.Set("difficulty", string(req.Difficulty))
	q.Set("type", string(req.Type))
	return c.baseURL + "/api.php?" + q.Encode()
}

func validate(req domain.QuestionRequest) error {
	switch {
	case req.Amount <= 0 || req.Amount > MaxAmount:
		return fmt.Errorf("%w: amount %d not in 1..%d", domain.ErrInvalidRequest, req.Amount, MaxAmount)
	case req.Category < 0:
		return fmt.Errorf("%w: category %d", domain.ErrInvalidRequest, req.Category)
	case !req.Difficulty.Valid():
		return fmt.Errorf("%w: difficulty %q", domain.ErrInvalidRequest, req.Difficulty)
	case !req.Type.Valid():
		return fmt.Errorf("%w: type %q", domain.ErrInvalidRequest, req.Type)
	}
	return nil
}

// decode resolves HTML entities and checks the answer count against the type.
func decode(raw apiQuestion) (domain.Question, error) {
	typ := domain.QuestionType(raw.Type)
	if !typ.Valid() {
		return domain.Question{}, fmt.Errorf("unknown type %q", raw.Type)
	}
	if len(raw.IncorrectAnswers) != typ.Distractors() {
		return domain.Question{}, fmt.Errorf("%s question has %d incorrect answers", typ, len(raw.IncorrectAnswers))
	}
	if raw.Question == "" || raw.CorrectAnswer == "" {
		return domain.Question{}, fmt.Errorf("missing question or correct answer")
	}

	distractors := make([]string, len(raw.IncorrectAnswers))
	for i, a := range raw.IncorrectAnswers {
		distractors[i] = html.UnescapeString(a)
	}
	return domain.Question{
		Prompt:      html.UnescapeString(raw.Question),
		Correct:     html.UnescapeString(raw.CorrectAnswer),
		Distractors: distractors,
		Category:    html.UnescapeString(raw.Category),
		Difficulty:  domain.Difficulty(raw.Difficulty),
	}, nil
}

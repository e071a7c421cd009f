package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/teemow/inboxtriage/internal/logging"
	"github.com/teemow/inboxtriage/internal/triage"
)

const (
	// DefaultBaseURL points at the public OpenAI API.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4.1-mini"
)

// Service performs email analysis through an OpenAI-compatible chat
// completion API. One Service is shared by all operations; it is safe
// for concurrent use.
type Service struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewService builds the analysis client. It fails with ErrMissingAPIKey
// when no key is configured, before any network traffic, so callers can
// surface the configuration problem directly.
func NewService(logger *slog.Logger, apiKey, baseURL, model string) (*Service, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	return &Service{
		client: &client,
		model:  model,
		logger: logging.WithService(logger, "analysis"),
	}, nil
}

// AnalyzeBatch analyzes the given emails in a single request and returns
// results keyed by email id. Only ids that were requested appear in the
// result; the service may also omit ids, in which case callers keep
// whatever analysis those emails already had. On error the returned map
// is nil, never partially filled.
func (s *Service) AnalyzeBatch(ctx context.Context, emails []triage.Email) (map[string]triage.Analysis, error) {
	if len(emails) == 0 {
		return map[string]triage.Analysis{}, nil
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "email_triage_batch",
		Description: openai.String("Per-email triage analysis results"),
		Schema:      batchResultSchema,
		Strict:      openai.Bool(true),
	}

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(batchSystemPrompt),
			openai.UserMessage(buildBatchPrompt(emails)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
	})
	if err != nil {
		return nil, s.wrapAPIError("analyze", err)
	}
	if len(completion.Choices) == 0 {
		return nil, &ServiceError{Op: "analyze", Err: errors.New("no completion choices returned")}
	}

	var parsed batchResult
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &parsed); err != nil {
		return nil, &ServiceError{Op: "analyze", Err: fmt.Errorf("malformed analysis payload: %w", err)}
	}

	requested := make(map[string]bool, len(emails))
	for _, email := range emails {
		requested[email.ID] = true
	}

	results := make(map[string]triage.Analysis, len(parsed.Analyses))
	for _, a := range parsed.Analyses {
		// Ids we never asked about are dropped.
		if !requested[a.ID] {
			continue
		}
		results[a.ID] = triage.Analysis{
			Summary:      a.Summary,
			Priority:     triage.Priority(a.Priority),
			UrgencyScore: clampScore(a.UrgencyScore),
			Category:     triage.Category(a.Category),
			ActionItems:  a.ActionItems,
			Sentiment:    triage.Sentiment(a.Sentiment),
		}
	}

	s.logger.Debug("batch analysis complete",
		logging.Operation("analyze"),
		logging.Count(len(results)))

	return results, nil
}

// DraftReply asks the service for a short reply to a single email and
// returns the suggestion text.
func (s *Service) DraftReply(ctx context.Context, email triage.Email) (string, error) {
	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(draftSystemPrompt),
			openai.UserMessage(buildDraftPrompt(email)),
		},
	})
	if err != nil {
		return "", s.wrapAPIError("draft", err)
	}
	if len(completion.Choices) == 0 {
		return "", &ServiceError{Op: "draft", Err: errors.New("no completion choices returned")}
	}

	s.logger.Debug("reply drafted", logging.Operation("draft"))

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// wrapAPIError maps transport failures to the analysis error taxonomy.
// 401 and 403 become AuthError so callers know the key must be rotated;
// everything else is a ServiceError.
func (s *Service) wrapAPIError(op string, err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		if apierr.StatusCode == http.StatusUnauthorized || apierr.StatusCode == http.StatusForbidden {
			s.logger.Warn("analysis credentials rejected",
				logging.Operation(op),
				logging.Status(logging.StatusError),
				logging.Err(err))
			return &AuthError{Op: op, StatusCode: apierr.StatusCode, Err: err}
		}
		s.logger.Warn("analysis request failed",
			logging.Operation(op),
			logging.Status(logging.StatusError),
			logging.Err(err))
		return &ServiceError{Op: op, StatusCode: apierr.StatusCode, Err: err}
	}
	s.logger.Warn("analysis request failed",
		logging.Operation(op),
		logging.Status(logging.StatusError),
		logging.Err(err))
	return &ServiceError{Op: op, Err: err}
}

// clampScore bounds an urgency score to the documented 0-100 range.
// Strict schemas keep compliant services inside the range already, but
// not every OpenAI-compatible endpoint enforces them.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

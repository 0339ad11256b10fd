// internal/advisor/client.go
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"careerpilot/internal/common/errors"
	"careerpilot/internal/common/logger"
	"careerpilot/internal/common/metrics"
	"careerpilot/internal/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/xeipuuv/gojsonschema"
)

// summaryFallback is returned silently when job summarization fails.
const summaryFallback = "Summary unavailable."

// Client calls the Gemini advisory model and validates every structured
// response against a JSON schema before decoding.
type Client struct {
	model   llms.Model
	logger  logger.Logger
	timeout time.Duration
}

// New builds a client backed by the Gemini API.
func New(ctx context.Context, apiKey, modelName string, timeout time.Duration, log logger.Logger) (*Client, error) {
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return NewWithModel(model, timeout, log), nil
}

// NewWithModel wraps an existing model, used with fakes in tests.
func NewWithModel(model llms.Model, timeout time.Duration, log logger.Logger) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		model:   model,
		logger:  log.WithFields(map[string]interface{}{"component": "advisor"}),
		timeout: timeout,
	}
}

// ScoreResume evaluates a resume, and optionally a cover letter, against one
// listing. On any failure the caller keeps its previous analysis state.
func (c *Client) ScoreResume(ctx context.Context, resume, coverLetter, jobDescription, company, title string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	prompt := analyzePrompt(resume, coverLetter, jobDescription, company, title)
	if err := c.callJSON(ctx, "analyze", prompt, analysisSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SummarizeJob condenses a job description. Failures degrade to a fixed
// fallback string; the caller never sees an error.
func (c *Client) SummarizeJob(ctx context.Context, description string) string {
	prompt := summarizePrompt(description)
	raw, err := c.callText(ctx, "summarize", prompt)
	if err != nil {
		c.logger.Warn("job summary failed, using fallback", map[string]interface{}{
			"error": err,
		})
		return summaryFallback
	}
	if strings.TrimSpace(raw) == "" {
		return summaryFallback
	}
	return raw
}

// GeneratePracticeQuestion produces one interview question, optionally
// scoped to the given context.
func (c *Client) GeneratePracticeQuestion(ctx context.Context, userContext string) (*models.PracticeSession, error) {
	var session models.PracticeSession
	prompt := practiceQuestionPrompt(userContext)
	if err := c.callJSON(ctx, "practice", prompt, practiceQuestionSchema, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// EvaluateAnswer scores a practice answer against its question.
func (c *Client) EvaluateAnswer(ctx context.Context, question, answer string) (*models.PracticeFeedback, error) {
	var feedback models.PracticeFeedback
	prompt := evaluateAnswerPrompt(question, answer)
	if err := c.callJSON(ctx, "practice", prompt, practiceFeedbackSchema, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ExtractProfile parses name, email and a profile from resume text.
func (c *Client) ExtractProfile(ctx context.Context, resume string) (*models.ExtractedProfile, error) {
	var profile models.ExtractedProfile
	prompt := extractProfilePrompt(resume)
	if err := c.callJSON(ctx, "parse-profile", prompt, profileSchema, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetCareerAdvice returns combined resume feedback and interview
// preparation. Questions are sorted by topic, then easy before medium before
// hard within each topic.
func (c *Client) GetCareerAdvice(ctx context.Context, resumeText, targetRole string) (*models.SupportResponse, error) {
	var response models.SupportResponse
	prompt := supportPrompt(resumeText, targetRole)
	if err := c.callJSON(ctx, "support", prompt, supportSchema, &response); err != nil {
		return nil, err
	}
	sortRoleQuestions(response.InterviewPreparation.RoleSpecificQuestions)
	return &response, nil
}

var difficultyRank = map[string]int{
	"easy":   0,
	"medium": 1,
	"hard":   2,
}

func sortRoleQuestions(questions []models.RoleQuestion) {
	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].Topic != questions[j].Topic {
			return questions[i].Topic < questions[j].Topic
		}
		return difficultyRank[questions[i].Difficulty] < difficultyRank[questions[j].Difficulty]
	})
}

// callJSON runs a prompt, validates the fenced-stripped response against the
// schema and decodes it into dest.
func (c *Client) callJSON(ctx context.Context, action, prompt, schema string, dest interface{}) error {
	raw, err := c.callText(ctx, action, prompt)
	if err != nil {
		return err
	}

	cleaned := stripFences(raw)

	validation, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		metrics.AdvisorCalls.WithLabelValues(action, "invalid").Inc()
		return errors.NewAdvisorResponseInvalidError(action, err.Error())
	}
	if !validation.Valid() {
		details := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			details = append(details, desc.String())
		}
		metrics.AdvisorCalls.WithLabelValues(action, "invalid").Inc()
		return errors.NewAdvisorResponseInvalidError(action, strings.Join(details, "; "))
	}

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		metrics.AdvisorCalls.WithLabelValues(action, "invalid").Inc()
		return errors.NewAdvisorResponseInvalidError(action, err.Error())
	}
	return nil
}

// callText runs a prompt and returns the raw completion. A result arriving
// after the caller's context is done is discarded.
func (c *Client) callText(ctx context.Context, action, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	raw, err := llms.GenerateFromSinglePrompt(callCtx, c.model, prompt)
	metrics.AdvisorCallDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())

	if ctx.Err() != nil {
		metrics.AdvisorCalls.WithLabelValues(action, "stale").Inc()
		return "", ctx.Err()
	}
	if err != nil {
		metrics.AdvisorCalls.WithLabelValues(action, "error").Inc()
		c.logger.Error("advisory call failed", map[string]interface{}{
			"action": action,
			"error":  err,
		})
		return "", errors.NewAdvisorUnavailableError(action, err)
	}

	metrics.AdvisorCalls.WithLabelValues(action, "success").Inc()
	return raw, nil
}

// stripFences removes a markdown code fence wrapper from a model response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

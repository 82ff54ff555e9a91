package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/domain/repository"
	"TradePulse/internal/service/ratelimit"
	"TradePulse/pkg/cache"
	apphttp "TradePulse/pkg/http"
	"TradePulse/pkg/logger"
)

const (
	anthropicVersion = "2023-06-01"
	maxTokens        = 512
	insightCacheTTL  = 15 * time.Minute
)

var (
	// ErrDisabled is returned when no API key or base URL is configured.
	ErrDisabled = errors.New("insights: not configured")

	// ErrRateLimited is returned when the local token bucket is empty.
	ErrRateLimited = errors.New("insights: rate limited")
)

// Config carries the model endpoint settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	RPS     float64
}

// Service generates short narrative commentary over the aggregated trade
// statistics by calling a messages-style model API. Responses are cached per
// focus so dashboard refreshes do not fan out into repeated model calls.
type Service struct {
	cfg     Config
	client  *apphttp.Client
	limiter *ratelimit.Limiter
	cache   cache.Service
	metrics repository.Metrics
	log     *logger.Logger
}

func NewService(
	cfg Config,
	cacheSvc cache.Service,
	metrics repository.Metrics,
	log *logger.Logger,
) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		cfg:     cfg,
		client:  apphttp.NewClient(apphttp.WithTimeout(timeout)),
		limiter: ratelimit.New(),
		cache:   cacheSvc,
		metrics: metrics,
		log:     log,
	}
}

// Enabled reports whether the service has the credentials it needs.
func (s *Service) Enabled() bool {
	return s.cfg.APIKey != "" && s.cfg.BaseURL != ""
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generate produces commentary for the given focus from the quarterly and
// balance series.
func (s *Service) Generate(ctx context.Context, focus string, quarterly []models.QuarterlyStat, balance []models.BalanceStat) (*models.Insight, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	key := cache.GenerateKey("insights", focus)
	var cached models.Insight
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	if !s.limiter.Allow("insights", s.cfg.RPS*10, s.cfg.RPS) {
		s.metrics.RecordInsight("rate_limited")
		return nil, ErrRateLimited
	}

	req := &apphttp.RequestOptions{
		Method: apphttp.MethodPost,
		URL:    strings.TrimRight(s.cfg.BaseURL, "/") + "/v1/messages",
		Headers: map[string]string{
			"x-api-key":         s.cfg.APIKey,
			"anthropic-version": anthropicVersion,
		},
		Body: messageRequest{
			Model:     s.cfg.Model,
			MaxTokens: maxTokens,
			Messages: []message{
				{Role: "user", Content: buildPrompt(focus, quarterly, balance)},
			},
		},
	}

	var parsed messageResponse
	if err := s.client.SendAndParse(ctx, req, &parsed); err != nil {
		s.metrics.RecordInsight("error")
		s.log.Error("insight generation failed", logger.Error(err), logger.String("focus", focus))
		return nil, fmt.Errorf("generate insight: %w", err)
	}

	var summary strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			summary.WriteString(block.Text)
		}
	}
	if summary.Len() == 0 {
		s.metrics.RecordInsight("empty")
		return nil, errors.New("insights: empty model response")
	}

	insight := &models.Insight{
		Focus:       focus,
		Summary:     summary.String(),
		Model:       parsed.Model,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if insight.Model == "" {
		insight.Model = s.cfg.Model
	}

	s.metrics.RecordInsight("ok")
	if err := s.cache.Set(ctx, key, insight, insightCacheTTL); err != nil {
		s.log.Debug("insight cache write failed", logger.Error(err))
	}
	return insight, nil
}

// buildPrompt renders the recent series as compact lines the model can read
// without a table parser.
func buildPrompt(focus string, quarterly []models.QuarterlyStat, balance []models.BalanceStat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a trade statistics analyst for Rwanda. Write a short paragraph (3-4 sentences) about %s trends.\n\n", focus)

	if len(quarterly) > 0 {
		b.WriteString("Quarterly totals (USD millions):\n")
		for _, q := range tailStats(quarterly, 8) {
			fmt.Fprintf(&b, "%s: %.2f\n", q.Quarter, q.Value)
		}
	}
	if focus == "balance" && len(balance) > 0 {
		b.WriteString("\nTrade balance (exports, imports, balance):\n")
		for _, q := range tailBalance(balance, 8) {
			fmt.Fprintf(&b, "%s: %.2f, %.2f, %.2f\n", q.Quarter, q.Exports, q.Imports, q.Balance)
		}
	}

	b.WriteString("\nMention the latest quarter, the overall direction, and one notable change. Plain prose, no markdown.")
	return b.String()
}

func tailStats(s []models.QuarterlyStat, n int) []models.QuarterlyStat {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func tailBalance(s []models.BalanceStat, n int) []models.BalanceStat {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Package assistant answers learner questions from an ordered keyword table,
// optionally falling back to a language model.
package assistant

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/weblearn/weblearn/internal/llm"
)

//go:embed rules.yaml
var rulesYAML []byte

// ErrEmptyQuestion is returned for blank questions.
var ErrEmptyQuestion = errors.New("question is empty")

// Source tells where an answer came from.
type Source string

const (
	SourceRule     Source = "rule"
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Rule pairs a lower-case keyword with its canned response.
type Rule struct {
	Topic    string
	Keyword  string
	Response string
}

// Rules is an ordered keyword table plus the reply used when nothing
// matches.
type Rules struct {
	Pairs    []Rule
	Fallback string
}

type rulesFile struct {
	Fallback string `yaml:"fallback"`
	Rules    []struct {
		Topic    string   `yaml:"topic"`
		Keywords []string `yaml:"keywords"`
		Response string   `yaml:"response"`
	} `yaml:"rules"`
}

// ParseRules decodes a rules document and flattens it in declaration order.
func ParseRules(data []byte) (*Rules, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if strings.TrimSpace(f.Fallback) == "" {
		return nil, fmt.Errorf("parse rules: fallback reply is required")
	}

	r := &Rules{Fallback: strings.TrimSpace(f.Fallback)}
	for i, rule := range f.Rules {
		if strings.TrimSpace(rule.Response) == "" {
			return nil, fmt.Errorf("parse rules: rule %d (%s) has no response", i, rule.Topic)
		}
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			r.Pairs = append(r.Pairs, Rule{
				Topic:    rule.Topic,
				Keyword:  kw,
				Response: strings.TrimSpace(rule.Response),
			})
		}
	}
	return r, nil
}

var (
	defaultOnce  sync.Once
	defaultRules *Rules
)

// DefaultRules returns the embedded rule table.
func DefaultRules() *Rules {
	defaultOnce.Do(func() {
		r, err := ParseRules(rulesYAML)
		if err != nil {
			panic(err)
		}
		defaultRules = r
	})
	return defaultRules
}

// Match returns the first rule whose keyword occurs in the question.
func (r *Rules) Match(question string) (Rule, bool) {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return Rule{}, false
	}
	for _, p := range r.Pairs {
		if strings.Contains(q, p.Keyword) {
			return p, true
		}
	}
	return Rule{}, false
}

// Answer is a reply to one question.
type Answer struct {
	Text    string `json:"text"`
	Keyword string `json:"keyword,omitempty"`
	Source  Source `json:"source"`
}

const systemPrompt = `You are the WebLearn tutor, helping beginners learn HTML, CSS and JavaScript.
Answer in at most four short sentences. Include a tiny code example when it helps.
If the question is not about web development, say so politely.`

// Assistant answers questions. The zero value is not usable; call New.
type Assistant struct {
	rules     *Rules
	provider  llm.Provider
	maxTokens int
	timeout   time.Duration
	log       *zap.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithProvider enables the model fallback for unmatched questions.
func WithProvider(p llm.Provider, maxTokens int, timeout time.Duration) Option {
	return func(a *Assistant) {
		a.provider = p
		if maxTokens > 0 {
			a.maxTokens = maxTokens
		}
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Assistant) { a.log = log }
}

// New creates an Assistant over rules; nil selects the embedded table.
func New(rules *Rules, opts ...Option) *Assistant {
	if rules == nil {
		rules = DefaultRules()
	}
	a := &Assistant{
		rules:     rules,
		maxTokens: 400,
		timeout:   30 * time.Second,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Ask answers question. Keyword rules win over the model; provider errors
// degrade to the canned fallback rather than failing.
func (a *Assistant) Ask(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrEmptyQuestion
	}

	if rule, ok := a.rules.Match(question); ok {
		return Answer{Text: rule.Response, Keyword: rule.Keyword, Source: SourceRule}, nil
	}

	if a.provider != nil {
		ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, llm.PurposeAssistant), a.timeout)
		defer cancel()

		resp, err := a.provider.Complete(ctx, llm.Ask(systemPrompt, question, a.maxTokens))
		if err == nil {
			return Answer{Text: resp.Text, Source: SourceLLM}, nil
		}
		a.log.Warn("assistant model fallback failed", zap.Error(err))
	}

	return Answer{Text: a.rules.Fallback, Source: SourceFallback}, nil
}

// Topics lists rule topics in declaration order, without repeats.
func (a *Assistant) Topics() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range a.rules.Pairs {
		if !seen[p.Topic] {
			seen[p.Topic] = true
			out = append(out, p.Topic)
		}
	}
	return out
}

// Package responder orchestrates the intent resolution pipeline: a fixed
// ordered chain of resolvers that short-circuits on the first confident
// reply and escalates to the learning manager when none is found.
package responder

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/capitalize-ai/response-engine/internal/cache"
	"github.com/capitalize-ai/response-engine/internal/corpus"
	"github.com/capitalize-ai/response-engine/internal/flow"
	"github.com/capitalize-ai/response-engine/internal/lexicon"
	"github.com/capitalize-ai/response-engine/internal/model"
	"github.com/capitalize-ai/response-engine/internal/predict"
	"github.com/capitalize-ai/response-engine/internal/rules"
	"github.com/capitalize-ai/response-engine/internal/session"
	"github.com/capitalize-ai/response-engine/pkg/logger"
	"github.com/capitalize-ai/response-engine/pkg/metrics"
)

// ErrEmptyMessage is returned when the inbound message is empty; it is the
// only error Resolve surfaces to callers.
var ErrEmptyMessage = errors.New("message cannot be empty")

// contextWindow is how many recent messages the rolling context check scans.
const contextWindow = 3

// learnTimeout bounds the detached learning write after the reply is
// already computed.
const learnTimeout = 10 * time.Second

// Learner is the slice of the learning manager the pipeline needs.
type Learner interface {
	RecordUnresolved(ctx context.Context, message string, category model.Category) error
}

// Pipeline is the intent resolution pipeline.
type Pipeline struct {
	sessions  *session.Store
	flows     *flow.Engine
	matcher   *rules.Matcher
	scorer    *corpus.Scorer
	repo      corpus.Repository
	cache     cache.Cache
	predictor predict.Predictor
	learner   Learner
	logger    *logger.Logger

	// learnAsync runs the learning write path; replaced in tests to run
	// inline.
	learnAsync func(fn func())
}

// New creates a pipeline over its collaborators.
func New(
	sessions *session.Store,
	flows *flow.Engine,
	matcher *rules.Matcher,
	scorer *corpus.Scorer,
	repo corpus.Repository,
	c cache.Cache,
	predictor predict.Predictor,
	learner Learner,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		sessions:   sessions,
		flows:      flows,
		matcher:    matcher,
		scorer:     scorer,
		repo:       repo,
		cache:      c,
		predictor:  predictor,
		learner:    learner,
		logger:     log,
		learnAsync: func(fn func()) { go fn() },
	}
}

// Resolve produces the best available reply for a message. A missing
// conversation id is generated. Internal failures degrade the reply rather
// than erroring; the only client error is an empty message.
func (p *Pipeline) Resolve(ctx context.Context, message, conversationID string) (*model.HandleMessageResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	ctx, span := otel.Tracer("responder").Start(ctx, "pipeline.resolve",
		trace.WithAttributes(attribute.String("conversation.id", conversationID)))
	defer span.End()

	p.sessions.Sweep(conversationID)
	p.sessions.Touch(conversationID, message)
	metrics.SessionsActive.Set(float64(p.sessions.Len()))

	normalized := strings.ToLower(strings.TrimSpace(message))

	resp := &model.HandleMessageResponse{ConversationID: conversationID}

	// 1. Exact static greeting/help table.
	if reply, ok := greetingTable[normalized]; ok {
		metrics.RecordResolution("static")
		resp.Response = reply
		return resp, nil
	}

	// 2. Previously-learned exact-text cache.
	if reply, err := p.cache.Get(ctx, cache.LearnedPrefix+normalized); err == nil && reply != "" {
		metrics.CacheHits.WithLabelValues("learned").Inc()
		metrics.RecordResolution("learned")
		resp.Response = reply
		return resp, nil
	}
	metrics.CacheMisses.WithLabelValues("learned").Inc()

	// 3. Lexical analysis, once. Negative sentiment wins over everything
	// below, including an in-progress guided flow.
	analysis := lexicon.Analyze(message)
	if topic := topicFor(analysis.Categories); topic != model.CategoryNone {
		p.sessions.SetContext(conversationID, topic)
	}
	if analysis.Sentiment == model.SentimentNegative {
		metrics.RecordResolution("sentiment")
		resp.Response = EmpathyReply
		return resp, nil
	}

	// 4. Static keyword rules.
	if reply, ok := p.matcher.Match(analysis.Keywords); ok {
		metrics.RecordResolution("rules")
		resp.Response = reply
		return resp, nil
	}

	// 5. Guided flows. The cursor is persisted even on a miss: that is how
	// terminal nodes tear down.
	cursor := p.sessions.TreeNode(conversationID)
	newCursor, reply, matched := p.flows.Step(cursor, message)
	p.sessions.SetTreeNode(conversationID, newCursor)
	if matched {
		metrics.RecordResolution("flow")
		resp.Response = reply
		return resp, nil
	}

	// 6. Rolling conversation context.
	if topic := p.rollingContext(conversationID); topic != model.CategoryNone {
		if reply := contextualReply(topic, normalized); reply != "" {
			metrics.RecordResolution("context")
			resp.Response = reply
			return resp, nil
		}
	}

	// 7. Trained corpus.
	match, err := p.scorer.FindBestMatch(ctx, message)
	if err != nil {
		p.logger.Error("corpus scoring failed", zap.Error(err))
	}
	if match != nil {
		interaction := &model.Interaction{
			ID:             uuid.New().String(),
			EntryID:        match.Entry.ID,
			ConversationID: conversationID,
			Message:        message,
		}
		if err := p.repo.RecordInteraction(ctx, interaction); err != nil {
			p.logger.Error("failed to record interaction", zap.Error(err))
		} else {
			resp.InteractionID = interaction.ID
		}
		metrics.RecordResolution("corpus")
		resp.Response = match.Entry.Response
		return resp, nil
	}

	// 8. External prediction, behind the confidence gate.
	if p.predictor != nil {
		pred := p.predictor.Predict(ctx, message)
		if pred.Success && !pred.Fallback && pred.Confidence >= ConfidenceGate {
			metrics.RecordResolution("prediction")
			resp.Response = pred.Answer + MachineSuffix
			return resp, nil
		}
	}

	// 9. Nothing was confident: escalate and hold. The learning write path
	// is detached from the request; its failure never reaches the sender.
	category := analysis.PrimaryCategory()
	if p.learner != nil {
		p.learnAsync(func() {
			learnCtx, cancel := context.WithTimeout(context.Background(), learnTimeout)
			defer cancel()
			if err := p.learner.RecordUnresolved(learnCtx, message, category); err != nil {
				p.logger.Error("failed to record unresolved message",
					zap.String("conversation_id", conversationID), zap.Error(err))
			}
		})
	}

	metrics.RecordResolution("holding")
	resp.Response = holdingReply(category)
	return resp, nil
}

// rollingContext scans the last few messages for topic trigger words and
// returns the first topic the window matches.
func (p *Pipeline) rollingContext(conversationID string) model.Category {
	recent := p.sessions.Recent(conversationID, contextWindow)
	for _, entry := range contextTriggers {
		for _, msg := range recent {
			for _, trigger := range entry.Triggers {
				if strings.Contains(msg, trigger) {
					return entry.Topic
				}
			}
		}
	}
	return model.CategoryNone
}

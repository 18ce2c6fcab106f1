package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/aura-labs/aura-api/internal/metrics"
	"github.com/aura-labs/aura-api/internal/store"
)

// AnonymousUserID is used when the caller supplies no user identifier.
const AnonymousUserID = "anonymous"

// ErrEmptyMessage is the only error SendMessage surfaces to callers; every
// store or provider failure degrades to a successful canned reply instead.
var ErrEmptyMessage = errors.New("message is required")

// ChatService accepts user messages, records them, and obtains replies from
// the generative-AI provider, tolerating failure at every external dependency.
type ChatService struct {
	primary   store.ThreadStore
	secondary *store.MemoryStore
	llm       ReplyGenerator
	logger    *zap.Logger
}

func NewChatService(primary store.ThreadStore, secondary *store.MemoryStore, llm ReplyGenerator, logger *zap.Logger) *ChatService {
	return &ChatService{
		primary:   primary,
		secondary: secondary,
		llm:       llm,
		logger:    logger,
	}
}

// SendMessage runs the three fallback tiers in order: persist the user
// message (primary, else memory), generate the reply (provider, else keyword
// table), persist the reply (same store the request ended up on, else a
// best-effort fresh memory entry). Partial writes across tiers are accepted.
func (s *ChatService) SendMessage(ctx context.Context, userID, message string) (string, error) {
	start := time.Now()
	if message == "" {
		metrics.ChatRequestDuration.WithLabelValues(metrics.SuccessFalse).Observe(time.Since(start).Seconds())
		metrics.ChatRequestsTotal.WithLabelValues(metrics.SuccessFalse).Inc()
		return "", ErrEmptyMessage
	}
	if userID == "" {
		userID = AnonymousUserID
	}

	defer func() {
		metrics.ChatRequestDuration.WithLabelValues(metrics.SuccessTrue).Observe(time.Since(start).Seconds())
		metrics.ChatRequestsTotal.WithLabelValues(metrics.SuccessTrue).Inc()
	}()

	userMsg := store.Message{Sender: store.SenderUser, Content: message}

	// Tier 1: record the user message, dropping the whole request to the
	// in-memory store when the primary cannot take the write.
	memoryMode := false
	if err := s.primary.Append(ctx, userID, userMsg); err != nil {
		s.logger.Warn("primary store unavailable, using in-memory storage",
			zap.String("user_id", userID), zap.Error(err))
		metrics.ChatFallbacksTotal.WithLabelValues(metrics.TierStore).Inc()
		memoryMode = true
		if err := s.secondary.Append(ctx, userID, userMsg); err != nil {
			// MemoryStore.Append cannot fail today; log in case that changes.
			s.logger.Error("in-memory append failed", zap.String("user_id", userID), zap.Error(err))
		}
		metrics.MemoryThreads.Set(float64(s.secondary.Len()))
	}

	// Tier 2: generate the reply, degrading to the canned keyword table.
	reply, err := s.llm.Reply(ctx, message)
	if err != nil {
		s.logger.Warn("reply generation failed, using keyword fallback",
			zap.String("user_id", userID), zap.Error(err))
		metrics.ChatFallbacksTotal.WithLabelValues(metrics.TierReply).Inc()
		metrics.ProviderFailuresTotal.WithLabelValues("gemini").Inc()
		reply = FallbackReply(message)
	}

	// Tier 3: record the reply on whichever store this request is using. A
	// failed final primary save writes a fresh two-message entry into the
	// memory store, only if that user has no entry there already.
	sysMsg := store.Message{Sender: store.SenderSystem, Content: reply}
	if memoryMode {
		if err := s.secondary.Append(ctx, userID, sysMsg); err != nil {
			s.logger.Error("in-memory append failed", zap.String("user_id", userID), zap.Error(err))
		}
	} else if err := s.primary.Append(ctx, userID, sysMsg); err != nil {
		s.logger.Warn("failed to save reply to primary store, writing recovery entry",
			zap.String("user_id", userID), zap.Error(err))
		metrics.ChatFallbacksTotal.WithLabelValues(metrics.TierResave).Inc()
		s.secondary.PutIfAbsent(userID, userMsg, sysMsg)
		metrics.MemoryThreads.Set(float64(s.secondary.Len()))
	}

	return reply, nil
}

// History returns the ordered messages of the user's thread from the primary
// store, or an empty slice when no thread exists. It deliberately does not
// consult the in-memory fallback: a caller whose writes landed there will see
// an incomplete history here until the primary recovers.
func (s *ChatService) History(ctx context.Context, userID string) ([]store.Message, error) {
	if userID == "" {
		userID = AnonymousUserID
	}
	_, messages, err := s.primary.Thread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []store.Message{}
	}
	return messages, nil
}

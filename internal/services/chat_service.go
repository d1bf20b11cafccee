package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/realtime"
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"github.com/rishtahub/rishta_backend/internal/security"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"github.com/rishtahub/rishta_backend/pkg/logger"
)

// Chat event kinds carried on pair topics.
const (
	ChatEventMessage = "message"
	ChatEventSeen    = "seen"
	ChatEventDeleted = "deleted"
	ChatEventEdited  = "edited"
	ChatEventTyping  = "typing"
)

// ChatEvent is the envelope published on a pair or typing topic.
type ChatEvent struct {
	Event   string              `json:"event"`
	Message *models.ChatMessage `json:"message,omitempty"`
	From    uint                `json:"from,omitempty"`
	To      uint                `json:"to,omitempty"`
}

// SendMessageInput carries one outbound chat message through the gate.
// AuthenticatedID is the identity the transport resolved for the session
// and must agree with the declared SenderID.
type SendMessageInput struct {
	SenderID        uint
	AuthenticatedID uint
	ReceiverID      uint
	Content         string
	Type            string
}

// ChatService enforces the chat gate: only mutually matched, unblocked
// pairs may exchange text messages, and message bodies that look like
// contact information are replaced wholesale before they are stored.
type ChatService struct {
	messages  *repositories.MessageRepository
	relations *repositories.RelationRepository
	presence  *realtime.Presence
	bus       realtime.Bus
	maxLen    int
}

func NewChatService(
	messages *repositories.MessageRepository,
	relations *repositories.RelationRepository,
	presence *realtime.Presence,
	bus realtime.Bus,
	maxLen int,
) *ChatService {
	return &ChatService{
		messages:  messages,
		relations: relations,
		presence:  presence,
		bus:       bus,
		maxLen:    maxLen,
	}
}

// SendMessage validates, sanitizes, persists and fans out one message.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*models.ChatMessage, error) {
	if in.AuthenticatedID != in.SenderID {
		return nil, errors.New(errors.ErrCodeUnauthorized, "invalid sender, unauthorized message attempt")
	}

	msgType := strings.ToUpper(in.Type)
	if msgType == models.MessageTypeImage || msgType == models.MessageTypeVideo {
		return nil, errors.New(errors.ErrCodePolicyViolation, "photos and videos are not allowed in chat")
	}
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, errors.New(errors.ErrCodeValidationFailed, "message content is empty")
	}
	if len(content) > s.maxLen {
		return nil, errors.New(errors.ErrCodeValidationFailed, "message content too long")
	}

	matched, err := s.isMatched(in.SenderID, in.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, errors.New(errors.ErrCodePolicyViolation, "users are not matched, messaging not allowed")
	}

	blocked, err := s.relations.ExistsEither(in.SenderID, in.ReceiverID, models.RelationBlock)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, errors.New(errors.ErrCodePolicyViolation, "messaging blocked between users")
	}

	msg := &models.ChatMessage{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Content:    security.FilterContactInfo(content),
		Type:       msgType,
		// Point-in-time delivery hint, not re-evaluated later
		Delivered: s.presence.IsOnline(in.ReceiverID),
	}

	if err := s.messages.Save(msg); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.PairTopic(msg.SenderID, msg.ReceiverID), ChatEvent{
		Event:   ChatEventMessage,
		Message: msg,
	})

	return msg, nil
}

// MarkSeen stamps the seen flag. Only the receiver may mark a message seen.
func (s *ChatService) MarkSeen(ctx context.Context, messageID, userID uint) (*models.ChatMessage, error) {
	msg, err := s.messages.GetByID(messageID)
	if err != nil {
		return nil, err
	}

	if msg.ReceiverID != userID {
		return nil, errors.New(errors.ErrCodeForbidden, "only the receiver can mark a message seen")
	}

	msg, err = s.messages.MarkSeen(messageID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.PairTopic(msg.SenderID, msg.ReceiverID), ChatEvent{
		Event:   ChatEventSeen,
		Message: msg,
	})

	return msg, nil
}

// DeleteMessage soft-deletes the sender's own message and republishes it.
// The row stays in history; the flag travels to clients.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID, userID uint) (*models.ChatMessage, error) {
	msg, err := s.messages.GetByID(messageID)
	if err != nil {
		return nil, err
	}

	if msg.SenderID != userID {
		return nil, errors.New(errors.ErrCodeUnauthorized, "only the sender can delete a message")
	}

	msg, err = s.messages.SoftDelete(messageID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.PairTopic(msg.SenderID, msg.ReceiverID), ChatEvent{
		Event:   ChatEventDeleted,
		Message: msg,
	})

	return msg, nil
}

// EditMessage overwrites the body of the sender's own message. Editing a
// deleted message is refused and leaves the stored content untouched.
func (s *ChatService) EditMessage(ctx context.Context, messageID, userID uint, newText string) (*models.ChatMessage, error) {
	msg, err := s.messages.GetByID(messageID)
	if err != nil {
		return nil, err
	}

	if msg.SenderID != userID {
		return nil, errors.New(errors.ErrCodeUnauthorized, "only the sender can edit a message")
	}

	if msg.Deleted {
		return nil, errors.New(errors.ErrCodeInvalidState, "cannot edit a deleted message")
	}

	newText = strings.TrimSpace(newText)
	if newText == "" {
		return nil, errors.New(errors.ErrCodeValidationFailed, "message content is empty")
	}
	if len(newText) > s.maxLen {
		return nil, errors.New(errors.ErrCodeValidationFailed, "message content too long")
	}

	msg, err = s.messages.UpdateContent(messageID, security.FilterContactInfo(newText))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.PairTopic(msg.SenderID, msg.ReceiverID), ChatEvent{
		Event:   ChatEventEdited,
		Message: msg,
	})

	return msg, nil
}

// Typing publishes an ephemeral typing indicator for the pair. Nothing is
// persisted.
func (s *ChatService) Typing(ctx context.Context, fromID, toID uint) {
	s.publish(ctx, realtime.TypingTopic(fromID, toID), ChatEvent{
		Event: ChatEventTyping,
		From:  fromID,
		To:    toID,
	})
}

// GetHistory returns all messages between the pair ordered by send time,
// soft-deleted ones included.
func (s *ChatService) GetHistory(user1ID, user2ID uint) ([]models.ChatMessage, error) {
	return s.messages.HistoryBetween(user1ID, user2ID)
}

func (s *ChatService) isMatched(user1ID, user2ID uint) (bool, error) {
	forward, err := s.relations.Exists(user1ID, user2ID, models.RelationMatch)
	if err != nil {
		return false, err
	}
	if !forward {
		return false, nil
	}
	return s.relations.Exists(user2ID, user1ID, models.RelationMatch)
}

// publish is fire-and-forget: delivery problems are logged, never surfaced
// to the caller whose write already committed.
func (s *ChatService) publish(ctx context.Context, topic string, event ChatEvent) {
	if s.bus == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode chat event", "topic", topic, "error", err)
		return
	}

	if err := s.bus.Publish(ctx, topic, payload); err != nil {
		logger.Warn("Failed to publish chat event", "topic", topic, "error", err)
	}
}

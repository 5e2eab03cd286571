package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/campusnet/internal/models"
)

// SendMessageInput полезная нагрузка входящего события sendMessage
type SendMessageInput struct {
	SenderID   string `json:"senderId" validate:"required,uuid"`
	ReceiverID string `json:"receiverId" validate:"required,uuid"`
	Content    string `json:"content" validate:"required,max=5000"`
}

// HistoryItem сообщение переписки с признаком авторства
type HistoryItem struct {
	models.Message
	IsSentByMe bool `json:"isSentByMe"`
}

// Conversation знакомый пользователь и последнее сообщение с ним
type Conversation struct {
	Acquaintance  models.User
	LatestMessage *models.MessageView
}

type MessageService struct {
	messages      MessageStore
	users         UserStore
	friends       FriendStore
	notifications *NotificationService
	delivery      Deliverer
	log           *slog.Logger
	now           func() time.Time
}

func NewMessageService(
	messages MessageStore,
	users UserStore,
	friends FriendStore,
	notifications *NotificationService,
	delivery Deliverer,
	log *slog.Logger,
) *MessageService {
	return &MessageService{
		messages:      messages,
		users:         users,
		friends:       friends,
		notifications: notifications,
		delivery:      delivery,
		log:           log,
		now:           time.Now,
	}
}

// SendMessage сохраняет сообщение, доставляет его в комнаты обоих участников
// и создаёт уведомление new_message для получателя.
//
// Сообщение сохраняется до проверки отправителя: если отправитель не найден,
// сообщение остаётся в хранилище, а остальные шаги не выполняются.
func (s *MessageService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	const op = "send message"

	if err := validate.Struct(in); err != nil {
		return nil, newError(KindValidation, op, err)
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, newError(KindValidation, op, ErrEmptyContent)
	}

	senderID, err := parseID(op, in.SenderID)
	if err != nil {
		return nil, err
	}
	receiverID, err := parseID(op, in.ReceiverID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    in.Content,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.messages.SaveMessage(ctx, message); err != nil {
		return nil, newError(KindCollaborator, op, err)
	}

	sender, err := s.users.GetUser(ctx, senderID)
	if err != nil {
		e := storeError(op, err)
		if e.Kind == KindNotFound {
			e.Err = fmt.Errorf("%w: %s", ErrSenderNotFound, senderID)
		}
		return message, e
	}

	// Сообщение самому себе: комната одна, событие одно
	s.delivery.Push(senderID.String(), EventReceiveMessage, message)
	if receiverID != senderID {
		s.delivery.Push(receiverID.String(), EventReceiveMessage, message)
	}

	_, err = s.notifications.Create(ctx, CreateNotificationInput{
		OwnerID:   receiverID,
		Type:      models.NotificationNewMessage,
		Message:   fmt.Sprintf("New message from %s", sender.Name),
		RelatedID: senderID.String(),
	})
	if err != nil {
		return message, err
	}

	s.log.Debug("message delivered", "message_id", message.ID, "sender_id", senderID, "receiver_id", receiverID)
	return message, nil
}

// History переписка двух пользователей в хронологическом порядке
func (s *MessageService) History(ctx context.Context, userID, otherID uuid.UUID) ([]HistoryItem, error) {
	messages, err := s.messages.GetConversation(ctx, userID, otherID)
	if err != nil {
		return nil, newError(KindCollaborator, "message history", err)
	}

	items := make([]HistoryItem, len(messages))
	for i, msg := range messages {
		items[i] = HistoryItem{Message: msg, IsSentByMe: msg.SenderID == userID}
	}
	return items, nil
}

// Conversations список знакомых с последним сообщением для каждого
func (s *MessageService) Conversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	const op = "list conversations"

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, storeError(op, err)
	}

	acquaintances, err := s.friends.GetAcquaintances(ctx, userID)
	if err != nil {
		return nil, newError(KindCollaborator, op, err)
	}

	conversations := make([]Conversation, 0, len(acquaintances))
	for _, acquaintance := range acquaintances {
		latest, err := s.messages.GetLatestMessage(ctx, userID, acquaintance.ID)
		if errors.Is(err, ErrNotFound) {
			latest = nil
		} else if err != nil {
			return nil, newError(KindCollaborator, op, err)
		}
		conversations = append(conversations, Conversation{
			Acquaintance:  acquaintance,
			LatestMessage: latest,
		})
	}
	return conversations, nil
}

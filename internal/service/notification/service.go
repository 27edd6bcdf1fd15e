package notification

import (
	"context"
	"log/slog"
	"strings"

	"rewear/internal/domain"
	"rewear/internal/pkg/i18n"
	"rewear/internal/repository"
	"rewear/internal/service/email"
)

// Event describes a notification raised by another service.
type Event struct {
	UserID  int64
	Type    domain.NotificationType
	Key     string
	Vars    map[string]string
	Payload interface{}
}

type Service interface {
	Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error)
	Update(ctx context.Context, id int64, input domain.UpdateNotificationInput) (*domain.Notification, error)
	Delete(ctx context.Context, id int64) error
	MarkAsRead(ctx context.Context, id int64) (*domain.Notification, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	GetUnreadCount(ctx context.Context, userID int64) (int64, error)

	// Emit persists a notification using the transaction carried by ctx, if any.
	Emit(ctx context.Context, ev Event) (*domain.Notification, error)
	// Dispatch delivers already committed notifications to subscribers and mail.
	Dispatch(ctx context.Context, notifs ...domain.Notification)
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	publisher Publisher
	emailSvc  email.Service
	locale    string
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	publisher Publisher,
	emailSvc email.Service,
	locale string,
) Service {
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		publisher: publisher,
		emailSvc:  emailSvc,
		locale:    locale,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	input.Message = strings.TrimSpace(input.Message)
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	notif := &domain.Notification{
		UserID:    input.UserID,
		Type:      input.Type,
		Message:   input.Message,
		ActionURL: input.ActionURL,
		Payload:   input.Payload,
	}
	if _, err := notif.DecodePayload(); err != nil {
		return nil, domain.NewValidationError("payload", "does not match notification type")
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}

	s.Dispatch(ctx, *notif)
	return notif, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	return s.notifRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	return s.notifRepo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, input domain.UpdateNotificationInput) (*domain.Notification, error) {
	if input.ID == nil || *input.ID != id {
		return nil, domain.ErrIDMismatch
	}

	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Read == nil || *input.Read == notif.Read {
		return notif, nil
	}
	return s.notifRepo.SetRead(ctx, id, *input.Read)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.notifRepo.Delete(ctx, id)
}

func (s *service) MarkAsRead(ctx context.Context, id int64) (*domain.Notification, error) {
	return s.notifRepo.SetRead(ctx, id, true)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, err
	}
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID int64) (int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, err
	}
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) Emit(ctx context.Context, ev Event) (*domain.Notification, error) {
	key := ev.Key
	if key == "" {
		key = string(ev.Type)
	}
	message := i18n.Format(s.locale, "notifications."+key, ev.Vars)

	notif, err := domain.NewNotification(ev.UserID, ev.Type, message, ev.Payload)
	if err != nil {
		return nil, err
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

func (s *service) Dispatch(ctx context.Context, notifs ...domain.Notification) {
	for i := range notifs {
		notif := notifs[i]
		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, &notif); err != nil {
				slog.Warn("failed to publish notification",
					"notification_id", notif.ID, "user_id", notif.UserID, "error", err)
			}
		}
		s.sendEmail(notif)
	}
}

func (s *service) sendEmail(notif domain.Notification) {
	if s.emailSvc == nil || !s.emailSvc.Enabled() || !notif.Type.IsSwap() {
		return
	}

	go func() {
		ctx := context.Background()
		user, err := s.userRepo.GetByID(ctx, notif.UserID)
		if err != nil || user.Email == "" {
			return
		}

		actionPath := ""
		if notif.ActionURL != nil {
			actionPath = *notif.ActionURL
		}

		if notif.Type == domain.NotifSwapRequest {
			subject := i18n.Translate(s.locale, "email.swap_request_subject")
			err = s.emailSvc.SendSwapRequestEmail(ctx, user.Email, user.Username, subject, notif.Message, actionPath)
		} else {
			status := strings.TrimPrefix(string(notif.Type), "swap_")
			subject := i18n.Format(s.locale, "email.swap_status_subject", map[string]string{"status": status})
			err = s.emailSvc.SendSwapStatusEmail(ctx, user.Email, user.Username, subject, status, notif.Message, actionPath)
		}
		if err != nil {
			slog.Warn("failed to send notification email", "notification_id", notif.ID, "error", err)
		}
	}()
}

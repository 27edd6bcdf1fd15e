package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Notification struct {
	ID        int64            `json:"notificationId" db:"notification_id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Message   string           `json:"message" db:"message"`
	Read      bool             `json:"read" db:"is_read"`
	ActionURL *string          `json:"actionUrl,omitempty" db:"action_url"`
	Payload   json.RawMessage  `json:"payload" db:"payload"`
	Timestamp time.Time        `json:"timestamp" db:"created_at"`
}

type NotificationType string

const (
	NotifSwapRequest   NotificationType = "swap_request"
	NotifSwapAccepted  NotificationType = "swap_accepted"
	NotifSwapRejected  NotificationType = "swap_rejected"
	NotifSwapCompleted NotificationType = "swap_completed"
	NotifSwapCancelled NotificationType = "swap_cancelled"
	NotifNewMatch      NotificationType = "new_match"
	NotifBadgeEarned   NotificationType = "badge_earned"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifSwapRequest, NotifSwapAccepted, NotifSwapRejected, NotifSwapCompleted,
		NotifSwapCancelled, NotifNewMatch, NotifBadgeEarned:
		return true
	default:
		return false
	}
}

func (t NotificationType) IsSwap() bool {
	return strings.HasPrefix(string(t), "swap_")
}

// SwapPayload is carried by every swap_* notification.
type SwapPayload struct {
	SwapRequestID int64       `json:"swapRequestId"`
	ItemID        int64       `json:"itemId"`
	Reason        *SwapReason `json:"reason,omitempty"`
}

type MatchPayload struct {
	ItemID           int64 `json:"itemId"`
	RecommendationID int64 `json:"recommendationId"`
}

type BadgePayload struct {
	BadgeID int64 `json:"badgeId"`
}

// NewNotification builds a notification whose payload variant matches typ.
func NewNotification(userID int64, typ NotificationType, message string, payload interface{}) (*Notification, error) {
	switch payload.(type) {
	case SwapPayload:
		if !typ.IsSwap() {
			return nil, fmt.Errorf("swap payload on %s notification", typ)
		}
	case MatchPayload:
		if typ != NotifNewMatch {
			return nil, fmt.Errorf("match payload on %s notification", typ)
		}
	case BadgePayload:
		if typ != NotifBadgeEarned {
			return nil, fmt.Errorf("badge payload on %s notification", typ)
		}
	default:
		return nil, fmt.Errorf("unsupported notification payload %T", payload)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	n := &Notification{UserID: userID, Type: typ, Message: message, Payload: raw}
	n.ActionURL = actionURLFor(payload)
	return n, nil
}

// DecodePayload returns the typed payload variant for the notification's type.
func (n *Notification) DecodePayload() (interface{}, error) {
	if len(n.Payload) == 0 {
		return nil, nil
	}
	switch {
	case n.Type.IsSwap():
		var p SwapPayload
		err := json.Unmarshal(n.Payload, &p)
		return p, err
	case n.Type == NotifNewMatch:
		var p MatchPayload
		err := json.Unmarshal(n.Payload, &p)
		return p, err
	case n.Type == NotifBadgeEarned:
		var p BadgePayload
		err := json.Unmarshal(n.Payload, &p)
		return p, err
	default:
		return nil, fmt.Errorf("unknown notification type %q", n.Type)
	}
}

func actionURLFor(payload interface{}) *string {
	var url string
	switch p := payload.(type) {
	case SwapPayload:
		url = fmt.Sprintf("/swaps/%d", p.SwapRequestID)
	case MatchPayload:
		url = fmt.Sprintf("/items/%d", p.ItemID)
	case BadgePayload:
		url = "/profile/badges"
	default:
		return nil
	}
	return &url
}

type CreateNotificationInput struct {
	UserID    int64            `json:"userId"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	ActionURL *string          `json:"actionUrl,omitempty"`
	Payload   json.RawMessage  `json:"payload,omitempty"`
}

func (in CreateNotificationInput) Validate() error {
	v := &ValidationError{}
	if in.UserID <= 0 {
		v.Add("userId", "is required")
	}
	if !in.Type.IsValid() {
		v.Add("type", "is not a valid notification type")
	}
	if strings.TrimSpace(in.Message) == "" {
		v.Add("message", "is required")
	}
	if len(in.Payload) > 0 && !json.Valid(in.Payload) {
		v.Add("payload", "must be valid JSON")
	}
	return v.Err()
}

// UpdateNotificationInput only allows toggling the read flag.
type UpdateNotificationInput struct {
	ID   *int64 `json:"notificationId"`
	Read *bool  `json:"read,omitempty"`
}

type NotificationFilter struct {
	UserID     *int64
	UnreadOnly bool
	Type       *NotificationType
}

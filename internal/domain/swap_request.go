package domain

import (
	"strings"
	"time"
)

type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
)

func (s SwapStatus) IsValid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected, SwapCompleted:
		return true
	default:
		return false
	}
}

func (s SwapStatus) IsTerminal() bool {
	return s == SwapRejected || s == SwapCompleted
}

// SwapReason distinguishes the ways a request can end up rejected.
type SwapReason string

const (
	ReasonDeclined   SwapReason = "declined"
	ReasonSuperseded SwapReason = "superseded"
	ReasonCancelled  SwapReason = "cancelled"
)

type SwapAction string

const (
	ActionCreate   SwapAction = "create"
	ActionAccept   SwapAction = "accept"
	ActionReject   SwapAction = "reject"
	ActionComplete SwapAction = "complete"
	ActionCancel   SwapAction = "cancel"
)

type SwapRequest struct {
	ID          int64       `json:"swapRequestId" db:"swap_request_id"`
	FromUserID  int64       `json:"fromUserId" db:"from_user_id"`
	ToUserID    int64       `json:"toUserId" db:"to_user_id"`
	ItemID      int64       `json:"itemId" db:"item_id"`
	Message     string      `json:"message" db:"message"`
	Status      SwapStatus  `json:"status" db:"status"`
	Reason      *SwapReason `json:"reason,omitempty" db:"reason"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	RespondedAt *time.Time  `json:"respondedAt,omitempty" db:"responded_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// Respond moves a pending request to status at the given time.
func (r *SwapRequest) Respond(status SwapStatus, reason *SwapReason, at time.Time) {
	r.Status = status
	r.Reason = reason
	if r.RespondedAt == nil {
		r.RespondedAt = &at
	}
}

func (r *SwapRequest) IsParty(userID int64) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

type CreateSwapRequestInput struct {
	FromUserID int64  `json:"fromUserId"`
	ItemID     int64  `json:"itemId"`
	Message    string `json:"message"`
}

func (in *CreateSwapRequestInput) Normalize() {
	in.Message = strings.TrimSpace(in.Message)
}

func (in CreateSwapRequestInput) Validate() error {
	v := &ValidationError{}
	if in.FromUserID <= 0 {
		v.Add("fromUserId", "is required")
	}
	if in.ItemID <= 0 {
		v.Add("itemId", "is required")
	}
	if in.Message == "" {
		v.Add("message", "is required")
	}
	return v.Err()
}

// UpdateSwapRequestInput allows editing the message of a pending request.
// Status and party fields are accepted only so that changes can be refused.
type UpdateSwapRequestInput struct {
	ID         *int64      `json:"swapRequestId"`
	Message    *string     `json:"message,omitempty"`
	Status     *SwapStatus `json:"status,omitempty"`
	FromUserID *int64      `json:"fromUserId,omitempty"`
	ToUserID   *int64      `json:"toUserId,omitempty"`
	ItemID     *int64      `json:"itemId,omitempty"`
}

func (in UpdateSwapRequestInput) Apply(r *SwapRequest) error {
	if in.Status != nil && *in.Status != r.Status {
		return NewStateError("swap request", string(r.Status), "set status "+string(*in.Status)+" on")
	}
	v := &ValidationError{}
	if in.FromUserID != nil && *in.FromUserID != r.FromUserID {
		v.Add("fromUserId", "cannot be changed")
	}
	if in.ToUserID != nil && *in.ToUserID != r.ToUserID {
		v.Add("toUserId", "cannot be changed")
	}
	if in.ItemID != nil && *in.ItemID != r.ItemID {
		v.Add("itemId", "cannot be changed")
	}
	if err := v.Err(); err != nil {
		return err
	}
	if in.Message != nil {
		if r.Status != SwapPending {
			return NewStateError("swap request", string(r.Status), "edit message of")
		}
		msg := strings.TrimSpace(*in.Message)
		if msg == "" {
			return NewValidationError("message", "is required")
		}
		r.Message = msg
	}
	return nil
}

type SwapDirection string

const (
	DirectionSent     SwapDirection = "sent"
	DirectionReceived SwapDirection = "received"
)

func (d SwapDirection) IsValid() bool {
	return d == DirectionSent || d == DirectionReceived
}

type SwapRequestFilter struct {
	FromUserID *int64
	ToUserID   *int64
	ItemID     *int64
	Status     *SwapStatus
}

// SwapEvent is one entry of a swap request's transition history.
type SwapEvent struct {
	ID            int64       `json:"eventId" db:"event_id"`
	SwapRequestID int64       `json:"swapRequestId" db:"swap_request_id"`
	ActorID       *int64      `json:"actorId,omitempty" db:"actor_id"`
	Action        SwapAction  `json:"action" db:"action"`
	FromStatus    *SwapStatus `json:"fromStatus,omitempty" db:"from_status"`
	ToStatus      SwapStatus  `json:"toStatus" db:"to_status"`
	Reason        *SwapReason `json:"reason,omitempty" db:"reason"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
}

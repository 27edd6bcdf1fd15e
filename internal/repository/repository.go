package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"rewear/internal/domain"
)

type Repositories struct {
	Tx             TxManager
	User           UserRepository
	Item           ItemRepository
	SwapRequest    SwapRequestRepository
	SwapEvent      SwapEventRepository
	Notification   NotificationRepository
	Badge          BadgeRepository
	Recommendation RecommendationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Tx:             NewTxManager(db),
		User:           NewUserRepository(db),
		Item:           NewItemRepository(db),
		SwapRequest:    NewSwapRequestRepository(db),
		SwapEvent:      NewSwapEventRepository(db),
		Notification:   NewNotificationRepository(db),
		Badge:          NewBadgeRepository(db),
		Recommendation: NewRecommendationRepository(db),
	}
}

func expectAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError(entity, id)
	}
	return nil
}

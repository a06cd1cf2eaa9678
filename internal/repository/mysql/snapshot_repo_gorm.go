package mysql

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"order-tracking-service/internal/domain"
	"order-tracking-service/internal/logger"
	"order-tracking-service/internal/repository"
)

// OrderSnapshot is one upstream order frozen as JSON. The blob keeps the
// schema identical to the upstream payload so a restore round-trips cleanly.
type OrderSnapshot struct {
	OrderID   string    `gorm:"primaryKey;size:64"`
	BuyerID   string    `gorm:"index;size:128"`
	Data      []byte    `gorm:"type:mediumblob"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type snapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) (repository.SnapshotRepository, error) {
	if err := db.AutoMigrate(&OrderSnapshot{}); err != nil {
		return nil, err
	}
	return &snapshotRepo{db: db}, nil
}

func (r *snapshotRepo) SaveOrders(buyerID string, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	snapshots := make([]OrderSnapshot, 0, len(orders))
	for i := range orders {
		data, err := json.Marshal(&orders[i])
		if err != nil {
			logger.Log.Warn("skipping unserializable order snapshot",
				zap.String("orderId", orders[i].OrderID), zap.Error(err))
			continue
		}
		snapshots = append(snapshots, OrderSnapshot{
			OrderID: orders[i].OrderID,
			BuyerID: buyerID,
			Data:    data,
		})
	}
	if len(snapshots) == 0 {
		return nil
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"buyer_id", "data", "updated_at"}),
	}).Create(&snapshots).Error
}

func (r *snapshotRepo) FindByBuyer(buyerID string) ([]domain.Order, error) {
	var snapshots []OrderSnapshot
	if err := r.db.Where("buyer_id = ?", buyerID).Order("order_id").Find(&snapshots).Error; err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(snapshots))
	for i := range snapshots {
		var order domain.Order
		if err := json.Unmarshal(snapshots[i].Data, &order); err != nil {
			logger.Log.Warn("skipping corrupt order snapshot",
				zap.String("orderId", snapshots[i].OrderID), zap.Error(err))
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

package lookup

import (
	"context"
	"fmt"

	"github.com/labchat/labchat-server/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) findEventTypes(ctx context.Context, labID uint) ([]model.EventType, error) {
	var types []model.EventType
	err := r.db.
		WithContext(ctx).
		Where("lab_id = ?", labID).
		Order("name").
		Find(&types).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find event types of lab %d: %v", labID, err)
	}
	return types, nil
}

func (r repository) findEventStatuses(ctx context.Context, labID uint) ([]model.EventStatus, error) {
	var statuses []model.EventStatus
	err := r.db.
		WithContext(ctx).
		Where("lab_id = ?", labID).
		Order("name").
		Find(&statuses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find event statuses of lab %d: %v", labID, err)
	}
	return statuses, nil
}

func (r repository) findInstruments(ctx context.Context, labID uint) ([]model.Instrument, error) {
	var instruments []model.Instrument
	err := r.db.
		WithContext(ctx).
		Where("lab_id = ?", labID).
		Order("id").
		Find(&instruments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find instruments of lab %d: %v", labID, err)
	}
	return instruments, nil
}

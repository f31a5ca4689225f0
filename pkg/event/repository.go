package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labchat/labchat-server/internal/errdef"
	"github.com/labchat/labchat-server/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Type").
		Preload("Status").
		Preload("Instrument").
		Preload("Assigner").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Assignments.Member")
}

// findAllInRange returns the events of a lab overlapping [start, end],
// ordered by start date.
func (r repository) findAllInRange(ctx context.Context, labID uint, start, end time.Time) ([]model.Event, error) {
	var events []model.Event

	err := preloaded(r.db.WithContext(ctx)).
		Where("lab_id = ?", labID).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events of lab %d: %v", labID, err)
	}

	return events, nil
}

func (r repository) findById(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	err := preloaded(r.db.WithContext(ctx)).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find event with id %d", id)
	}
	return event, err
}

func (r repository) create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments := event.Assignments
		event.Assignments = nil

		if err := tx.Omit(clause.Associations).Create(event).Error; err != nil {
			return fmt.Errorf("failed to create event: %v", err)
		}

		if err := createAssignments(tx, event.ID, assignments); err != nil {
			return err
		}
		event.Assignments = assignments
		return nil
	})
}

// update replaces the whole record, assignments included.
func (r repository) update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments := event.Assignments
		event.Assignments = nil

		db := tx.Model(&model.Event{}).
			Where("id = ?", event.ID).
			Select("Title", "Description", "StartDate", "EndDate", "TypeID", "StatusID", "InstrumentID", "AssignerID").
			Updates(event)
		if db.Error != nil {
			return fmt.Errorf("failed to update event with id %d: %v", event.ID, db.Error)
		}
		if db.RowsAffected < 1 {
			return errdef.NewNotFound("failed to find event with id %d", event.ID)
		}

		if err := tx.Where("event_id = ?", event.ID).Delete(&model.EventAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to clear assignments of event %d: %v", event.ID, err)
		}

		if err := createAssignments(tx, event.ID, assignments); err != nil {
			return err
		}
		event.Assignments = assignments
		return nil
	})
}

func createAssignments(tx *gorm.DB, eventID uint, assignments []model.EventAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	for i := range assignments {
		assignments[i].ID = 0
		assignments[i].EventID = eventID
		assignments[i].Position = i
	}
	if err := tx.Omit(clause.Associations).Create(&assignments).Error; err != nil {
		return fmt.Errorf("failed to create assignments of event %d: %v", eventID, err)
	}
	return nil
}

func (r repository) updateStatus(ctx context.Context, id uint, statusID uint) error {
	db := r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Update("status_id", statusID)
	if db.Error != nil {
		return fmt.Errorf("failed to update status of event %d: %v", id, db.Error)
	}
	if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find event with id %d", id)
	}
	return nil
}

func (r repository) delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.EventAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to delete assignments of event %d: %v", id, err)
		}

		db := tx.Unscoped().Delete(&model.Event{}, id)
		if db.Error != nil {
			return fmt.Errorf("failed to delete event with id %d: %v", id, db.Error)
		}
		if db.RowsAffected < 1 {
			return errdef.NewNotFound("failed to find event with id %d", id)
		}
		return nil
	})
}

// deleteBySeries removes every instance generated from one recurring template
// and reports how many there were.
func (r repository) deleteBySeries(ctx context.Context, seriesID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		err := tx.Model(&model.Event{}).Where("series_id = ?", seriesID).Pluck("id", &ids).Error
		if err != nil {
			return fmt.Errorf("failed to find events of series %s: %v", seriesID, err)
		}
		if len(ids) == 0 {
			return errdef.NewNotFound("failed to find events of series %s", seriesID)
		}

		if err := tx.Where("event_id IN ?", ids).Delete(&model.EventAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to delete assignments of series %s: %v", seriesID, err)
		}

		db := tx.Unscoped().Delete(&model.Event{}, ids)
		if db.Error != nil {
			return fmt.Errorf("failed to delete events of series %s: %v", seriesID, db.Error)
		}
		deleted = db.RowsAffected
		return nil
	})
	return deleted, err
}

package lab

import (
	"context"
	"errors"
	"fmt"

	"github.com/labchat/labchat-server/internal/errdef"
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

func (r repository) findAll(ctx context.Context) ([]*model.Lab, error) {
	var labs []*model.Lab

	err := r.db.
		WithContext(ctx).
		Order("name").
		Find(&labs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all labs: %v", err)
	}

	return labs, nil
}

func (r repository) findById(ctx context.Context, id uint) (*model.Lab, error) {
	var lab *model.Lab
	err := r.db.
		WithContext(ctx).
		First(&lab, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find lab with id %d", id)
	}
	return lab, err
}

func (r repository) findMembers(ctx context.Context, id uint) ([]model.Member, error) {
	var lab *model.Lab
	err := r.db.
		WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_name")
		}).
		First(&lab, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find lab with id %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find members of lab %d: %v", id, err)
	}
	return lab.Members, nil
}

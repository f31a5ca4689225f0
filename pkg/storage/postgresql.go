package storage

import (
	"fmt"

	"github.com/labchat/labchat-server/pkg/config"
	"github.com/labchat/labchat-server/pkg/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDatabase(c config.Postgresql) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.Host, c.Username, c.Password, c.DatabaseName, c.Port)

	databaseConfig := gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), &databaseConfig)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.Lab{},
		&model.Member{},

		&model.EventType{},
		&model.EventStatus{},
		&model.Instrument{},

		&model.Event{},
		&model.EventAssignment{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

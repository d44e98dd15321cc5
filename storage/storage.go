package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/evkuzin/growstation/config"
	"github.com/evkuzin/growstation/humidity"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Reading is the archived row of one humidity.Reading.
type Reading struct {
	ID          uint      `gorm:"primaryKey"`
	Temperature float64   `gorm:"not null"`
	Humidity    float64   `gorm:"not null"`
	Time        time.Time `gorm:"index;not null"`
}

func (Reading) TableName() string { return "readings" }

func fromReading(r *humidity.Reading) *Reading {
	return &Reading{
		Temperature: r.Result.Temperature,
		Humidity:    r.Result.Humidity,
		Time:        r.Time.UTC(),
	}
}

func (r Reading) reading() humidity.Reading {
	return humidity.Reading{
		Result: humidity.Measurement{Temperature: r.Temperature, Humidity: r.Humidity},
		Time:   r.Time.UTC(),
	}
}

type Storage struct {
	db  *gorm.DB
	log logrus.FieldLogger
	now func() time.Time
}

func (s *Storage) Init(config *config.Config) error {
	if config.Database == nil {
		return errors.New("no database configured")
	}
	newLogger := logger.New(
		s.log,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.Database.Host,
		config.Database.User,
		config.Database.Password,
		config.Database.Database,
		config.Database.Port)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	s.db = db
	if err = s.db.AutoMigrate(&Reading{}); err != nil {
		return fmt.Errorf("cannot migrate database: %w", err)
	}
	return nil
}

func (s *Storage) Put(reading *humidity.Reading) error {
	return s.db.Create(fromReading(reading)).Error
}

// GetEvents returns the readings taken within since, oldest first.
func (s *Storage) GetEvents(since time.Duration) ([]humidity.Reading, error) {
	var rows []Reading
	err := s.db.Where("time > ?", s.now().Add(-since)).Order("time").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	events := make([]humidity.Reading, len(rows))
	for i, row := range rows {
		events[i] = row.reading()
	}
	return events, nil
}

// GetAvg averages the readings taken within since. An empty window
// averages to zero.
func (s *Storage) GetAvg(since time.Duration) (humidity.Measurement, error) {
	var avg humidity.Measurement
	err := s.db.Model(&Reading{}).
		Select("COALESCE(AVG(temperature), 0) AS temperature, COALESCE(AVG(humidity), 0) AS humidity").
		Where("time > ?", s.now().Add(-since)).
		Scan(&avg).Error
	return avg, err
}

func NewStorage(log logrus.FieldLogger) Adapter {
	return &Storage{log: log, now: time.Now}
}

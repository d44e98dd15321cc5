package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/evkuzin/growstation/humidity"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type Sensor struct {
	Type     string        `yaml:"type"`
	Pin      string        `yaml:"pin"`
	Interval time.Duration `yaml:"interval"`
	History  int           `yaml:"history"`
}

type HTTP struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type Relay struct {
	Name string `yaml:"name"`
	Pin  string `yaml:"pin"`
}

type telegram struct {
	Key    string `yaml:"key"`
	Debug  bool   `yaml:"debug"`
	Enable bool   `yaml:"enable"`
}

type Database struct {
	Enable   bool   `yaml:"enable"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type MQTT struct {
	Enable   bool   `yaml:"enable"`
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

type Config struct {
	Sensor   Sensor    `yaml:"sensor"`
	HTTP     HTTP      `yaml:"http"`
	Relays   []Relay   `yaml:"relays"`
	Database *Database `yaml:"database"`
	Telegram telegram  `yaml:"telegram"`
	MQTT     MQTT      `yaml:"mqtt"`
	LogLevel string    `yaml:"log_level"`
}

// Default returns the configuration of a stock grow box: a DHT22 on GPIO23
// and three relays.
func Default() *Config {
	return &Config{
		Sensor: Sensor{
			Type:     "dht22",
			Pin:      "GPIO23",
			Interval: 2 * time.Second,
			History:  10,
		},
		HTTP: HTTP{
			Addr:        ":3000",
			CORSOrigins: []string{"*"},
		},
		Relays: []Relay{
			{Name: "1", Pin: "GPIO17"},
			{Name: "2", Pin: "GPIO27"},
			{Name: "3", Pin: "GPIO22"},
		},
		Database: &Database{Port: "5432"},
		MQTT: MQTT{
			Topic:    "growstation/humidity",
			ClientID: "growstation-" + uuid.NewString(),
		},
		LogLevel: "info",
	}
}

// NewConfig reads f over the defaults. A missing file leaves the defaults
// untouched.
func NewConfig(f string) (*Config, error) {
	conf := Default()
	rawConf, err := os.ReadFile(f)
	if errors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open a Config: %w", err)
	}
	if err = yaml.Unmarshal(rawConf, conf); err != nil {
		return nil, fmt.Errorf("cannot unmarshall a Config: %w", err)
	}
	if err = conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks the settings the station cannot start without.
func (c *Config) Validate() error {
	if _, err := humidity.ParseVariant(c.Sensor.Type); err != nil {
		return err
	}
	if c.Sensor.Pin == "" {
		return errors.New("sensor pin is required")
	}
	if c.Sensor.Interval <= 0 {
		return fmt.Errorf("sensor interval must be positive, got %s", c.Sensor.Interval)
	}
	if c.Sensor.History <= 0 {
		return fmt.Errorf("history size must be positive, got %d", c.Sensor.History)
	}
	seen := make(map[string]bool, len(c.Relays))
	for _, r := range c.Relays {
		if r.Name == "" || r.Pin == "" {
			return fmt.Errorf("relay %+v needs a name and a pin", r)
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate relay name %q", r.Name)
		}
		if r.Pin == c.Sensor.Pin {
			return fmt.Errorf("relay %q shares the sensor pin %s", r.Name, r.Pin)
		}
		seen[r.Name] = true
	}
	if c.Telegram.Enable && c.Telegram.Key == "" {
		return errors.New("telegram is enabled without a key")
	}
	if c.MQTT.Enable && c.MQTT.Broker == "" {
		return errors.New("mqtt is enabled without a broker")
	}
	if c.Database != nil && c.Database.Enable && c.Database.Host == "" {
		return errors.New("database is enabled without a host")
	}
	return nil
}

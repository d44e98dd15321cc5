package impl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/evkuzin/growstation/config"
	"github.com/evkuzin/growstation/hardware"
	"github.com/evkuzin/growstation/history"
	"github.com/evkuzin/growstation/humidity"
	"github.com/evkuzin/growstation/storage"
	"github.com/evkuzin/growstation/weather_station"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Switch is a relay the HTTP layer can flip.
type Switch interface {
	Name() string
	IsOn() bool
	On() error
	Off() error
	Toggle() (bool, error)
}

type halter interface {
	Halt() error
}

// weatherStationImpl owns the sensor tracker and everything that reads
// its history.
type weatherStationImpl struct {
	config    *config.Config
	logger    *logrus.Logger
	history   *history.Shared[humidity.Reading]
	tracker   *humidity.Tracker
	line      halter
	relays    map[string]Switch
	Storage   storage.Adapter
	publisher *mqttPublisher
	sinks     *sinks
	tg        *tgbotapi.BotAPI
	accessLog io.WriteCloser
	router    http.Handler
}

var _ humidity.Updater = (*weatherStationImpl)(nil)

func (ws *weatherStationImpl) Init(config *config.Config, logger *logrus.Logger) error {
	ws.config = config
	ws.logger = logger

	if err := hardware.Init(logger); err != nil {
		return err
	}
	variant, err := humidity.ParseVariant(config.Sensor.Type)
	if err != nil {
		return err
	}
	line, err := hardware.OpenLine(config.Sensor.Pin)
	if err != nil {
		return fmt.Errorf("cannot open sensor line: %w", err)
	}
	ws.line = line
	ws.tracker, err = humidity.NewTracker(variant, line, hardware.BusyDelay{})
	if err != nil {
		return err
	}
	ws.logger.Infof("%s sensor on %s", variant, line)
	ws.history = history.NewShared[humidity.Reading](config.Sensor.History)

	ws.relays = make(map[string]Switch, len(config.Relays))
	for _, r := range config.Relays {
		relay, err := hardware.OpenRelay(r.Name, r.Pin)
		if err != nil {
			return fmt.Errorf("cannot open relay %s: %w", r.Name, err)
		}
		ws.relays[r.Name] = relay
	}

	if config.Database != nil && config.Database.Enable {
		ws.Storage = storage.NewStorage(logger)
		if err = ws.Storage.Init(config); err != nil {
			return err
		}
	}

	if config.MQTT.Enable {
		client, err := connectMQTT(config.MQTT)
		if err != nil {
			return err
		}
		ws.publisher = newMQTTPublisher(client, config.MQTT.Topic)
		ws.logger.Infof("publishing readings to %s on %s", config.MQTT.Topic, config.MQTT.Broker)
	}

	ws.startSinks()

	if config.Telegram.Enable {
		bot, err := tgbotapi.NewBotAPI(config.Telegram.Key)
		if err != nil {
			return err
		}
		bot.Debug = config.Telegram.Debug
		ws.logger.Infof("Telegram authorized on account %s", bot.Self.UserName)
		ws.tg = bot
		go ws.telegramStart()
	}

	ws.router = ws.newRouter()
	return nil
}

// Start is the main daemon loop
func (ws *weatherStationImpl) Start(ctx context.Context) {
	ws.logger.Info("Grow station starting...")
	task := humidity.StartTracking(ctx, ws, ws.tracker, ws.config.Sensor.Interval)
	<-task.Done()
	ws.logger.Info("Stopping grow station")
	ws.halt()
}

func (ws *weatherStationImpl) halt() {
	if ws.tg != nil {
		ws.tg.StopReceivingUpdates()
	}
	if ws.sinks != nil {
		if !ws.sinks.Close(sinkDrainTimeout) {
			ws.logger.Warnf("archive and mqtt did not drain within %s", sinkDrainTimeout)
		}
		ws.sinks = nil
	}
	if ws.publisher != nil {
		ws.publisher.Close()
	}
	if ws.line != nil {
		if err := ws.line.Halt(); err != nil {
			ws.logger.Errorf("error: %s", err.Error())
		}
	}
}

// Close releases what the HTTP handler still writes to. Call it once the
// server has shut down.
func (ws *weatherStationImpl) Close() error {
	if ws.accessLog == nil {
		return nil
	}
	return ws.accessLog.Close()
}

// Update stores a fresh reading and queues it for the archive and MQTT.
// It never waits on either.
func (ws *weatherStationImpl) Update(reading humidity.Reading) {
	ws.history.Add(reading)
	ws.logger.Debugf("%s", reading)

	if ws.sinks != nil && !ws.sinks.Push(reading) {
		ws.logger.Warnf("archive and mqtt are behind, dropping reading taken at %s", reading.Time.Format(time.RFC3339))
	}
}

// Error reports a failed tick. The history keeps its last reading.
func (ws *weatherStationImpl) Error(err error) {
	ws.logger.Warnf("cannot read sensor: %s", err.Error())
}

func (ws *weatherStationImpl) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws.router.ServeHTTP(w, r)
}

// NewWeatherStation return a new instance of a WeatherStation daemon
func NewWeatherStation() weather_station.WeatherStation {
	return &weatherStationImpl{}
}

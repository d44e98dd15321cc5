package impl

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/evkuzin/growstation/config"
	"github.com/evkuzin/growstation/humidity"
)

const (
	mqttConnectTimeout = 10 * time.Second
	mqttPublishTimeout = 2 * time.Second
)

type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// mqttPublisher republishes each reading as a retained message so new
// subscribers get the latest value straight away.
type mqttPublisher struct {
	client  mqttClient
	topic   string
	timeout time.Duration
}

func connectMQTT(cfg config.MQTT) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.Broker, err)
	}
	return client, nil
}

func newMQTTPublisher(client mqttClient, topic string) *mqttPublisher {
	return &mqttPublisher{client: client, topic: topic, timeout: mqttPublishTimeout}
}

func (p *mqttPublisher) Publish(reading humidity.Reading) error {
	payload, err := json.Marshal(reading)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, 0, true, payload)
	if !token.WaitTimeout(p.timeout) {
		return errors.New("mqtt publish timed out")
	}
	return token.Error()
}

func (p *mqttPublisher) Close() {
	p.client.Disconnect(250)
}

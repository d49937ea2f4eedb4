package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/config"
	"github.com/Neb-Ur/service-app-backend/internal/domain"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Client interface {
	IsConnected() bool
	Disconnect(uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Publisher delivers push messages as MQTT publishes on per-recipient topics:
//
//	<prefix>/technicians/<id>/emergencies  offers
//	<prefix>/clients/<id>/emergencies      acceptance notices
type Publisher struct {
	client Client
	prefix string
	qos    byte
	logger *slog.Logger
}

func NewPublisher(cfg config.MQTTConfig, logger *slog.Logger) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("mqtt connection lost", slog.Any("error", err))
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, token.Error())
	}
	logger.Info("Connected to MQTT broker", slog.String("broker", cfg.Broker))

	return newPublisher(client, cfg.TopicPrefix, byte(cfg.QoS), logger), nil
}

func newPublisher(client Client, prefix string, qos byte, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, prefix: prefix, qos: qos, logger: logger}
}

func (p *Publisher) Topic(msg domain.PushMessage) string {
	audience := "technicians"
	if msg.Kind == domain.PushClientAccepted {
		audience = "clients"
	}
	return fmt.Sprintf("%s/%s/%s/emergencies", p.prefix, audience, msg.RecipientID)
}

func (p *Publisher) Deliver(ctx context.Context, msg domain.PushMessage) error {
	if !p.client.IsConnected() {
		return errors.New("mqtt client not connected")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.Topic(msg), p.qos, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

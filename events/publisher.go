// SPDX-License-Identifier: GPL-3.0-only

// Package events publishes license lifecycle notifications to an AMQP topic
// exchange. Publishing is fire-and-forget: failures are logged and never
// surfaced to the HTTP caller, and nothing is persisted server-side.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"license-server/commons"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

func NewPublisher(config PublisherConfig) (*Publisher, error) {
	if config.AMQPURL == "" {
		config.AMQPURL = commons.GetEnv("AMQP_URL")
	}
	if config.AMQPURL == "" {
		return nil, fmt.Errorf("AMQP_URL is not configured")
	}
	if config.Exchange == "" {
		config.Exchange = commons.GetEnv("EVENTS_EXCHANGE", "license.events")
	}

	conn, err := amqp.Dial(config.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("channel: %w", err)
	}
	if err := ch.ExchangeDeclare(config.Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("exchange declare: %w", err)
	}

	commons.Logger.Infof("License event publisher initialized. exchange: %s", config.Exchange)
	return &Publisher{config: config, conn: conn, channel: ch}, nil
}

// Publish emits a lifecycle event for a license key. Safe to call on a nil
// publisher, which is how the server runs when AMQP_URL is unset.
func (p *Publisher) Publish(eventType EventType, key string, deviceID *string) {
	if p == nil {
		return
	}

	event := Event{
		EID:       uuid.New(),
		Type:      eventType,
		Key:       key,
		DeviceID:  deviceID,
		CreatedAt: time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		commons.Logger.Errorf("Failed to encode %s event: %v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx, p.config.Exchange, string(eventType), false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EID.String(),
			Timestamp:    event.CreatedAt,
			Body:         body,
		})
	if err != nil {
		commons.Logger.Errorf("Failed to publish %s event for key %s: %v", eventType, key, err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

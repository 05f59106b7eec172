// SPDX-License-Identifier: GPL-3.0-only

package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type EventType string

// Event types double as routing keys on the topic exchange, so consumers
// can bind with patterns like "license.*" or "license.activated".
const (
	LicenseCreated   EventType = "license.created"
	LicenseActivated EventType = "license.activated"
	LicenseReset     EventType = "license.reset"
	LicenseToggled   EventType = "license.toggled"
	LicenseDeleted   EventType = "license.deleted"
)

type Event struct {
	EID       uuid.UUID `json:"eid"`
	Type      EventType `json:"type"`
	Key       string    `json:"key"`
	DeviceID  *string   `json:"device_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PublisherConfig struct {
	AMQPURL  string
	Exchange string
}

type Publisher struct {
	config  PublisherConfig
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"topup-store/internal/pkg/helper"

	gonanoid "github.com/matoous/go-nanoid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Message struct {
	ID          string      `json:"id"`
	Body        []byte      `json:"content"`
	Payload     interface{} `json:"payload"`
	Headers     amqp.Table  `json:"headers,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	ContentType string      `json:"content_type"`
}

// Event is the envelope every published domain event travels in.
type Event struct {
	Type string          `json:"type"`
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

func NewMessage(payload interface{}, headers *amqp.Table) (*Message, error) {
	gid, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	id := fmt.Sprintf("msg_%s_%d", gid, time.Now().Unix())

	var body []byte
	var contentType string
	switch v := payload.(type) {
	case string:
		body = []byte(v)
		contentType = "text/plain"
	case []byte:
		body = v
		contentType = "application/octet-stream"
	default:
		body, err = json.Marshal(v)
		if err != nil {
			return nil, err
		}
		contentType = "application/json"
	}

	if headers == nil {
		headers = &amqp.Table{}
	}

	return &Message{
		ID:          id,
		Body:        body,
		Payload:     payload,
		Headers:     *headers,
		Timestamp:   time.Now(),
		ContentType: contentType,
	}, nil
}

// NewEventMessage wraps data in an Event whose id matches the message id.
func NewEventMessage(eventType string, data interface{}) (*Message, error) {
	raw, err := helper.JSONToByte(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	msg, err := NewMessage([]byte{}, &amqp.Table{"x-event-type": eventType})
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(Event{Type: eventType, ID: msg.ID, Data: raw})
	if err != nil {
		return nil, err
	}

	msg.Body = body
	msg.Payload = data
	msg.ContentType = "application/json"
	return msg, nil
}

// DecodeEvent reads an Event envelope from a delivery body.
func DecodeEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("invalid event body: %w", err)
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("event type is missing")
	}
	return &ev, nil
}

func (m *Message) GeneratePayload() *amqp.Publishing {
	m.Headers["id"] = m.ID

	return &amqp.Publishing{
		ContentType:  m.ContentType,
		Body:         m.Body,
		MessageId:    m.ID,
		Timestamp:    m.Timestamp,
		DeliveryMode: amqp.Persistent,
		Headers:      m.Headers,
	}
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
)

// LeadCreatedPayload carries enough of the lead for the notifier to
// build the admin email without a database round trip.
type LeadCreatedPayload struct {
	LeadID         string `json:"lead_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone"`
	ServiceType    string `json:"service_type"`
	TravelDate     string `json:"travel_date,omitempty"`
	PickupLocation string `json:"pickup_location,omitempty"`
	DropLocation   string `json:"drop_location,omitempty"`
	Passengers     int    `json:"passengers,omitempty"`
	Message        string `json:"message,omitempty"`
	Source         string `json:"source"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) PublishLeadCreated(ctx context.Context, lead entity.Lead) error {
	payload := LeadCreatedPayload{
		LeadID:         lead.ID,
		FullName:       lead.FullName,
		Email:          lead.Email,
		Phone:          lead.Phone,
		ServiceType:    lead.ServiceType,
		TravelDate:     lead.TravelDate,
		PickupLocation: lead.PickupLocation,
		DropLocation:   lead.DropLocation,
		Passengers:     lead.Passengers,
		Message:        lead.Message,
		Source:         lead.Source,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal lead payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead-created: %w", err)
	}

	return nil
}

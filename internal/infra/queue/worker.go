package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/udhay1409/vinushree-travels-api/internal/entity"
	"github.com/udhay1409/vinushree-travels-api/internal/infra/http/middleware"
	"github.com/udhay1409/vinushree-travels-api/internal/usecase"
)

// Worker consumes lead-created events and emails the operator. Delivery
// is best-effort end to end: failed sends go to the DLQ, never back to
// the request path.
type Worker struct {
	Channel  *amqp.Channel
	Notifier *usecase.NotifyAdminUseCase
}

func NewWorker(ch *amqp.Channel, notifier *usecase.NotifyAdminUseCase) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCreatedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] malformed message: %s", err)
				// Poison message, reject without requeue.
				d.Nack(false, false)
				continue
			}

			lead := entity.Lead{
				ID:             payload.LeadID,
				FullName:       payload.FullName,
				Email:          payload.Email,
				Phone:          payload.Phone,
				ServiceType:    payload.ServiceType,
				TravelDate:     payload.TravelDate,
				PickupLocation: payload.PickupLocation,
				DropLocation:   payload.DropLocation,
				Passengers:     payload.Passengers,
				Message:        payload.Message,
				Source:         payload.Source,
			}

			if err := w.Notifier.Execute(context.Background(), lead); err != nil {
				log.Printf("❌ [WORKER] notification failed for lead %s: %s", payload.LeadID, err)
				middleware.RecordNotificationError()
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] notification worker waiting on queue '%s'", queueName)
	<-forever
}

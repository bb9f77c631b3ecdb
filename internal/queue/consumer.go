package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const activityLogFile = "activity.log"

// StartActivityConsumer connects to RabbitMQ and consumes the
// rental.returned and bill.issued queues, appending one line per
// event to logs/activity.log.  It runs a reconnect loop with a
// capped backoff and keeps the server operating through broker
// outages; malformed messages are rejected without requeue.
func StartActivityConsumer(url string) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("activity-consumer: dial failed: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeActivity(conn); err != nil {
			log.Printf("activity-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeActivity(conn *amqp.Connection) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("activity-consumer: set QoS failed: %v", err)
	}

	for _, q := range []string{RentalReturnedQueue, BillIssuedQueue} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", q, err)
		}
	}

	returned, err := ch.Consume(RentalReturnedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", RentalReturnedQueue, err)
	}
	issued, err := ch.Consume(BillIssuedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", BillIssuedQueue, err)
	}

	for {
		select {
		case d, ok := <-returned:
			if !ok {
				return errors.New("rental.returned deliveries closed")
			}
			handle(d, formatReturned)
		case d, ok := <-issued:
			if !ok {
				return errors.New("bill.issued deliveries closed")
			}
			handle(d, formatIssued)
		}
	}
}

func handle(d amqp.Delivery, format func([]byte) (string, error)) {
	line, err := format(d.Body)
	if err != nil {
		log.Printf("activity-consumer: handle message failed: %v", err)
		_ = d.Nack(false, false)
		return
	}
	if err := appendActivity(line); err != nil {
		log.Printf("activity-consumer: write failed: %v", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func formatReturned(body []byte) (string, error) {
	var ev RentalReturnedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}
	return fmt.Sprintf("[%s] Costume returned | rental_id=%d | customer_id=%d | costume=%q | late_days=%d\n",
		ev.ReturnedAt, ev.RentalID, ev.CustomerID, ev.CostumeName, ev.LateDays), nil
}

func formatIssued(body []byte) (string, error) {
	var ev BillIssuedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}
	return fmt.Sprintf("[%s] Bill issued | bill_id=%d | rental_id=%d | total=%d cents | late_fee=%d cents | due=%s\n",
		ev.BillDate, ev.BillID, ev.RentalID, ev.TotalAmountCents, ev.LateFeeCents, ev.DueDate), nil
}

func appendActivity(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", activityLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

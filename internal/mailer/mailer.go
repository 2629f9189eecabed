// mailer dispatches confirmation-email jobs to a kafka topic. Actual
// delivery happens in a separate worker consuming the topic; the API
// process only enqueues and never blocks a request on it.
package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

type ConfirmationJob struct {
	Type      string `json:"type"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	VerifyURL string `json:"verify_url"`
}

type Mailer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

func New(brokers []string, topic string, log *slog.Logger) *Mailer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Mailer{writer: w, log: log}
}

// SendConfirmation enqueues the confirmation email for email and
// detaches from the caller: it returns immediately and the publish runs
// on its own goroutine with its own timeout, so it can finish after the
// HTTP response is already sent. Failures are logged, never propagated.
func (m *Mailer) SendConfirmation(email, username, verifyURL string) {
	job := ConfirmationJob{
		Type:      "email_confirmation",
		Email:     email,
		Username:  username,
		VerifyURL: verifyURL,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := m.publish(ctx, email, job); err != nil {
			m.log.Error("confirmation_email_publish_failed",
				slog.String("email", email),
				slog.String("err", err.Error()),
			)
		}
	}()
}

func (m *Mailer) publish(ctx context.Context, key string, job ConfirmationJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("mailer: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := m.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("mailer: write failed: %w", err)
	}

	return nil
}

func (m *Mailer) Close() error {
	return m.writer.Close()
}

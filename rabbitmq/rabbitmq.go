package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of heap memory.
// Instead of allocating new memory every time we encode an envelope we reuse
// buffers from this pool. If we consume events sequentially there will only be
// one buffer in this pool at all times.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

// Envelope is the message published for every posted journal entry.
// Collaborating services consume these to react to bill postings and
// payment recordings; delivery is fire-and-forget.
type Envelope struct {
	Kind           string    `json:"kind"` // bill.posted | payment.recorded
	JournalEntryID int64     `json:"journal_entry_id"`
	SourceType     string    `json:"source_type"`
	SourceID       int64     `json:"source_id"`
	Total          int64     `json:"total"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type SubscribeToEventsFunc = func() (chan Envelope, error)

type Client interface {
	StartPublishEvents(context.Context, SubscribeToEventsFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	journalExchange string
}

type ClientOption = func(client *DefaultClient)

func WithJournalExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.journalExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		journalExchange: "ledgerhub_journal",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func (client *DefaultClient) StartPublishEvents(ctx context.Context, subscribeFunc SubscribeToEventsFunc) error {
	err := client.amqpClient.ExchangeDeclare(
		client.journalExchange,
		// topic is a type of exchange that allows routing messages to different queues based on a routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchanges accept direct publishing
		false,
		// Nowait: We set this to false as we want to wait for a server response
		// to check whether the exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq publisher")

	events, err := subscribeFunc()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case envelope := <-events:
			err = client.publishToJournalExchange(ctx, envelope)
			if err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishToJournalExchange(ctx context.Context, envelope Envelope) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	err := json.NewEncoder(payload).Encode(envelope)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("journal.%s", envelope.Kind)

	err = client.amqpClient.PublishWithContext(ctx,
		client.journalExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		captureErr(client.logger, err)
		return err
	}

	client.logger.Debugf("Successfully published journal event %s for entry %d", envelope.Kind, envelope.JournalEntryID)

	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}

package rabbitmq_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/getartha/ledgerhub/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type publishedMessage struct {
	exchange string
	key      string
	body     []byte
}

// fakeAMQPClient records declares and publishes in memory.
type fakeAMQPClient struct {
	mu        sync.Mutex
	exchanges []string
	published []publishedMessage
}

func (f *fakeAMQPClient) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// the publisher reuses its encode buffer, keep our own copy
	body := make([]byte, len(msg.Body))
	copy(body, msg.Body)
	f.published = append(f.published, publishedMessage{exchange: exchange, key: key, body: body})
	return nil
}

func (f *fakeAMQPClient) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchanges = append(f.exchanges, name)
	return nil
}

func (f *fakeAMQPClient) Close() error { return nil }

func (f *fakeAMQPClient) publishCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

func (f *fakeAMQPClient) lastPublished() publishedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.published[len(f.published)-1]
}

func TestPublishJournalEvents(t *testing.T) {
	fake := &fakeAMQPClient{}
	client, err := rabbitmq.NewClient(fake, rabbitmq.WithJournalExchange("test_journal"))
	assert.NoError(t, err)

	events := make(chan rabbitmq.Envelope, 1)
	events <- rabbitmq.Envelope{
		Kind:           "bill.posted",
		JournalEntryID: 42,
		SourceType:     "bill",
		SourceID:       7,
		Total:          1180,
		OccurredAt:     time.Now().UTC(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- client.StartPublishEvents(ctx, func() (chan rabbitmq.Envelope, error) {
			return events, nil
		})
	}()

	assert.Eventually(t, func() bool { return fake.publishCount() == 1 }, time.Second, 10*time.Millisecond)
	cancel()
	assert.Equal(t, context.Canceled, <-done)

	assert.Equal(t, []string{"test_journal"}, fake.exchanges)
	published := fake.lastPublished()
	assert.Equal(t, "test_journal", published.exchange)
	assert.Equal(t, "journal.bill.posted", published.key)

	decoded := rabbitmq.Envelope{}
	assert.NoError(t, json.Unmarshal(published.body, &decoded))
	assert.Equal(t, int64(42), decoded.JournalEntryID)
	assert.Equal(t, int64(1180), decoded.Total)
}

package service

import (
	"context"
	"time"

	"github.com/getartha/ledgerhub/db/models"
	"github.com/getartha/ledgerhub/rabbitmq"
)

const (
	journalEventsTopic = "journal"

	EventKindBillPosted      = "bill.posted"
	EventKindPaymentRecorded = "payment.recorded"
)

// PublishJournalEvent hands a posted entry to the in-process pubsub that
// feeds the rabbitmq publisher. Fire-and-forget: nothing here can fail
// the caller's already-committed transaction.
func (svc *LedgerhubService) PublishJournalEvent(ctx context.Context, kind string, entry *models.JournalEntry, total int64) {
	envelope := rabbitmq.Envelope{
		Kind:           kind,
		JournalEntryID: entry.ID,
		SourceType:     entry.SourceType,
		SourceID:       entry.SourceID,
		Total:          total,
		OccurredAt:     time.Now(),
	}
	if dropped := svc.JournalPubSub.Publish(journalEventsTopic, envelope); dropped > 0 {
		svc.Logger.Warnf("Dropped journal event %s for entry %d on %d subscriber(s)", kind, entry.ID, dropped)
	}
}

// SubscribeJournalEvents is the subscription hook handed to the rabbitmq
// publisher routine.
func (svc *LedgerhubService) SubscribeJournalEvents() (chan rabbitmq.Envelope, error) {
	events := make(chan rabbitmq.Envelope, 64)
	_, err := svc.JournalPubSub.Subscribe(journalEventsTopic, events)
	return events, err
}

package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

type dispatchDocument struct {
	Date               string    `firestore:"date"`
	PollID             string    `firestore:"poll_id"`
	Email              string    `firestore:"email"`
	ConversationHandle string    `firestore:"conversation_handle"`
	SentAt             time.Time `firestore:"sent_at"`
	Outcome            string    `firestore:"outcome"`
	Error              string    `firestore:"error"`
	Seq                int64     `firestore:"seq"`
}

type dispatchLogRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDispatchLogRepository(client *firestore.Client) *dispatchLogRepository {
	return &dispatchLogRepository{client: client}
}

func (r *dispatchLogRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_dispatch_log"
	}
	return "dispatch_log"
}

func (r *dispatchLogRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *dispatchLogRepository) Append(ctx context.Context, entry *model.DispatchEntry) error {
	seq, err := nextSeq(ctx, r.client, r.counterCollection(), "dispatch_counter")
	if err != nil {
		return goerr.Wrap(err, "failed to assign dispatch log seq")
	}

	doc := &dispatchDocument{
		Date:               entry.Date.String(),
		PollID:             entry.PollID.String(),
		Email:              entry.Email.String(),
		ConversationHandle: entry.ConversationHandle,
		SentAt:             entry.SentAt,
		Outcome:            entry.Outcome.String(),
		Error:              entry.Error,
		Seq:                seq,
	}

	if _, _, err := r.client.Collection(r.collection()).Add(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to append dispatch log entry",
			goerr.V("pollID", entry.PollID),
			goerr.V("email", entry.Email),
		)
	}
	return nil
}

func (r *dispatchLogRepository) ListByPoll(ctx context.Context, pollID types.PollID) ([]*model.DispatchEntry, error) {
	iter := r.client.Collection(r.collection()).
		Where("poll_id", "==", pollID.String()).
		Documents(ctx)
	defer iter.Stop()

	docs := make([]*dispatchDocument, 0)
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate dispatch log", goerr.V("pollID", pollID))
		}

		var doc dispatchDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode dispatch log row", goerr.V("pollID", pollID))
		}
		docs = append(docs, &doc)
	}

	sortBySeq(docs, func(d *dispatchDocument) int64 { return d.Seq })

	entries := make([]*model.DispatchEntry, len(docs))
	for i, doc := range docs {
		entries[i] = &model.DispatchEntry{
			Date:               types.PollID(doc.Date),
			PollID:             types.PollID(doc.PollID),
			Email:              types.EmailAddress(doc.Email),
			ConversationHandle: doc.ConversationHandle,
			SentAt:             doc.SentAt,
			Outcome:            types.DispatchOutcome(doc.Outcome),
			Error:              doc.Error,
		}
	}
	return entries, nil
}

// sortBySeq restores append order for documents fetched with an equality
// filter only.
func sortBySeq[T any](docs []T, seq func(T) int64) {
	sort.Slice(docs, func(i, j int) bool {
		return seq(docs[i]) < seq(docs[j])
	})
}

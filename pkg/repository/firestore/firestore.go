package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/availiq/availiq/pkg/domain/interfaces"
)

// Firestore is the Google Cloud Firestore repository backend. Each table of
// the data model maps to one collection; append order is preserved with a
// monotonic "seq" field assigned from a transactional counter so read-side
// last-write-wins resolution sees rows in write order.
type Firestore struct {
	client      *firestore.Client
	roster      *rosterRepository
	response    *responseRepository
	dispatchLog *dispatchLogRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used for test isolation
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.roster.collectionPrefix = prefix
		f.response.collectionPrefix = prefix
		f.dispatchLog.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:      client,
		roster:      newRosterRepository(client),
		response:    newResponseRepository(client),
		dispatchLog: newDispatchLogRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Roster() interfaces.RosterRepository {
	return f.roster
}

func (f *Firestore) Response() interfaces.ResponseRepository {
	return f.response
}

func (f *Firestore) DispatchLog() interfaces.DispatchLogRepository {
	return f.dispatchLog
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// nextSeq increments and returns the append counter for the named log.
// Runs in a transaction so concurrent appenders get distinct values.
func nextSeq(ctx context.Context, client *firestore.Client, counterCollection, counterDoc string) (int64, error) {
	counterRef := client.Collection(counterCollection).Doc(counterDoc)

	var seq int64
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				seq = 1
				return tx.Set(counterRef, map[string]interface{}{"value": seq})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		current, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := current.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", current))
		}
		seq = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: seq},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to advance append counter", goerr.V("counter", counterDoc))
	}

	return seq, nil
}

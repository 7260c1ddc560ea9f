package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

type responseDocument struct {
	Date               string    `firestore:"date"`
	PollID             string    `firestore:"poll_id"`
	Email              string    `firestore:"email"`
	DisplayName        string    `firestore:"display_name"`
	Status             string    `firestore:"status"`
	StartTime          string    `firestore:"start_time"`
	EndTime            string    `firestore:"end_time"`
	Notes              string    `firestore:"notes"`
	RespondedAt        time.Time `firestore:"responded_at"`
	ConversationHandle string    `firestore:"conversation_handle"`
	Seq                int64     `firestore:"seq"`
}

type responseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newResponseRepository(client *firestore.Client) *responseRepository {
	return &responseRepository{client: client}
}

func (r *responseRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_responses"
	}
	return "responses"
}

func (r *responseRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func toResponseDocument(resp *model.PollResponse, seq int64) *responseDocument {
	return &responseDocument{
		Date:               resp.Date.String(),
		PollID:             resp.PollID.String(),
		Email:              resp.Email.String(),
		DisplayName:        resp.DisplayName,
		Status:             resp.Status.String(),
		StartTime:          resp.StartTime,
		EndTime:            resp.EndTime,
		Notes:              resp.Notes,
		RespondedAt:        resp.RespondedAt,
		ConversationHandle: resp.ConversationHandle,
		Seq:                seq,
	}
}

func toResponseModel(doc *responseDocument) *model.PollResponse {
	return &model.PollResponse{
		Date:               types.PollID(doc.Date),
		PollID:             types.PollID(doc.PollID),
		Email:              types.EmailAddress(doc.Email),
		DisplayName:        doc.DisplayName,
		Status:             types.AvailabilityStatus(doc.Status),
		StartTime:          doc.StartTime,
		EndTime:            doc.EndTime,
		Notes:              doc.Notes,
		RespondedAt:        doc.RespondedAt,
		ConversationHandle: doc.ConversationHandle,
	}
}

func (r *responseRepository) Append(ctx context.Context, response *model.PollResponse) error {
	seq, err := nextSeq(ctx, r.client, r.counterCollection(), "response_counter")
	if err != nil {
		return goerr.Wrap(err, "failed to assign response seq")
	}

	doc := toResponseDocument(response, seq)
	if _, _, err := r.client.Collection(r.collection()).Add(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to append response",
			goerr.V("pollID", response.PollID),
			goerr.V("email", response.Email),
		)
	}
	return nil
}

func (r *responseRepository) ListByPoll(ctx context.Context, pollID types.PollID) ([]*model.PollResponse, error) {
	iter := r.client.Collection(r.collection()).
		Where("poll_id", "==", pollID.String()).
		Documents(ctx)
	defer iter.Stop()

	// Collected unordered (an equality filter plus seq ordering would need
	// a composite index), then sorted by seq to restore append order.
	docs := make([]*responseDocument, 0)
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate responses", goerr.V("pollID", pollID))
		}

		var doc responseDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode response row", goerr.V("pollID", pollID))
		}
		docs = append(docs, &doc)
	}

	sortBySeq(docs, func(d *responseDocument) int64 { return d.Seq })

	responses := make([]*model.PollResponse, len(docs))
	for i, doc := range docs {
		responses[i] = toResponseModel(doc)
	}
	return responses, nil
}

package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

type memberDocument struct {
	Email              string `firestore:"email"`
	DisplayName        string `firestore:"display_name"`
	ConversationHandle string `firestore:"conversation_handle"`
	Active             bool   `firestore:"active"`
	Seq                int64  `firestore:"seq"`
}

type rosterRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRosterRepository(client *firestore.Client) *rosterRepository {
	return &rosterRepository{client: client}
}

func (r *rosterRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_roster"
	}
	return "roster"
}

func (r *rosterRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func toMemberModel(doc *memberDocument) *model.Member {
	return &model.Member{
		Email:              types.EmailAddress(doc.Email),
		DisplayName:        doc.DisplayName,
		ConversationHandle: doc.ConversationHandle,
		Active:             doc.Active,
	}
}

// Upsert replaces the row for the normalized email, or creates it with the
// next roster seq. The document ID is the normalized email so the match is
// a point read, and Seq is assigned once at creation to keep List stable in
// insertion order.
func (r *rosterRepository) Upsert(ctx context.Context, member *model.Member) error {
	key := member.Email.Normalize().String()
	docRef := r.client.Collection(r.collection()).Doc(key)

	snapshot, err := docRef.Get(ctx)
	switch {
	case err != nil && status.Code(err) == codes.NotFound:
		seq, seqErr := nextSeq(ctx, r.client, r.counterCollection(), "roster_counter")
		if seqErr != nil {
			return goerr.Wrap(seqErr, "failed to assign roster seq", goerr.V("email", key))
		}
		doc := &memberDocument{
			Email:              key,
			DisplayName:        member.DisplayName,
			ConversationHandle: member.ConversationHandle,
			Active:             member.Active,
			Seq:                seq,
		}
		if _, err := docRef.Set(ctx, doc); err != nil {
			return goerr.Wrap(err, "failed to create roster row", goerr.V("email", key))
		}
		return nil

	case err != nil:
		return goerr.Wrap(err, "failed to look up roster row", goerr.V("email", key))
	}

	var existing memberDocument
	if err := snapshot.DataTo(&existing); err != nil {
		return goerr.Wrap(err, "failed to decode roster row", goerr.V("email", key))
	}

	existing.DisplayName = member.DisplayName
	existing.ConversationHandle = member.ConversationHandle
	existing.Active = member.Active

	if _, err := docRef.Set(ctx, &existing); err != nil {
		return goerr.Wrap(err, "failed to update roster row", goerr.V("email", key))
	}
	return nil
}

func (r *rosterRepository) Get(ctx context.Context, email types.EmailAddress) (*model.Member, error) {
	key := email.Normalize().String()

	snapshot, err := r.client.Collection(r.collection()).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrMemberNotFound, "member not in roster", goerr.V("email", key))
		}
		return nil, goerr.Wrap(err, "failed to get roster row", goerr.V("email", key))
	}

	var doc memberDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode roster row", goerr.V("email", key))
	}

	return toMemberModel(&doc), nil
}

func (r *rosterRepository) List(ctx context.Context) ([]*model.Member, error) {
	iter := r.client.Collection(r.collection()).OrderBy("seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	members := make([]*model.Member, 0)
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate roster")
		}

		var doc memberDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode roster row")
		}
		members = append(members, toMemberModel(&doc))
	}

	return members, nil
}

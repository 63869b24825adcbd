package firestore

import (
	"context"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
	"focuspit/internal/errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// membershipRepository stores member records as groups/{gid}/members/{uid},
// so the document path is deterministic in (group, uid) and concurrent
// invites for the same pair upsert one document. When tx is set, all reads
// and writes go through that transaction.
type membershipRepository struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

// NewMembershipRepository is the constructor for the Firestore membershipRepository.
func NewMembershipRepository(client *firestore.Client) repository.MembershipRepository {
	return &membershipRepository{client: client}
}

func (repo *membershipRepository) doc(groupID, uid string) *firestore.DocumentRef {
	return repo.client.Collection(collGroups).Doc(groupID).Collection(collMembers).Doc(uid)
}

func (repo *membershipRepository) getDoc(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if repo.tx != nil {
		return repo.tx.Get(ref)
	}

	return ref.Get(ctx)
}

func (repo *membershipRepository) setDoc(ctx context.Context, ref *firestore.DocumentRef, value map[string]any) error {
	if repo.tx != nil {
		return repo.tx.Set(ref, value, firestore.MergeAll)
	}
	_, err := ref.Set(ctx, value, firestore.MergeAll)

	return err
}

func (repo *membershipRepository) Upsert(ctx context.Context, m *entity.Membership) error {
	value := map[string]any{
		"groupId":   m.GroupID,
		"uid":       m.UID,
		"owner":     m.Owner,
		"admin":     m.Admin,
		"status":    m.Status,
		"invitedBy": m.InvitedBy,
		"updatedAt": firestore.ServerTimestamp,
	}

	// createdAt is written once; a re-invite upserts the same document
	// without resetting it.
	ref := repo.doc(m.GroupID, m.UID)
	if _, err := repo.getDoc(ctx, ref); status.Code(err) == codes.NotFound {
		value["createdAt"] = firestore.ServerTimestamp
	}

	if err := repo.setDoc(ctx, ref, value); err != nil {
		return errors.Wrap(err, "failed to upsert membership")
	}

	return nil
}

func (repo *membershipRepository) Find(ctx context.Context, groupID, uid string) (*entity.Membership, error) {
	snap, err := repo.getDoc(ctx, repo.doc(groupID, uid))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrMembershipNotFound
		}

		return nil, errors.Wrap(err, "failed to find membership")
	}

	var m entity.Membership
	if err := snap.DataTo(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode membership")
	}

	return &m, nil
}

func (repo *membershipRepository) FindByGroup(ctx context.Context, groupID string) ([]*entity.Membership, error) {
	iter := repo.client.Collection(collGroups).Doc(groupID).
		Collection(collMembers).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)

	return repo.collect(iter, "failed to list group members")
}

func (repo *membershipRepository) FindByUser(ctx context.Context, uid string) ([]*entity.Membership, error) {
	iter := repo.client.CollectionGroup(collMembers).
		Where("uid", "==", uid).
		Documents(ctx)

	return repo.collect(iter, "failed to list user memberships")
}

func (repo *membershipRepository) collect(iter *firestore.DocumentIterator, msg string) ([]*entity.Membership, error) {
	defer iter.Stop()

	var members []*entity.Membership
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, msg)
		}

		var m entity.Membership
		if err := snap.DataTo(&m); err != nil {
			return nil, errors.Wrap(err, "failed to decode membership")
		}
		members = append(members, &m)
	}

	return members, nil
}

func (repo *membershipRepository) SetStatus(ctx context.Context, groupID, uid string, status_ entity.MembershipStatus) error {
	return repo.update(ctx, groupID, uid, []firestore.Update{
		{Path: "status", Value: status_},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}, "failed to set membership status")
}

func (repo *membershipRepository) SetAdmin(ctx context.Context, groupID, uid string, admin bool) error {
	return repo.update(ctx, groupID, uid, []firestore.Update{
		{Path: "admin", Value: admin},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}, "failed to set membership admin flag")
}

func (repo *membershipRepository) update(ctx context.Context, groupID, uid string, updates []firestore.Update, msg string) error {
	ref := repo.doc(groupID, uid)
	var err error
	if repo.tx != nil {
		err = repo.tx.Update(ref, updates)
	} else {
		_, err = ref.Update(ctx, updates)
	}
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrMembershipNotFound
		}

		return errors.Wrap(err, msg)
	}

	return nil
}

func (repo *membershipRepository) Delete(ctx context.Context, groupID, uid string) error {
	ref := repo.doc(groupID, uid)
	var err error
	if repo.tx != nil {
		err = repo.tx.Delete(ref)
	} else {
		_, err = ref.Delete(ctx)
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete membership")
	}

	return nil
}

func (repo *membershipRepository) DeleteByGroup(ctx context.Context, groupID string) error {
	iter := repo.client.Collection(collGroups).Doc(groupID).
		Collection(collMembers).
		Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to iterate group members")
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return errors.Wrap(err, "failed to delete membership")
		}
	}

	return nil
}

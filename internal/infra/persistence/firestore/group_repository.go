package firestore

import (
	"context"
	"log/slog"
	"sort"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
	"focuspit/internal/errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type groupRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewGroupRepository is the constructor for the Firestore groupRepository.
func NewGroupRepository(client *firestore.Client, logger *slog.Logger) repository.GroupRepository {
	return &groupRepository{client: client, logger: logger}
}

func (repo *groupRepository) doc(id string) *firestore.DocumentRef {
	return repo.client.Collection(collGroups).Doc(id)
}

// Create uses create-if-absent on the slug-as-id document, so a lost
// slug-allocation race surfaces as ErrGroupAlreadyExists instead of silently
// overwriting the winner.
func (repo *groupRepository) Create(ctx context.Context, group *entity.Group) error {
	wr, err := repo.doc(group.ID).Create(ctx, map[string]any{
		"id":        group.ID,
		"slug":      group.Slug,
		"name":      group.Name,
		"photoUrl":  group.PhotoURL,
		"status":    group.Status,
		"order":     group.Order,
		"ownerUid":  group.OwnerUID,
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return repository.ErrGroupAlreadyExists
		}

		return errors.Wrap(err, "failed to create group")
	}
	group.CreatedAt = wr.UpdateTime

	return nil
}

func (repo *groupRepository) FindByID(ctx context.Context, id string) (*entity.Group, error) {
	snap, err := repo.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrGroupNotFound
		}

		return nil, errors.Wrap(err, "failed to find group by id")
	}

	var group entity.Group
	if err := snap.DataTo(&group); err != nil {
		return nil, errors.Wrap(err, "failed to decode group")
	}

	return &group, nil
}

func (repo *groupRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := repo.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to check group existence")
	}

	return true, nil
}

func (repo *groupRepository) Update(ctx context.Context, group *entity.Group) error {
	_, err := repo.doc(group.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: group.Name},
		{Path: "photoUrl", Value: group.PhotoURL},
		{Path: "status", Value: group.Status},
		{Path: "order", Value: group.Order},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrGroupNotFound
		}

		return errors.Wrap(err, "failed to update group")
	}

	return nil
}

func (repo *groupRepository) SetOrder(ctx context.Context, id string, order int) error {
	_, err := repo.doc(id).Update(ctx, []firestore.Update{
		{Path: "order", Value: order},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrGroupNotFound
		}

		return errors.Wrap(err, "failed to set group order")
	}

	return nil
}

func (repo *groupRepository) Delete(ctx context.Context, id string) error {
	if _, err := repo.doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete group")
	}

	return nil
}

// WatchActiveByMember is a derived watch: the native stream follows the
// membership collection-group query for the user, and every membership
// snapshot triggers a batch fetch of the referenced groups. Changes are
// classified against the previous derived result set.
func (repo *groupRepository) WatchActiveByMember(ctx context.Context, uid string) (<-chan repository.Snapshot[*entity.Group], error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	snaps := repo.client.CollectionGroup(collMembers).
		Where("uid", "==", uid).
		Snapshots(ctx)

	ch := make(chan repository.Snapshot[*entity.Group])
	go func() {
		defer close(ch)
		defer snaps.Stop()

		prev := make(map[string]*entity.Group)
		for {
			qs, err := snaps.Next()
			if err != nil {
				// Cancelled subscription or broken stream; the closed
				// channel tells the consumer either way.
				if ctx.Err() == nil {
					repo.logger.Error("group watch stream failed", slog.Any("error", err))
				}

				return
			}

			groups, err := repo.accessibleGroups(ctx, qs)
			if err != nil {
				repo.logger.Error("group watch fetch failed", slog.Any("error", err))

				continue
			}

			changes, next := diffDocs(prev, groups, func(g *entity.Group) string { return g.ID })
			if len(prev) == len(next) && len(changes) == 0 && len(prev) != 0 {
				continue
			}
			prev = next

			select {
			case ch <- repository.Snapshot[*entity.Group]{Docs: groups, Changes: changes}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (repo *groupRepository) accessibleGroups(ctx context.Context, qs *firestore.QuerySnapshot) ([]*entity.Group, error) {
	var refs []*firestore.DocumentRef
	docs, err := qs.Documents.GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read membership snapshot")
	}
	for _, doc := range docs {
		var m entity.Membership
		if err := doc.DataTo(&m); err != nil {
			return nil, errors.Wrap(err, "failed to decode membership")
		}
		if !m.HasAccess() {
			continue
		}
		refs = append(refs, repo.doc(m.GroupID))
	}

	groupSnaps, err := repo.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch member groups")
	}

	groups := make([]*entity.Group, 0, len(groupSnaps))
	for _, snap := range groupSnaps {
		if !snap.Exists() {
			continue
		}
		var g entity.Group
		if err := snap.DataTo(&g); err != nil {
			return nil, errors.Wrap(err, "failed to decode group")
		}
		if g.Status != entity.GroupStatusActive {
			continue
		}
		groups = append(groups, &g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Order != groups[j].Order {
			return groups[i].Order < groups[j].Order
		}

		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})

	return groups, nil
}

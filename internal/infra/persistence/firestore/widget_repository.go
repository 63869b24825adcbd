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

type widgetRepository struct {
	client *firestore.Client
}

// NewWidgetRepository is the constructor for the Firestore widgetRepository.
func NewWidgetRepository(client *firestore.Client) repository.WidgetRepository {
	return &widgetRepository{client: client}
}

func (repo *widgetRepository) coll(groupID string) *firestore.CollectionRef {
	return repo.client.Collection(collGroups).Doc(groupID).Collection(collWidgets)
}

func (repo *widgetRepository) Create(ctx context.Context, w *entity.WidgetInstance) error {
	ref := repo.coll(w.GroupID).NewDoc()
	if w.ID != "" {
		ref = repo.coll(w.GroupID).Doc(w.ID)
	}
	w.ID = ref.ID

	wr, err := ref.Create(ctx, map[string]any{
		"id":        w.ID,
		"groupId":   w.GroupID,
		"key":       w.Key,
		"layout":    w.Layout,
		"settings":  w.Settings,
		"createdBy": w.CreatedBy,
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create widget")
	}
	w.CreatedAt = wr.UpdateTime

	return nil
}

func (repo *widgetRepository) FindByGroup(ctx context.Context, groupID string) ([]*entity.WidgetInstance, error) {
	iter := repo.coll(groupID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var widgets []*entity.WidgetInstance
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list widgets")
		}

		var w entity.WidgetInstance
		if err := snap.DataTo(&w); err != nil {
			return nil, errors.Wrap(err, "failed to decode widget")
		}
		widgets = append(widgets, &w)
	}

	return widgets, nil
}

func (repo *widgetRepository) Update(ctx context.Context, w *entity.WidgetInstance) error {
	_, err := repo.coll(w.GroupID).Doc(w.ID).Update(ctx, []firestore.Update{
		{Path: "layout", Value: w.Layout},
		{Path: "settings", Value: w.Settings},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrWidgetNotFound
		}

		return errors.Wrap(err, "failed to update widget")
	}

	return nil
}

func (repo *widgetRepository) Delete(ctx context.Context, groupID, id string) error {
	if _, err := repo.coll(groupID).Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete widget")
	}

	return nil
}

func (repo *widgetRepository) DeleteByGroup(ctx context.Context, groupID string) error {
	iter := repo.coll(groupID).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to iterate widgets")
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return errors.Wrap(err, "failed to delete widget")
		}
	}

	return nil
}

package memory

import (
	"context"
	"sort"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"

	"github.com/google/uuid"
)

type widgetRepository struct {
	store  *Store
	staged *data
}

// NewWidgetRepository is the constructor for the in-memory widgetRepository.
func NewWidgetRepository(store *Store) repository.WidgetRepository {
	return &widgetRepository{store: store}
}

func widgetKey(groupID, id string) string {
	return groupID + "/" + id
}

func copyWidget(w *entity.WidgetInstance) *entity.WidgetInstance {
	c := *w
	c.Settings = make(map[string]any, len(w.Settings))
	for k, v := range w.Settings {
		c.Settings[k] = v
	}

	return &c
}

func (repo *widgetRepository) Create(ctx context.Context, w *entity.WidgetInstance) error {
	return repo.store.write(repo.staged, "widget.create", func(d *data) error {
		if w.ID == "" {
			w.ID = uuid.NewString()
		}
		w.CreatedAt = repo.store.serverTimeLocked()
		d.widgets[widgetKey(w.GroupID, w.ID)] = copyWidget(w)

		return nil
	})
}

func (repo *widgetRepository) FindByGroup(ctx context.Context, groupID string) ([]*entity.WidgetInstance, error) {
	var widgets []*entity.WidgetInstance
	err := repo.store.read(repo.staged, func(d *data) error {
		for _, w := range d.widgets {
			if w.GroupID == groupID {
				widgets = append(widgets, copyWidget(w))
			}
		}

		return nil
	})
	sort.Slice(widgets, func(i, j int) bool { return widgets[i].CreatedAt.Before(widgets[j].CreatedAt) })

	return widgets, err
}

func (repo *widgetRepository) Update(ctx context.Context, w *entity.WidgetInstance) error {
	return repo.store.write(repo.staged, "widget.update", func(d *data) error {
		key := widgetKey(w.GroupID, w.ID)
		existing, ok := d.widgets[key]
		if !ok {
			return repository.ErrWidgetNotFound
		}
		next := copyWidget(existing)
		next.Layout = w.Layout
		next.Settings = make(map[string]any, len(w.Settings))
		for k, v := range w.Settings {
			next.Settings[k] = v
		}
		d.widgets[key] = next

		return nil
	})
}

func (repo *widgetRepository) Delete(ctx context.Context, groupID, id string) error {
	return repo.store.write(repo.staged, "widget.delete", func(d *data) error {
		key := widgetKey(groupID, id)
		if _, ok := d.widgets[key]; !ok {
			return repository.ErrWidgetNotFound
		}
		delete(d.widgets, key)

		return nil
	})
}

func (repo *widgetRepository) DeleteByGroup(ctx context.Context, groupID string) error {
	return repo.store.write(repo.staged, "widget.deleteByGroup", func(d *data) error {
		for key, w := range d.widgets {
			if w.GroupID == groupID {
				delete(d.widgets, key)
			}
		}

		return nil
	})
}

package memory

import (
	"context"
	"sort"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
)

type groupRepository struct {
	store  *Store
	staged *data
}

// NewGroupRepository is the constructor for the in-memory groupRepository.
func NewGroupRepository(store *Store) repository.GroupRepository {
	return &groupRepository{store: store}
}

func (repo *groupRepository) Create(ctx context.Context, group *entity.Group) error {
	return repo.store.write(repo.staged, "group.create", func(d *data) error {
		if _, ok := d.groups[group.ID]; ok {
			return repository.ErrGroupAlreadyExists
		}
		group.CreatedAt = repo.store.serverTimeLocked()
		c := *group
		d.groups[group.ID] = &c

		return nil
	})
}

func (repo *groupRepository) FindByID(ctx context.Context, id string) (*entity.Group, error) {
	var found *entity.Group
	err := repo.store.read(repo.staged, func(d *data) error {
		g, ok := d.groups[id]
		if !ok {
			return repository.ErrGroupNotFound
		}
		c := *g
		found = &c

		return nil
	})

	return found, err
}

func (repo *groupRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := repo.store.read(repo.staged, func(d *data) error {
		_, exists = d.groups[id]

		return nil
	})

	return exists, err
}

func (repo *groupRepository) Update(ctx context.Context, group *entity.Group) error {
	return repo.store.write(repo.staged, "group.update", func(d *data) error {
		if _, ok := d.groups[group.ID]; !ok {
			return repository.ErrGroupNotFound
		}
		c := *group
		d.groups[group.ID] = &c

		return nil
	})
}

func (repo *groupRepository) SetOrder(ctx context.Context, id string, order int) error {
	return repo.store.write(repo.staged, "group.setOrder", func(d *data) error {
		g, ok := d.groups[id]
		if !ok {
			return repository.ErrGroupNotFound
		}
		c := *g
		c.Order = order
		d.groups[id] = &c

		return nil
	})
}

func (repo *groupRepository) Delete(ctx context.Context, id string) error {
	return repo.store.write(repo.staged, "group.delete", func(d *data) error {
		if _, ok := d.groups[id]; !ok {
			return repository.ErrGroupNotFound
		}
		delete(d.groups, id)

		return nil
	})
}

func (repo *groupRepository) WatchActiveByMember(ctx context.Context, uid string) (<-chan repository.Snapshot[*entity.Group], error) {
	compute := func(d *data) []*entity.Group {
		var groups []*entity.Group
		for _, m := range d.memberships {
			if m.UID != uid || !m.HasAccess() {
				continue
			}
			g, ok := d.groups[m.GroupID]
			if !ok || g.Status != entity.GroupStatusActive {
				continue
			}
			c := *g
			groups = append(groups, &c)
		}
		sort.Slice(groups, func(i, j int) bool {
			if groups[i].Order != groups[j].Order {
				return groups[i].Order < groups[j].Order
			}

			return groups[i].CreatedAt.Before(groups[j].CreatedAt)
		})

		return groups
	}

	return addWatch(ctx, repo.store, compute, func(g *entity.Group) string { return g.ID })
}

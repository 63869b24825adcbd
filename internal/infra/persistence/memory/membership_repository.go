package memory

import (
	"context"
	"sort"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
)

type membershipRepository struct {
	store  *Store
	staged *data
}

// NewMembershipRepository is the constructor for the in-memory membershipRepository.
func NewMembershipRepository(store *Store) repository.MembershipRepository {
	return &membershipRepository{store: store}
}

func (repo *membershipRepository) Upsert(ctx context.Context, m *entity.Membership) error {
	return repo.store.write(repo.staged, "membership.upsert", func(d *data) error {
		id := entity.MembershipID(m.GroupID, m.UID)
		now := repo.store.serverTimeLocked()
		if existing, ok := d.memberships[id]; ok {
			m.CreatedAt = existing.CreatedAt
		} else {
			m.CreatedAt = now
		}
		m.UpdatedAt = now
		c := *m
		d.memberships[id] = &c

		return nil
	})
}

func (repo *membershipRepository) Find(ctx context.Context, groupID, uid string) (*entity.Membership, error) {
	var found *entity.Membership
	err := repo.store.read(repo.staged, func(d *data) error {
		m, ok := d.memberships[entity.MembershipID(groupID, uid)]
		if !ok {
			return repository.ErrMembershipNotFound
		}
		c := *m
		found = &c

		return nil
	})

	return found, err
}

func (repo *membershipRepository) FindByGroup(ctx context.Context, groupID string) ([]*entity.Membership, error) {
	var members []*entity.Membership
	err := repo.store.read(repo.staged, func(d *data) error {
		for _, m := range d.memberships {
			if m.GroupID == groupID {
				c := *m
				members = append(members, &c)
			}
		}

		return nil
	})
	sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt.Before(members[j].CreatedAt) })

	return members, err
}

func (repo *membershipRepository) FindByUser(ctx context.Context, uid string) ([]*entity.Membership, error) {
	var members []*entity.Membership
	err := repo.store.read(repo.staged, func(d *data) error {
		for _, m := range d.memberships {
			if m.UID == uid {
				c := *m
				members = append(members, &c)
			}
		}

		return nil
	})
	sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt.Before(members[j].CreatedAt) })

	return members, err
}

func (repo *membershipRepository) SetStatus(ctx context.Context, groupID, uid string, status entity.MembershipStatus) error {
	return repo.store.write(repo.staged, "membership.setStatus", func(d *data) error {
		id := entity.MembershipID(groupID, uid)
		m, ok := d.memberships[id]
		if !ok {
			return repository.ErrMembershipNotFound
		}
		c := *m
		c.Status = status
		c.UpdatedAt = repo.store.serverTimeLocked()
		d.memberships[id] = &c

		return nil
	})
}

func (repo *membershipRepository) SetAdmin(ctx context.Context, groupID, uid string, admin bool) error {
	return repo.store.write(repo.staged, "membership.setAdmin", func(d *data) error {
		id := entity.MembershipID(groupID, uid)
		m, ok := d.memberships[id]
		if !ok {
			return repository.ErrMembershipNotFound
		}
		c := *m
		c.Admin = admin
		c.UpdatedAt = repo.store.serverTimeLocked()
		d.memberships[id] = &c

		return nil
	})
}

func (repo *membershipRepository) Delete(ctx context.Context, groupID, uid string) error {
	return repo.store.write(repo.staged, "membership.delete", func(d *data) error {
		id := entity.MembershipID(groupID, uid)
		if _, ok := d.memberships[id]; !ok {
			return repository.ErrMembershipNotFound
		}
		delete(d.memberships, id)

		return nil
	})
}

func (repo *membershipRepository) DeleteByGroup(ctx context.Context, groupID string) error {
	return repo.store.write(repo.staged, "membership.deleteByGroup", func(d *data) error {
		for id, m := range d.memberships {
			if m.GroupID == groupID {
				delete(d.memberships, id)
			}
		}

		return nil
	})
}

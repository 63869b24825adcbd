package firestore

import (
	"reflect"

	"focuspit/internal/domain/repository"
)

// diffDocs classifies docs against the previous result set by key. Used for
// derived watches (group list via membership collection-group query) where
// the store's native change feed does not describe the final result set.
func diffDocs[T any](prev map[string]T, docs []T, key func(T) string) (changes []repository.Change[T], next map[string]T) {
	next = make(map[string]T, len(docs))
	for _, doc := range docs {
		k := key(doc)
		next[k] = doc
		before, ok := prev[k]
		switch {
		case !ok:
			changes = append(changes, repository.Change[T]{Kind: repository.ChangeAdded, Doc: doc})
		case !reflect.DeepEqual(before, doc):
			changes = append(changes, repository.Change[T]{Kind: repository.ChangeModified, Doc: doc})
		}
	}
	for k, doc := range prev {
		if _, ok := next[k]; !ok {
			changes = append(changes, repository.Change[T]{Kind: repository.ChangeRemoved, Doc: doc})
		}
	}

	return changes, next
}

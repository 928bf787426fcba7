package usecase

import (
	"sync"

	"lifeos-backend/internal/task/domain"
)

// localView is the in-memory ordered collection the usecase keeps in sync
// with the primary store: most recent first, reconciled per store ack.
// It is only ever mutated after a successful primary-store write, so a
// failed write can never leave the view ahead of durable state.
type localView struct {
	mu     sync.RWMutex
	byUser map[string][]*domain.Task
}

func newLocalView() *localView {
	return &localView{byUser: make(map[string][]*domain.Task)}
}

// reset replaces the user's view with the store's current listing.
func (v *localView) reset(userID string, tasks []*domain.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.byUser[userID] = append([]*domain.Task(nil), tasks...)
}

// prepend inserts a freshly created task at the head of the view.
func (v *localView) prepend(task *domain.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.byUser[task.UserID] = append([]*domain.Task{task}, v.byUser[task.UserID]...)
}

// replace swaps the record matching the task's id with the store-acked
// version. Unknown ids are ignored; the next reset picks them up.
func (v *localView) replace(task *domain.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, t := range v.byUser[task.UserID] {
		if t.ID == task.ID {
			v.byUser[task.UserID][i] = task
			return
		}
	}
}

// remove drops the record with the given id from the user's view.
func (v *localView) remove(userID, id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	tasks := v.byUser[userID]
	for i, t := range tasks {
		if t.ID == id {
			v.byUser[userID] = append(tasks[:i], tasks[i+1:]...)
			return
		}
	}
}

// snapshot returns a copy of the user's current view.
func (v *localView) snapshot(userID string) []*domain.Task {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]*domain.Task(nil), v.byUser[userID]...)
}

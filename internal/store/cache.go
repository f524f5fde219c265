// Package store holds the in-memory mirror of the remote todo collection.
package store

import "github.com/idilsaglam/todoclient/internal/model"

// Cache mirrors the last successful full fetch, in server order.
// It has one writer (the flow controller); there is no way to edit a single
// entry, only to swap the whole collection.
// No locking: writes and reads happen on the UI event loop.
type Cache struct {
	items  []model.Todo
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func([]model.Todo)
}

// New returns an empty cache.
func New() *Cache { return &Cache{items: []model.Todo{}} }

// Replace swaps the contents for a copy of todos and notifies subscribers.
func (c *Cache) Replace(todos []model.Todo) {
	next := make([]model.Todo, len(todos))
	copy(next, todos)
	c.items = next

	for _, s := range c.subs {
		s.fn(c.Items())
	}
}

// Items returns a copy of the current contents.
func (c *Cache) Items() []model.Todo {
	out := make([]model.Todo, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cache) Len() int { return len(c.items) }

// Find returns the cached copy of id.
func (c *Cache) Find(id model.ID) (model.Todo, bool) {
	for _, t := range c.items {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

// Subscribe registers fn to run after every Replace. The returned func removes it.
func (c *Cache) Subscribe(fn func([]model.Todo)) func() {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Stats counts done and pending entries.
func (c *Cache) Stats() (done, pending int) {
	for _, t := range c.items {
		if t.Status == model.StatusDone {
			done++
		} else {
			pending++
		}
	}
	return
}

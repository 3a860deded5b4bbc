package queue

import "errors"

// ErrQueueFull is returned by Enqueue when the queue has no room left.
var ErrQueueFull = errors.New("queue is full")

// Queue is a FIFO of pending items shared between producers and a single
// consumer.
type Queue[T any] interface {
	// Enqueue adds an item to the end of the queue.
	Enqueue(item T) error
	// ReadAllMessages removes and returns every pending item in order.
	ReadAllMessages() ([]T, error)
	// Size returns the number of pending items.
	Size() int
	// ClearQueue drops every pending item.
	ClearQueue()
}

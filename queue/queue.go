package queue

import (
	"iter"
)

// NewQueue returns a slice backed queue which is not thread safe.
func NewQueue[T any]() IQueue[T] {
	return &Queue[T]{}
}

// Queue stores its elements in a single slice, dequeuing by advancing a head
// index. The backing array is released as soon as the queue drains.
type Queue[T any] struct {
	elements []T
	head     int
}

func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

func (q *Queue[T]) Clear() {
	q.elements = nil
	q.head = 0
}

func (q *Queue[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := q.Dequeue()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

func (q *Queue[T]) Len() int {
	return len(q.elements) - q.head
}

func (q *Queue[T]) Peek() (element T, ok bool) {
	if q.head >= len(q.elements) {
		return
	}
	element = q.elements[q.head]
	ok = true
	return
}

func (q *Queue[T]) Dequeue() (element T, ok bool) {
	if q.head >= len(q.elements) {
		return
	}
	var zero T
	element = q.elements[q.head]
	q.elements[q.head] = zero
	q.head++
	ok = true
	if q.head == len(q.elements) {
		q.elements = nil
		q.head = 0
	}
	return
}

func (q *Queue[T]) Enqueue(value ...T) {
	q.elements = append(q.elements, value...)
}

func (q *Queue[T]) EnqueueSequence(seq iter.Seq[T]) {
	for v := range seq {
		q.elements = append(q.elements, v)
	}
}

// This file implements LRU eviction.

package eviction

import "github.com/krisalay/interval-cache/types"

// lruNode represents ONE key inside the LRU structure. We use a doubly-linked list to track usage order.
type lruNode struct {
	key types.Interval

	// prev points to the node that was used just after this one
	prev *lruNode

	// next points to the node that was used just before this one
	next *lruNode
}

/*
lru is the concrete implementation of the LRU eviction policy.

Every touch moves a key to the head, so the list is ordered by the cache's recency
clock. Keys that were never touched after insertion keep their insertion order, which
is why the first inserted of two untouched keys is always the one closer to the tail.
*/
type lru struct {
	// nodes maps cache keys to their list nodes, for O(1) lookup and unlink.
	nodes map[types.Interval]*lruNode

	// head points to the MOST recently used key
	head *lruNode

	// tail points to the LEAST recently used key
	tail *lruNode
}

func NewLRU() Policy {
	return &lru{nodes: make(map[types.Interval]*lruNode)}
}

// OnGet moves an accessed key to the front of the list.
func (l *lru) OnGet(k types.Interval) {
	if n, ok := l.nodes[k]; ok {
		l.moveToFront(n)
	}
}

// OnPut adds a new key at the front, or moves an existing one there.
func (l *lru) OnPut(k types.Interval) {
	if n, ok := l.nodes[k]; ok {
		l.moveToFront(n)
		return
	}
	n := &lruNode{key: k}
	l.nodes[k] = n
	l.addFront(n)
}

// Evict removes the LEAST recently used key, which is always at the tail.
func (l *lru) Evict() (types.Interval, bool) {
	if l.tail == nil {
		return types.Interval{}, false
	}
	k := l.tail.key
	l.remove(l.tail)
	delete(l.nodes, k)
	return k, true
}

// Remove drops a key that left the cache without being evicted.
func (l *lru) Remove(k types.Interval) {
	if n, ok := l.nodes[k]; ok {
		l.remove(n)
		delete(l.nodes, k)
	}
}

func (l *lru) Len() int {
	return len(l.nodes)
}

func (l *lru) Reset() {
	l.nodes = make(map[types.Interval]*lruNode)
	l.head = nil
	l.tail = nil
}

// addFront adds a node to the front of the linked list. This marks the node as "most recently used".
func (l *lru) addFront(n *lruNode) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n

	// If the list was empty, head and tail are the same
	if l.tail == nil {
		l.tail = n
	}
}

// remove unlinks a node, fixing head and tail if needed.
func (l *lru) remove(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}

func (l *lru) moveToFront(n *lruNode) {
	if l.head == n {
		return
	}
	l.remove(n)
	l.addFront(n)
}

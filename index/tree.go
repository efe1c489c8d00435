// This file implements the augmented interval tree.

package index

import (
	"math"

	"github.com/krisalay/interval-cache/types"
)

// treeNode is one indexed key.
type treeNode struct {
	key types.Interval

	// maxRight is the largest Right endpoint anywhere in this subtree.
	// It is what lets Covering skip whole subtrees.
	maxRight int

	// height of the subtree rooted here; a leaf has height 1.
	height int

	left  *treeNode
	right *treeNode
}

/*
IntervalTree is an AVL tree ordered by (Left, Right), augmented with the maximum
Right endpoint of every subtree.

Covering(p) descends from the root and:
  - skips any subtree whose maxRight < p (nothing in it reaches p)
  - skips the right subtree of any node with Left > p (everything there starts after p)

so only nodes on O(log n) paths plus the m matches are visited.
*/
type IntervalTree struct {
	root *treeNode
	size int
}

func NewTree() *IntervalTree {
	return &IntervalTree{}
}

func (t *IntervalTree) Insert(k types.Interval) bool {
	var added bool
	t.root, added = insertNode(t.root, k)
	if added {
		t.size++
	}
	return added
}

func (t *IntervalTree) Remove(k types.Interval) bool {
	var removed bool
	t.root, removed = removeNode(t.root, k)
	if removed {
		t.size--
	}
	return removed
}

func (t *IntervalTree) Covering(point int) []types.Interval {
	return appendCovering(nil, t.root, point)
}

func (t *IntervalTree) Len() int {
	return t.size
}

func (t *IntervalTree) Reset() {
	t.root = nil
	t.size = 0
}

// Height returns the height of the tree; 0 when empty.
func (t *IntervalTree) Height() int {
	return height(t.root)
}

// compare orders keys by Left, then by Right.
func compare(a, b types.Interval) int {
	switch {
	case a.Left < b.Left:
		return -1
	case a.Left > b.Left:
		return 1
	case a.Right < b.Right:
		return -1
	case a.Right > b.Right:
		return 1
	default:
		return 0
	}
}

func insertNode(n *treeNode, k types.Interval) (*treeNode, bool) {
	if n == nil {
		return &treeNode{key: k, maxRight: k.Right, height: 1}, true
	}

	var added bool
	switch c := compare(k, n.key); {
	case c < 0:
		n.left, added = insertNode(n.left, k)
	case c > 0:
		n.right, added = insertNode(n.right, k)
	default:
		return n, false
	}
	if !added {
		return n, false
	}
	return rebalance(n), true
}

func removeNode(n *treeNode, k types.Interval) (*treeNode, bool) {
	if n == nil {
		return nil, false
	}

	var removed bool
	switch c := compare(k, n.key); {
	case c < 0:
		n.left, removed = removeNode(n.left, k)
	case c > 0:
		n.right, removed = removeNode(n.right, k)
	default:
		// Subtrees below are untouched, so their augmentation is still correct.
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}
		// Two children: take the in-order successor's key, then delete the successor.
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.key = succ.key
		n.right, _ = removeNode(n.right, succ.key)
		removed = true
	}
	if !removed {
		return n, false
	}
	return rebalance(n), true
}

func appendCovering(dst []types.Interval, n *treeNode, p int) []types.Interval {
	if n == nil || n.maxRight < p {
		return dst
	}
	dst = appendCovering(dst, n.left, p)
	if n.key.Left > p {
		return dst
	}
	if n.key.Right >= p {
		dst = append(dst, n.key)
	}
	return appendCovering(dst, n.right, p)
}

func height(n *treeNode) int {
	if n == nil {
		return 0
	}
	return n.height
}

func maxRight(n *treeNode) int {
	if n == nil {
		return math.MinInt
	}
	return n.maxRight
}

// update recomputes height and maxRight from the children.
func update(n *treeNode) {
	n.height = 1 + max(height(n.left), height(n.right))
	n.maxRight = max(n.key.Right, maxRight(n.left), maxRight(n.right))
}

func rotateRight(n *treeNode) *treeNode {
	l := n.left
	n.left = l.right
	l.right = n
	update(n)
	update(l)
	return l
}

func rotateLeft(n *treeNode) *treeNode {
	r := n.right
	n.right = r.left
	r.left = n
	update(n)
	update(r)
	return r
}

func rebalance(n *treeNode) *treeNode {
	update(n)
	switch bf := height(n.left) - height(n.right); {
	case bf > 1:
		if height(n.left.left) < height(n.left.right) {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if height(n.right.right) < height(n.right.left) {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

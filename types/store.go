package types

// Store is the contract between the query engine and the sequence it caches.
type Store interface {

	// Len is the fixed length of the sequence.
	Len() int

	// Get returns the element at index i.
	Get(i int) (int64, error)

	/*
		Set replaces the element at index i.

		This is the only mutation the engine performs on the store. Every Set
		must be followed by invalidation of the cached intervals covering i.
	*/
	Set(i int, v int64) error

	/*
		RangeAggregate computes the sum over [left, right] directly from the sequence.
		It is called on every cache miss.
	*/
	RangeAggregate(left, right int) (int64, error)
}

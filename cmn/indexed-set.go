package cmn

// IndexedSet a set that maintains the order of the entered items
type IndexedSet[T comparable] struct {
	items  []T
	values map[T]int
}

// IsEmpty check if this set is empty
func (m *IndexedSet[T]) IsEmpty() bool {
	return len(m.items) == 0
}

// Cardinality Returns the number of elements in the set.
func (m *IndexedSet[T]) Cardinality() int {
	return len(m.items)
}

// Add an element to the set (if it doesn't exist yet). Returns the item index.
func (m *IndexedSet[T]) Add(value T) int {
	index, exists := m.values[value]
	if !exists {
		if m.values == nil {
			m.values = map[T]int{}
		}
		index = len(m.items)
		m.values[value] = index
		m.items = append(m.items, value)
	}
	return index
}

// Remove an element from the set, the following items are shifted to keep the order
func (m *IndexedSet[T]) Remove(value T) bool {
	index, exists := m.values[value]
	if !exists {
		return false
	}
	delete(m.values, value)
	m.items = append(m.items[:index], m.items[index+1:]...)
	for i := index; i < len(m.items); i++ {
		m.values[m.items[i]] = i
	}
	return true
}

// GetIndex get the index of an item in the set, or -1 if the item is not in the set
func (m *IndexedSet[T]) GetIndex(value T) int {
	index, exists := m.values[value]
	if !exists {
		return -1
	}
	return index
}

// Contains checks if this set has the item informed
func (m *IndexedSet[T]) Contains(value T) bool {
	_, contains := m.values[value]
	return contains
}

// ToArray get all items keeping insertion order
func (m *IndexedSet[T]) ToArray() []T {
	arr := make([]T, len(m.items))
	copy(arr, m.items)
	return arr
}

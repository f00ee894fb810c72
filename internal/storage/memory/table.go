package memory

import "time"

// stamped ограничивает тип записи: указатель на неё должен уметь
// принимать идентификатор и время создания.
type stamped[T any] interface {
	*T
	Stamp(id int, at time.Time)
}

// table хранит записи одного типа в порядке вставки и выдаёт им
// монотонно растущие идентификаторы, начиная с 1. Удалений нет, поэтому
// индекс в rows стабилен. Синхронизацию обеспечивает Storage.
type table[T any, P stamped[T]] struct {
	rows   []T
	index  map[int]int
	nextID int
}

func newTable[T any, P stamped[T]]() *table[T, P] {
	return &table[T, P]{
		index:  make(map[int]int),
		nextID: 1,
	}
}

func (t *table[T, P]) insert(rec T, at time.Time) T {
	id := t.nextID
	t.nextID++
	P(&rec).Stamp(id, at)
	t.index[id] = len(t.rows)
	t.rows = append(t.rows, rec)
	return rec
}

func (t *table[T, P]) get(id int) (T, bool) {
	i, ok := t.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.rows[i], true
}

func (t *table[T, P]) all() []T {
	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *table[T, P]) filter(match func(T) bool) []T {
	out := make([]T, 0)
	for _, rec := range t.rows {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (t *table[T, P]) find(match func(T) bool) (T, bool) {
	for _, rec := range t.rows {
		if match(rec) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

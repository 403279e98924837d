package pomomo

import "time"

type ExistingRecord[T ~string] struct {
	ID        T         `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewExistingRecord[T ~string](id string, now time.Time) ExistingRecord[T] {
	return ExistingRecord[T]{
		ID:        T(id),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

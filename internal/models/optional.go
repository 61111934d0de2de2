package models

import "encoding/json"

// Optional distinguishes a JSON field that was absent from one that was
// explicitly provided, including provided-as-null or provided-as-zero.
// Presence is tracked by Set, never by the truthiness of Value.
type Optional[T any] struct {
	Value T
	Set   bool
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}

// UserUpdate carries a partial update. FirstName and LastName wrap a
// pointer so that an explicit null clears the column while an absent key
// leaves it untouched.
type UserUpdate struct {
	Email     Optional[string]  `json:"email"`
	FirstName Optional[*string] `json:"first_name"`
	LastName  Optional[*string] `json:"last_name"`
	Role      Optional[string]  `json:"role"`
	IsActive  Optional[bool]    `json:"is_active"`
}

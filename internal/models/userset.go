package models

import "github.com/google/uuid"

// UserSet is an unordered set of user ids. A nil set is empty.
type UserSet []uuid.UUID

func (s UserSet) Contains(id uuid.UUID) bool {
	for _, member := range s {
		if member == id {
			return true
		}
	}
	return false
}

// Add returns the set with id included, keeping entries unique.
func (s UserSet) Add(ids ...uuid.UUID) UserSet {
	out := s
	for _, id := range ids {
		if id == uuid.Nil || out.Contains(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (s UserSet) Remove(id uuid.UUID) UserSet {
	out := make(UserSet, 0, len(s))
	for _, member := range s {
		if member != id {
			out = append(out, member)
		}
	}
	return out
}

// NewUserSet builds a set from ids, dropping duplicates and nil ids.
func NewUserSet(ids ...uuid.UUID) UserSet {
	return UserSet{}.Add(ids...)
}

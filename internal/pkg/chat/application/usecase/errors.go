package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a
// use case. Wrapped with %w so callers can map it separately from
// caller-input errors.
var ErrPersistence = fmt.Errorf("chat use case persistence error")

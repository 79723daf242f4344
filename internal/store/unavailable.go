package store

import "context"

// Unavailable is the Store used when no connection could be established at
// startup. Every operation fails with ErrUnavailable for the lifetime of the
// process; there is no retry or reconnect.
type Unavailable struct{}

var _ Store = Unavailable{}

func (Unavailable) Insert(context.Context, string, any) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) Find(context.Context, string, Query, any) error {
	return ErrUnavailable
}

func (Unavailable) FindByID(context.Context, string, string, any) error {
	return ErrUnavailable
}

func (Unavailable) ReplaceByID(context.Context, string, string, any) (bool, error) {
	return false, ErrUnavailable
}

func (Unavailable) DeleteByID(context.Context, string, string) (bool, error) {
	return false, ErrUnavailable
}

func (Unavailable) Count(context.Context, string) (int64, error) {
	return 0, ErrUnavailable
}

func (Unavailable) Collections(context.Context) ([]string, error) {
	return nil, ErrUnavailable
}

func (Unavailable) Ping(context.Context) error {
	return ErrUnavailable
}

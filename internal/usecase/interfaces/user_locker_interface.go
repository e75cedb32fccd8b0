package interfaces

import "context"

// IUserLocker serializes account linking for a single user across processes.
type IUserLocker interface {
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}

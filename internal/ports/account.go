package ports

import "context"

// AccountPort defines the interface for updating account profiles.
type AccountPort interface {
	// UpdateProfile applies the given username and display name to the
	// user's account.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}

package user

import "context"

// Repository defines the persistence contract for the user directory.
type Repository interface {
	// Create persists a new user.
	Create(ctx context.Context, u *User) error

	// FindByID returns the user with the given id, or (nil, nil) when no row
	// matches.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the active user owning the given address, or
	// (nil, nil).  The address is normalised before lookup so routing is
	// case-insensitive.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// List returns all users, active first.
	List(ctx context.Context) ([]*User, error)
}

//Personal.AI order the ending

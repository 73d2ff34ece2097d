package subscription

import "errors"

var (
	ErrSelfSubscription = errors.New("you cannot subscribe to yourself")
	ErrAlreadyExists    = errors.New("already subscribed to this user")
	ErrNotFound         = errors.New("you are not subscribed to this user")
	ErrUserNotFound     = errors.New("user not found")
)

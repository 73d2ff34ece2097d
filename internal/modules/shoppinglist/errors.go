package shoppinglist

import "errors"

var ErrEmptyCart = errors.New("shopping cart is empty")

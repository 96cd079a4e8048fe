package model

import "errors"

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponConflict = errors.New("coupon code already exists")
)

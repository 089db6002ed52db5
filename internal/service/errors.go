package service

import "errors"

var (
	ErrLotNotFound     = errors.New("lot not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrBannerNotFound  = errors.New("banner not found")

	ErrAccountNotApproved   = errors.New("account is not approved to place bids")
	ErrAuctionClosed        = errors.New("auction is not active anymore")
	ErrAuctionExpired       = errors.New("auction close time has passed")
	ErrBidTooLow            = errors.New("bid does not exceed the current minimum")
	ErrLotHasNoBids         = errors.New("lot has no recorded bids")
	ErrLotAlreadyFinalized  = errors.New("lot is already finalized or cancelled")
	ErrLotNotFinalized      = errors.New("lot is not finalized yet")
	ErrAccountAlreadyExists = errors.New("account with given email or tax id already exists")

	ErrUnauthorized = errors.New("requester doesn't have administrator rights")

	ErrNoNewChanges  = errors.New("no new values")
	ErrInvalidWindow = errors.New("close time must be after open time")
	ErrTooManyPhotos = errors.New("too many photo urls for one lot")
)

package svc

import (
	"context"
	"errors"
	"time"

	"github.com/corvane/slrforge/server/dao"
	"github.com/corvane/slrforge/server/serr"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies the provided username and password against the existing
// user in persistence and returns that user if they match.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the credentials do not
// match a user or if the password is incorrect, it will match
// serr.ErrBadCredentials. If the error occurred due to an unexpected
// problem with the DB, it will match serr.ErrDB.
func (svc Service) Login(ctx context.Context, username string, password string) (dao.User, error) {
	user, err := svc.DB.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.User{}, serr.ErrBadCredentials
		}
		return dao.User{}, serr.WrapDB("", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return dao.User{}, serr.ErrBadCredentials
		}
		return dao.User{}, serr.WrapDB("", err)
	}

	return user, nil
}

// Logout marks the user with the given ID as having logged out, invalidating
// any JWT issued before this call.
func (svc Service) Logout(ctx context.Context, who dao.User) (dao.User, error) {
	who.LastLogoutTime = time.Now()

	updated, err := svc.DB.Users().Update(ctx, who.ID, who)
	if err != nil {
		return dao.User{}, serr.WrapDB("could not update user", err)
	}

	return updated, nil
}

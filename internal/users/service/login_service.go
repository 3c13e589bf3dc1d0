package service

import (
	"context"
	"errors"

	"github.com/recovglox/recovglox-backend/internal/identity"
	"github.com/recovglox/recovglox-backend/internal/users/domain"
)

// ProfileReader covers the profile reads login performs.
type ProfileReader interface {
	GetPhysioProfile(ctx context.Context, uid string) (map[string]interface{}, error)
	GetBasicProfile(ctx context.Context, uid string) (map[string]interface{}, error)
}

// LoginService resolves the identity by email and merges its profile.
// Credential verification itself is delegated to the identity provider; the
// backend only confirms the account and profile exist.
type LoginService struct {
	identity identity.Provider
	profiles ProfileReader
}

func NewLoginService(idp identity.Provider, profiles ProfileReader) *LoginService {
	return &LoginService{identity: idp, profiles: profiles}
}

// Login returns the uid and the merged identity+profile view. The physio
// collection is probed first, then the basic one; domain.ErrProfileNotFound
// when neither has a document.
func (s *LoginService) Login(ctx context.Context, email string) (string, map[string]interface{}, error) {
	rec, err := s.identity.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrInvalidLogin
	}

	userType := domain.TypePhysio
	data, err := s.profiles.GetPhysioProfile(ctx, rec.UID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		userType = domain.TypeBasic
		data, err = s.profiles.GetBasicProfile(ctx, rec.UID)
	}
	if err != nil {
		return "", nil, err
	}

	user := make(map[string]interface{}, len(data)+4)
	for k, v := range data {
		user[k] = v
	}
	user["uid"] = rec.UID
	user["email"] = rec.Email
	user["displayName"] = rec.DisplayName
	user["userType"] = userType

	return rec.UID, user, nil
}

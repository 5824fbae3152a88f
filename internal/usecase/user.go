package usecase

import (
	"context"
	"time"

	"libraryapi/internal/entity"
)

type UserUsecase struct {
	users UserRepository
	now   func() time.Time
}

func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users, now: time.Now}
}

// ChangeRole sets a user's role. Only admins may call it. Moving a user to
// admin or librarian clears the membership date; moving to member stamps it
// once — a user who already has one keeps the original date.
func (u *UserUsecase) ChangeRole(ctx context.Context, caller entity.Identity, userID, newRole string) (entity.User, error) {
	if caller.Role != entity.RoleAdmin {
		return entity.User{}, ErrForbidden
	}
	if !ValidRole(newRole) {
		return entity.User{}, ErrInvalidRole
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return entity.User{}, err
	}

	membership := user.MembershipDate
	switch newRole {
	case entity.RoleAdmin, entity.RoleLibrarian:
		membership = nil
	case entity.RoleMember:
		if membership == nil {
			d := u.now()
			membership = &d
		}
	}

	if err := u.users.UpdateRole(ctx, userID, newRole, membership); err != nil {
		return entity.User{}, err
	}
	user.Role = newRole
	user.MembershipDate = membership
	return user, nil
}

package usecase

import "libraryapi/internal/entity"

// Role checks are plain functions over the enumerated roles. Anonymous
// callers (zero-value Identity) fail every check.

// CanBorrow reports whether the caller may take a book out. Members and
// librarians may borrow; admins administrate but do not hold loans.
func CanBorrow(caller entity.Identity) bool {
	return caller.Role == entity.RoleMember || caller.Role == entity.RoleLibrarian
}

// CanReturn reports whether the caller may close the given record.
// Librarians and admins may close any record; a member only their own.
func CanReturn(caller entity.Identity, rec entity.BorrowRecord) bool {
	switch caller.Role {
	case entity.RoleLibrarian, entity.RoleAdmin:
		return true
	case entity.RoleMember:
		return rec.MemberID == caller.ID
	default:
		return false
	}
}

// CanManageCatalog gates author/book writes.
func CanManageCatalog(caller entity.Identity) bool {
	return caller.Role == entity.RoleLibrarian || caller.Role == entity.RoleAdmin
}

// CanSeeAllRecords gates the unfiltered borrow-record listing.
func CanSeeAllRecords(caller entity.Identity) bool {
	return caller.Role == entity.RoleLibrarian || caller.Role == entity.RoleAdmin
}

func ValidRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleLibrarian, entity.RoleMember:
		return true
	}
	return false
}

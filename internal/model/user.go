package model

import (
	"strings"
	"time"

	"github.com/deppfellow/yamdb/internal/validation"
)

// Role is a user's permission level.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"

	// RoleAnonymous is never stored; it names unauthenticated callers in
	// permission checks.
	RoleAnonymous Role = "anonymous"
)

// Valid reports whether r is one of the roles a user can hold.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User is a registered account.
type User struct {
	ID        int64  `db:"id" json:"-"`
	Username  string `db:"username" json:"username"`
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Bio       string `db:"bio" json:"bio"`
	Role      Role   `db:"role" json:"role"`
	// ConfirmationCode is the bcrypt hash of the pending sign-up code, or
	// empty when no code is outstanding.
	ConfirmationCode string    `db:"confirmation_code" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"-"`
	UpdatedAt        time.Time `db:"updated_at" json:"-"`
}

// RoleOf returns the role used for permission checks; nil is anonymous.
func RoleOf(u *User) Role {
	if u == nil {
		return RoleAnonymous
	}
	return u.Role
}

// ------------------------------------------------------------

// SignUpPayload requests a confirmation code by email.
type SignUpPayload struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,max=150,username"`
}

func (p *SignUpPayload) Validate() error {
	p.Email = strings.TrimSpace(p.Email)
	p.Username = strings.TrimSpace(p.Username)
	return validation.Struct(p)
}

// SignUpResponse echoes the accepted sign-up data.
type SignUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenPayload exchanges a confirmation code for an access token.
type TokenPayload struct {
	Username         string `json:"username" validate:"required,max=150,username"`
	ConfirmationCode string `json:"confirmation_code"`
}

func (p *TokenPayload) Validate() error {
	if strings.TrimSpace(p.ConfirmationCode) == "" {
		return validation.CustomValidationErrors{
			{Field: "confirmation_code", Message: "confirmation code must not be empty"},
		}
	}
	return validation.Struct(p)
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ------------------------------------------------------------

// CreateUserPayload is used by admins to create accounts directly.
type CreateUserPayload struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Bio       string `json:"bio"`
	Role      Role   `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

func (p *CreateUserPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if p.Role == "" {
		p.Role = RoleUser
	}
	return nil
}

// UserProfileFields are the editable profile fields shared by the admin and
// self-service update payloads. nil means "leave unchanged".
type UserProfileFields struct {
	Username  *string `json:"username" validate:"omitnil,required,max=150,username"`
	Email     *string `json:"email" validate:"omitnil,required,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitnil,max=150"`
	LastName  *string `json:"last_name" validate:"omitnil,max=150"`
	Bio       *string `json:"bio"`
}

// UserUpdate is the set of changes applied by the repository.
type UserUpdate struct {
	UserProfileFields
	Role *Role
}

// UpdateUserPayload is an admin edit of any account, including its role.
type UpdateUserPayload struct {
	Lookup string `param:"username" json:"-" validate:"required"`
	UserProfileFields
	Role *Role `json:"role" validate:"omitnil,oneof=user moderator admin"`
}

func (p *UpdateUserPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateMePayload edits the caller's own profile. The role is read-only
// here: a "role" key in the body is ignored.
type UpdateMePayload struct {
	UserProfileFields
}

func (p *UpdateMePayload) Validate() error {
	return validation.Struct(p)
}

// UserLookupPayload addresses one account by username.
type UserLookupPayload struct {
	Username string `param:"username" json:"-" validate:"required"`
}

func (p *UserLookupPayload) Validate() error {
	return validation.Struct(p)
}

// ListUsersQuery filters the admin user listing.
type ListUsersQuery struct {
	PageQuery
	Search string `query:"search" json:"-" validate:"max=150"`
}

func (q *ListUsersQuery) Validate() error {
	return validation.Struct(q)
}

// EmptyPayload is bound by endpoints that take no input.
type EmptyPayload struct{}

func (p *EmptyPayload) Validate() error {
	return nil
}

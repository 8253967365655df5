// Package auth resolves who is calling the timesheet service.
//
// EmailDomainAuthenticator only checks the shape of an email address. It is a
// placeholder for a real identity provider and is not a security boundary.
package auth

import (
	"context"
	"net/mail"
	"strings"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/permissions"
)

// Credentials is what a caller presents at the session gate
type Credentials struct {
	Email string `json:"email" validate:"required,email"`
}

// Identity is an authenticated caller
type Identity struct {
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	Permissions []string    `json:"permissions"`
}

// Authenticator turns credentials into an identity
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (*Identity, error)
}

// EmailDomainAuthenticator accepts any address in the organization's domain.
// The role comes from the local part: "admin" is an admin, anything
// containing "-tl" is a team lead, everyone else is an employee.
type EmailDomainAuthenticator struct {
	domain string
}

// NewEmailDomainAuthenticator creates an authenticator for emailDomain
func NewEmailDomainAuthenticator(emailDomain string) *EmailDomainAuthenticator {
	return &EmailDomainAuthenticator{domain: strings.ToLower(strings.TrimPrefix(emailDomain, "@"))}
}

// Authenticate implements Authenticator
func (a *EmailDomainAuthenticator) Authenticate(_ context.Context, creds Credentials) (*Identity, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(creds.Email))
	if err != nil {
		return nil, errors.Validation(map[string]string{"email": "must be a valid email address"})
	}

	email := strings.ToLower(addr.Address)
	local, host, ok := strings.Cut(email, "@")
	if !ok || host != a.domain {
		return nil, errors.DomainNotAllowed(a.domain)
	}

	role := RoleFor(local)
	return &Identity{Email: email, Role: role, Permissions: PermissionsFor(role)}, nil
}

// RoleFor derives the role from an email local part
func RoleFor(local string) domain.Role {
	switch {
	case local == "admin":
		return domain.RoleAdmin
	case strings.Contains(local, "-tl"):
		return domain.RoleTeamLead
	default:
		return domain.RoleEmployee
	}
}

var rolePermissions = map[domain.Role][]string{
	domain.RoleAdmin: {permissions.All},
	domain.RoleTeamLead: {
		permissions.ProjectsAll,
		permissions.CalendarAll,
		permissions.PTOAll,
		permissions.TimesheetAll,
		permissions.ReportsAny,
	},
	domain.RoleEmployee: {
		permissions.TimesheetAll,
		permissions.CalendarRead,
		permissions.PTORequest,
		permissions.ReportsRead,
		permissions.ProjectsRead,
	},
}

// PermissionsFor returns a copy of the permissions granted to role
func PermissionsFor(role domain.Role) []string {
	return append([]string(nil), rolePermissions[role]...)
}

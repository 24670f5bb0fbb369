/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package router

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/certledger/ledgergw/internal/pkg/profile"
	"github.com/pkg/errors"
)

// Role is the closed set of user roles known to the network.
type Role int

const (
	AdminAcademy Role = 1
	Teacher      Role = 2
	AdminStudent Role = 3
	Student      Role = 4
)

const (
	// AcademyOrg hosts academy administrators and teachers.
	AcademyOrg = "academy"
	// StudentOrg hosts student administrators and students.
	StudentOrg = "student"
)

var roleNames = map[Role]string{
	AdminAcademy: "admin-academy",
	Teacher:      "teacher",
	AdminStudent: "admin-student",
	Student:      "student",
}

var roleOrganizations = map[Role]string{
	AdminAcademy: AcademyOrg,
	Teacher:      AcademyOrg,
	AdminStudent: StudentOrg,
	Student:      StudentOrg,
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole accepts either the numeric role or its name.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		r := Role(n)
		if _, ok := roleOrganizations[r]; ok {
			return r, nil
		}
		return 0, &RoutingError{Role: r}
	}
	for r, name := range roleNames {
		if strings.EqualFold(name, s) {
			return r, nil
		}
	}
	return 0, &RoutingError{Input: s}
}

// RoutingError reports a role or organization outside the known set.
type RoutingError struct {
	Role         Role
	Input        string
	Organization string
}

func (e *RoutingError) Error() string {
	switch {
	case e.Organization != "":
		return fmt.Sprintf("unknown organization %q", e.Organization)
	case e.Input != "":
		return fmt.Sprintf("unknown role %q", e.Input)
	default:
		return fmt.Sprintf("unknown role %d", int(e.Role))
	}
}

// ResolveOrganization maps a role to the name of its organization.
func ResolveOrganization(role Role) (string, error) {
	org, ok := roleOrganizations[role]
	if !ok {
		return "", &RoutingError{Role: role}
	}
	return org, nil
}

// Admin is the bootstrap administrator of an organization.
type Admin struct {
	Label            string
	EnrollmentID     string
	EnrollmentSecret string
}

// Organization is everything needed to act within one membership domain.
type Organization struct {
	Name    string
	MSPID   string
	Profile *profile.Profile
	Admin   Admin
}

// Router resolves roles to configured organizations. It is immutable once
// built and safe for concurrent use.
type Router struct {
	orgs map[string]Organization
}

// New builds a Router. Every organization reachable from a role must be
// present.
func New(orgs ...Organization) (*Router, error) {
	r := &Router{orgs: map[string]Organization{}}
	for _, o := range orgs {
		if o.Name == "" {
			return nil, errors.Errorf("organization name is required")
		}
		if _, dup := r.orgs[o.Name]; dup {
			return nil, errors.Errorf("organization %s defined twice", o.Name)
		}
		if o.MSPID == "" {
			return nil, errors.Errorf("organization %s has no msp id", o.Name)
		}
		r.orgs[o.Name] = o
	}
	for _, name := range roleOrganizations {
		if _, ok := r.orgs[name]; !ok {
			return nil, errors.Errorf("organization %s is not configured", name)
		}
	}
	return r, nil
}

// Resolve returns the organization serving role.
func (r *Router) Resolve(role Role) (Organization, error) {
	name, err := ResolveOrganization(role)
	if err != nil {
		return Organization{}, err
	}
	return r.Organization(name)
}

// Organization looks up a configured organization by name.
func (r *Router) Organization(name string) (Organization, error) {
	o, ok := r.orgs[name]
	if !ok {
		return Organization{}, &RoutingError{Organization: name}
	}
	return o, nil
}

// Organizations returns every configured organization ordered by name.
func (r *Router) Organizations() []Organization {
	var orgs []Organization
	for _, o := range r.orgs {
		orgs = append(orgs, o)
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	return orgs
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package facade

import (
	"context"

	"github.com/certledger/ledgergw/internal/pkg/ca"
	"github.com/certledger/ledgergw/internal/pkg/router"
	"github.com/certledger/ledgergw/internal/pkg/wallet"
	"github.com/pkg/errors"
)

// BootstrapResult describes the admin identity of an organization after
// EnsureBootstrapped.
type BootstrapResult struct {
	Organization string
	Label        string
	// AlreadyEnrolled is set when the admin was in the wallet and the CA
	// was not contacted.
	AlreadyEnrolled bool
}

// EnsureBootstrapped enrolls the admin of orgName with its configured
// enrollment credentials and stores it in the wallet. It is a no-op when
// the admin label is already present.
func (f *Facade) EnsureBootstrapped(ctx context.Context, orgName string) (BootstrapResult, error) {
	org, err := f.router.Organization(orgName)
	if err != nil {
		return BootstrapResult{}, err
	}
	res := BootstrapResult{Organization: org.Name, Label: org.Admin.Label}
	if f.wallet.Exists(ctx, org.Name, org.Admin.Label) {
		logger.Infow("admin already enrolled", "organization", org.Name, "label", org.Admin.Label)
		res.AlreadyEnrolled = true
		return res, nil
	}

	authority, err := f.certificateAuthority(org.Name)
	if err != nil {
		return BootstrapResult{}, err
	}
	enrollment, err := authority.Enroll(ctx, ca.EnrollmentRequest{
		EnrollmentID: org.Admin.EnrollmentID,
		Secret:       org.Admin.EnrollmentSecret,
	})
	if err != nil {
		return BootstrapResult{}, err
	}

	err = f.wallet.Put(ctx, &wallet.Identity{
		Organization: org.Name,
		Label:        org.Admin.Label,
		MSPID:        org.MSPID,
		Certificate:  enrollment.Certificate,
		PrivateKey:   enrollment.PrivateKey,
	})
	switch {
	case errors.Is(err, wallet.ErrIdentityExists):
		// enrolled concurrently; the stored identity wins
		res.AlreadyEnrolled = true
	case err != nil:
		return BootstrapResult{}, err
	default:
		logger.Infow("enrolled admin", "organization", org.Name, "label", org.Admin.Label)
	}
	return res, nil
}

// NewUser is an identity to be created on the ledger, at the CA and in
// the wallet.
type NewUser struct {
	Username string
	Fullname string
	Role     router.Role
}

var registrationFunctions = map[router.Role]string{
	router.Teacher: "CreateTeacher",
	router.Student: "CreateStudent",
}

// RegisterUser creates the ledger record of u as the organization admin,
// then registers and enrolls u at the organization CA and stores the
// enrollment in the wallet. The admin session is closed on every path.
func (f *Facade) RegisterUser(ctx context.Context, u NewUser) Result {
	fn, ok := registrationFunctions[u.Role]
	if !ok {
		return failure(errors.Errorf("role %s cannot be registered", u.Role))
	}
	if err := required("RegisterUser", field{"username", u.Username}, field{"fullname", u.Fullname}); err != nil {
		f.metrics.ValidationFailures.With("operation", "RegisterUser").Add(1)
		return failure(err)
	}
	org, err := f.router.Resolve(u.Role)
	if err != nil {
		return failure(err)
	}
	if f.wallet.Exists(ctx, org.Name, u.Username) {
		return failure(errors.WithMessagef(wallet.ErrIdentityExists, "user %s", u.Username))
	}
	authority, err := f.certificateAuthority(org.Name)
	if err != nil {
		return failure(err)
	}

	s, err := f.open(ctx, org, org.Admin.Label)
	if err != nil {
		return failure(err)
	}
	defer s.Close()

	if _, err := s.Submit(ctx, fn, []string{u.Username, u.Fullname}); err != nil {
		return failure(err)
	}

	enrollment, err := authority.RegisterAndEnroll(ctx, u.Username, s.Identity())
	if err != nil {
		return failure(err)
	}

	err = f.wallet.Put(ctx, &wallet.Identity{
		Organization: org.Name,
		Label:        u.Username,
		MSPID:        org.MSPID,
		Certificate:  enrollment.Certificate,
		PrivateKey:   enrollment.PrivateKey,
	})
	if err != nil {
		return failure(err)
	}
	logger.Infow("registered user", "organization", org.Name, "label", u.Username, "role", u.Role)
	return Result{Success: true}
}

// RegisterGuest registers and enrolls label at the CA of orgName under the
// organization admin and stores the enrollment in the wallet. No ledger
// record is created. The admin session is closed on every path.
func (f *Facade) RegisterGuest(ctx context.Context, orgName, label string) Result {
	if err := required("RegisterGuest", field{"organization", orgName}, field{"label", label}); err != nil {
		f.metrics.ValidationFailures.With("operation", "RegisterGuest").Add(1)
		return failure(err)
	}
	org, err := f.router.Organization(orgName)
	if err != nil {
		return failure(err)
	}
	if f.wallet.Exists(ctx, org.Name, label) {
		return failure(errors.WithMessagef(wallet.ErrIdentityExists, "user %s", label))
	}
	authority, err := f.certificateAuthority(org.Name)
	if err != nil {
		return failure(err)
	}

	s, err := f.open(ctx, org, org.Admin.Label)
	if err != nil {
		return failure(err)
	}
	defer s.Close()

	enrollment, err := authority.RegisterAndEnroll(ctx, label, s.Identity())
	if err != nil {
		return failure(err)
	}
	err = f.wallet.Put(ctx, &wallet.Identity{
		Organization: org.Name,
		Label:        label,
		MSPID:        org.MSPID,
		Certificate:  enrollment.Certificate,
		PrivateKey:   enrollment.PrivateKey,
	})
	if err != nil {
		return failure(err)
	}
	logger.Infow("registered guest", "organization", org.Name, "label", label)
	return Result{Success: true}
}

func (f *Facade) certificateAuthority(org string) (CertificateAuthority, error) {
	authority, ok := f.cas[org]
	if !ok || authority == nil {
		return nil, errors.Errorf("no certificate authority configured for organization %s", org)
	}
	return authority, nil
}

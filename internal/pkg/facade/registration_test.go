/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package facade_test

import (
	"context"
	"testing"

	"github.com/certledger/ledgergw/internal/pkg/ca"
	"github.com/certledger/ledgergw/internal/pkg/facade"
	"github.com/certledger/ledgergw/internal/pkg/router"
	"github.com/certledger/ledgergw/internal/pkg/session"
	sessionmocks "github.com/certledger/ledgergw/internal/pkg/session/mocks"
	"github.com/certledger/ledgergw/internal/pkg/wallet"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (e *testEnv) caReturnsEnrollment(org string) *ca.Enrollment {
	id := e.enrollment()
	enrollment := &ca.Enrollment{Certificate: id.Certificate, PrivateKey: id.PrivateKey, CAChain: e.ca.CertBytes()}
	e.cas[org].EnrollReturns(enrollment, nil)
	e.cas[org].RegisterAndEnrollReturns(enrollment, nil)
	return enrollment
}

func TestEnsureBootstrapped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	enrollment := env.caReturnsEnrollment("student")

	res, err := env.facade.EnsureBootstrapped(ctx, "student")
	require.NoError(t, err)
	require.Equal(t, facade.BootstrapResult{Organization: "student", Label: "admin-student"}, res)

	require.Equal(t, 1, env.cas["student"].EnrollCallCount())
	_, req := env.cas["student"].EnrollArgsForCall(0)
	require.Equal(t, ca.EnrollmentRequest{EnrollmentID: "admin", Secret: "adminpw"}, req)

	stored, err := env.wallet.Get(ctx, "student", "admin-student")
	require.NoError(t, err)
	require.Equal(t, "StudentMSP", stored.MSPID)
	require.Equal(t, enrollment.Certificate, stored.Certificate)

	res, err = env.facade.EnsureBootstrapped(ctx, "student")
	require.NoError(t, err)
	require.True(t, res.AlreadyEnrolled)
	require.Equal(t, 1, env.cas["student"].EnrollCallCount())
	require.Equal(t, 0, env.cas["academy"].EnrollCallCount())
}

func TestEnsureBootstrappedFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.facade.EnsureBootstrapped(ctx, "bank")
	var routingErr *router.RoutingError
	require.True(t, errors.As(err, &routingErr))

	enrollErr := &ca.EnrollmentError{EnrollmentID: "admin", Err: errors.New("authentication failure")}
	env.cas["academy"].EnrollReturns(nil, enrollErr)
	_, err = env.facade.EnsureBootstrapped(ctx, "academy")
	require.Equal(t, enrollErr, err)
	require.False(t, env.wallet.Exists(ctx, "academy", "admin-academy"))
}

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		role     router.Role
		org      string
		mspID    string
		function string
	}{
		{role: router.Teacher, org: "academy", mspID: "AcademyMSP", function: "CreateTeacher"},
		{role: router.Student, org: "student", mspID: "StudentMSP", function: "CreateStudent"},
	}
	for _, tt := range tests {
		t.Run(tt.function, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			admin := env.store(tt.org, "admin-"+tt.org)
			enrollment := env.caReturnsEnrollment(tt.org)

			res := env.facade.RegisterUser(ctx, facade.NewUser{Username: "u01", Fullname: "User One", Role: tt.role})
			require.True(t, res.Success, "%v", res.Err)

			conn := env.onlyConnection()
			require.Equal(t, []string{tt.function, "u01", "User One"}, endorsedArgs(t, conn))
			require.Equal(t, 1, conn.CloseCallCount())

			require.Equal(t, 1, env.cas[tt.org].RegisterAndEnrollCallCount())
			_, label, registrar := env.cas[tt.org].RegisterAndEnrollArgsForCall(0)
			require.Equal(t, "u01", label)
			require.Equal(t, admin.Certificate, registrar.Certificate())

			stored, err := env.wallet.Get(ctx, tt.org, "u01")
			require.NoError(t, err)
			require.Equal(t, tt.mspID, stored.MSPID)
			require.Equal(t, enrollment.Certificate, stored.Certificate)
			require.Equal(t, enrollment.PrivateKey, stored.PrivateKey)
		})
	}
}

func TestRegisterUserExisting(t *testing.T) {
	env := newTestEnv(t)
	env.store("student", "admin-student")
	env.store("student", "st01")

	res := env.facade.RegisterUser(context.Background(), facade.NewUser{Username: "st01", Fullname: "Student One", Role: router.Student})
	require.False(t, res.Success)
	require.ErrorIs(t, res.Err, wallet.ErrIdentityExists)
	require.Equal(t, 0, env.dialer.DialCallCount())
	require.Equal(t, 0, env.cas["student"].RegisterAndEnrollCallCount())
}

func TestRegisterUserWithoutAdmin(t *testing.T) {
	env := newTestEnv(t)

	res := env.facade.RegisterUser(context.Background(), facade.NewUser{Username: "st01", Fullname: "Student One", Role: router.Student})
	require.ErrorIs(t, res.Err, wallet.ErrIdentityNotFound)
	require.Equal(t, 0, env.dialer.DialCallCount())
}

func TestRegisterUserRejectedRoles(t *testing.T) {
	env := newTestEnv(t)

	res := env.facade.RegisterUser(context.Background(), facade.NewUser{Username: "boss", Fullname: "Boss", Role: router.AdminAcademy})
	require.EqualError(t, res.Err, "role admin-academy cannot be registered")

	res = env.facade.RegisterUser(context.Background(), facade.NewUser{Username: "st01", Role: router.Student})
	var validationErr *facade.ValidationError
	require.True(t, errors.As(res.Err, &validationErr))
	require.Equal(t, []string{"fullname"}, validationErr.Missing)
	require.Equal(t, 0, env.dialer.DialCallCount())
}

func TestRegisterUserLedgerRejection(t *testing.T) {
	env := newTestEnv(t)
	env.store("academy", "admin-academy")
	env.caReturnsEnrollment("academy")
	env.newConn = func() *sessionmocks.Connection {
		conn := successfulConnection()
		conn.EndorseReturns(nil, status.Error(codes.Aborted, "teacher tc01 already exists"))
		return conn
	}

	res := env.facade.RegisterUser(context.Background(), facade.NewUser{Username: "tc01", Fullname: "Teacher One", Role: router.Teacher})
	var txErr *session.TransactionError
	require.True(t, errors.As(res.Err, &txErr))
	require.Equal(t, 0, env.cas["academy"].RegisterAndEnrollCallCount())
	require.Equal(t, 1, env.onlyConnection().CloseCallCount())
}

func TestRegisterUserCAFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.store("student", "admin-student")
	regErr := &ca.RegistrationError{Name: "st01", Err: ca.ServerError{Code: 74, Message: "Identity 'st01' is already registered"}}
	env.cas["student"].RegisterAndEnrollReturns(nil, regErr)

	res := env.facade.RegisterUser(ctx, facade.NewUser{Username: "st01", Fullname: "Student One", Role: router.Student})
	require.False(t, res.Success)
	require.Equal(t, regErr, res.Err)
	require.False(t, env.wallet.Exists(ctx, "student", "st01"))
	require.Equal(t, 1, env.onlyConnection().CloseCallCount())
}

func TestRegisterGuest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.store("student", "admin-student")
	enrollment := env.caReturnsEnrollment("student")

	res := env.facade.RegisterGuest(ctx, "student", "guest")
	require.True(t, res.Success, "%v", res.Err)

	conn := env.onlyConnection()
	require.Equal(t, 0, conn.EndorseCallCount())
	require.Equal(t, 0, conn.SubmitCallCount())
	require.Equal(t, 1, conn.CloseCallCount())

	require.Equal(t, 1, env.cas["student"].RegisterAndEnrollCallCount())
	_, label, registrar := env.cas["student"].RegisterAndEnrollArgsForCall(0)
	require.Equal(t, "guest", label)
	require.Equal(t, admin.Certificate, registrar.Certificate())
	require.Equal(t, 0, env.cas["academy"].RegisterAndEnrollCallCount())

	stored, err := env.wallet.Get(ctx, "student", "guest")
	require.NoError(t, err)
	require.Equal(t, "StudentMSP", stored.MSPID)
	require.Equal(t, enrollment.Certificate, stored.Certificate)
	require.Equal(t, enrollment.PrivateKey, stored.PrivateKey)
}

func TestRegisterGuestExisting(t *testing.T) {
	env := newTestEnv(t)
	env.store("academy", "admin-academy")
	env.store("academy", "guest")

	res := env.facade.RegisterGuest(context.Background(), "academy", "guest")
	require.ErrorIs(t, res.Err, wallet.ErrIdentityExists)
	require.Equal(t, 0, env.dialer.DialCallCount())
	require.Equal(t, 0, env.cas["academy"].RegisterAndEnrollCallCount())
}

func TestRegisterGuestRejectedInput(t *testing.T) {
	env := newTestEnv(t)

	res := env.facade.RegisterGuest(context.Background(), "student", "")
	var validationErr *facade.ValidationError
	require.True(t, errors.As(res.Err, &validationErr))
	require.Equal(t, []string{"label"}, validationErr.Missing)

	res = env.facade.RegisterGuest(context.Background(), "bank", "guest")
	var routingErr *router.RoutingError
	require.True(t, errors.As(res.Err, &routingErr))

	res = env.facade.RegisterGuest(context.Background(), "student", "guest")
	require.ErrorIs(t, res.Err, wallet.ErrIdentityNotFound)
	require.Equal(t, 0, env.dialer.DialCallCount())
}

func TestRegisterGuestCAFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.store("student", "admin-student")
	regErr := &ca.RegistrationError{Name: "guest", Err: ca.ServerError{Code: 74, Message: "Identity 'guest' is already registered"}}
	env.cas["student"].RegisterAndEnrollReturns(nil, regErr)

	res := env.facade.RegisterGuest(ctx, "student", "guest")
	require.False(t, res.Success)
	require.Equal(t, regErr, res.Err)
	require.False(t, env.wallet.Exists(ctx, "student", "guest"))

	conn := env.onlyConnection()
	require.Equal(t, 0, conn.EndorseCallCount())
	require.Equal(t, 1, conn.CloseCallCount())
}

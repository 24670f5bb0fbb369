/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package facade is the entry point other subsystems use to reach the
// ledger. Every operation returns a Result and tears down the session it
// used before returning.
package facade

import (
	"context"
	"strconv"
	"time"

	"github.com/certledger/ledgergw/internal/pkg/ca"
	"github.com/certledger/ledgergw/internal/pkg/router"
	"github.com/certledger/ledgergw/internal/pkg/session"
	"github.com/certledger/ledgergw/internal/pkg/wallet"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/pkg/errors"
)

var logger = flogging.MustGetLogger("facade")

// Result is the outcome of every facade operation. Payload is only set by
// a successful evaluation.
type Result struct {
	Success bool
	Payload []byte
	Err     error
}

func failure(err error) Result {
	return Result{Err: err}
}

// User is a caller already authenticated by the outer layer.
type User struct {
	Username string
	Role     router.Role
}

// SessionOpener opens a gateway session for one wallet identity.
type SessionOpener interface {
	Open(ctx context.Context, org router.Organization, label string) (*session.Session, error)
}

//go:generate counterfeiter -o mocks/certificate_authority.go --fake-name CertificateAuthority . CertificateAuthority

// CertificateAuthority is the CA of one organization.
type CertificateAuthority interface {
	Enroll(ctx context.Context, req ca.EnrollmentRequest) (*ca.Enrollment, error)
	RegisterAndEnroll(ctx context.Context, label string, registrar ca.Registrar) (*ca.Enrollment, error)
}

// Options wires a Facade.
type Options struct {
	Router *router.Router
	Wallet wallet.Wallet
	Opener SessionOpener
	// CertificateAuthorities is keyed by organization name.
	CertificateAuthorities map[string]CertificateAuthority
	MetricsProvider        metrics.Provider
}

type Facade struct {
	router  *router.Router
	wallet  wallet.Wallet
	opener  SessionOpener
	cas     map[string]CertificateAuthority
	metrics *Metrics
}

func New(opts Options) *Facade {
	provider := opts.MetricsProvider
	if provider == nil {
		provider = &disabled.Provider{}
	}
	return &Facade{
		router:  opts.Router,
		wallet:  opts.Wallet,
		opener:  opts.Opener,
		cas:     opts.CertificateAuthorities,
		metrics: NewMetrics(provider),
	}
}

// Evaluate runs a read only contract function and closes s. The raw
// contract result is returned as the payload.
func (f *Facade) Evaluate(ctx context.Context, s *session.Session, fn string, args ...string) Result {
	return f.transact(ctx, "evaluate", s, fn, args, s.Evaluate)
}

// Submit runs a state changing contract function and closes s. Submission
// is not retried.
func (f *Facade) Submit(ctx context.Context, s *session.Session, fn string, args ...string) Result {
	res := f.transact(ctx, "submit", s, fn, args, s.Submit)
	res.Payload = nil
	return res
}

type transactFunc func(ctx context.Context, fn string, args []string) ([]byte, error)

func (f *Facade) transact(ctx context.Context, kind string, s *session.Session, fn string, args []string, call transactFunc) Result {
	if s == nil {
		return failure(errors.New("no session"))
	}
	defer s.Close()

	start := time.Now()
	payload, err := call(ctx, fn, args)
	f.metrics.TransactionDuration.With("kind", kind, "function", fn).Observe(time.Since(start).Seconds())
	f.metrics.Transactions.With("kind", kind, "function", fn, "success", strconv.FormatBool(err == nil)).Add(1)
	if err != nil {
		logger.Infow("transaction failed", "kind", kind, "function", fn, "organization", s.Organization, "label", s.Label, "error", err)
		return failure(err)
	}
	return Result{Success: true, Payload: payload}
}

// Query routes u to its organization, opens a session as u and evaluates
// fn.
func (f *Facade) Query(ctx context.Context, u User, fn string, args ...string) Result {
	s, err := f.openAs(ctx, u)
	if err != nil {
		return failure(err)
	}
	return f.Evaluate(ctx, s, fn, args...)
}

// Invoke routes u to its organization, opens a session as u and submits
// fn.
func (f *Facade) Invoke(ctx context.Context, u User, fn string, args ...string) Result {
	s, err := f.openAs(ctx, u)
	if err != nil {
		return failure(err)
	}
	return f.Submit(ctx, s, fn, args...)
}

func (f *Facade) openAs(ctx context.Context, u User) (*session.Session, error) {
	org, err := f.router.Resolve(u.Role)
	if err != nil {
		return nil, err
	}
	return f.open(ctx, org, u.Username)
}

func (f *Facade) open(ctx context.Context, org router.Organization, label string) (*session.Session, error) {
	s, err := f.opener.Open(ctx, org, label)
	if err != nil {
		return nil, err
	}
	f.metrics.SessionsOpened.With("organization", org.Name).Add(1)
	return s, nil
}

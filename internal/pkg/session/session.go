/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package session opens short lived gateway sessions bound to one wallet
// identity and one organization.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/certledger/ledgergw/common/crypto"
	"github.com/certledger/ledgergw/internal/pkg/identity"
	"github.com/certledger/ledgergw/internal/pkg/profile"
	"github.com/certledger/ledgergw/internal/pkg/router"
	"github.com/certledger/ledgergw/internal/pkg/wallet"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	gp "github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
)

var logger = flogging.MustGetLogger("session")

const expirationWarningWindow = 7 * 24 * time.Hour

//go:generate counterfeiter -o mocks/connection.go --fake-name Connection . Connection

// Connection is an open link to a peer gateway service.
type Connection interface {
	Evaluate(ctx context.Context, in *gp.EvaluateRequest, opts ...grpc.CallOption) (*gp.EvaluateResponse, error)
	Endorse(ctx context.Context, in *gp.EndorseRequest, opts ...grpc.CallOption) (*gp.EndorseResponse, error)
	Submit(ctx context.Context, in *gp.SubmitRequest, opts ...grpc.CallOption) (*gp.SubmitResponse, error)
	CommitStatus(ctx context.Context, in *gp.SignedCommitStatusRequest, opts ...grpc.CallOption) (*gp.CommitStatusResponse, error)
	Close() error
}

//go:generate counterfeiter -o mocks/dialer.go --fake-name Dialer . Dialer

// Dialer connects to a gateway peer.
type Dialer interface {
	Dial(ctx context.Context, ep profile.Endpoint) (Connection, error)
}

// Config holds the network bindings shared by every session.
type Config struct {
	Channel  string
	Contract string
	// Discovery lets the gateway pick endorsers. When false, endorsement
	// and evaluation are pinned to the session organization.
	Discovery bool
	// AsLocalhost rewrites peer hosts to localhost.
	AsLocalhost bool
}

// ConnectionError collapses every failure to open a session. Details are
// logged rather than carried.
type ConnectionError struct {
	Organization string
	Label        string
	Stage        string
}

func (e *ConnectionError) Error() string {
	return "could not connect to organization " + e.Organization + " as " + e.Label
}

// Opener opens sessions.
type Opener struct {
	Wallet wallet.Wallet
	Dialer Dialer
	Config Config
}

// Open looks up label in the wallet and connects to the gateway peer of org
// as that identity. A label missing from the wallet fails with
// wallet.ErrIdentityNotFound before anything is dialed.
func (o *Opener) Open(ctx context.Context, org router.Organization, label string) (*Session, error) {
	id, err := o.Wallet.Get(ctx, org.Name, label)
	if errors.Is(err, wallet.ErrIdentityNotFound) {
		logger.Debugw("identity not in wallet", "organization", org.Name, "label", label)
		return nil, err
	}
	if err != nil {
		return nil, connectionError(org.Name, label, "wallet", err)
	}

	if id.MSPID != org.MSPID {
		return nil, connectionError(org.Name, label, "identity", errors.Errorf("identity belongs to %s, not %s", id.MSPID, org.MSPID))
	}
	signer, err := identity.NewX509Identity(id.MSPID, id.Certificate, id.PrivateKey)
	if err != nil {
		return nil, connectionError(org.Name, label, "identity", err)
	}
	notAfter := crypto.CertificateExpiresAt(id.Certificate)
	switch crypto.CheckExpiration(notAfter, time.Now(), expirationWarningWindow) {
	case crypto.Expired:
		return nil, connectionError(org.Name, label, "identity", errors.Errorf("certificate expired at %s", notAfter))
	case crypto.ExpiringSoon:
		logger.Warnw("certificate expires soon", "organization", org.Name, "label", label, "notAfter", notAfter)
	}

	if o.Config.Channel == "" || o.Config.Contract == "" {
		return nil, connectionError(org.Name, label, "resolve", errors.New("channel and contract names are required"))
	}

	if org.Profile == nil {
		return nil, connectionError(org.Name, label, "profile", errors.New("no connection profile"))
	}
	ep, err := org.Profile.GatewayPeer(o.Config.AsLocalhost)
	if err != nil {
		return nil, connectionError(org.Name, label, "profile", err)
	}

	conn, err := o.Dialer.Dial(ctx, ep)
	if err != nil {
		return nil, connectionError(org.Name, label, "dial", errors.WithMessagef(err, "dialing %s at %s", ep.Name, ep.Address))
	}

	s := &Session{
		Organization: org.Name,
		Label:        label,
		Channel:      o.Config.Channel,
		Contract:     o.Config.Contract,
		signer:       signer,
		conn:         conn,
	}
	if !o.Config.Discovery {
		s.orgs = []string{org.MSPID}
	}
	logger.Debugw("session opened", "organization", org.Name, "label", label, "peer", ep.Address)
	return s, nil
}

func connectionError(org, label, stage string, err error) error {
	logger.Warnw("failed opening session", "organization", org, "label", label, "stage", stage, "error", err)
	return &ConnectionError{Organization: org, Label: label, Stage: stage}
}

// Session is a gateway connection bound to one identity, channel and
// contract. It serves a single logical operation and is not shared.
type Session struct {
	Organization string
	Label        string
	Channel      string
	Contract     string

	signer *identity.X509Identity
	conn   Connection
	orgs   []string

	closeOnce sync.Once
	closeErr  error
}

// Identity returns the signing identity the session acts as.
func (s *Session) Identity() *identity.X509Identity {
	return s.signer
}

// Close releases the connection. It is safe to call on a nil session and
// more than once; only the first call reaches the transport.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		if s.conn == nil {
			return
		}
		s.closeErr = s.conn.Close()
		if s.closeErr != nil {
			logger.Warnw("failed closing session", "organization", s.Organization, "label", s.Label, "error", s.closeErr)
		}
		logger.Debugw("session closed", "organization", s.Organization, "label", s.Label)
	})
	return s.closeErr
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package session_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/certledger/ledgergw/common/crypto/tlsgen"
	"github.com/certledger/ledgergw/internal/pkg/profile"
	"github.com/certledger/ledgergw/internal/pkg/router"
	"github.com/certledger/ledgergw/internal/pkg/session"
	"github.com/certledger/ledgergw/internal/pkg/session/mocks"
	"github.com/certledger/ledgergw/internal/pkg/wallet"
	"github.com/certledger/ledgergw/protoutil"
	"github.com/golang/protobuf/proto"
	cb "github.com/hyperledger/fabric-protos-go/common"
	gp "github.com/hyperledger/fabric-protos-go/gateway"
	"github.com/hyperledger/fabric-protos-go/msp"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const academyProfile = `
client:
  organization: Academy
organizations:
  Academy:
    mspid: AcademyMSP
    peers:
    - peer0.academy.certificate.com
peers:
  peer0.academy.certificate.com:
    url: grpc://peer0.academy.certificate.com:7051
`

type testEnv struct {
	org    router.Organization
	wallet wallet.Wallet
	dialer *mocks.Dialer
	conn   *mocks.Connection
	opener *session.Opener
}

func newTestEnv(t *testing.T) *testEnv {
	p, err := profile.Parse([]byte(academyProfile))
	require.NoError(t, err)

	w, err := wallet.NewLevelDBWallet(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	ca, err := tlsgen.NewCA()
	require.NoError(t, err)
	kp, err := ca.NewClientCertKeyPair()
	require.NoError(t, err)
	err = w.Put(context.Background(), &wallet.Identity{
		Organization: "academy",
		Label:        "admin",
		MSPID:        "AcademyMSP",
		Certificate:  kp.Cert,
		PrivateKey:   kp.Key,
	})
	require.NoError(t, err)

	conn := &mocks.Connection{}
	dialer := &mocks.Dialer{}
	dialer.DialReturns(conn, nil)

	env := &testEnv{
		org:    router.Organization{Name: "academy", MSPID: "AcademyMSP", Profile: p},
		wallet: w,
		dialer: dialer,
		conn:   conn,
	}
	env.opener = &session.Opener{
		Wallet: w,
		Dialer: dialer,
		Config: session.Config{Channel: "certificatechannel", Contract: "academy", AsLocalhost: true},
	}
	return env
}

func endorsedEnvelope(result []byte) *cb.Envelope {
	action := protoutil.MarshalOrPanic(&pb.ChaincodeAction{
		Response: &pb.Response{Status: 200, Payload: result},
	})
	prp := protoutil.MarshalOrPanic(&pb.ProposalResponsePayload{Extension: action})
	cap := protoutil.MarshalOrPanic(&pb.ChaincodeActionPayload{
		Action: &pb.ChaincodeEndorsedAction{ProposalResponsePayload: prp},
	})
	tx := protoutil.MarshalOrPanic(&pb.Transaction{
		Actions: []*pb.TransactionAction{{Payload: cap}},
	})
	return &cb.Envelope{Payload: protoutil.MarshalOrPanic(&cb.Payload{Data: tx})}
}

func TestOpenUnknownLabelDoesNotDial(t *testing.T) {
	env := newTestEnv(t)

	s, err := env.opener.Open(context.Background(), env.org, "st01")
	require.Nil(t, s)
	require.ErrorIs(t, err, wallet.ErrIdentityNotFound)
	require.Equal(t, 0, env.dialer.DialCallCount())
}

func TestOpenDialsGatewayPeer(t *testing.T) {
	env := newTestEnv(t)

	s, err := env.opener.Open(context.Background(), env.org, "admin")
	require.NoError(t, err)
	require.Equal(t, "academy", s.Organization)
	require.Equal(t, "admin", s.Label)
	require.Equal(t, "certificatechannel", s.Channel)
	require.Equal(t, "academy", s.Contract)

	require.Equal(t, 1, env.dialer.DialCallCount())
	_, ep := env.dialer.DialArgsForCall(0)
	require.Equal(t, "localhost:7051", ep.Address)
	require.Equal(t, "peer0.academy.certificate.com", ep.ServerNameOverride)
}

func TestOpenFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(env *testEnv)
		dials  int
	}{
		{
			name:   "missing channel",
			mutate: func(env *testEnv) { env.opener.Config.Channel = "" },
		},
		{
			name:   "missing contract",
			mutate: func(env *testEnv) { env.opener.Config.Contract = "" },
		},
		{
			name:   "msp mismatch",
			mutate: func(env *testEnv) { env.org.MSPID = "StudentMSP" },
		},
		{
			name:   "no profile",
			mutate: func(env *testEnv) { env.org.Profile = nil },
		},
		{
			name:   "dial failure",
			mutate: func(env *testEnv) { env.dialer.DialReturns(nil, errors.New("connection refused")) },
			dials:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.mutate(env)

			s, err := env.opener.Open(context.Background(), env.org, "admin")
			require.Nil(t, s)
			var connErr *session.ConnectionError
			require.True(t, errors.As(err, &connErr), "expected ConnectionError, got %v", err)
			require.Equal(t, "academy", connErr.Organization)
			require.Equal(t, "admin", connErr.Label)
			require.NotContains(t, err.Error(), "connection refused")
			require.Equal(t, tt.dials, env.dialer.DialCallCount())
		})
	}
}

func expiredIdentity(t *testing.T) (certPEM, keyPEM []byte) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	template := &x509.Certificate{
		SerialNumber: big.NewInt(7),
		Subject:      pkix.Name{CommonName: "tc01"},
		NotBefore:    time.Now().Add(-48 * time.Hour),
		NotAfter:     time.Now().Add(-time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
}

func TestOpenExpiredCertificate(t *testing.T) {
	env := newTestEnv(t)
	cert, key := expiredIdentity(t)
	err := env.wallet.Put(context.Background(), &wallet.Identity{
		Organization: "academy",
		Label:        "tc01",
		MSPID:        "AcademyMSP",
		Certificate:  cert,
		PrivateKey:   key,
	})
	require.NoError(t, err)

	s, err := env.opener.Open(context.Background(), env.org, "tc01")
	require.Nil(t, s)
	var connErr *session.ConnectionError
	require.True(t, errors.As(err, &connErr))
	require.Equal(t, "identity", connErr.Stage)
	require.Equal(t, 0, env.dialer.DialCallCount())
}

func TestEvaluate(t *testing.T) {
	env := newTestEnv(t)
	env.conn.EvaluateReturns(&gp.EvaluateResponse{
		Result: &pb.Response{Status: 200, Payload: []byte(`{"username":"st01"}`)},
	}, nil)

	s, err := env.opener.Open(context.Background(), env.org, "admin")
	require.NoError(t, err)
	defer s.Close()

	result, err := s.Evaluate(context.Background(), "QueryStudent", []string{"st01"})
	require.NoError(t, err)
	require.Equal(t, `{"username":"st01"}`, string(result))

	require.Equal(t, 1, env.conn.EvaluateCallCount())
	_, req, _ := env.conn.EvaluateArgsForCall(0)
	require.Equal(t, "certificatechannel", req.ChannelId)
	require.Equal(t, []string{"AcademyMSP"}, req.TargetOrganizations)

	cis, err := protoutil.InvocationFromProposal(req.ProposedTransaction.ProposalBytes)
	require.NoError(t, err)
	require.Equal(t, "academy", cis.ChaincodeSpec.ChaincodeId.Name)
	require.Equal(t, [][]byte{[]byte("QueryStudent"), []byte("st01")}, cis.ChaincodeSpec.Input.Args)
}

func TestEvaluateWithDiscovery(t *testing.T) {
	env := newTestEnv(t)
	env.opener.Config.Discovery = true
	env.conn.EvaluateReturns(&gp.EvaluateResponse{Result: &pb.Response{Status: 200}}, nil)

	s, err := env.opener.Open(context.Background(), env.org, "admin")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Evaluate(context.Background(), "QueryAll", nil)
	require.NoError(t, err)
	_, req, _ := env.conn.EvaluateArgsForCall(0)
	require.Empty(t, req.TargetOrganizations)
}

func TestEvaluateErrorDetails(t *testing.T) {
	env := newTestEnv(t)
	st, err := status.New(codes.Aborted, "evaluate call to endorser returned error").WithDetails(&gp.ErrorDetail{
		Address: "peer0.academy.certificate.com:7051",
		MspId:   "AcademyMSP",
		Message: "chaincode response 500, Student st01 does not exist",
	})
	require.NoError(t, err)
	env.conn.EvaluateReturns(nil, st.Err())

	s, err := env.opener.Open(context.Background(), env.org, "admin")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Evaluate(context.Background(), "QueryStudent", []string{"st01"})
	var txErr *session.TransactionError
	require.True(t, errors.As(err, &txErr))
	require.Equal(t, "QueryStudent", txErr.Function)
	require.NotEmpty(t, txErr.TxID)
	require.Equal(t, "evaluate call to endorser returned error", txErr.Message)
	require.Equal(t, []session.ErrorDetail{{
		Address: "peer0.academy.certificate.com:7051",
		MSPID:   "AcademyMSP",
		Message: "chaincode response 500, Student st01 does not exist",
	}}, txErr.Details)
	require.Contains(t, err.Error(), "Student st01 does not exist")
}

func TestEvaluateRejectedStatus(t *testing.T) {
	env := newTestEnv(t)
	env.conn.EvaluateReturns(&gp.EvaluateResponse{
		Result: &pb.Response{Status: 500, Message: "no such subject"},
	}, nil)

	s, err := env.opener.Open(context.Background(), env.org, "admin")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Evaluate(context.Background(), "QuerySubject", []string{"sub01"})
	require.EqualError(t, err, "transaction QuerySubject ("+err.(*session.TransactionError).TxID+") failed: no such subject")
}

func TestSubmit(t *testing.T) {
	env := newTestEnv(t)
	env.conn.EndorseReturns(&gp.EndorseResponse{PreparedTransaction: endorsedEnvelope([]byte("created"))}, nil)
	env.conn.SubmitReturns(&gp.SubmitResponse{}, nil)
	env.conn.CommitStatusReturns(&gp.CommitStatusResponse{Result: pb.TxValidationCode_VALID}, nil)

	s, err := env.opener.Open(context.Background(), env.org, "admin")
	require.NoError(t, err)
	defer s.Close()

	result, err := s.Submit(context.Background(), "CreateSubject", []string{"sub01", "IT001", "Networks", "short", "long"})
	require.NoError(t, err)
	require.Equal(t, "created", string(result))

	_, endorseReq, _ := env.conn.EndorseArgsForCall(0)
	require.Equal(t, []string{"AcademyMSP"}, endorseReq.EndorsingOrganizations)
	cis, err := protoutil.InvocationFromProposal(endorseReq.ProposedTransaction.ProposalBytes)
	require.NoError(t, err)
	require.Equal(t, [][]byte{
		[]byte("CreateSubject"), []byte("sub01"), []byte("IT001"), []byte("Networks"), []byte("short"), []byte("long"),
	}, cis.ChaincodeSpec.Input.Args)

	_, submitReq, _ := env.conn.SubmitArgsForCall(0)
	require.Equal(t, endorseReq.TransactionId, submitReq.TransactionId)
	require.NotEmpty(t, submitReq.PreparedTransaction.Signature)

	_, statusReq, _ := env.conn.CommitStatusArgsForCall(0)
	commitReq := &gp.CommitStatusRequest{}
	require.NoError(t, proto.Unmarshal(statusReq.Request, commitReq))
	require.Equal(t, endorseReq.TransactionId, commitReq.TransactionId)
	require.Equal(t, "certificatechannel", commitReq.ChannelId)
	creator := &msp.SerializedIdentity{}
	require.NoError(t, proto.Unmarshal(commitReq.Identity, creator))
	require.Equal(t, "AcademyMSP", creator.Mspid)
	require.NotEmpty(t, statusReq.Signature)
}

func TestSubmitInvalidCommit(t *testing.T) {
	env := newTestEnv(t)
	env.conn.EndorseReturns(&gp.EndorseResponse{PreparedTransaction: endorsedEnvelope(nil)}, nil)
	env.conn.SubmitReturns(&gp.SubmitResponse{}, nil)
	env.conn.CommitStatusReturns(&gp.CommitStatusResponse{Result: pb.TxValidationCode_MVCC_READ_CONFLICT}, nil)

	s, err := env.opener.Open(context.Background(), env.org, "admin")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Submit(context.Background(), "CreateScore", []string{"tc01", "cl01", "st01", "9"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "MVCC_READ_CONFLICT")
}

func TestSubmitEndorseFailureSkipsSubmit(t *testing.T) {
	env := newTestEnv(t)
	env.conn.EndorseReturns(nil, status.Error(codes.Aborted, "failed to endorse transaction"))

	s, err := env.opener.Open(context.Background(), env.org, "admin")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Submit(context.Background(), "DeleteCourse", []string{"co01"})
	require.EqualError(t, err, "transaction DeleteCourse ("+err.(*session.TransactionError).TxID+") failed: failed to endorse transaction")
	require.Equal(t, 0, env.conn.SubmitCallCount())
	require.Equal(t, 0, env.conn.CommitStatusCallCount())
}

func TestCloseOnce(t *testing.T) {
	env := newTestEnv(t)
	env.conn.CloseReturns(errors.New("already closed"))

	s, err := env.opener.Open(context.Background(), env.org, "admin")
	require.NoError(t, err)

	require.EqualError(t, s.Close(), "already closed")
	require.EqualError(t, s.Close(), "already closed")
	require.Equal(t, 1, env.conn.CloseCallCount())

	var nilSession *session.Session
	require.NoError(t, nilSession.Close())
}

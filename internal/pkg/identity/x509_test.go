/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity_test

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/certledger/ledgergw/common/crypto/tlsgen"
	"github.com/certledger/ledgergw/internal/pkg/identity"
	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-lib-go/bccsp/utils"
	"github.com/hyperledger/fabric-protos-go/msp"
	"github.com/stretchr/testify/require"
)

func TestX509Identity(t *testing.T) {
	ca, err := tlsgen.NewCA()
	require.NoError(t, err)
	kp, err := ca.NewClientCertKeyPair()
	require.NoError(t, err)

	id, err := identity.NewX509Identity("StudentMSP", kp.Cert, kp.Key)
	require.NoError(t, err)
	require.Equal(t, "StudentMSP", id.MSPID())
	require.Equal(t, kp.Cert, id.Certificate())

	serialized, err := id.Serialize()
	require.NoError(t, err)
	sid := &msp.SerializedIdentity{}
	require.NoError(t, proto.Unmarshal(serialized, sid))
	require.Equal(t, "StudentMSP", sid.Mspid)
	require.Equal(t, kp.Cert, sid.IdBytes)

	msg := []byte("proposal bytes")
	sig, err := id.Sign(msg)
	require.NoError(t, err)

	pub := kp.TLSCert.PublicKey.(*ecdsa.PublicKey)
	lowS, err := utils.IsLowS(pub, mustS(t, sig))
	require.NoError(t, err)
	require.True(t, lowS)
	digest := sha256.Sum256(msg)
	require.True(t, ecdsa.VerifyASN1(pub, digest[:], sig))
}

func TestNewX509IdentityErrors(t *testing.T) {
	ca, err := tlsgen.NewCA()
	require.NoError(t, err)
	kp1, err := ca.NewClientCertKeyPair()
	require.NoError(t, err)
	kp2, err := ca.NewClientCertKeyPair()
	require.NoError(t, err)

	tests := []struct {
		name        string
		mspID       string
		cert, key   []byte
		expectedErr string
	}{
		{name: "no msp", cert: kp1.Cert, key: kp1.Key, expectedErr: "msp id is required"},
		{name: "bad cert", mspID: "AcademyMSP", cert: []byte("nope"), key: kp1.Key, expectedErr: "no PEM certificate found"},
		{name: "bad key", mspID: "AcademyMSP", cert: kp1.Cert, key: []byte("nope"), expectedErr: "no PEM private key found"},
		{name: "key type", mspID: "AcademyMSP", cert: kp1.Cert, key: kp1.Cert, expectedErr: `unexpected PEM block type "CERTIFICATE"`},
		{name: "mismatch", mspID: "AcademyMSP", cert: kp1.Cert, key: kp2.Key, expectedErr: "private key does not match certificate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := identity.NewX509Identity(tt.mspID, tt.cert, tt.key)
			require.EqualError(t, err, tt.expectedErr)
		})
	}
}

func mustS(t *testing.T, sig []byte) *big.Int {
	_, s, err := utils.UnmarshalECDSASignature(sig)
	require.NoError(t, err)
	return s
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-lib-go/bccsp/utils"
	"github.com/hyperledger/fabric-protos-go/msp"
	"github.com/pkg/errors"
)

// X509Identity is an ECDSA signing identity backed by an enrollment
// certificate and its PKCS#8 private key.
type X509Identity struct {
	mspID   string
	certPEM []byte
	cert    *x509.Certificate
	key     *ecdsa.PrivateKey
}

var (
	_ SignerSerializer  = (*X509Identity)(nil)
	_ CertificateSigner = (*X509Identity)(nil)
)

// NewX509Identity parses the PEM material of an enrollment and checks that
// the key matches the certificate.
func NewX509Identity(mspID string, certPEM, keyPEM []byte) (*X509Identity, error) {
	if mspID == "" {
		return nil, errors.New("msp id is required")
	}
	cert, err := ParseCertificate(certPEM)
	if err != nil {
		return nil, err
	}
	key, err := ParsePrivateKey(keyPEM)
	if err != nil {
		return nil, err
	}
	if !key.PublicKey.Equal(cert.PublicKey) {
		return nil, errors.New("private key does not match certificate")
	}
	return &X509Identity{
		mspID:   mspID,
		certPEM: certPEM,
		cert:    cert,
		key:     key,
	}, nil
}

// MSPID returns the membership service provider of the identity.
func (id *X509Identity) MSPID() string { return id.mspID }

// Certificate returns the PEM encoded certificate.
func (id *X509Identity) Certificate() []byte { return id.certPEM }

// Serialize returns the protobuf encoding of an msp.SerializedIdentity.
func (id *X509Identity) Serialize() ([]byte, error) {
	return proto.Marshal(&msp.SerializedIdentity{
		Mspid:   id.mspID,
		IdBytes: id.certPEM,
	})
}

// Sign computes a SHA256 message digest, signs it with the private key and
// returns the DER signature after low-S normalization.
func (id *X509Identity) Sign(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	r, s, err := ecdsa.Sign(rand.Reader, id.key, digest[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed signing message")
	}
	sig, err := utils.MarshalECDSASignature(r, s)
	if err != nil {
		return nil, err
	}
	return utils.SignatureToLowS(&id.key.PublicKey, sig)
}

// ParseCertificate decodes the first PEM certificate block.
func ParseCertificate(certPEM []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, errors.New("no PEM certificate found")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed parsing certificate")
	}
	return cert, nil
}

// ParsePrivateKey decodes a PKCS#8 or SEC 1 ECDSA private key.
func ParsePrivateKey(keyPEM []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, errors.New("no PEM private key found")
	}
	switch block.Type {
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		return key, errors.Wrap(err, "failed parsing EC private key")
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(err, "failed parsing PKCS#8 private key")
		}
		eckey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, errors.Errorf("unexpected key type: %T", key)
		}
		return eckey, nil
	default:
		return nil, errors.Errorf("unexpected PEM block type %q", block.Type)
	}
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tlsgen

import (
	"crypto"
	"crypto/x509"
)

// CertKeyPair denotes a TLS certificate and corresponding key,
// both PEM encoded
type CertKeyPair struct {
	// Cert is the certificate, PEM encoded
	Cert []byte
	// Key is the PKCS#8 key corresponding to the certificate, PEM encoded
	Key []byte

	crypto.Signer
	TLSCert *x509.Certificate
}

// CA defines a certificate authority that can generate
// certificates signed by it
type CA interface {
	// CertBytes returns the certificate of the CA in PEM encoding
	CertBytes() []byte

	// NewClientCertKeyPair returns a certificate and private key pair
	// signed by the CA, usable for TLS client authentication and as an
	// enrollment certificate.
	NewClientCertKeyPair() (*CertKeyPair, error)

	// NewServerCertKeyPair returns a CertKeyPair with the given hosts as
	// SANs, signed by the CA.
	NewServerCertKeyPair(hosts ...string) (*CertKeyPair, error)

	// SignCertificateRequest issues a PEM certificate for a PEM encoded
	// PKCS#10 request. The subject of the request is kept.
	SignCertificateRequest(csrPEM []byte) ([]byte, error)
}

type ca struct {
	caCert *CertKeyPair
}

// NewCA creates a self signed certificate authority.
func NewCA() (CA, error) {
	c := &ca{}
	var err error
	c.caCert, err = newCertKeyPair(true, false, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CertBytes returns the certificate of the CA in PEM encoding
func (c *ca) CertBytes() []byte {
	return c.caCert.Cert
}

func (c *ca) NewClientCertKeyPair() (*CertKeyPair, error) {
	return newCertKeyPair(false, false, nil, c.caCert.Signer, c.caCert.TLSCert)
}

func (c *ca) NewServerCertKeyPair(hosts ...string) (*CertKeyPair, error) {
	return newCertKeyPair(false, true, hosts, c.caCert.Signer, c.caCert.TLSCert)
}

func (c *ca) SignCertificateRequest(csrPEM []byte) ([]byte, error) {
	return signCertificateRequest(csrPEM, c.caCert.Signer, c.caCert.TLSCert)
}

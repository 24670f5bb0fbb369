/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ca

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// EnrollmentRequest exchanges an enrollment secret for a certificate.
type EnrollmentRequest struct {
	EnrollmentID string
	Secret       string
}

// Enrollment is the outcome of a successful enrollment.
type Enrollment struct {
	// Certificate is the PEM encoded enrollment certificate.
	Certificate []byte
	// PrivateKey is the PEM encoded PKCS#8 key generated for the request.
	PrivateKey []byte
	// CAChain is the PEM encoded chain of the issuing CA.
	CAChain []byte
}

// EnrollmentError reports a failed enrollment.
type EnrollmentError struct {
	EnrollmentID string
	Err          error
}

func (e *EnrollmentError) Error() string {
	return fmt.Sprintf("enrollment of %s failed: %s", e.EnrollmentID, e.Err)
}

func (e *EnrollmentError) Unwrap() error { return e.Err }

type enrollmentRequestNet struct {
	CertificateRequest string `json:"certificate_request"`
	CAName             string `json:"caname,omitempty"`
}

type enrollmentResponseNet struct {
	Cert       string `json:"Cert"`
	ServerInfo struct {
		CAName  string `json:"CAName"`
		CAChain string `json:"CAChain"`
	} `json:"ServerInfo"`
}

// Enroll generates a P-256 key and a certificate request for the enrollment
// ID and asks the CA to sign it.
func (c *Client) Enroll(ctx context.Context, req EnrollmentRequest) (*Enrollment, error) {
	enrollment, err := c.enroll(ctx, req)
	if err != nil {
		logger.Warnw("enrollment failed", "enrollmentID", req.EnrollmentID, "error", err)
		return nil, &EnrollmentError{EnrollmentID: req.EnrollmentID, Err: err}
	}
	logger.Infow("enrolled identity", "enrollmentID", req.EnrollmentID)
	return enrollment, nil
}

func (c *Client) enroll(ctx context.Context, req EnrollmentRequest) (*Enrollment, error) {
	if req.EnrollmentID == "" || req.Secret == "" {
		return nil, errors.New("enrollment id and secret are required")
	}
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "error generating key")
	}
	csr, err := x509.CreateCertificateRequest(rand.Reader, &x509.CertificateRequest{
		Subject: pkix.Name{CommonName: req.EnrollmentID},
	}, key)
	if err != nil {
		return nil, errors.Wrap(err, "error creating certificate request")
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, errors.Wrap(err, "error marshaling private key")
	}

	payload := &enrollmentRequestNet{
		CertificateRequest: string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE REQUEST", Bytes: csr})),
		CAName:             c.caName,
	}
	basicAuth := func(r *http.Request, _ []byte) error {
		r.SetBasicAuth(req.EnrollmentID, req.Secret)
		return nil
	}
	result := &enrollmentResponseNet{}
	if err := c.post(ctx, enrollPath, payload, basicAuth, result); err != nil {
		return nil, err
	}

	cert, err := base64.StdEncoding.DecodeString(result.Cert)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding enrollment certificate")
	}
	if block, _ := pem.Decode(cert); block == nil || block.Type != "CERTIFICATE" {
		return nil, errors.New("enrollment response carries no PEM certificate")
	}
	chain, err := base64.StdEncoding.DecodeString(result.ServerInfo.CAChain)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding CA chain")
	}
	return &Enrollment{
		Certificate: cert,
		PrivateKey:  pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}),
		CAChain:     chain,
	}, nil
}

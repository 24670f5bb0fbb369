/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"crypto/x509"
	"encoding/pem"
	"time"
)

// CertificateExpiresAt returns the NotAfter of a PEM certificate, or a zero
// time.Time if it cannot be parsed.
func CertificateExpiresAt(certPEM []byte) time.Time {
	bl, _ := pem.Decode(certPEM)
	if bl == nil {
		return time.Time{}
	}
	cert, err := x509.ParseCertificate(bl.Bytes)
	if err != nil {
		return time.Time{}
	}
	return cert.NotAfter
}

// Expiration classifies a certificate lifetime relative to now.
type Expiration int

const (
	// Unknown is returned when no expiry could be determined.
	Unknown Expiration = iota
	Valid
	// ExpiringSoon means the certificate expires within the warning window.
	ExpiringSoon
	Expired
)

// CheckExpiration reports the state of a certificate expiring at notAfter.
func CheckExpiration(notAfter, now time.Time, window time.Duration) Expiration {
	switch {
	case notAfter.IsZero():
		return Unknown
	case !now.Before(notAfter):
		return Expired
	case notAfter.Sub(now) <= window:
		return ExpiringSoon
	default:
		return Valid
	}
}

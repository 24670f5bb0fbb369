/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"crypto/x509"
	"encoding/pem"

	"github.com/pkg/errors"
)

// AddPemToCertPool adds every CERTIFICATE block in pemCerts to pool.
// Connection profiles may concatenate several CA certificates in one
// tlsCACerts entry.
func AddPemToCertPool(pemCerts []byte, pool *x509.CertPool) error {
	added := 0
	for rest := pemCerts; len(rest) > 0; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return errors.Wrap(err, "failed to parse certificate")
		}
		pool.AddCert(cert)
		added++
	}
	if added == 0 {
		return errors.New("no PEM certificates found")
	}
	return nil
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package identity holds the signing identities that act on the ledger and
// at the certificate authority.
package identity

// Signer signs proposals, envelopes, commit status requests and CA tokens.
type Signer interface {
	Sign(message []byte) ([]byte, error)
}

// Serializer returns the msp.SerializedIdentity bytes used as the creator of
// a transaction.
type Serializer interface {
	Serialize() ([]byte, error)
}

// SignerSerializer is what protoutil needs to build signed proposals.
type SignerSerializer interface {
	Signer
	Serializer
}

// CertificateSigner is an enrolled identity that presents its PEM enrollment
// certificate alongside its signatures.
type CertificateSigner interface {
	Signer
	Certificate() []byte
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ca

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Attribute is a name/value pair attached to a registered identity.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	ECert bool   `json:"ecert,omitempty"`
}

// RegistrationRequest describes a new identity.
type RegistrationRequest struct {
	Name           string
	Type           string
	Affiliation    string
	Attributes     []Attribute
	MaxEnrollments int
}

// RegistrationError reports a rejected or failed registration.
type RegistrationError struct {
	Name string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration of %s failed: %s", e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

type registrationRequestNet struct {
	Name           string      `json:"id"`
	Type           string      `json:"type,omitempty"`
	Affiliation    string      `json:"affiliation"`
	Attributes     []Attribute `json:"attrs,omitempty"`
	MaxEnrollments int         `json:"max_enrollments,omitempty"`
	CAName         string      `json:"caname,omitempty"`
}

type registrationResponseNet struct {
	Secret string `json:"secret"`
}

// Register registers a new identity on behalf of registrar and returns the
// one time enrollment secret.
func (c *Client) Register(ctx context.Context, req RegistrationRequest, registrar Registrar) (string, error) {
	secret, err := c.register(ctx, req, registrar)
	if err != nil {
		logger.Warnw("registration failed", "name", req.Name, "error", err)
		return "", &RegistrationError{Name: req.Name, Err: err}
	}
	logger.Infow("registered identity", "name", req.Name)
	return secret, nil
}

func (c *Client) register(ctx context.Context, req RegistrationRequest, registrar Registrar) (string, error) {
	if req.Name == "" {
		return "", errors.New("registration name is required")
	}
	if registrar == nil {
		return "", errors.New("registrar is required")
	}
	payload := &registrationRequestNet{
		Name:           req.Name,
		Type:           req.Type,
		Affiliation:    req.Affiliation,
		Attributes:     req.Attributes,
		MaxEnrollments: req.MaxEnrollments,
		CAName:         c.caName,
	}
	tokenAuth := func(r *http.Request, body []byte) error {
		token, err := createToken(registrar, r.Method, r.URL.RequestURI(), body)
		if err != nil {
			return err
		}
		r.Header.Set("Authorization", token)
		return nil
	}
	result := &registrationResponseNet{}
	if err := c.post(ctx, registerPath, payload, tokenAuth, result); err != nil {
		return "", err
	}
	if result.Secret == "" {
		return "", errors.New("registration response carries no secret")
	}
	return result.Secret, nil
}

// createToken builds a Fabric CA authorization token: the base64 registrar
// certificate and a signature over method, URI, body and certificate.
func createToken(registrar Registrar, method, uri string, body []byte) (string, error) {
	b64Cert := base64.StdEncoding.EncodeToString(registrar.Certificate())
	b64URI := base64.StdEncoding.EncodeToString([]byte(uri))
	b64Body := base64.StdEncoding.EncodeToString(body)
	payload := method + "." + b64URI + "." + b64Body + "." + b64Cert

	sig, err := registrar.Sign([]byte(payload))
	if err != nil {
		return "", errors.WithMessage(err, "error signing authorization token")
	}
	return b64Cert + "." + base64.StdEncoding.EncodeToString(sig), nil
}

// RegisterAndEnroll registers label as a client identity carrying a
// username attribute in its enrollment certificate and then enrolls it.
// Enrollment is only attempted once registration succeeded; a failed
// enrollment leaves the label registered with a secret that is not kept.
func (c *Client) RegisterAndEnroll(ctx context.Context, label string, registrar Registrar) (*Enrollment, error) {
	secret, err := c.Register(ctx, RegistrationRequest{
		Name:        label,
		Type:        "client",
		Affiliation: "",
		Attributes:  []Attribute{{Name: "username", Value: label, ECert: true}},
	}, registrar)
	if err != nil {
		return nil, err
	}
	return c.Enroll(ctx, EnrollmentRequest{EnrollmentID: label, Secret: secret})
}

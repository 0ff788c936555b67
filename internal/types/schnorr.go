package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// SchnorrKeyIDAlgorithm* enumerate the supported signature algorithms.
const (
	SchnorrKeyIDAlgorithmEd25519         = "ed25519"
	SchnorrKeyIDAlgorithmBip340secp256k1 = "bip340secp256k1"
)

var schnorrKeyIDAlgorithmEnum = []interface{}{
	SchnorrKeyIDAlgorithmEd25519,
	SchnorrKeyIDAlgorithmBip340secp256k1,
}

// SchnorrKeyID identifies a provisioned root key, scoped by algorithm.
type SchnorrKeyID struct {
	// Signature algorithm
	// Enum: [ed25519 bip340secp256k1]
	Algorithm *string `json:"algorithm"`

	// Name of the provisioned root key
	Name *string `json:"name"`
}

// Validate validates this schnorr key ID.
func (m *SchnorrKeyID) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("algorithm", "body", m.Algorithm); err != nil {
		res = append(res, err)
	} else if err := validate.Enum("algorithm", "body", *m.Algorithm, schnorrKeyIDAlgorithmEnum); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("name", "body", m.Name); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// SchnorrPublicKeyPayload is the request body of the public-key operation.
type SchnorrPublicKeyPayload struct {
	// Root key identifier
	KeyID *SchnorrKeyID `json:"key_id"`

	// Optional scoping principal in textual representation. Defaults to the caller.
	CanisterID string `json:"canister_id,omitempty"`

	// Ordered list of opaque path segments (base64). May be empty.
	DerivationPath []strfmt.Base64 `json:"derivation_path"`
}

// Validate validates this schnorr public key payload.
func (m *SchnorrPublicKeyPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("key_id", "body", m.KeyID); err != nil {
		res = append(res, err)
	} else if err := m.KeyID.Validate(formats); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// SchnorrPublicKeyResponse is the result of the public-key operation.
type SchnorrPublicKeyResponse struct {
	// Derived public key (33 bytes SEC1 for bip340secp256k1, 32 bytes for ed25519)
	PublicKey strfmt.Base64 `json:"public_key"`

	// Chain code enabling further hierarchical derivation (32 bytes)
	ChainCode strfmt.Base64 `json:"chain_code"`
}

// Validate validates this schnorr public key response.
func (m *SchnorrPublicKeyResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("public_key", "body", m.PublicKey); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("chain_code", "body", m.ChainCode); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// SignWithSchnorrPayload is the request body of the sign operation.
type SignWithSchnorrPayload struct {
	// Root key identifier
	KeyID *SchnorrKeyID `json:"key_id"`

	// Ordered list of opaque path segments (base64). May be empty.
	DerivationPath []strfmt.Base64 `json:"derivation_path"`

	// Message bytes to sign (base64). Must be a 32-byte digest for bip340secp256k1.
	Message *strfmt.Base64 `json:"message"`
}

// Validate validates this sign with schnorr payload.
func (m *SignWithSchnorrPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("key_id", "body", m.KeyID); err != nil {
		res = append(res, err)
	} else if err := m.KeyID.Validate(formats); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("message", "body", m.Message); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// SignWithSchnorrResponse is the result of the sign operation.
type SignWithSchnorrResponse struct {
	// Signature bytes (64 bytes for both algorithms)
	Signature strfmt.Base64 `json:"signature"`
}

// Validate validates this sign with schnorr response.
func (m *SignWithSchnorrResponse) Validate(formats strfmt.Registry) error {
	if err := validate.Required("signature", "body", m.Signature); err != nil {
		return err
	}
	return nil
}

// GetKeyResponse describes one provisioned root key.
type GetKeyResponse struct {
	// Signature algorithm
	Algorithm *string `json:"algorithm"`

	// Name of the root key
	Name *string `json:"name"`

	// Root public key (base64)
	PublicKey strfmt.Base64 `json:"public_key"`
}

// Validate validates this get key response.
func (m *GetKeyResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("algorithm", "body", m.Algorithm); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("name", "body", m.Name); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// GetListKeysResponse is the result of the key listing operation.
type GetListKeysResponse struct {
	// Provisioned root keys
	Keys []*GetKeyResponse `json:"keys"`
}

// Validate validates this get list keys response.
func (m *GetListKeysResponse) Validate(formats strfmt.Registry) error {
	var res []error

	for i := range m.Keys {
		if m.Keys[i] == nil {
			continue
		}
		if err := m.Keys[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// MetricsResponse is the metrics document served by the HTTP query surface.
type MetricsResponse struct {
	// Total number of signatures produced since provisioning
	SigCount *int64 `json:"sig_count"`

	// Number of provisioned root keys
	KeyCount *int64 `json:"key_count"`

	// Seconds since the server started
	UptimeSeconds *int64 `json:"uptime_seconds"`
}

// Validate validates this metrics response.
func (m *MetricsResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("sig_count", "body", m.SigCount); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("key_count", "body", m.KeyCount); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("uptime_seconds", "body", m.UptimeSeconds); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// Package protocol defines the wire-level names and message types of the
// demo API.
package protocol

// CipherName identifies an algorithm in the registry.
type CipherName string

const (
	Feistel64 CipherName = "FEISTEL64"
	SPN128    CipherName = "SPN128"
	Shift     CipherName = "SHIFT"
	Affine    CipherName = "AFFINE"
	Hill      CipherName = "HILL"
	RailFence CipherName = "RAILFENCE"
	Columnar  CipherName = "COLUMNAR"
	Playfair  CipherName = "PLAYFAIR"
	ElGamal   CipherName = "ELGAMAL"
	ECElGamal CipherName = "ECELGAMAL"
)

// Operation selects encrypt or decrypt on the websocket.
type Operation string

const (
	OpEncrypt Operation = "encrypt"
	OpDecrypt Operation = "decrypt"
)

// CipherRequest is the body of the REST encrypt/decrypt endpoints.
type CipherRequest struct {
	Key   string `json:"key"`
	Input string `json:"input"`
}

// CipherResponse carries the transform result.
type CipherResponse struct {
	Cipher string `json:"cipher"`
	Output string `json:"output"`
}

// ErrorResponse carries a request failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WSRequest is one request frame on the websocket session.
type WSRequest struct {
	Op     Operation `json:"op"`
	Cipher string    `json:"cipher"`
	Key    string    `json:"key"`
	Input  string    `json:"input"`
}

// WSResponse is the reply frame; exactly one of Output and Error is set.
type WSResponse struct {
	Op     Operation `json:"op"`
	Cipher string    `json:"cipher"`
	Output string    `json:"output,omitempty"`
	Error  string    `json:"error,omitempty"`
}

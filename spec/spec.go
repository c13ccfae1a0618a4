// Package spec carries the OpenAPI document for the voyage planner API as
// embedded bytes. The server mounts it at /openapi.yaml and the Scalar page
// at /docs renders it, so the contract ships inside the binary rather than
// as a file that can drift from the deployed code.
package spec

import _ "embed"

// OpenAPI is the raw openapi.yaml document.
//
//go:embed openapi.yaml
var OpenAPI []byte

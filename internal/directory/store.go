// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

// ParameterKind is the type tag carried by every shared-store entry.
type ParameterKind string

const (
	KindString       ParameterKind = "String"
	KindSecureString ParameterKind = "SecureString"
	KindStringList   ParameterKind = "StringList"
)

// Parameter is one entry written to the shared store at publish time.
// List values are serialized comma-joined; the consumer splits them.
type Parameter struct {
	Path        string
	Value       string
	Values      []string
	Kind        ParameterKind
	Description string
}

// ParameterStore is the shared hierarchical key/value store used for
// cross-unit addressing. At synthesis time reads return deferred
// references, not live values; the concrete implementation decides
// whether a missing path can even be detected before deploy.
type ParameterStore interface {
	// Put writes one entry. Each entry is independently addressable by
	// its consumers.
	Put(p Parameter) error

	// Get returns a deferred reference to the scalar value at path.
	// List entries come back as their comma-joined serialization; a
	// deferred list cannot be split into elements before deploy, so
	// consumers that need elements pass the joined value whole to a
	// construct-level split.
	Get(path string) (string, error)
}

// Package identity computes deterministic identities for stored legacy
// metadata.
package identity

import "github.com/google/uuid"

// NamespaceUUID is the UUID v5 namespace for legacyui identities.
// Computed as: uuid.NewSHA1(uuid.NameSpaceDNS, []byte("legacyui.opmodel.dev"))
var NamespaceUUID = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("legacyui.opmodel.dev"))

// FieldDefinitionID returns the identity of a field definition of a legacy
// module. The same module and field always yield the same ID.
func FieldDefinitionID(module, field string) uuid.UUID {
	return uuid.NewSHA1(NamespaceUUID, []byte(module+"/"+field))
}

// Package crypto provides the ed25519 keys used to identify participants.
package crypto

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

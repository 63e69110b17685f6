// Package plugin provides the public API for artforge generator plugins.
// External generators should import this package instead of internal packages.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current generator plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	ProtocolVersion = "0.1.0"

	// PluginName is the key under which generators are dispensed.
	PluginName = "generator"
)

// Handshake is the handshake configuration for go-plugin protocol.
// Hosts and plugins must agree on it before any RPC is exchanged.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ARTFORGE_PLUGIN",
	MagicCookieValue: "artforge_skin_generator",
}

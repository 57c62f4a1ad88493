// Package plugin provides the public RPC contract between a file manager
// host and the foldertint recolorer plugin.
// Host glue should import this package instead of internal packages.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "1.0.0"

	// MinCompatibleVersion is the oldest protocol version a host accepts.
	MinCompatibleVersion = "1.0.0"

	// PluginName is the name the recolorer is dispensed under.
	PluginName = "recolorer"

	// PluginProtocol identifies the transport in PluginInfo.
	PluginProtocol = "go-plugin"
)

// Handshake is the handshake configuration for go-plugin protocol.
// go-plugin only compares the major version; the full semantic version is
// checked separately from the --plugin-info output.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FOLDERTINT_PLUGIN",
	MagicCookieValue: "folder_icon_recolor",
}

// PluginMap returns the plugin set served by, and dispensed from, a plugin
// binary. impl may be nil on the host side.
func PluginMap(impl Recolorer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &RecolorerRPC{Impl: impl},
	}
}

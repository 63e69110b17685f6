package plugin

import (
	"github.com/hashicorp/go-plugin"
)

// Serve runs impl as a generator plugin. It blocks until the host
// disconnects and is meant to be the last call in a plugin's main.
func Serve(impl GeneratorPlugin) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &GeneratorRPC{Impl: impl},
		},
	})
}

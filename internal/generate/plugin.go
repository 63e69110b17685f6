package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/noisebox/artforge/pkg/plugin"
)

// Plugin drives an external generator binary over go-plugin net/rpc.
type Plugin struct {
	path   string
	model  string
	logger hclog.Logger

	client    *goplugin.Client
	rpcClient plugin.GeneratorPlugin
}

// NewPlugin returns a backend for the plugin binary at path. The binary is
// started on first use.
func NewPlugin(path, model string, logger hclog.Logger) (*Plugin, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: --plugin-path is required for the plugin generator", ErrRemoteGeneration)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: generator plugin: %v", ErrRemoteGeneration, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: generator plugin %s is a directory", ErrRemoteGeneration, path)
	}
	return &Plugin{path: path, model: model, logger: logger.Named("plugin")}, nil
}

func (p *Plugin) getRPCClient() (plugin.GeneratorPlugin, error) {
	if p.rpcClient != nil {
		return p.rpcClient, nil
	}

	p.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: plugin.Handshake,
		Plugins: map[string]goplugin.Plugin{
			plugin.PluginName: &plugin.GeneratorRPC{},
		},
		Cmd:              exec.Command(p.path), // #nosec G204 - plugin path is supplied by the operator
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           p.logger,
	})

	rpcClient, err := p.client.Client()
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.PluginName)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	gen, ok := raw.(plugin.GeneratorPlugin)
	if !ok {
		p.Close()
		return nil, errors.New("plugin does not implement the generator interface")
	}

	info := gen.GetMetadata()
	p.logger.Debug("connected to generator plugin", "name", info.Name, "version", info.Version, "protocol", info.ProtocolVersion)

	p.rpcClient = gen
	return gen, nil
}

// Generate implements Generator.
func (p *Plugin) Generate(ctx context.Context, prompt string, size int) ([]byte, error) {
	gen, err := p.getRPCClient()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteGeneration, err)
	}

	data, err := gen.Generate(ctx, plugin.GenerateRequest{
		Prompt: prompt,
		Size:   size,
		Model:  p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteGeneration, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: plugin returned no image data", ErrRemoteGeneration)
	}
	return data, nil
}

// Close stops the plugin process.
func (p *Plugin) Close() {
	if p.client != nil {
		p.client.Kill()
		p.client = nil
		p.rpcClient = nil
	}
}

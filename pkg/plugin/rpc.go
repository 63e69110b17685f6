package plugin

import (
	"context"
	"errors"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// GeneratorRPC implements the go-plugin Plugin interface for generators.
type GeneratorRPC struct {
	plugin.Plugin
	Impl GeneratorPlugin
}

// Server returns an RPC server for this plugin.
func (p *GeneratorRPC) Server(*plugin.MuxBroker) (any, error) {
	return &GeneratorRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *GeneratorRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &GeneratorRPCClient{client: c}, nil
}

// GenerateResponse carries the encoded image back to the host. Error is set
// instead of returning an RPC error so the host can tell a generator failure
// from a broken connection.
type GenerateResponse struct {
	Image []byte
	Error string
}

// GeneratorRPCServer is the RPC server implementation for generators.
type GeneratorRPCServer struct {
	Impl GeneratorPlugin
}

// Generate implements the RPC method for image generation.
func (s *GeneratorRPCServer) Generate(req GenerateRequest, resp *GenerateResponse) error {
	data, err := s.Impl.Generate(context.Background(), req)
	if err != nil {
		resp.Error = err.Error()
		return nil
	}
	resp.Image = data
	return nil
}

// GetMetadata implements the RPC method for metadata retrieval.
func (s *GeneratorRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// GeneratorRPCClient is the host side of a generator plugin.
type GeneratorRPCClient struct {
	client *rpc.Client
}

// Generate calls the plugin. The context is honoured only while waiting;
// net/rpc has no way to cancel the remote call.
func (c *GeneratorRPCClient) Generate(ctx context.Context, req GenerateRequest) ([]byte, error) {
	var resp GenerateResponse
	call := c.client.Go("Plugin.Generate", req, &resp, make(chan *rpc.Call, 1))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case done := <-call.Done:
		if done.Error != nil {
			return nil, done.Error
		}
	}

	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Image, nil
}

// GetMetadata retrieves plugin metadata.
func (c *GeneratorRPCClient) GetMetadata() PluginInfo {
	var info PluginInfo
	if err := c.client.Call("Plugin.GetMetadata", new(any), &info); err != nil {
		return PluginInfo{}
	}
	return info
}

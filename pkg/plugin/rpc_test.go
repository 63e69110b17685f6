package plugin

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/rpc"
	"testing"
)

// Mock implementation for testing.
type mockGenerator struct {
	image       []byte
	metadata    PluginInfo
	generateErr error
	lastReq     GenerateRequest
}

func (m *mockGenerator) Generate(_ context.Context, req GenerateRequest) ([]byte, error) {
	m.lastReq = req
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.image, nil
}

func (m *mockGenerator) GetMetadata() PluginInfo {
	return m.metadata
}

// pipeClient wires a GeneratorRPCServer to a client over an in-memory
// connection, the same way go-plugin does across processes.
func pipeClient(t *testing.T, impl GeneratorPlugin) *GeneratorRPCClient {
	t.Helper()

	serverConn, clientConn := net.Pipe()
	server := rpc.NewServer()
	if err := server.RegisterName("Plugin", &GeneratorRPCServer{Impl: impl}); err != nil {
		t.Fatalf("RegisterName() error = %v", err)
	}
	go server.ServeConn(serverConn)

	client := rpc.NewClient(clientConn)
	t.Cleanup(func() { _ = client.Close() })

	return &GeneratorRPCClient{client: client}
}

// TestGeneratorRPC tests the go-plugin wrapper.
func TestGeneratorRPC(t *testing.T) {
	mock := &mockGenerator{}
	p := &GeneratorRPC{Impl: mock}

	t.Run("Server", func(t *testing.T) {
		server, err := p.Server(nil)
		if err != nil {
			t.Fatalf("Server() error = %v", err)
		}
		rpcServer, ok := server.(*GeneratorRPCServer)
		if !ok {
			t.Fatal("Server() returned wrong type")
		}
		if rpcServer.Impl != mock {
			t.Fatal("Server() impl not set correctly")
		}
	})

	t.Run("Client", func(t *testing.T) {
		client, err := p.Client(nil, nil)
		if err != nil {
			t.Fatalf("Client() error = %v", err)
		}
		if _, ok := client.(*GeneratorRPCClient); !ok {
			t.Fatal("Client() returned wrong type")
		}
	})
}

func TestGeneratorRoundTrip(t *testing.T) {
	mock := &mockGenerator{
		image: []byte{0x89, 'P', 'N', 'G'},
		metadata: PluginInfo{
			Name:            "test-generator",
			Version:         "1.0.0",
			ProtocolVersion: ProtocolVersion,
		},
	}
	client := pipeClient(t, mock)

	req := GenerateRequest{Prompt: "brass knob, small variant", Size: 1024, Category: "knobs", Variant: "small"}
	data, err := client.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.Equal(data, mock.image) {
		t.Errorf("Expected %v, got %v", mock.image, data)
	}
	if mock.lastReq != req {
		t.Errorf("Expected request %+v, got %+v", req, mock.lastReq)
	}

	info := client.GetMetadata()
	if info.Name != "test-generator" {
		t.Errorf("Expected name test-generator, got %s", info.Name)
	}
}

func TestGeneratorRoundTripError(t *testing.T) {
	mock := &mockGenerator{generateErr: errors.New("quota exceeded")}
	client := pipeClient(t, mock)

	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Size: 64})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if err.Error() != "quota exceeded" {
		t.Errorf("Expected 'quota exceeded', got %q", err.Error())
	}
}

func TestGeneratorCancelledContext(t *testing.T) {
	client := pipeClient(t, &mockGenerator{image: []byte("x")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either outcome is acceptable when the call races the cancellation,
	// but a cancelled context must never hang.
	_, err := client.Generate(ctx, GenerateRequest{Prompt: "x", Size: 64})
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled or nil, got %v", err)
	}
}

package plugin

import (
	"context"
	"errors"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// RecolorerRPC implements the go-plugin Plugin interface for the recolorer.
type RecolorerRPC struct {
	plugin.Plugin
	Impl Recolorer
}

// Server returns an RPC server for this plugin.
func (p *RecolorerRPC) Server(*plugin.MuxBroker) (any, error) {
	return &RecolorerRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *RecolorerRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &RecolorerRPCClient{client: c}, nil
}

// RenderReply carries a render result or a classified error.
type RenderReply struct {
	Response RenderResponse
	Err      *Error
}

// ResolveReply carries a resolve result or a classified error.
type ResolveReply struct {
	Response ResolveResponse
	Err      *Error
}

// RecolorerRPCServer is the RPC server implementation for the recolorer.
type RecolorerRPCServer struct {
	Impl Recolorer
}

// RenderIcon implements the RPC method for rendering an icon.
func (s *RecolorerRPCServer) RenderIcon(req RenderRequest, resp *RenderReply) error {
	out, err := s.Impl.RenderIcon(context.Background(), req)
	if err != nil {
		resp.Err = toWire(err)
		return nil
	}
	resp.Response = out
	return nil
}

// ResolveIconSize implements the RPC method for size resolution.
func (s *RecolorerRPCServer) ResolveIconSize(req ResolveRequest, resp *ResolveReply) error {
	out, err := s.Impl.ResolveIconSize(context.Background(), req)
	if err != nil {
		resp.Err = toWire(err)
		return nil
	}
	resp.Response = out
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *RecolorerRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	info, err := s.Impl.GetMetadata(context.Background())
	if err != nil {
		return err
	}
	*resp = info
	return nil
}

// RecolorerRPCClient is the RPC client implementation for the recolorer.
type RecolorerRPCClient struct {
	client *rpc.Client
}

// RenderIcon calls the remote RenderIcon method.
func (c *RecolorerRPCClient) RenderIcon(_ context.Context, req RenderRequest) (RenderResponse, error) {
	var reply RenderReply
	if err := c.client.Call("Plugin.RenderIcon", req, &reply); err != nil {
		return RenderResponse{}, err
	}
	if reply.Err != nil {
		return RenderResponse{}, reply.Err
	}
	return reply.Response, nil
}

// ResolveIconSize calls the remote ResolveIconSize method.
func (c *RecolorerRPCClient) ResolveIconSize(_ context.Context, req ResolveRequest) (ResolveResponse, error) {
	var reply ResolveReply
	if err := c.client.Call("Plugin.ResolveIconSize", req, &reply); err != nil {
		return ResolveResponse{}, err
	}
	if reply.Err != nil {
		return ResolveResponse{}, reply.Err
	}
	return reply.Response, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *RecolorerRPCClient) GetMetadata(_ context.Context) (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// toWire keeps an error's kind when it already has one. Unclassified errors
// travel as plain messages with an empty kind.
func toWire(err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return &Error{Kind: pe.Kind, Message: err.Error()}
	}
	return &Error{Message: err.Error()}
}

// Package executor launches the recolorer plugin binary and exposes it to
// the host as a plugin.Recolorer.
package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/foldertint/internal/plugin/protocol"
	"github.com/jmylchreest/foldertint/pkg/plugin"
)

// InfoTimeout bounds the --plugin-info query.
const InfoTimeout = 5 * time.Second

// Options configures an Executor.
type Options struct {
	// Verbose forwards plugin logs at debug level; otherwise they are dropped.
	Verbose bool

	// Logger overrides the logger that plugin output is forwarded to.
	Logger hclog.Logger

	// Runner overrides how --plugin-info is queried (useful for testing).
	Runner ProcessRunner

	// Env is appended to the plugin process environment.
	Env []string
}

// Executor connects to a recolorer plugin binary on first use.
// It implements plugin.Recolorer.
type Executor struct {
	path   string
	runner ProcessRunner
	logger hclog.Logger
	env    []string

	mu     sync.Mutex
	client *goplugin.Client
	remote plugin.Recolorer
}

var _ plugin.Recolorer = (*Executor)(nil)

// New creates an Executor for the plugin binary at path.
func New(path string, opts Options) (*Executor, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("plugin path cannot be empty")
	}

	runner := opts.Runner
	if runner == nil {
		runner = RealProcessRunner{}
	}

	logger := opts.Logger
	if logger == nil {
		if opts.Verbose {
			logger = hclog.New(&hclog.LoggerOptions{
				Name:   "plugin",
				Output: os.Stderr,
				Level:  hclog.Debug,
			})
		} else {
			logger = hclog.New(&hclog.LoggerOptions{
				Name:   "plugin",
				Output: io.Discard,
				Level:  hclog.Off,
			})
		}
	}

	return &Executor{
		path:   path,
		runner: runner,
		logger: logger,
		env:    opts.Env,
	}, nil
}

// Info queries the plugin with --plugin-info and checks protocol compatibility.
func (e *Executor) Info(ctx context.Context) (plugin.PluginInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, InfoTimeout)
	defer cancel()

	stdout, stderr, err := e.runner.Run(ctx, e.path, "--plugin-info")
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return plugin.PluginInfo{}, fmt.Errorf("failed to query plugin: %w: %s", err, msg)
		}
		return plugin.PluginInfo{}, fmt.Errorf("failed to query plugin: %w", err)
	}
	return protocol.ParseInfo(stdout)
}

// RenderIcon calls the plugin's RenderIcon.
func (e *Executor) RenderIcon(ctx context.Context, req plugin.RenderRequest) (plugin.RenderResponse, error) {
	remote, err := e.connect(ctx)
	if err != nil {
		return plugin.RenderResponse{}, err
	}
	return remote.RenderIcon(ctx, req)
}

// ResolveIconSize calls the plugin's ResolveIconSize.
func (e *Executor) ResolveIconSize(ctx context.Context, req plugin.ResolveRequest) (plugin.ResolveResponse, error) {
	remote, err := e.connect(ctx)
	if err != nil {
		return plugin.ResolveResponse{}, err
	}
	return remote.ResolveIconSize(ctx, req)
}

// GetMetadata calls the plugin's GetMetadata.
func (e *Executor) GetMetadata(ctx context.Context) (plugin.PluginInfo, error) {
	remote, err := e.connect(ctx)
	if err != nil {
		return plugin.PluginInfo{}, err
	}
	return remote.GetMetadata(ctx)
}

// Close kills the plugin process, if one was started.
func (e *Executor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.remote = nil
	}
}

func (e *Executor) connect(ctx context.Context) (plugin.Recolorer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.remote != nil {
		return e.remote, nil
	}

	if _, err := e.Info(ctx); err != nil {
		return nil, err
	}

	cmd := exec.Command(e.path) // #nosec G204 - configured plugin path
	cmd.Env = append(os.Environ(), e.env...)

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  plugin.Handshake,
		Plugins:          plugin.PluginMap(nil),
		Cmd:              cmd,
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger,
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.PluginName)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	remote, ok := raw.(plugin.Recolorer)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("plugin returned unexpected type %T", raw)
	}

	e.client = client
	e.remote = remote
	e.logger.Debug("connected to plugin", "path", e.path)
	return remote, nil
}

package plugin

import "context"

// Recolorer is the interface the plugin binary serves and the host calls.
type Recolorer interface {
	// RenderIcon returns the rendered folder icon for a size and colour,
	// producing it from the base asset when needed.
	RenderIcon(ctx context.Context, req RenderRequest) (RenderResponse, error)

	// ResolveIconSize returns the pixel size a folder icon is shown at.
	ResolveIconSize(ctx context.Context, req ResolveRequest) (ResolveResponse, error)

	// GetMetadata returns plugin metadata.
	GetMetadata(ctx context.Context) (PluginInfo, error)
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"`
	BaseDir         string `json:"base_dir,omitempty"`
	SizeClasses     []int  `json:"size_classes,omitempty"`
}

// RenderRequest asks for a folder icon at Size pixels in Color.
type RenderRequest struct {
	Size  int    `json:"size"`
	Color string `json:"color"`
	// Force re-renders even when the icon already exists.
	Force bool `json:"force,omitempty"`
}

// RenderResponse locates a rendered icon.
type RenderResponse struct {
	Path string `json:"path"`
	// URI is the file:// form stored in the file manager's icon metadata.
	URI    string `json:"uri"`
	Cached bool   `json:"cached"`
}

// ResolveRequest describes the folder view the icon will be shown in.
// When HasMetadata is false the parent directory had no view metadata.
type ResolveRequest struct {
	HasMetadata bool   `json:"has_metadata"`
	View        string `json:"view,omitempty"`
	ZoomLevel   string `json:"zoom_level,omitempty"`
}

// ResolveResponse is the resolved icon size.
type ResolveResponse struct {
	Pixels int `json:"pixels"`
	// SizeClass is the largest pre-rendered size not exceeding Pixels.
	SizeClass int `json:"size_class"`
}

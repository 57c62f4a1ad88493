package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/foldertint/pkg/plugin"
)

// ParseInfo decodes and validates --plugin-info output.
func ParseInfo(data []byte) (plugin.PluginInfo, error) {
	var info plugin.PluginInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	if info.PluginProtocol != plugin.PluginProtocol {
		return info, fmt.Errorf("unsupported plugin_protocol: %q", info.PluginProtocol)
	}
	if _, err := IsCompatible(info.ProtocolVersion); err != nil {
		return info, err
	}
	return info, nil
}

package app

import (
	"fmt"
	"os"

	"xbox11/internal/config"
)

// WebviewArgsEnv carries extra command-line arguments for the embedded
// WebView2 rendering surface.
const WebviewArgsEnv = "WEBVIEW2_ADDITIONAL_BROWSER_ARGUMENTS"

// ConfigureWebview exposes the remote-debugging port of the web rendering
// surface when enabled. It is a debugging aid, not a stable protocol.
func ConfigureWebview(cfg config.Webview) error {
	if !cfg.RemoteDebugging {
		return nil
	}
	if cfg.RemoteDebuggingPort <= 0 || cfg.RemoteDebuggingPort > 65535 {
		return fmt.Errorf("webview: invalid remote debugging port %d", cfg.RemoteDebuggingPort)
	}
	return os.Setenv(WebviewArgsEnv, fmt.Sprintf("--remote-debugging-port=%d", cfg.RemoteDebuggingPort))
}

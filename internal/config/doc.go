// Package config resolves mcpinstall's own settings and the platform paths it
// works with.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (MCPINSTALL_CONFIG, MCPINSTALL_PREVIEW,
//     MCPINSTALL_SHOW_SECRETS, MCPINSTALL_NODE_MIN_MAJOR, MCPINSTALL_NVM_DIR,
//     MCPINSTALL_LOG_LEVEL)
//  3. Built-in defaults
//
// Use [NewViper] to bind a flag set and [Load] to obtain the merged [Config].
// [DesktopConfigPath] and [NodeVersionsDir] return the default locations of
// the Claude Desktop config and of nvm-managed Node installs.
package config

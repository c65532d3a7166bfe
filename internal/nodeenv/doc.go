// Package nodeenv locates an npx executable backed by a Node.js runtime of at
// least a given major version.
//
// The system node on PATH is tried first. When it is missing or too old the
// nvm installation directory (~/.nvm/versions/node/vX.Y.Z) is scanned and the
// newest qualifying version wins. Claude Desktop starts MCP servers with a
// minimal PATH, so a runtime found through nvm is reported together with its
// bin directory for the caller to put on the server's PATH.
package nodeenv

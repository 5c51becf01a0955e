// Package connectors provides document source integrations.
// Each connector knows how to pull model documentation from a specific
// source type. The filesystem connector is the only one today.
package connectors

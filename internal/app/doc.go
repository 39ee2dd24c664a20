// Package app wires configuration, logging, the two API clients and the
// favorites store into the UI.
package app

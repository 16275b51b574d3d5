// Package backend manages the local browser backend the title reader drives:
// provisioning its binary, probing its control port, and launching it at most
// once per process.
package backend

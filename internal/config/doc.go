// Package config loads the formkit.json configuration used by the
// formkit CLI's demo server.
package config

/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps its configuration as a singleton stored under a key
derived from the package name. Configuration is loaded from the genesis file
and read by handlers at runtime.
*/
package gconf

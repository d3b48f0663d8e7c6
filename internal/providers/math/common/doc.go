// Package common holds the parameter helpers and shared state used by the
// math tool modules.
//
// Tool handlers take the loosely typed parameter map decoded from JSON and
// return a *types.Result. Evaluation failures are results with Success set
// to false and Kind set to "syntax", "name" or "type"; the error return is
// reserved for failures of the service itself.
package common

// Package service provides the tool registry behind the plotter API.
//
// Providers describe their tools through Definition and run them through
// Execute. The registry routes a tool ID such as "math.evaluate" to the
// provider registered under the prefix before the first dot.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(math.NewProvider(ops))
//	services := registry.Discover("find root", 5)
//	result, err := registry.Execute(ctx, "math.root", params, appCtx)
package service

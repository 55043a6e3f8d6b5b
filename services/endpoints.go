package services

import (
	"fmt"

	"github.com/storeit/vaulted/core"
)

// BaseEndpoints returns framework-agnostic endpoint specifications
// for all core account endpoints.
//
// Each endpoint is a template:
// - Path and Method are set
// - Handler is nil (provided by adapters)
// - Metadata contains OpenAPI information
//
// This allows multiple adapters (Fiber, Gin, Echo) to share the same
// endpoint definitions while providing their own framework-specific handlers.
func BaseEndpoints() []core.Endpoint {
	return []core.Endpoint{
		{
			Path:    "/sign-up",
			Method:  "POST",
			Handler: nil,
			Metadata: core.EndpointMetadata{
				OperationID: "createAccountWithEmailOTP",
				Description: "Create an account and send a one-time email passcode",
			},
		},
		{
			Path:    "/sign-in",
			Method:  "POST",
			Handler: nil,
			Metadata: core.EndpointMetadata{
				OperationID: "signInWithEmailOTP",
				Description: "Send a one-time email passcode to an existing user",
			},
		},
		{
			Path:    "/verify-otp",
			Method:  "POST",
			Handler: nil,
			Metadata: core.EndpointMetadata{
				OperationID: "verifyEmailOTP",
				Description: "Exchange a pending account id and passcode for a session",
			},
		},
		{
			Path:    "/me",
			Method:  "GET",
			Handler: nil,
			Metadata: core.EndpointMetadata{
				OperationID: "getCurrentUser",
				Description: "Resolve the session cookie to the current user record",
			},
		},
		{
			Path:    "/sign-out",
			Method:  "POST",
			Handler: nil,
			Metadata: core.EndpointMetadata{
				OperationID: "signOut",
				Description: "Delete the current session and clear the session cookie",
			},
		},
	}
}

// EndpointRegistry manages a collection of framework-agnostic endpoints
// and handles conflict detection for duplicate METHOD:PATH combinations.
//
// It starts with the base account endpoints and supports registration of
// additional plugin endpoints with automatic conflict detection.
type EndpointRegistry struct {
	// endpoints stores all registered endpoints keyed by "METHOD:PATH"
	endpoints map[string]*core.Endpoint
}

// NewEndpointRegistry creates a new registry with all base account endpoints
// pre-registered.
func NewEndpointRegistry() *EndpointRegistry {
	reg := &EndpointRegistry{
		endpoints: make(map[string]*core.Endpoint),
	}

	// Register all base endpoints
	for i := range BaseEndpoints() {
		ep := BaseEndpoints()[i]
		reg.register(&ep)
	}

	return reg
}

// register adds a single endpoint to the registry with conflict detection.
// Returns error if an endpoint with the same METHOD:PATH already exists.
func (r *EndpointRegistry) register(ep *core.Endpoint) error {
	key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)

	if _, exists := r.endpoints[key]; exists {
		return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
	}

	r.endpoints[key] = ep
	return nil
}

// RegisterPlugin registers additional plugin endpoints to the registry.
// Returns error if any plugin endpoint conflicts with existing endpoints
// or with other plugin endpoints in the same batch.
//
// If an error occurs, no endpoints from the plugin are registered.
func (r *EndpointRegistry) RegisterPlugin(endpoints []core.Endpoint) error {
	// First, check for conflicts with existing endpoints
	for i := range endpoints {
		ep := &endpoints[i]
		key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)

		if _, exists := r.endpoints[key]; exists {
			return fmt.Errorf("plugin endpoint conflict: %s %s already registered", ep.Method, ep.Path)
		}
	}

	// Check for conflicts within the plugin set itself
	seen := make(map[string]bool)
	for i := range endpoints {
		ep := &endpoints[i]
		key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)

		if seen[key] {
			return fmt.Errorf("plugin contains duplicate endpoint: %s %s", ep.Method, ep.Path)
		}
		seen[key] = true
	}

	// No conflicts found, register all plugin endpoints
	for i := range endpoints {
		ep := &endpoints[i]
		r.endpoints[fmt.Sprintf("%s:%s", ep.Method, ep.Path)] = ep
	}

	return nil
}

// RegisterProvider registers the endpoints a dynamic provider advertises,
// with the same all-or-nothing conflict detection as RegisterPlugin.
func (r *EndpointRegistry) RegisterProvider(provider core.EndpointProvider) error {
	return r.RegisterPlugin(provider.GetEndpoints())
}

// Endpoints returns a slice of all registered endpoints
// (both base and plugin endpoints).
func (r *EndpointRegistry) Endpoints() []*core.Endpoint {
	result := make([]*core.Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		result = append(result, ep)
	}
	return result
}

package tools

import (
	"context"
	"fmt"

	"github.com/avelloso/reactant/config"
	"github.com/avelloso/reactant/errors"
	"github.com/avelloso/reactant/tools/mcp"
	"github.com/bmatcuk/doublestar/v4"
)

// Tool defines the interface for any local capability the agent can invoke.
//
// Tools are total with respect to their caller: operational failures (network
// down, file missing, command timeout) are encoded as descriptive result text.
// The error return is reserved for malformed-argument defects, and the
// registry converts even those to text before anything reaches the caller.
type Tool interface {
	Name() string
	Description() string
	// Parameters lists the named arguments the tool binds, in order. A nil
	// slice means the tool accepts the parameter map as-is.
	Parameters() []string
	Execute(ctx context.Context, args map[string]string) (string, error)
}

// Registry holds all invocable tools, keyed by name.
type Registry struct {
	tools      map[string]Tool
	mcpClients []*mcp.Client
}

// NewRegistry builds the registry with the four built-in tools and any tools
// contributed by config-declared MCP servers.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{tools: make(map[string]Tool)}

	r.Register(NewWeatherTool(cfg.WeatherURL))
	r.Register(&RunCommandTool{})
	r.Register(&ReadFileTool{fsAccess: &cfg.FilesystemAccess})
	r.Register(&WriteFileTool{fsAccess: &cfg.FilesystemAccess})

	for _, server := range cfg.AdditionalMCPServers {
		client, err := mcp.NewClient(server.Name, server.Command, server.Args)
		if err != nil {
			fmt.Printf("Warning: skipping MCP server '%s': %v\n", server.Name, err)
			continue
		}
		r.mcpClients = append(r.mcpClients, client)
		for _, t := range client.Tools() {
			r.Register(t)
		}
	}

	return r
}

// Register adds a tool, replacing any previous tool of the same name.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Invoke dispatches to the named tool with parameters bound per the tool's
// declared signature. The only error is an unregistered name; everything the
// tool itself reports comes back as result text.
func (r *Registry) Invoke(ctx context.Context, name string, params map[string]string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", errors.New("tool '%s' is not registered", name)
	}

	result, err := t.Execute(ctx, bindArgs(t.Parameters(), params))
	if err != nil {
		// Malformed-argument defect. Encoded as text so the turn survives.
		return fmt.Sprintf("Tool error: %v", err), nil
	}
	return result, nil
}

// Close stops any MCP server subprocesses started by the registry.
func (r *Registry) Close() {
	for _, c := range r.mcpClients {
		if err := c.Stop(); err != nil {
			fmt.Printf("Warning: failed to stop MCP server '%s': %v\n", c.Name, err)
		}
	}
}

// bindArgs maps the supplied parameters onto the tool's declared argument
// names. A declared name missing from the parameter map falls back to the
// sole supplied value when there is exactly one, so a model that picked the
// wrong key for a single-argument tool still dispatches; otherwise the
// argument defaults to empty.
func bindArgs(declared []string, params map[string]string) map[string]string {
	if declared == nil {
		return params
	}
	args := make(map[string]string, len(declared))
	for _, name := range declared {
		if v, ok := params[name]; ok {
			args[name] = v
			continue
		}
		if len(declared) == 1 && len(params) == 1 {
			for _, v := range params {
				args[name] = v
			}
			continue
		}
		args[name] = ""
	}
	return args
}

// isPathRestricted checks whether path matches any of the glob patterns.
func isPathRestricted(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		match, err := doublestar.PathMatch(pattern, path)
		if err != nil {
			return false, errors.Wrapf(err, "invalid glob pattern '%s'", pattern)
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

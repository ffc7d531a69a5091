// Package mcp connects the tool registry to external MCP servers declared in
// configuration. Each server runs as a subprocess; its tools are discovered
// at startup and registered alongside the built-ins.
package mcp

import (
	"context"
	"os"
	"os/exec"

	"github.com/avelloso/reactant/errors"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Client manages the connection to a single MCP server subprocess.
type Client struct {
	Name  string
	cmd   *exec.Cmd
	conn  *mcpsdk.ClientSession
	tools []*Tool
}

// NewClient starts the MCP server subprocess and discovers its tools.
func NewClient(name, command string, args []string) (*Client, error) {
	cmd := exec.Command(command, args...)
	cmd.Stderr = os.Stderr

	mcpClient := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "reactant", Version: "v1.0.0"}, nil)
	ctx := context.Background()
	conn, err := mcpClient.Connect(ctx, mcpsdk.NewCommandTransport(cmd))
	if err != nil {
		cmd.Process.Kill()
		return nil, errors.Wrapf(err, "failed to connect to MCP server '%s'", name)
	}

	client := &Client{Name: name, cmd: cmd, conn: conn}

	params := &mcpsdk.ListToolsParams{}
	for {
		list, err := conn.ListTools(ctx, params)
		if err != nil {
			cmd.Process.Kill()
			return nil, errors.Wrapf(err, "failed to list tools from MCP server '%s'", name)
		}
		for _, t := range list.Tools {
			client.tools = append(client.tools, &Tool{
				name:        t.Name,
				description: t.Description,
				client:      client,
			})
		}
		if list.NextCursor == "" {
			break
		}
		params.Cursor = list.NextCursor
	}

	return client, nil
}

// Tools returns the tools discovered on this server.
func (c *Client) Tools() []*Tool {
	return c.tools
}

// Stop terminates the MCP server subprocess.
func (c *Client) Stop() error {
	if c.conn != nil {
		c.conn.Close()
	}
	if c.cmd != nil && c.cmd.Process != nil {
		return c.cmd.Process.Kill()
	}
	return nil
}

// Tool is a capability served by an external MCP server. It satisfies the
// registry's Tool interface.
type Tool struct {
	name        string
	description string
	client      *Client
}

func (t *Tool) Name() string { return t.name }

func (t *Tool) Description() string { return t.description }

// Parameters returns nil: MCP tools define their own schemas, so the
// registry passes the parameter map through unchanged.
func (t *Tool) Parameters() []string { return nil }

// Execute forwards the call to the MCP server and concatenates the text
// content of the result.
func (t *Tool) Execute(ctx context.Context, args map[string]string) (string, error) {
	arguments := make(map[string]interface{}, len(args))
	for k, v := range args {
		arguments[k] = v
	}

	result, err := t.client.conn.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      t.name,
		Arguments: arguments,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to call MCP tool '%s'", t.name)
	}

	var out string
	for _, c := range result.Content {
		if text, ok := c.(*mcpsdk.TextContent); ok {
			out += text.Text
		}
	}
	return out, nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultEndpoint = "http://localhost:8080/mcp/stream"

func main() {
	ctx := context.Background()

	endpoint := os.Getenv("MCP_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "job-discovery-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testProbeHealth(ctx, session)
	testDiscoverAndLoadMore(ctx, session)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range tools.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testProbeHealth(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: probe_health")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "probe_health"})
	if err != nil {
		log.Printf("probe_health failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("probe_health passed")
}

func testDiscoverAndLoadMore(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: discover_jobs")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "discover_jobs",
		Arguments: map[string]any{
			"keyword":          "golang, kubernetes",
			"location":         "España",
			"experience_level": "senior",
			"limit":            5,
		},
	})
	if err != nil {
		log.Printf("discover_jobs failed: %v", err)
		return
	}
	printResult(result)

	var page struct {
		SessionID string `json:"session_id"`
		Exhausted bool   `json:"exhausted"`
	}
	if err := decodeStructured(result, &page); err != nil {
		log.Printf("discover_jobs returned unexpected content: %v", err)
		return
	}

	fmt.Println("\nTEST: next_page")
	for i := 0; i < 2 && !page.Exhausted; i++ {
		next, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "next_page",
			Arguments: map[string]any{"session_id": page.SessionID},
		})
		if err != nil {
			log.Printf("next_page failed: %v", err)
			return
		}
		printResult(next)
		if err := decodeStructured(next, &page); err != nil {
			log.Printf("next_page returned unexpected content: %v", err)
			return
		}
	}
	fmt.Println("discover_jobs passed")
}

func decodeStructured(res *mcp.CallToolResult, dst any) error {
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}

// Command pageshot-mcp exposes the capture HTTP API as MCP tools over stdio,
// so agent runtimes can screenshot and read pages without speaking HTTP
// themselves.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// captureResponse mirrors the capture API response model.
type captureResponse struct {
	Success       bool   `json:"success"`
	Cached        bool   `json:"cached"`
	ScreenshotURL string `json:"screenshot_url"`
	Snapshot      *struct {
		ScreenshotPath string              `json:"screenshot_path"`
		URL            string              `json:"url"`
		StatusCode     int                 `json:"status_code"`
		Title          string              `json:"title"`
		TextContent    string              `json:"text_content"`
		Meta           map[string]string   `json:"meta"`
		Headings       map[string][]string `json:"headings"`
		Markdown       string              `json:"markdown"`
	} `json:"snapshot"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// screenshotResponse mirrors the screenshot API response model.
type screenshotResponse struct {
	Success        bool   `json:"success"`
	ScreenshotPath string `json:"screenshot_path"`
	ScreenshotURL  string `json:"screenshot_url"`
	Error          *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("PAGESHOT_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	// Optional: when the service runs without auth, no key is needed.
	apiKey := os.Getenv("PAGESHOT_API_KEY")

	s := server.NewMCPServer(
		"pageshot",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	capturePageTool := mcp.NewTool("capture_page",
		mcp.WithDescription("Render a web page in a headless browser, save a full-page screenshot, and return the page content (title, text, headings, meta). Scrolls through the page first so lazy-loaded content is included."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the web page to capture"),
		),
		mcp.WithBoolean("full_page",
			mcp.Description("Capture the entire scrollable page instead of just the viewport (default: true)"),
		),
		mcp.WithBoolean("include_markdown",
			mcp.Description("Return the page content as Markdown instead of plain text"),
		),
		mcp.WithString("css_selector",
			mcp.Description("CSS selector that narrows the returned text to matching elements"),
		),
		mcp.WithBoolean("stealth",
			mcp.Description("Apply anti-bot-detection evasions before navigation"),
		),
		mcp.WithNumber("max_age_ms",
			mcp.Description("Accept a cached snapshot captured within this many milliseconds (0 forces a fresh capture)"),
		),
	)
	s.AddTool(capturePageTool, handleCapturePage(apiURL, apiKey))

	captureScreenshotTool := mcp.NewTool("capture_screenshot",
		mcp.WithDescription("Render a web page in a headless browser and save a screenshot, without extracting content. Returns the path where the PNG was stored."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the web page to screenshot"),
		),
		mcp.WithBoolean("full_page",
			mcp.Description("Capture the entire scrollable page instead of just the viewport (default: true)"),
		),
		mcp.WithNumber("viewport_width",
			mcp.Description("Viewport width in pixels (default: 1920)"),
		),
		mcp.WithNumber("viewport_height",
			mcp.Description("Viewport height in pixels (default: 1080)"),
		),
	)
	s.AddTool(captureScreenshotTool, handleCaptureScreenshot(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the capture API and returns the response
// body. The API key header is attached only when a key is configured.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleCapturePage(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload := map[string]interface{}{"url": url}

		args := request.GetArguments()
		for _, key := range []string{"full_page", "include_markdown", "stealth", "max_age_ms"} {
			if v, ok := args[key]; ok {
				payload[key] = v
			}
		}
		if sel := request.GetString("css_selector", ""); sel != "" {
			payload["css_selector"] = sel
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/capture", payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("capture request failed: %v", err)), nil
		}

		var capResp captureResponse
		if err := json.Unmarshal(respBody, &capResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !capResp.Success {
			errMsg := "capture failed"
			if capResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", capResp.Error.Code, capResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}
		if capResp.Snapshot == nil {
			return mcp.NewToolResultError("capture succeeded but returned no snapshot"), nil
		}

		snap := capResp.Snapshot

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Title: %s\nSource: %s\n", snap.Title, snap.URL))
		sb.WriteString(fmt.Sprintf("Screenshot: %s\n", snap.ScreenshotPath))
		if capResp.Cached {
			sb.WriteString("(served from cache)\n")
		}
		sb.WriteString("\n")

		if snap.Markdown != "" {
			sb.WriteString(snap.Markdown)
		} else {
			sb.WriteString(snap.TextContent)
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleCaptureScreenshot(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload := map[string]interface{}{"url": url}

		args := request.GetArguments()
		for _, key := range []string{"full_page", "viewport_width", "viewport_height"} {
			if v, ok := args[key]; ok {
				payload[key] = v
			}
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/screenshot", payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("screenshot request failed: %v", err)), nil
		}

		var shotResp screenshotResponse
		if err := json.Unmarshal(respBody, &shotResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !shotResp.Success {
			errMsg := "screenshot failed"
			if shotResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", shotResp.Error.Code, shotResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Screenshot saved to %s", shotResp.ScreenshotPath)), nil
	}
}

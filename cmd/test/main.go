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

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

var (
	baseURL   string
	timeout   time.Duration
	platform  string
	topic     string
	platforms []string
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// check is one smoke test; it writes its report to w.
type check struct {
	name string
	fn   func(ctx context.Context, w io.Writer) bool
}

func main() {
	root := &cobra.Command{
		Use:          "studio-test",
		Short:        "Smoke tests for a running content studio server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the studio server")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "Per-request timeout")
	root.PersistentFlags().StringVar(&platform, "platform", "instagram", "Target platform")
	root.PersistentFlags().StringVar(&topic, "topic", "Launch of our hydrating night serum", "Topic for caption and hashtags")
	root.PersistentFlags().StringSliceVar(&platforms, "platforms", []string{"instagram", "twitter", "linkedin"}, "Calendar platforms")

	root.AddCommand(
		single("health", "Check the health endpoint", func(tc *TestClient) check { return tc.healthCheck() }),
		single("agent-card", "Fetch and validate the agent card", func(tc *TestClient) check { return tc.agentCard() }),
		single("caption", "Generate a caption", func(tc *TestClient) check { return tc.captionCheck() }),
		single("hashtags", "Generate a hashtag set", func(tc *TestClient) check { return tc.hashtagsCheck() }),
		single("ideas", "Generate content ideas", func(tc *TestClient) check { return tc.ideasCheck() }),
		single("calendar", "Generate a weekly calendar", func(tc *TestClient) check { return tc.calendarCheck() }),
		single("a2a", "Send the topic as an A2A message", func(tc *TestClient) check { return tc.a2aCheck() }),
		&cobra.Command{
			Use:   "all",
			Short: "Run every check; generation checks run concurrently",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAll(cmd.Context(), NewTestClient(baseURL))
			},
		},
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func single(use, short string, pick func(*TestClient) check) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			tc := NewTestClient(baseURL)
			c := pick(tc)
			printHeader("Content Studio - " + c.name)
			fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, tc.baseURL, colorReset)
			if !c.fn(cmd.Context(), os.Stdout) {
				return fmt.Errorf("%s failed", c.name)
			}
			return nil
		},
	}
}

func runAll(ctx context.Context, tc *TestClient) error {
	printHeader("Content Studio - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, tc.baseURL, colorReset)

	passed, failed := 0, 0
	tally := func(ok bool) {
		if ok {
			passed++
		} else {
			failed++
		}
	}

	for _, c := range []check{tc.healthCheck(), tc.agentCard()} {
		tally(c.fn(ctx, os.Stdout))
		fmt.Println()
	}

	concurrent := []check{tc.captionCheck(), tc.hashtagsCheck(), tc.ideasCheck(), tc.calendarCheck(), tc.a2aCheck()}
	outputs := make([]bytes.Buffer, len(concurrent))
	results := make([]bool, len(concurrent))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range concurrent {
		g.Go(func() error {
			results[i] = c.fn(gctx, &outputs[i])
			return nil
		})
	}
	_ = g.Wait()

	for i := range concurrent {
		_, _ = io.Copy(os.Stdout, &outputs[i])
		fmt.Println()
		tally(results[i])
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func (tc *TestClient) healthCheck() check {
	return check{name: "Health Check", fn: func(ctx context.Context, w io.Writer) bool {
		printTestHeader(w, "Testing Health Check Endpoint")

		status, body, err := tc.do(ctx, w, http.MethodGet, "/health", nil)
		if err != nil {
			printError(w, fmt.Sprintf("Request failed: %v", err))
			return false
		}
		if status != http.StatusOK {
			printError(w, fmt.Sprintf("Expected status 200, got %d", status))
			return false
		}
		if string(body) != "OK" {
			printError(w, fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
			return false
		}

		printSuccess(w, "Health check passed")
		return true
	}}
}

func (tc *TestClient) agentCard() check {
	return check{name: "Agent Card", fn: func(ctx context.Context, w io.Writer) bool {
		printTestHeader(w, "Testing Agent Card Endpoint")

		status, body, err := tc.do(ctx, w, http.MethodGet, "/.well-known/agent.json", nil)
		if err != nil {
			printError(w, fmt.Sprintf("Request failed: %v", err))
			return false
		}
		if status != http.StatusOK {
			printError(w, fmt.Sprintf("Expected status 200, got %d", status))
			fmt.Fprintf(w, "Response: %s\n", string(body))
			return false
		}

		var card map[string]any
		if err := json.Unmarshal(body, &card); err != nil {
			printError(w, fmt.Sprintf("Invalid JSON response: %v", err))
			return false
		}
		for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
			if _, ok := card[field]; !ok {
				printError(w, fmt.Sprintf("Missing required field: %s", field))
				return false
			}
		}

		printSuccess(w, "Agent card is valid")
		printJSON(w, body)
		return true
	}}
}

func (tc *TestClient) captionCheck() check {
	return tc.generateCheck("Caption", map[string]any{"action": "caption", "platform": platform, "topic": topic})
}

func (tc *TestClient) hashtagsCheck() check {
	return tc.generateCheck("Hashtags", map[string]any{"action": "hashtags", "topic": topic})
}

func (tc *TestClient) ideasCheck() check {
	return tc.generateCheck("Content Ideas", map[string]any{"action": "ideas", "platform": platform})
}

func (tc *TestClient) calendarCheck() check {
	return tc.generateCheck("Weekly Calendar", map[string]any{"action": "calendar", "platforms": platforms})
}

func (tc *TestClient) generateCheck(name string, request map[string]any) check {
	return check{name: name, fn: func(ctx context.Context, w io.Writer) bool {
		printTestHeader(w, "Testing "+name+" Generation")

		status, body, err := tc.do(ctx, w, http.MethodPost, "/api/generate", request)
		if err != nil {
			printError(w, fmt.Sprintf("Request failed: %v", err))
			return false
		}

		var resp struct {
			Success  bool            `json:"success"`
			Data     json.RawMessage `json:"data"`
			Warnings []string        `json:"warnings"`
			Error    string          `json:"error"`
			Raw      string          `json:"raw"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			printError(w, fmt.Sprintf("Invalid JSON response: %v", err))
			return false
		}
		if status != http.StatusOK || !resp.Success {
			printError(w, fmt.Sprintf("Status %d: %s", status, resp.Error))
			if resp.Raw != "" {
				fmt.Fprintf(w, "%sRaw:%s %s\n", colorYellow, colorReset, resp.Raw)
			}
			return false
		}

		printSuccess(w, name+" generated")
		printJSON(w, resp.Data)
		for _, warning := range resp.Warnings {
			fmt.Fprintf(w, "%s! %s%s\n", colorYellow, warning, colorReset)
		}
		return true
	}}
}

func (tc *TestClient) a2aCheck() check {
	return check{name: "A2A Message", fn: func(ctx context.Context, w io.Writer) bool {
		printTestHeader(w, "Testing A2A Message")

		request := map[string]any{
			"jsonrpc": "2.0",
			"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
			"method":  "message/send",
			"params": map[string]any{
				"message": map[string]any{
					"kind":  "message",
					"role":  "user",
					"parts": []map[string]any{{"kind": "text", "text": topic}},
				},
				"configuration": map[string]any{
					"blocking":            true,
					"acceptedOutputModes": []string{"text", "data"},
				},
			},
		}

		status, body, err := tc.do(ctx, w, http.MethodPost, "/a2a/studio", request)
		if err != nil {
			printError(w, fmt.Sprintf("Request failed: %v", err))
			return false
		}
		if status != http.StatusOK {
			printError(w, fmt.Sprintf("Expected status 200, got %d", status))
			return false
		}

		var resp struct {
			Error  json.RawMessage `json:"error"`
			Result struct {
				Status struct {
					State   string `json:"state"`
					Message struct {
						Parts []struct {
							Text string `json:"text"`
						} `json:"parts"`
					} `json:"message"`
				} `json:"status"`
				Artifacts json.RawMessage `json:"artifacts"`
			} `json:"result"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			printError(w, fmt.Sprintf("Invalid JSON response: %v", err))
			return false
		}
		if len(resp.Error) > 0 {
			printError(w, "Request returned an error")
			printJSON(w, resp.Error)
			return false
		}
		if state := resp.Result.Status.State; state != "completed" {
			printError(w, fmt.Sprintf("Expected state 'completed', got '%s'", state))
			for _, part := range resp.Result.Status.Message.Parts {
				fmt.Fprintln(w, part.Text)
			}
			return false
		}

		printSuccess(w, "A2A task completed")
		fmt.Fprintf(w, "\n%sAgent reply:%s\n", colorGreen, colorReset)
		fmt.Fprintln(w, strings.Repeat("=", 80))
		for _, part := range resp.Result.Status.Message.Parts {
			fmt.Fprintln(w, part.Text)
		}
		fmt.Fprintln(w, strings.Repeat("=", 80))
		if len(resp.Result.Artifacts) > 0 {
			fmt.Fprintf(w, "\n%sArtifacts:%s\n", colorPurple, colorReset)
			printJSON(w, resp.Result.Artifacts)
		}
		return true
	}}
}

func (tc *TestClient) do(ctx context.Context, w io.Writer, method, path string, payload any) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Fprintf(w, "%s %s\n", method, url)

	var body io.Reader
	if payload != nil {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return 0, nil, err
		}
		fmt.Fprintf(w, "%sRequest:%s\n%s\n\n", colorYellow, colorReset, data)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, err
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(w io.Writer, text string) {
	fmt.Fprintf(w, "%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

func printSuccess(w io.Writer, text string) {
	fmt.Fprintf(w, "%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(w io.Writer, text string) {
	fmt.Fprintf(w, "%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(w io.Writer, data []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err == nil {
		fmt.Fprintf(w, "\n%sResponse:%s\n%s\n", colorYellow, colorReset, pretty.String())
	}
}

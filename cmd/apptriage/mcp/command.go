// Package mcp implements the `mcp` command for apptriage.
package mcp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apptriage/apptriage/internal/cmdlogger"
	"github.com/apptriage/apptriage/internal/cmdreporter"
	"github.com/apptriage/apptriage/internal/rules"
	"github.com/apptriage/apptriage/internal/scanner"
	"github.com/apptriage/apptriage/internal/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v3"
)

// Command is the entry point for the `mcp` subcommand.
func Command(_, _ io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "mcp",
		Usage:       "Run apptriage as an MCP service",
		Description: "Run apptriage as an MCP service, speaking the MCP protocol over stdin/stdout.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "sse",
				DefaultText: "localhost:8080",
				Value:       "localhost:8080",
				Usage:       "The listening address for the SSE server, e.g. localhost:8080",
			},
		},
		Action: action,
	}
}

// scanProjectInput is the input for the scan_project tool.
type scanProjectInput struct {
	Path    string   `json:"path"    jsonschema:"An absolute or relative path to the iOS project, workspace, or directory to scan."`
	Rules   []string `json:"rules"   jsonschema:"Optional list of rule IDs to run; all rules run when empty."`
	Exclude []string `json:"exclude" jsonschema:"Optional list of rule IDs to skip."`
}

// explainRuleInput is the input for the explain_rule tool.
type explainRuleInput struct {
	RuleID string `json:"rule_id" jsonschema:"The rule ID to explain."`
}

// listRulesInput is a placeholder, as the SDK does not support a tool call
// with no arguments.
type listRulesInput struct {
	Verbose bool `json:"verbose" jsonschema:"ignore this parameter"`
}

func action(ctx context.Context, cmd *cli.Command) error {
	s := mcp.NewServer(&mcp.Implementation{
		Name: "apptriage", Version: version.Version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name: "scan_project",
		Description: "Statically checks an iOS project's build artifacts for App Store rejection risks." +
			" Inspects the Info.plist, entitlements, build settings, dependencies, and sources, without building or running the app." +
			" Use this tool to pre-review a project before submission.",
	}, handleScan)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_rules",
		Description: "Lists every registered rule with its ID, name, category, severity, and App Store guideline.",
	}, handleListRules)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "explain_rule",
		Description: "Retrieves the full metadata for a given rule ID, including fix guidance.",
	}, handleExplainRule)

	// Provide two options, sse on a network port, or stdio.
	if cmd.IsSet("sse") {
		sseAddr := cmd.String("sse")
		cmdlogger.Infof("Starting SSE server on %s", sseAddr)
		handler := mcp.NewSSEHandler(func(_ *http.Request) *mcp.Server {
			return s
		}, nil)
		srv := &http.Server{
			Addr:         sseAddr,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}
		if err := srv.ListenAndServe(); err != nil {
			cmdlogger.Errorf("mcp error: %s", err)
			return err
		}
	} else {
		cmdlogger.SendEverythingToStderr()
		cmdlogger.Infof("Starting MCP server on stdio")
		if err := s.Run(ctx, &mcp.StdioTransport{}); err != nil {
			cmdlogger.Errorf("mcp error: %s", err)
			return err
		}
	}

	return nil
}

func handleScan(_ context.Context, _ *mcp.CallToolRequest, input *scanProjectInput) (*mcp.CallToolResult, *scanner.Result, error) {
	result, err := scanner.Scan(scanner.Options{
		Path:    input.Path,
		Rules:   input.Rules,
		Exclude: input.Exclude,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to run scanner: %w", err)
	}

	buf := strings.Builder{}
	if err := cmdreporter.PrintResult(result, "text", &buf, 0); err != nil {
		return nil, nil, fmt.Errorf("failed to render result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
		},
	}, result, nil
}

// ruleSummary is the serializable rule listing returned by list_rules.
type ruleSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Severity  string `json:"severity"`
	Guideline string `json:"guideline"`
}

func handleListRules(_ context.Context, _ *mcp.CallToolRequest, _ *listRulesInput) (*mcp.CallToolResult, []ruleSummary, error) {
	registry := rules.NewRegistry()

	summaries := make([]ruleSummary, 0, len(registry.All()))
	lines := strings.Builder{}
	for _, r := range registry.All() {
		summaries = append(summaries, ruleSummary{
			ID:        r.ID(),
			Name:      r.Name(),
			Category:  string(r.Category()),
			Severity:  string(r.Severity()),
			Guideline: r.Guideline(),
		})
		fmt.Fprintf(&lines, "%s [%s/%s] guideline %s: %s\n",
			r.ID(), r.Category(), r.Severity(), r.Guideline(), r.Summary())
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: lines.String()},
		},
	}, summaries, nil
}

// ruleDetail is the full rule metadata returned by explain_rule.
type ruleDetail struct {
	ruleSummary
	Confidence       string `json:"confidence"`
	Summary          string `json:"summary"`
	FixGuidance      string `json:"fix_guidance"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// handleExplainRule reports an unknown rule ID as a not-found message
// rather than an error, per the adapter contract.
func handleExplainRule(_ context.Context, _ *mcp.CallToolRequest, input *explainRuleInput) (*mcp.CallToolResult, any, error) {
	registry := rules.NewRegistry()

	rule, ok := registry.Lookup(input.RuleID)
	if !ok {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("rule %q not found; valid IDs: %s",
					input.RuleID, strings.Join(registry.IDs(), ", "))},
			},
		}, nil, nil
	}

	detail := ruleDetail{
		ruleSummary: ruleSummary{
			ID:        rule.ID(),
			Name:      rule.Name(),
			Category:  string(rule.Category()),
			Severity:  string(rule.Severity()),
			Guideline: rule.Guideline(),
		},
		Confidence:       string(rule.Confidence()),
		Summary:          rule.Summary(),
		FixGuidance:      rule.FixGuidance(),
		DocumentationURL: rule.DocumentationURL(),
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s: %s\n%s\nFix: %s",
				detail.ID, detail.Name, detail.Summary, detail.FixGuidance)},
		},
	}, detail, nil
}

package mcp

// In this file: MCP prompt templates.

import (
	"context"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

// serverPrompt pairs a prompt definition with its handler.
type serverPrompt struct {
	prompt  mcplib.Prompt
	handler mcpsrv.PromptHandlerFunc
}

// prompts returns all MCP prompts that this server exposes.
func (s *Server) prompts() []serverPrompt {
	return []serverPrompt{
		{
			prompt: mcplib.NewPrompt("triage_expert",
				mcplib.WithPromptDescription("System message for a Senior Support Engineer reviewing the ticket queue and suggesting next steps."),
			),
			handler: s.handleTriageExpertPrompt,
		},
	}
}

const triageExpertText = `You are a Senior Support Engineer with 10+ years of experience in enterprise support systems.

Your role is to:
1. Review the current ticket queue (available at system://ticket_queue)
2. Analyze ticket priorities, statuses, and assignments
3. Suggest the next steps for triage and resolution
4. Identify any tickets that need immediate attention or escalation

Please review the ticket queue and provide:
- A summary of the current ticket status
- Recommendations for prioritization
- Suggested assignments or escalations
- Any patterns or trends you notice

Remember to consider:
- High priority tickets should be addressed first
- Unassigned tickets may need routing
- Tickets in progress should be monitored
- Closed tickets indicate successful resolution

Use the available tools (create_ticket, update_ticket_status, search_knowledge_base) to take action as needed.`

func (s *Server) handleTriageExpertPrompt(ctx context.Context, req mcplib.GetPromptRequest) (*mcplib.GetPromptResult, error) {
	return mcplib.NewGetPromptResult(
		"Senior Support Engineer triage workflow",
		[]mcplib.PromptMessage{
			mcplib.NewPromptMessage(mcplib.RoleUser, mcplib.NewTextContent(triageExpertText)),
		},
	), nil
}

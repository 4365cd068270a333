package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/vire-credit/internal/interfaces"
	"github.com/bobmcallan/vire-credit/internal/models"
)

// RegisterTools registers the credit tools on s and returns how many were added.
func RegisterTools(s *server.MCPServer, svc interfaces.CreditService) int {
	tools := []server.ServerTool{
		{Tool: PullCreditReportTool(), Handler: PullCreditReportHandler(svc)},
		{Tool: CreateLinkTokenTool(), Handler: CreateLinkTokenHandler(svc)},
		{Tool: ExchangePublicTokenTool(), Handler: ExchangePublicTokenHandler(svc)},
		{Tool: PullLinkedCreditReportTool(), Handler: PullLinkedCreditReportHandler(svc)},
		{Tool: GetCreditReportTool(), Handler: GetCreditReportHandler(svc)},
		{Tool: ListCreditReportsTool(), Handler: ListCreditReportsHandler(svc)},
		{Tool: AnalyzeCreditReportTool(), Handler: AnalyzeCreditReportHandler(svc)},
		{Tool: SubmitDisputeTool(), Handler: SubmitDisputeHandler(svc)},
		{Tool: GetDisputeStatusTool(), Handler: GetDisputeStatusHandler(svc)},
		{Tool: ListDisputesTool(), Handler: ListDisputesHandler(svc)},
		{Tool: EnableCreditMonitoringTool(), Handler: EnableCreditMonitoringHandler(svc)},
	}
	s.AddTools(tools...)
	return len(tools)
}

func consumerOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Caller's user identifier")),
		mcp.WithString("first_name", mcp.Required(), mcp.Description("Consumer first name")),
		mcp.WithString("last_name", mcp.Required(), mcp.Description("Consumer last name")),
		mcp.WithString("tax_id", mcp.Required(), mcp.Description("9-digit tax id; dashes are ignored")),
		mcp.WithString("date_of_birth", mcp.Description("Date of birth, YYYY-MM-DD")),
		mcp.WithString("consent_timestamp", mcp.Required(), mcp.Description("RFC 3339 time the consumer consented to the pull")),
		mcp.WithObject("address", mcp.Description("Postal address: street, city, state, zip")),
		mcp.WithArray("bureaus", mcp.WithStringItems(), mcp.Description("Subset of experian, equifax, transunion. Defaults to all three.")),
		mcp.WithString("ip_address", mcp.Description("Consumer IP address at consent time")),
	}
}

// PullCreditReportTool pulls a tri-bureau report through the direct-pull provider.
func PullCreditReportTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Pull a full credit report from the selected bureaus through the primary provider. Stores the reports and their analyses."),
	}, consumerOptions()...)
	return mcp.NewTool("pull_credit_report", opts...)
}

func PullCreditReportHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req models.PullCreditRequest
		if err := bindArguments(r, &req); err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		result, err := svc.PullReport(ctx, req)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(result), nil
	}
}

func CreateLinkTokenTool() mcp.Tool {
	return mcp.NewTool("create_link_token",
		mcp.WithDescription("Start a link flow with the fallback provider. Returns a short-lived link token for the consumer-facing link UI."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Caller's user identifier")),
	)
}

func CreateLinkTokenHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		token, err := svc.CreateLinkToken(ctx, r.GetString("user_id", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(token), nil
	}
}

func ExchangePublicTokenTool() mcp.Tool {
	return mcp.NewTool("exchange_public_token",
		mcp.WithDescription("Exchange the public token from a completed link flow for an access token."),
		mcp.WithString("public_token", mcp.Required(), mcp.Description("Public token returned by the link UI")),
	)
}

func ExchangePublicTokenHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		exchange, err := svc.ExchangePublicToken(ctx, r.GetString("public_token", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(exchange), nil
	}
}

func PullLinkedCreditReportTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Pull a credit report through the fallback provider using the access token from a completed link flow."),
		mcp.WithString("access_token", mcp.Required(), mcp.Description("Access token from exchange_public_token")),
	}, consumerOptions()...)
	return mcp.NewTool("pull_linked_credit_report", opts...)
}

func PullLinkedCreditReportHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req models.PullCreditRequest
		if err := bindArguments(r, &req); err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		result, err := svc.PullLinkedReport(ctx, r.GetString("access_token", ""), req)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(result), nil
	}
}

func GetCreditReportTool() mcp.Tool {
	return mcp.NewTool("get_credit_report",
		mcp.WithDescription("Get a stored credit report by id."),
		mcp.WithString("report_id", mcp.Required(), mcp.Description("Report id from a previous pull")),
	)
}

func GetCreditReportHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		report, err := svc.GetReport(ctx, r.GetString("report_id", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(report), nil
	}
}

func ListCreditReportsTool() mcp.Tool {
	return mcp.NewTool("list_credit_reports",
		mcp.WithDescription("List stored credit reports for a user."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Caller's user identifier")),
	)
}

func ListCreditReportsHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reports, err := svc.ListReports(ctx, r.GetString("user_id", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		if reports == nil {
			reports = []models.CreditReport{}
		}
		return jsonResult(reports), nil
	}
}

// AnalyzeCreditReportTool analyzes a stored report, or a report passed inline.
func AnalyzeCreditReportTool() mcp.Tool {
	return mcp.NewTool("analyze_credit_report",
		mcp.WithDescription("Analyze a credit report: health band, score breakdown, issues, recommendations and dispute opportunities. Pass report_id for a stored report or report for an inline one."),
		mcp.WithString("report_id", mcp.Description("Stored report id")),
		mcp.WithBoolean("refresh", mcp.Description("Re-run the analysis even if one is cached")),
		mcp.WithObject("report", mcp.Description("Full credit report to analyze without storing")),
	)
}

func AnalyzeCreditReportHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ReportID string               `json:"report_id"`
			Refresh  bool                 `json:"refresh"`
			Report   *models.CreditReport `json:"report"`
		}
		if err := bindArguments(r, &args); err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		if args.Report != nil {
			return jsonResult(svc.AnalyzeReport(*args.Report)), nil
		}
		if args.ReportID == "" {
			return errorResult("Error: report_id or report is required"), nil
		}

		analysis, err := svc.GetAnalysis(ctx, args.ReportID, args.Refresh)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(analysis), nil
	}
}

func SubmitDisputeTool() mcp.Tool {
	return mcp.NewTool("submit_dispute",
		mcp.WithDescription("Submit a dispute on one tradeline of a report through the primary provider."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Caller's user identifier")),
		mcp.WithString("report_id", mcp.Required(), mcp.Description("Report the account appears on")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Disputed account id")),
		mcp.WithString("bureau", mcp.Required(), mcp.Enum(string(models.BureauExperian), string(models.BureauEquifax), string(models.BureauTransUnion))),
		mcp.WithString("reason", mcp.Required(), mcp.Description("Dispute reason, e.g. not_my_account, incorrect_balance, never_late")),
		mcp.WithString("explanation", mcp.Description("Free-text explanation sent to the bureau")),
		mcp.WithArray("supporting_documents", mcp.WithStringItems(), mcp.Description("References to supporting documents")),
	)
}

func SubmitDisputeHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req models.SubmitDisputeRequest
		if err := bindArguments(r, &req); err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		resp, err := svc.SubmitDispute(ctx, req)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(resp), nil
	}
}

func GetDisputeStatusTool() mcp.Tool {
	return mcp.NewTool("get_dispute_status",
		mcp.WithDescription("Get the provider's current status of a submitted dispute."),
		mcp.WithString("dispute_id", mcp.Required(), mcp.Description("Dispute id from submit_dispute")),
	)
}

func GetDisputeStatusHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view, err := svc.DisputeStatus(ctx, r.GetString("dispute_id", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(view), nil
	}
}

func ListDisputesTool() mcp.Tool {
	return mcp.NewTool("list_disputes",
		mcp.WithDescription("List disputes submitted for a user with their last known status."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Caller's user identifier")),
	)
}

func ListDisputesHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		records, err := svc.ListDisputes(ctx, r.GetString("user_id", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		if records == nil {
			records = []models.DisputeRecord{}
		}
		return jsonResult(records), nil
	}
}

func EnableCreditMonitoringTool() mcp.Tool {
	return mcp.NewTool("enable_credit_monitoring",
		mcp.WithDescription("Register credit monitoring for a user with the primary provider."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Caller's user identifier")),
	)
}

func EnableCreditMonitoringHandler(svc interfaces.CreditService) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		handle, err := svc.EnableMonitoring(ctx, r.GetString("user_id", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(handle), nil
	}
}

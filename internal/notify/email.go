// internal/notify/email.go
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lease-advisor/internal/common/config"
	commonerrors "lease-advisor/internal/common/errors"
	"lease-advisor/internal/common/logger"
	"lease-advisor/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESService is the slice of the SES client used here, split out for mocking.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// LeadNotifier emails the admin inbox when a new lead lands. Disabled by
// default; when disabled Notify is a no-op so callers never branch on it.
type LeadNotifier struct {
	cfg    config.NotificationConfig
	client SESService
	logger logger.Logger
}

func NewLeadNotifier(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*LeadNotifier, error) {
	n := &LeadNotifier{cfg: cfg, logger: log}
	if !cfg.Email.Enabled {
		return n, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	n.client = ses.NewFromConfig(awsCfg)
	return n, nil
}

// NewLeadNotifierWithClient wires a preconstructed SES client, used in tests.
func NewLeadNotifierWithClient(cfg config.NotificationConfig, client SESService, log logger.Logger) *LeadNotifier {
	return &LeadNotifier{cfg: cfg, client: client, logger: log}
}

// NotifyLeadCreated sends the admin a summary of the new lead. Failures are
// reported but callers typically log and move on: a lost email never blocks
// the lead write.
func (n *LeadNotifier) NotifyLeadCreated(ctx context.Context, lead *models.Lead) error {
	if !n.cfg.Email.Enabled || n.client == nil {
		return nil
	}

	subject := fmt.Sprintf("New lead #%d", lead.ID)
	body := renderLeadBody(lead)

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.cfg.Email.AdminEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(n.cfg.Email.FromEmail),
	})
	if err != nil {
		n.logger.Error("lead notification failed", map[string]interface{}{
			"leadId": lead.ID,
			"error":  err.Error(),
		})
		return commonerrors.NewNotificationSendFailedError(err)
	}

	n.logger.Info("lead notification sent", map[string]interface{}{
		"leadId": lead.ID,
	})
	return nil
}

func renderLeadBody(lead *models.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new lead was created at %s.\n\n", lead.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Lead ID: %d\n", lead.ID)
	fmt.Fprintf(&b, "Customer ID: %d\n", lead.CustomerID)
	fmt.Fprintf(&b, "Max monthly budget: %.2f\n", lead.MaxMonthlyBudget)
	fmt.Fprintf(&b, "Available down payment: %.2f\n", lead.AvailableDownPayment)
	if lead.PreferredCategory != "" {
		fmt.Fprintf(&b, "Preferred category: %s\n", lead.PreferredCategory)
	}
	fmt.Fprintf(&b, "Status: %s\n", lead.QualificationStatus)
	return b.String()
}

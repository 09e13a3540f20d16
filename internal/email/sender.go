package email

import (
	"context"
	"fmt"

	"landlord_portal_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes
	FileName string // e.g. "lease-<property>-contract.docx"
	MIMEType string
}

// LeaseEmail describes a lease delivered to a tenant.
type LeaseEmail struct {
	ToEmail         string
	TenantName      string
	LandlordName    string
	PropertyAddress string
	StartDate       string
	MonthlyRent     string
}

type Sender interface {
	SendLeaseEmail(ctx context.Context, lease LeaseEmail, attachments ...Attachment) error
}

// NewSender returns an SMTP sender, or nil when email is disabled.
func NewSender(cfg config.SMTPConfig) (Sender, error) {
	if !cfg.IsEmailEnabled() {
		return nil, nil
	}
	if cfg.GetSMTPPort() <= 0 {
		return nil, fmt.Errorf("invalid SMTP port %d", cfg.GetSMTPPort())
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}

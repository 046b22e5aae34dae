package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/housecheck/inspections-service/internal/config"
	"github.com/housecheck/inspections-service/internal/models"
	"github.com/housecheck/inspections-service/internal/utils"
)

// NotificationService sends assignment emails and overdue reminders.
// Either client may be nil when its credentials are absent; sends are
// then logged and skipped so local runs need no vendor accounts.
type NotificationService struct {
	cfg            *config.Config
	twilioClient   *twilio.RestClient
	sendgridClient *sendgrid.Client
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	s := &NotificationService{cfg: cfg}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		s.twilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	if cfg.SendGridAPIKey != "" {
		s.sendgridClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	return s
}

// NotifySubtaskAssigned emails everyone newly assigned to a subtask.
func (s *NotificationService) NotifySubtaskAssigned(
	subtask *models.Subtask,
	inspection *models.Inspection,
	property *models.Property,
	assignees []*models.Profile,
) {
	subject := fmt.Sprintf("New task at %s", property.Name)
	body := fmt.Sprintf(
		"You were assigned a task for the %s inspection at %s on %s.\n\nTask: %s\n",
		inspection.InspectionType,
		property.Name,
		inspection.ScheduledDate.Format("Jan 2, 2006"),
		subtask.Description,
	)
	for _, p := range assignees {
		s.sendEmail(p.FullName, p.Email, subject, body)
	}
}

// NotifyOverdue pings the property manager once about an inspection
// that slipped past its scheduled date.
func (s *NotificationService) NotifyOverdue(
	inspection *models.Inspection,
	property *models.Property,
	manager *models.Profile,
) {
	subject := fmt.Sprintf("Overdue inspection at %s", property.Name)
	body := fmt.Sprintf(
		"The %s inspection at %s was scheduled for %s and has not been completed.",
		inspection.InspectionType,
		property.Name,
		inspection.ScheduledDate.Format("Jan 2, 2006"),
	)

	s.sendEmail(manager.FullName, manager.Email, subject, body)
	if manager.Phone != "" {
		s.sendSMS(manager.Phone, subject+" :: "+body)
	}
}

func (s *NotificationService) sendEmail(toName, toEmail, subject, plainBody string) {
	if s.sendgridClient == nil {
		utils.Logger.Warnf("SendGrid client is nil, skipping email to %s", toEmail)
		return
	}
	from := mail.NewEmail(s.cfg.OrganizationName, s.cfg.SendgridFromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plainBody, "<p>"+plainBody+"</p>")
	msg.TrackingSettings = &mail.TrackingSettings{
		ClickTracking: &mail.ClickTrackingSetting{
			Enable: utils.Ptr(false),
		},
	}
	if s.cfg.SendgridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}
	if _, err := s.sendgridClient.Send(msg); err != nil {
		utils.Logger.WithError(err).Warnf("Email send failure to %s", toEmail)
	}
}

func (s *NotificationService) sendSMS(toPhone, body string) {
	if s.twilioClient == nil {
		utils.Logger.Warnf("Twilio client is nil, skipping SMS to %s", toPhone)
		return
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(toPhone)
	params.SetFrom(s.cfg.TwilioFromPhone)
	params.SetBody(body)
	if _, err := s.twilioClient.Api.CreateMessage(params); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send SMS to %s", toPhone)
	}
}

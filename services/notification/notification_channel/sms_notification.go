package notification_channel

import (
	"strings"

	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type SmsNotification struct {
	Message     string        `json:"message"`
	PhoneNumber string        `json:"phone_number"`
	Config      *utils.Config `json:"config"`
}

// SendSMS delivers the message through the provider named in
// SMS_PROVIDER. Twilio is the default route, SNS covers regions the
// Twilio sender cannot reach.
func (s *SmsNotification) SendSMS() error {
	if strings.EqualFold(s.Config.SMSProvider, "sns") {
		return s.sendSNS()
	}
	return s.sendTwilio()
}

func (s *SmsNotification) sendTwilio() error {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: s.Config.TwilioAccountSID,
		Password: s.Config.TwilioAuthToken,
	})

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.PhoneNumber)
	params.SetFrom(s.Config.TwilioSenderPhone)
	params.SetBody(s.Message)

	_, err := client.Api.CreateMessage(params)
	return err
}

func (s *SmsNotification) sendSNS() error {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(s.Config.AWSRegion),
		Credentials: credentials.NewStaticCredentials(s.Config.AWSAccessKeyID, s.Config.AWSSecretAccessKey, ""),
	}))

	svc := sns.New(sess)
	params := &sns.PublishInput{
		Message:     aws.String(s.Message),
		PhoneNumber: aws.String(s.PhoneNumber),
	}

	_, err := svc.Publish(params)
	return err
}

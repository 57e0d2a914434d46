// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
)

// InvitationEmailData holds data for shelter invitation emails.
type InvitationEmailData struct {
	ShelterName string
	RoleName    string
	InviterName string
	BaseURL     string
}

// BuildInvitationEmail creates the email sent when a shelter admin invites
// someone to join their team.
func BuildInvitationEmail(data InvitationEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("You have been invited to join %s", data.ShelterName),
		TextBody: buildInvitationText(data),
	}
}

func buildInvitationText(data InvitationEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s has invited you to join %s as a %s.\n\n",
		data.InviterName, data.ShelterName, data.RoleName)
	buf.WriteString("Sign in with this email address to accept the invitation:\n")
	buf.WriteString(data.BaseURL + "\n\n")
	buf.WriteString("If you were not expecting this invitation, you can safely ignore this email.\n")
	return buf.String()
}

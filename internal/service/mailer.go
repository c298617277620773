package service

import (
	"fmt"

	"github.com/salonhub/salonhub-api/internal/ports"
)

// MailTemplateParams carries the fields shared by employee lifecycle emails.
type MailTemplateParams struct {
	Name        string
	Email       string
	CompanyName string
	LoginURL    string
	TempPass    string
}

func inviteEmail(p MailTemplateParams) ports.Email {
	return ports.Email{
		To:      p.Email,
		Subject: fmt.Sprintf("You have been invited to %s", p.CompanyName),
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p>
<p>You have been invited to join <strong>%s</strong>.</p>
<p>Sign in at <a href="%s">%s</a> with this temporary password:</p>
<p><code>%s</code></p>
<p>You will be asked to choose a new password on first sign-in.</p>`,
			p.Name, p.CompanyName, p.LoginURL, p.LoginURL, p.TempPass),
		Text: fmt.Sprintf(
			"Hi %s,\n\nYou have been invited to join %s.\n\n"+
				"Sign in at %s with this temporary password: %s\n\n"+
				"You will be asked to choose a new password on first sign-in.\n",
			p.Name, p.CompanyName, p.LoginURL, p.TempPass),
	}
}

func accessGrantedEmail(p MailTemplateParams) ports.Email {
	return ports.Email{
		To:      p.Email,
		Subject: fmt.Sprintf("System access enabled for %s", p.CompanyName),
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p>
<p>Your system access for <strong>%s</strong> has been enabled.</p>
<p>Sign in at <a href="%s">%s</a> with this temporary password:</p>
<p><code>%s</code></p>`,
			p.Name, p.CompanyName, p.LoginURL, p.LoginURL, p.TempPass),
		Text: fmt.Sprintf(
			"Hi %s,\n\nYour system access for %s has been enabled.\n\n"+
				"Sign in at %s with this temporary password: %s\n",
			p.Name, p.CompanyName, p.LoginURL, p.TempPass),
	}
}

func accessRevokedEmail(p MailTemplateParams) ports.Email {
	return ports.Email{
		To:      p.Email,
		Subject: fmt.Sprintf("System access revoked for %s", p.CompanyName),
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p>
<p>Your system access for <strong>%s</strong> has been revoked.</p>
<p>If you believe this is a mistake, contact your administrator.</p>`,
			p.Name, p.CompanyName),
		Text: fmt.Sprintf(
			"Hi %s,\n\nYour system access for %s has been revoked.\n"+
				"If you believe this is a mistake, contact your administrator.\n",
			p.Name, p.CompanyName),
	}
}

func inviteResentEmail(p MailTemplateParams) ports.Email {
	e := inviteEmail(p)
	e.Subject = fmt.Sprintf("Your new temporary password for %s", p.CompanyName)
	return e
}

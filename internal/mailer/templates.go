package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

var otpTemplate = template.Must(template.New("otp").Parse(`<h3>Welcome to AuthApp</h3>
<p>Your verification code is:</p>
<h2>{{ .Code }}</h2>
<p>This code is valid for {{ .Minutes }} minutes.</p>
`))

var resetTemplate = template.Must(template.New("reset").Parse(`<h3>Password Reset</h3>
<p>Click the link below to reset your password:</p>
<a href="{{ .Link }}">Reset Password</a>
<p>This link expires in {{ .Minutes }} minutes.</p>
`))

const (
	subjectOTP   = "Verify Your Email"
	subjectReset = "Password Reset Request"
)

// Message is a rendered email ready for a Sender.
type Message struct {
	Kind    string
	To      string
	Subject string
	HTML    string
}

func renderOTP(address, code string, minutes int) (Message, error) {
	var buf bytes.Buffer
	err := otpTemplate.Execute(&buf, struct {
		Code    string
		Minutes int
	}{code, minutes})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render otp email: %w", err)
	}
	return Message{Kind: "otp", To: address, Subject: subjectOTP, HTML: buf.String()}, nil
}

func renderReset(address, link string, minutes int) (Message, error) {
	var buf bytes.Buffer
	err := resetTemplate.Execute(&buf, struct {
		Link    string
		Minutes int
	}{link, minutes})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render reset email: %w", err)
	}
	return Message{Kind: "reset", To: address, Subject: subjectReset, HTML: buf.String()}, nil
}

// resetLink builds <frontend>/reset-password?token=<token>.
func resetLink(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
}

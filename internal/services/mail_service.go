package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"bizlens/internal/config"
)

type MailServiceInterface interface {
	SendReviewModeratedMail(to, businessName string, approved bool, note string) error
	SendMailToResetPassword(to, token string) error
}

type smtpMailService struct {
	cfg     config.SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg config.SMTPConfig) (MailServiceInterface, error) {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(mailHTMLTemplate)),
		textTpl: template.Must(template.New("text").Parse(mailTextTemplate)),
	}, nil
}

func (s *smtpMailService) SendReviewModeratedMail(to, businessName string, approved bool, note string) error {
	subject := fmt.Sprintf("Your review of %s was approved", businessName)
	intro := fmt.Sprintf("Good news: your review of %s is now live. Thanks for contributing.", businessName)
	if !approved {
		subject = fmt.Sprintf("Your review of %s was not approved", businessName)
		intro = fmt.Sprintf("Your review of %s did not pass moderation.", businessName)
		if note != "" {
			intro += " Moderator note: " + note
		}
	}

	return s.deliver(to, subject, mailData{
		Title:   subject,
		Intro:   intro,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
}

func (s *smtpMailService) SendMailToResetPassword(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))

	return s.deliver(to, "Reset your password", mailData{
		Title:     "Reset your password",
		Intro:     "We received a request to reset your password. The link below is valid once and expires shortly. If you did not ask for this, ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset password",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
}

type mailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const mailHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:24px;background:#f4f6f8;font-family:-apple-system,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;color:#1f2933;">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;border:1px solid #e4e7eb;">
    <div style="padding:20px 28px;border-bottom:1px solid #e4e7eb;font-weight:700;font-size:18px;color:#2564cf;">{{.AppName}}</div>
    <div style="padding:28px;">
      <h1 style="margin:0 0 12px;font-size:22px;">{{.Title}}</h1>
      <p style="margin:0 0 18px;line-height:1.6;color:#3e4c59;">{{.Intro}}</p>
      {{if .ButtonURL}}
      <p style="margin:24px 0;">
        <a href="{{.ButtonURL}}" style="display:inline-block;padding:12px 24px;background:#2564cf;color:#ffffff;text-decoration:none;border-radius:6px;font-weight:600;">{{.ButtonTxt}}</a>
      </p>
      <p style="margin:0;font-size:12px;color:#7b8794;word-break:break-all;">Or open this link: {{.ButtonURL}}</p>
      {{end}}
    </div>
    <div style="padding:16px 28px;border-top:1px solid #e4e7eb;font-size:12px;color:#7b8794;">&copy; {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const mailTextTemplate = `{{.Title}}

{{.Intro}}

{{if .ButtonURL}}Open this link:
{{.ButtonURL}}
{{end}}
-- {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) deliver(to, subject string, data mailData) error {
	var htmlBody, textBody bytes.Buffer
	if err := s.htmlTpl.Execute(&htmlBody, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&textBody, data); err != nil {
		return err
	}

	msg := s.buildMessage(to, subject, htmlBody.String(), textBody.String())
	return s.send(to, msg)
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.fromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = client.StartTLS(tlsCfg); err != nil {
			return err
		}
	}

	if err = client.Auth(auth); err != nil {
		return err
	}
	if err = client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) fromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	nurseWelcomeSubject   = "Welcome to CareMate - Nurse Registration Successful!"
	patientWelcomeSubject = "Welcome to CareMate - Patient Registration Successful!"
	familyNoticeSubject   = "CareMate - Your Family Member Has Registered"
)

// layoutTmpl is the shared shell for all outgoing mail. Individual
// templates only provide the inner content block.
var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:0;font-family:'Segoe UI',Tahoma,sans-serif;background:#f0f2f5;">
  <div style="max-width:600px;margin:40px auto;background:white;border-radius:12px;overflow:hidden;">
    <div style="background:#2a5298;padding:32px 20px;text-align:center;">
      <h1 style="color:white;margin:0;">CareMate</h1>
    </div>
    <div style="padding:32px 28px;color:#444;line-height:1.7;">
      {{.Content}}
    </div>
    <div style="background:#f8f9fa;padding:24px;text-align:center;color:#888;font-size:13px;">
      <p><strong>CareMate</strong> - Compassionate Care at Your Doorstep</p>
      <p>For support, contact us at support@caremate.com</p>
    </div>
  </div>
</body>
</html>`))

var (
	nurseWelcomeTmpl = template.Must(template.New("nurse_welcome").Parse(`
<h2 style="color:#333;">Welcome to CareMate, {{.Name}}!</h2>
<p>Congratulations! Your registration as a <strong>Nurse/Caretaker</strong> has been
successfully completed. We're thrilled to have you join our community of healthcare
professionals dedicated to providing exceptional care.</p>
<p>What's next:</p>
<ul>
  <li>Complete your profile to increase visibility</li>
  <li>Set your availability and working hours</li>
  <li>Start accepting patient care requests</li>
</ul>`))

	patientWelcomeTmpl = template.Must(template.New("patient_welcome").Parse(`
<h2 style="color:#333;">Welcome to CareMate, {{.Name}}!</h2>
<p>Thank you for choosing <strong>CareMate</strong> for your healthcare needs. Your
registration has been successfully completed, and you're now part of our caring
community.</p>
<p>Next steps:</p>
<ul>
  <li>Browse available nurses and caretakers</li>
  <li>Select your preferred care professional</li>
  <li>Schedule your first care session</li>
</ul>`))

	familyNoticeTmpl = template.Must(template.New("family_notice").Parse(`
<h2 style="color:#333;">Important Notification</h2>
<p>This is to inform you that <strong>{{.Name}}</strong> has registered on CareMate to
receive professional healthcare services at home.</p>
<p>You've been added as a family contact and will receive updates about care session
schedules, health reports, and emergency alerts.</p>`))

	bookingUpdateTmpl = template.Must(template.New("booking_update").Parse(`
<h2 style="color:#333;">Booking Update</h2>
<p>{{.Message}}</p>
<p>Log in to CareMate to see the full details of this booking.</p>`))
)

func render(tmpl *template.Template, data any) (string, error) {
	var content bytes.Buffer
	if err := tmpl.Execute(&content, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", tmpl.Name(), err)
	}

	var body bytes.Buffer
	err := layoutTmpl.Execute(&body, struct{ Content template.HTML }{template.HTML(content.String())})
	if err != nil {
		return "", fmt.Errorf("failed to render email layout: %w", err)
	}
	return body.String(), nil
}

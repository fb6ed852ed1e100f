package mailer

import "html/template"

var paymentConfirmationTmpl = template.Must(template.New("payment_confirmation").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Registration Confirmed</h2>
  <p>Dear {{.Name}},</p>
  <p>Your payment has been received and your course registration is confirmed.</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Course</strong></td><td>{{.Course}}</td></tr>
    <tr><td><strong>Amount</strong></td><td>INR {{printf "%.2f" .Amount}}</td></tr>
    <tr><td><strong>Payment ID</strong></td><td>{{.PaymentID}}</td></tr>
    <tr><td><strong>Order ID</strong></td><td>{{.OrderID}}</td></tr>
  </table>
  <p>We will reach out with the course schedule shortly.</p>
</body>
</html>`))

var contactAlertTmpl = template.Must(template.New("contact_alert").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New Contact Message</h2>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    {{if .Phone}}<tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>{{end}}
    <tr><td><strong>Subject</strong></td><td>{{.Subject}}</td></tr>
  </table>
  <p>{{.Message}}</p>
</body>
</html>`))

var aboutAlertTmpl = template.Must(template.New("about_alert").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New About-Page Inquiry</h2>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Subject</strong></td><td>{{.Subject}}</td></tr>
  </table>
  <p>{{.Message}}</p>
</body>
</html>`))

package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var catalanDays = [...]string{
	"diumenge", "dilluns", "dimarts", "dimecres", "dijous", "divendres", "dissabte",
}

var catalanMonths = [...]string{
	"gener", "febrer", "març", "abril", "maig", "juny",
	"juliol", "agost", "setembre", "octubre", "novembre", "desembre",
}

// FormatDate renders a timestamp in the long Catalan form used in every
// email, in the studio timezone.
func FormatDate(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("%s, %d de %s de %d, %02d:%02d",
		catalanDays[local.Weekday()],
		local.Day(),
		catalanMonths[local.Month()-1],
		local.Year(),
		local.Hour(),
		local.Minute(),
	)
}

type templateData struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	SessionType string
	Date        string
	Comments    string
}

var confirmedTmpl = template.Must(template.New("confirmed").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #6ECFBD; color: white; padding: 30px; text-align: center;">
    <h1 style="margin: 0;">La Camereta</h1>
    <p style="margin: 10px 0 0;">Estudi fotogràfic</p>
  </div>
  <div style="padding: 30px;">
    <p>Hola {{.ClientName}},</p>
    <p>La teva reserva ha estat <strong>confirmada</strong>. T'esperem a l'estudi!</p>
    <div style="background: #f8f9fa; padding: 20px; border-left: 5px solid #6ECFBD; margin: 20px 0;">
      <h3 style="margin: 0 0 12px; color: #5FB4AA;">Detalls de la sessió</h3>
      <p><strong>Tipus de sessió:</strong> {{.SessionType}}</p>
      <p><strong>Data i hora:</strong> {{.Date}}</p>
      {{if .Comments}}<p><strong>Comentaris:</strong> {{.Comments}}</p>{{end}}
    </div>
    <p>Fins aviat,<br>L'equip de La Camereta</p>
  </div>
</body>
</html>`))

var cancelledTmpl = template.Must(template.New("cancelled").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #e9828c; color: white; padding: 30px; text-align: center;">
    <h1 style="margin: 0;">La Camereta</h1>
  </div>
  <div style="padding: 30px;">
    <p>Hola {{.ClientName}},</p>
    <p>La teva reserva del <strong>{{.Date}}</strong> ({{.SessionType}}) ha estat <strong>cancel·lada</strong>.</p>
    <p>Si vols reservar una altra hora, torna a visitar el nostre calendari.</p>
    <p>L'equip de La Camereta</p>
  </div>
</body>
</html>`))

var studioTmpl = template.Must(template.New("studio").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Nova sol·licitud de reserva</h2>
  <div style="background: #f8f9fa; padding: 20px; border-left: 5px solid #6ECFBD;">
    <p><strong>Client:</strong> {{.ClientName}}</p>
    <p><strong>Email:</strong> {{.ClientEmail}}</p>
    <p><strong>Telèfon:</strong> {{.ClientPhone}}</p>
    <p><strong>Tipus de sessió:</strong> {{.SessionType}}</p>
    <p><strong>Data i hora:</strong> {{.Date}}</p>
    {{if .Comments}}<p><strong>Comentaris:</strong> {{.Comments}}</p>{{end}}
  </div>
  <p>Recorda confirmar o cancel·lar la reserva des del panell d'administració.</p>
</body>
</html>`))

func render(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}

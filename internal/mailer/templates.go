package mailer

import (
	"bytes"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemLine struct {
	Title    string
	Format   string
	Quantity int
	Subtotal decimal.Decimal
}

type AddressLines struct {
	RecipientName string
	Street        string
	PostalCode    string
	City          string
	Country       string
	Phone         string
}

type OrderEmail struct {
	OrderID       uint
	CreatedAt     time.Time
	Email         string
	FullName      string
	Phone         string
	Address       *AddressLines
	Items         []OrderItemLine
	Total         decimal.Decimal
	PaymentStatus string
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("02.01.2006 15:04") },
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
}

var (
	passwordResetTmpl = template.Must(template.New("password_reset").Parse(`Witaj,

Otrzymaliśmy prośbę o zresetowanie hasła do Twojego konta.

Aby ustawić nowe hasło, kliknij w poniższy link:
{{.Link}}

Link jest ważny przez 1 godzinę.

Jeśli nie prosiłeś o reset hasła, zignoruj tę wiadomość.

Pozdrawiamy,
Zespół Księgarni
`))

	passwordChangedTmpl = template.Must(template.New("password_changed").Parse(`Witaj,

Twoje hasło zostało pomyślnie zmienione.

Jeśli to nie Ty dokonałeś tej zmiany, natychmiast skontaktuj się z nami.

Pozdrawiamy,
Zespół Księgarni
`))

	guestOrderTmpl = template.Must(template.New("guest_order").Funcs(funcs).Parse(`Dziękujemy za złożenie zamówienia!

Szczegóły zamówienia:
Numer zamówienia: #{{.OrderID}}
Data: {{date .CreatedAt}}

Dane zamawiającego:
Imię i nazwisko: {{.FullName}}
Email: {{.Email}}
Telefon: {{.Phone}}
{{with .Address}}
Adres dostawy:
{{.RecipientName}}
{{.Street}}
{{.PostalCode}} {{.City}}
{{.Country}}
Tel: {{.Phone}}
{{end}}
Zamówione produkty:
{{range .Items}}- {{.Title}}{{if .Format}} ({{.Format}}){{end}} x {{.Quantity}} - {{money .Subtotal}} PLN
{{end}}
Łącznie: {{money .Total}} PLN

Status płatności: {{.PaymentStatus}}

Aby dokończyć zamówienie, prosimy o dokonanie płatności.

Pozdrawiamy,
Zespół Księgarni
`))

	paymentConfirmedTmpl = template.Must(template.New("payment_confirmed").Funcs(funcs).Parse(`Szanowny Kliencie {{.Email}},

Dziękujemy za złożenie zamówienia!

Szczegóły zamówienia:
Numer zamówienia: #{{.OrderID}}
Łączna kwota: {{money .Total}} zł
Status płatności: {{.PaymentStatus}}

Produkty:
{{range .Items}}- {{.Title}} x {{.Quantity}} = {{money .Subtotal}} zł
{{end}}
Twoje zamówienie zostanie wkrótce przetworzone.

Pozdrawiamy,
Zespół Księgarni
`))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimLeft(buf.String(), "\n"), nil
}

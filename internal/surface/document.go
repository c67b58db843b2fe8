// Пакет surface — локальные поверхности печати: файл в спул-каталоге,
// системная команда печати и архив документов в S3-совместимом хранилище.
package surface

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/Gunvolt24/pos_print/internal/domain"
)

// documentTemplate — изолированный документ под реальную геометрию бумаги.
var documentTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.WidthMM}}mm {{.HeightMM}}mm; margin: 0; }
body { width: {{.PrintableMM}}mm; margin: 0 auto; font-family: monospace; font-size: 12px; }
pre { white-space: pre-wrap; margin: 0; }
h1 { font-size: 16px; text-align: center; margin: 4px 0; }
.header, .footer { text-align: center; }
table { width: 100%; border-collapse: collapse; }
td.amount { text-align: right; white-space: nowrap; }
.mod, .note { padding-left: 8px; font-size: 11px; }
</style>
</head>
<body>
{{if .Preformatted}}<pre>{{.Text}}</pre>{{else}}{{.Markup}}{{end}}
</body>
</html>
`))

type documentView struct {
	Title        string
	WidthMM      string
	HeightMM     string
	PrintableMM  string
	Preformatted bool
	Text         string
	Markup       template.HTML
}

// BuildDocument — HTML-документ для печати.
// Текст (кухонный тикет) экранируется и оборачивается в <pre>; разметка чека уже экранирована при рендере.
func BuildDocument(doc domain.PrintDocument) ([]byte, error) {
	paper := doc.Paper
	if paper.WidthMM == 0 {
		paper = domain.Paper80mm
	}
	view := documentView{
		Title:       fmt.Sprintf("%s %s", doc.Destination, doc.OrderNumber),
		WidthMM:     mm(paper.WidthMM),
		HeightMM:    mm(paper.HeightMM),
		PrintableMM: mm(paper.PrintableMM),
	}
	switch doc.Format {
	case domain.FormatMarkup:
		view.Markup = template.HTML(doc.Body) //nolint:gosec // тело чека собрано render.Receipt с экранированием
	default:
		view.Preformatted = true
		view.Text = doc.Body
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("build document: %w", err)
	}
	return buf.Bytes(), nil
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func copiesOf(doc domain.PrintDocument) int {
	if doc.Copies < 1 {
		return 1
	}
	return doc.Copies
}

package report

import (
	"bytes"
	"html/template"

	"github.com/sisregip/sisregip-backend/internal/domain"
)

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Relatório de Protocolos</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1 { text-align: center; color: #333; }
        .info { text-align: right; margin-bottom: 20px; color: #666; font-size: 14px; }
        .resumo {
            background-color: #f0f0f0;
            padding: 15px;
            margin: 20px 0;
            border-radius: 5px;
            display: grid;
            grid-template-columns: repeat(3, 1fr);
            gap: 10px;
        }
        .resumo-item {
            text-align: center;
            padding: 10px;
            background: white;
            border-radius: 5px;
        }
        .resumo-item h3 { margin: 0; font-size: 24px; }
        .resumo-item p { margin: 5px 0 0; color: #666; }
        .pendente { color: #dc2626; }
        .entregue { color: #166534; }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-top: 20px;
            font-size: 12px;
        }
        th, td {
            border: 1px solid #ddd;
            padding: 6px;
            text-align: center;
        }
        th {
            background-color: #f2f2f2;
            font-weight: bold;
        }
        tr:nth-child(even) { background-color: #f9f9f9; }
        .btn-print {
            position: fixed;
            top: 20px;
            right: 20px;
            padding: 10px 20px;
            background-color: #4338ca;
            color: white;
            border: none;
            border-radius: 5px;
            cursor: pointer;
            font-size: 16px;
        }
        .btn-print:hover { background-color: #3730a3; }
        @media print {
            .btn-print { display: none; }
        }
    </style>
</head>
<body>
    <button class="btn-print" onclick="window.print()">🖨️ Imprimir</button>
    <h1>Relatório de Protocolos</h1>
    <div class="info">Data de Emissão: {{.EmittedAt}}</div>

    <div class="resumo">
        <div class="resumo-item">
            <h3>{{.Total}}</h3>
            <p>Total</p>
        </div>
        <div class="resumo-item entregue">
            <h3>{{.Delivered}}</h3>
            <p>Entregues</p>
        </div>
        <div class="resumo-item pendente">
            <h3>{{.Pending}}</h3>
            <p>Pendentes</p>
        </div>
    </div>

    <table>
        <thead>
            <tr>
                <th style="width: 10%">PROT</th>
                <th style="width: 12%">DATA</th>
                <th style="width: 35%">NOME</th>
                <th style="width: 10%">PMH</th>
                <th style="width: 12%">ENTREGA</th>
                <th style="width: 21%">RECEBIMENTO</th>
            </tr>
        </thead>
        <tbody>
{{- range .Rows}}
            <tr>
                <td>{{.Number}}</td>
                <td>{{.ProtocolDate}}</td>
                <td style="text-align: left;">{{.PersonName}}</td>
                <td>{{.RecordNumber}}</td>
                <td>{{.DeliveryDate}}</td>
                <td>{{.RecipientName}}</td>
            </tr>
{{- end}}
        </tbody>
    </table>
</body>
</html>
`))

type reportData struct {
	EmittedAt string
	Total     int
	Delivered int
	Pending   int
	Rows      []domain.ReportRow
}

func render(rows []domain.ReportRow, rep *Report) ([]byte, error) {
	data := reportData{
		EmittedAt: rep.EmittedAt.Format("02/01/2006 15:04"),
		Total:     rep.Total,
		Delivered: rep.Delivered,
		Pending:   rep.Pending,
		Rows:      rows,
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

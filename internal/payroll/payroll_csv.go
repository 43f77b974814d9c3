package payroll

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/esnupy/lafa/internal/week"
)

// The office opens these exports in Excel, which wants the BOM and
// takes every field quoted.
var csvHeader = []string{
	"Chofer", "ID Empleado", "Semana", "Horas", "Viajes",
	"Ingresos DiDi", "Salario Base", "Bono", "Horas Extra", "Apoyo", "Total",
}

func renderCSV(rows []PayrollResult) []byte {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	writeCSVRecord(&buf, csvHeader)

	for _, r := range rows {
		name := ""
		code := ""
		if r.Driver != nil {
			name = r.Driver.Name
			code = r.Driver.EmployeeCode
		}
		writeCSVRecord(&buf, []string{
			name,
			code,
			week.FormatDate(r.WeekStart),
			r.Hours.StringFixed(1),
			strconv.Itoa(r.TripCount),
			r.Revenue.StringFixed(2),
			r.Base.StringFixed(2),
			r.Bonus.StringFixed(2),
			r.Overtime.StringFixed(2),
			r.Support.StringFixed(2),
			r.Total.StringFixed(2),
		})
	}
	return buf.Bytes()
}

// writeCSVRecord quotes every field unconditionally; encoding/csv only
// quotes when forced, which breaks the downstream template.
func writeCSVRecord(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

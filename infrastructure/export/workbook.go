// Package export grava os relatórios em planilhas xlsx
package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	Extension   = ".xlsx"

	FiltersSheet = "Filtros"

	maxSheetName = 31
)

var invalidSheetChars = strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "", "*", "", "[", "(", "]", ")")

type Writer interface {
	Write(w io.Writer, bundle domain.ExportBundle) error
}

// WorkbookWriter escreve a aba de filtros seguida de uma aba por tabela, na ordem do pacote
type WorkbookWriter struct{}

func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

func (ww *WorkbookWriter) Write(w io.Writer, bundle domain.ExportBundle) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", FiltersSheet); err != nil {
		return errors.Wrap(err, "erro ao criar aba de filtros")
	}
	if err := writeFilters(f, bundle.Filters, styles); err != nil {
		return err
	}

	used := map[string]struct{}{strings.ToLower(FiltersSheet): {}}
	for _, sheet := range bundle.Sheets {
		if sheet.IsEmpty() {
			continue
		}

		name := uniqueName(SheetName(sheet.Name), used)
		if _, err := f.NewSheet(name); err != nil {
			return errors.Wrapf(err, "erro ao criar aba %q", name)
		}
		if err := writeSheet(f, name, sheet, styles); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "erro ao gravar planilha")
	}
	return nil
}

type styleSet struct {
	header int
	total  int
}

func newStyles(f *excelize.File) (styleSet, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F3864"}},
	})
	if err != nil {
		return styleSet{}, errors.Wrap(err, "erro ao criar estilo do cabeçalho")
	}

	total, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styleSet{}, errors.Wrap(err, "erro ao criar estilo de total")
	}

	return styleSet{header: header, total: total}, nil
}

func writeFilters(f *excelize.File, filters []domain.FilterEntry, styles styleSet) error {
	sw, err := f.NewStreamWriter(FiltersSheet)
	if err != nil {
		return errors.Wrap(err, "erro ao abrir aba de filtros")
	}

	if err := sw.SetRow("A1", []interface{}{
		excelize.Cell{StyleID: styles.header, Value: "Parâmetro"},
		excelize.Cell{StyleID: styles.header, Value: "Valor"},
	}); err != nil {
		return errors.Wrap(err, "erro ao gravar cabeçalho dos filtros")
	}

	for i, entry := range filters {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{entry.Label, entry.Value}); err != nil {
			return errors.Wrap(err, "erro ao gravar filtro")
		}
	}

	return sw.Flush()
}

func writeSheet(f *excelize.File, name string, sheet domain.Sheet, styles styleSet) error {
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return errors.Wrapf(err, "erro ao abrir aba %q", name)
	}

	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = excelize.Cell{StyleID: styles.header, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.Wrapf(err, "erro ao gravar cabeçalho da aba %q", name)
	}

	totals := make(map[int]struct{}, len(sheet.TotalRows))
	for _, i := range sheet.TotalRows {
		totals[i] = struct{}{}
	}

	for r, cells := range sheet.Cells {
		_, isTotal := totals[r]

		row := make([]interface{}, len(cells))
		for c, v := range cells {
			kind := domain.KindText
			if c < len(sheet.Kinds) {
				kind = sheet.Kinds[c]
			}
			value := CellValue(kind, v)
			if isTotal {
				row[c] = excelize.Cell{StyleID: styles.total, Value: value}
				continue
			}
			row[c] = value
		}

		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := sw.SetRow(cell, row); err != nil {
			return errors.Wrapf(err, "erro ao gravar linha %d da aba %q", r+1, name)
		}
	}

	return sw.Flush()
}

// CellValue converte o valor para o tipo gravado: percentuais saem como número já multiplicado
// por 100 e arredondado, nulos saem vazios
func CellValue(kind domain.CellKind, v any) any {
	if v == nil {
		return nil
	}

	switch kind {
	case domain.KindPercent, domain.KindVariation:
		switch x := v.(type) {
		case float64:
			return percentCell(x)
		case *float64:
			if x == nil {
				return nil
			}
			return percentCell(*x)
		}
	}

	return v
}

// percentCell grava NaN e infinito como texto, já que não são números válidos na planilha
func percentCell(fraction float64) any {
	if !utils.IsFinite(fraction) {
		return utils.FormatPercent(fraction)
	}
	return utils.PercentValue(fraction)
}

// SheetName ajusta o nome às regras do Excel: sem caracteres proibidos e até 31 caracteres
func SheetName(name string) string {
	name = strings.TrimSpace(invalidSheetChars.Replace(name))
	if name == "" {
		name = "Tabela"
	}
	return truncate(name, maxSheetName)
}

func uniqueName(name string, used map[string]struct{}) string {
	candidate := name
	for n := 2; ; n++ {
		if _, exists := used[strings.ToLower(candidate)]; !exists {
			break
		}
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncate(name, maxSheetName-utf8.RuneCountInString(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

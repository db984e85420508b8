package infra

// pdf.go — register-closing report generation using go-pdf/fpdf.
// Produces an A4 report with:
//   - Clinic header, session id, user, open/close timestamps
//   - Ledger table (tipo, descripcion, monto)
//   - Collections taken during the shift
//   - Balance block: apertura, ingresos, egresos, cobros, saldo esperado,
//     monto de cierre declarado and desvio
//
// The output file is saved to storagePath/cierre_{sesion_id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"dentalis/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateCierreCajaPDF renders the closing report of a cerrada session.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateCierreCajaPDF(sesion *model.SesionCaja, movimientos []model.MovimientoCaja, cobros []model.Cobro, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cierre_%s.pdf", sesion.ID.String())
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Dentalis", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Session info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Sesion: "+sesion.ID.String(), "", 1, "L", false, 0, "")
	if sesion.Usuario != nil {
		pdf.CellFormat(contentW, 5, "Responsable: "+sesion.Usuario.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, "Apertura: "+sesion.AbiertaAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if sesion.CerradaAt != nil {
		pdf.CellFormat(contentW, 5, "Cierre: "+sesion.CerradaAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Ledger table ─────────────────────────────────────────────────────────
	col1 := contentW * 0.20 // tipo
	col2 := contentW * 0.55 // descripcion
	col3 := contentW * 0.25 // monto

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Movimientos", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Tipo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Descripcion", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "Monto", "B", 1, "R", false, 0, "")

	ingresos := decimal.Zero
	egresos := decimal.Zero
	pdf.SetFont("Helvetica", "", 8)
	for _, mov := range movimientos {
		monto := "$" + mov.Monto.StringFixed(2)
		if mov.Tipo == model.MovimientoEgreso {
			monto = "-$" + mov.Monto.StringFixed(2)
			egresos = egresos.Add(mov.Monto)
		} else {
			ingresos = ingresos.Add(mov.Monto)
		}
		descr := mov.Descripcion
		if len(descr) > 60 {
			descr = descr[:59] + "…"
		}
		pdf.CellFormat(col1, 5, mov.Tipo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, descr, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, monto, "", 1, "R", false, 0, "")
	}
	if len(movimientos) == 0 {
		pdf.CellFormat(contentW, 5, "(sin movimientos)", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Collections ──────────────────────────────────────────────────────────
	totalCobros := decimal.Zero
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Cobros de la sesion", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, cobro := range cobros {
		cobrado := cobro.PagadoPaciente.Add(cobro.PagadoObraSocial)
		totalCobros = totalCobros.Add(cobrado)
		pdf.CellFormat(col1+col2, 5, "Tratamiento "+cobro.TratamientoID.String(), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+cobrado.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if len(cobros) == 0 {
		pdf.CellFormat(contentW, 5, "(sin cobros)", "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Balance block ────────────────────────────────────────────────────────
	line := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(col1+col2, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, value, "", 1, "R", false, 0, "")
	}
	line("Monto de apertura:", "$"+sesion.MontoApertura.StringFixed(2), false)
	line("Total ingresos:", "$"+ingresos.StringFixed(2), false)
	line("Total egresos:", "-$"+egresos.StringFixed(2), false)
	line("Total cobros:", "$"+totalCobros.StringFixed(2), false)
	if sesion.SaldoEsperado != nil {
		line("SALDO ESPERADO:", "$"+sesion.SaldoEsperado.StringFixed(2), true)
	}
	if sesion.MontoCierre != nil {
		line("Monto de cierre declarado:", "$"+sesion.MontoCierre.StringFixed(2), false)
	}
	if sesion.Desvio != nil && !sesion.Desvio.IsZero() {
		line("DESVIO:", "$"+sesion.Desvio.StringFixed(2), true)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

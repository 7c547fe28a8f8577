package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// apiScanExport writes the user's complete scan history as an .xlsx
// workbook.
func (s *Server) apiScanExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	scans, err := s.scans.FullHistory(r.Context(), uid)
	if err != nil {
		http.Error(w, "history", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Scanned At", "Barcode", "Name", "Brand", "Category", "Nutrition Grade", "Ingredients"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, rec := range scans {
		p := rec.Product
		values := []any{
			rec.ScannedAt.Format(time.RFC3339),
			p.Barcode,
			p.Name,
			p.Brand,
			p.Category,
			p.NutritionGrade,
			strings.Join(p.Ingredients, ", "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=scans-%s.xlsx", time.Now().Format("2006-01-02")))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("xlsx export write failed")
	}
}

// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aspilic/itanket/cliparse"
	"github.com/aspilic/itanket/models"
	"github.com/aspilic/itanket/views"
)

const (
	answersSheet = "Cevaplar"
	statsSheet   = "Istatistik"
)

// ExportHandler produces the two-sheet Excel report.
type ExportHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	views *views.Views
}

func NewExportHandler(database *sql.DB, cfg cliparse.Config, v *views.Views) *ExportHandler {
	return &ExportHandler{db: database, cfg: cfg, views: v}
}

// Excel streams the report as an .xlsx download. The answers sheet honors
// the same filters as the dashboard listing but is uncapped and ordered
// oldest-first; the statistics sheet dumps the stat table as-is.
func (h *ExportHandler) Excel(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	details, err := queryDetails(h.db, filter, false, 0)
	if err != nil {
		slog.Error("failed to load answers for export", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}
	stats, err := h.statRows()
	if err != nil {
		slog.Error("failed to load stats for export", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", answersSheet)
	if err := writeAnswersSheet(f, details); err != nil {
		slog.Error("failed to build answers sheet", "error", err)
		h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
		return
	}
	if _, err := f.NewSheet(statsSheet); err == nil {
		if err := writeStatsSheet(f, stats); err != nil {
			slog.Error("failed to build stats sheet", "error", err)
			h.views.RenderError(w, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu.")
			return
		}
	}

	filename := fmt.Sprintf("IT_Anket_Rapor_%s.xlsx", time.Now().UTC().Format("20060102150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		slog.Error("failed to write excel report", "error", err)
	}
	slog.Info("excel report exported", "rows", len(details))
}

func writeAnswersSheet(f *excelize.File, details []models.DetailRow) error {
	headers := []string{"Tarih", "İsim", "Soyisim", "E-Posta", "Soru", "Cevap"}
	for i, hd := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(answersSheet, cell, hd); err != nil {
			return err
		}
	}
	for i, d := range details {
		row := []any{
			d.Date.Format("02.01.2006 15:04"),
			d.FirstName,
			d.LastName,
			d.Email,
			d.Question,
			d.Option,
		}
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(answersSheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

type statRow struct {
	Question string
	Option   string
	Counter  int64
	Percent  float64
}

func writeStatsSheet(f *excelize.File, stats []statRow) error {
	headers := []string{"Soru", "Seçenek", "Cevap Sayısı", "Yüzde (%)"}
	for i, hd := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(statsSheet, cell, hd); err != nil {
			return err
		}
	}
	for i, s := range stats {
		row := []any{s.Question, s.Option, s.Counter, s.Percent}
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(statsSheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// statRows reads the denormalized stat table in display order.
func (h *ExportHandler) statRows() ([]statRow, error) {
	rows, err := h.db.Query(`
		SELECT q.text, o.text, s.counter, s.percent
		FROM stat s
		JOIN question q ON q.id = s.question_id
		JOIN answer_option o ON o.id = s.answer_option_id
		ORDER BY q.position, o.position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	defer rows.Close()

	var stats []statRow
	for rows.Next() {
		var s statRow
		if err := rows.Scan(&s.Question, &s.Option, &s.Counter, &s.Percent); err != nil {
			return nil, fmt.Errorf("failed to scan stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cgweb/market-proxy/topcoins"
)

// utf8BOM makes spreadsheet tools detect the encoding correctly
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"rank", "id", "symbol", "name", "price", "market_cap", "change_24h_pct"}

// handleTopCSV responds with a snapshot page rendered as a CSV download
func (s *Server) handleTopCSV(w http.ResponseWriter, r *http.Request) {
	params := topcoins.TopParams{
		Currency: getParamLowercase(r, "vs"),
		PerPage:  getParamInt(r, "per_page"),
		Page:     getParamInt(r, "page"),
	}

	snapshot, err := s.topService.Top(r.Context(), params)
	if err != nil {
		s.sendError(w, err)
		return
	}

	body, err := renderSnapshotCSV(snapshot)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("cg_top_%s_p%d_%d.csv", snapshot.Currency, snapshot.Page, snapshot.PerPage)

	s.setCacheStatusHeader(w, snapshot.Cached)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))

	if _, err := w.Write(body); err != nil {
		return
	}
}

// renderSnapshotCSV encodes snapshot rows as BOM-prefixed UTF-8 CSV
func renderSnapshotCSV(snapshot *topcoins.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, item := range snapshot.Items {
		row := []string{
			formatOptionalInt(item.Rank),
			item.ID,
			strings.ToUpper(item.Symbol),
			item.Name,
			formatOptionalFloat(item.Price),
			formatOptionalFloat(item.MarketCap),
			formatOptionalFloat(item.Change24h),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

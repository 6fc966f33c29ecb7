package api

import (
	"net/http"
	"strconv"

	"github.com/cgweb/market-proxy/coingecko"
	"github.com/cgweb/market-proxy/pricehistory"
	"github.com/cgweb/market-proxy/simpleprice"
	"github.com/cgweb/market-proxy/topcoins"
)

// handleTop responds with one page of ranked market records
func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
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

	s.setCacheStatusHeader(w, snapshot.Cached)
	s.sendJSONResponse(w, snapshot)
}

// handlePrice responds with the spot price for one coin/currency pair
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	params := simpleprice.PriceParams{
		CoinID:           getParamLowercase(r, "coin_id"),
		Currency:         getParamLowercase(r, "vs"),
		Include24hChange: getParamBool(r, "include_24h_change"),
	}

	quote, err := s.priceService.SimplePrice(r.Context(), params)
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.setCacheStatusHeader(w, quote.Cached)
	s.sendJSONResponse(w, quote)
}

// handleConvert multiplies a fetched spot rate by the requested amount
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		s.sendError(w, &coingecko.ValidationError{Msg: "amount must be a number"})
		return
	}

	conversion, err := s.priceService.Convert(r.Context(), getParamLowercase(r, "coin_id"), getParamLowercase(r, "vs"), amount)
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.setCacheStatusHeader(w, conversion.Cached)
	s.sendJSONResponse(w, conversion)
}

// handleHistory responds with one aggregated price point per calendar day
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	params := pricehistory.HistoryParams{
		CoinID:   getParamLowercase(r, "coin_id"),
		Currency: getParamLowercase(r, "vs"),
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}

	series, err := s.historyService.HistoryRange(r.Context(), params)
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.setCacheStatusHeader(w, series.Cached)
	s.sendJSONResponse(w, series)
}

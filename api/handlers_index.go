package api

import (
	"html/template"
	"log"
	"net/http"

	"github.com/cgweb/market-proxy/topcoins"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Market Proxy</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
form { margin-bottom: 1.5rem; }
input, select { margin-right: 0.5rem; }
</style>
</head>
<body>
<h1>Market Proxy</h1>
<p>Cached CoinGecko market data. All endpoints return JSON unless noted.</p>

<form action="/cg/price" method="get">
<input list="coins" name="coin_id" placeholder="coin id" required>
<input name="vs" placeholder="vs currency" value="usd" size="6">
<button type="submit">Price</button>
</form>

<form action="/cg/top" method="get">
<input name="vs" placeholder="vs currency" value="usd" size="6">
<input name="per_page" type="number" value="100" min="1" max="250" size="4">
<input name="page" type="number" value="1" min="1" size="4">
<button type="submit">Top</button>
<button type="submit" formaction="/cg/top.csv">CSV</button>
</form>

<datalist id="coins">
{{- range .CoinIDs}}
<option value="{{.}}"></option>
{{- end}}
</datalist>

<ul>
<li><code>GET /cg/top?vs&amp;per_page&amp;page</code></li>
<li><code>GET /cg/top.csv?vs&amp;per_page&amp;page</code></li>
<li><code>GET /cg/price?coin_id&amp;vs&amp;include_24h_change</code></li>
<li><code>GET /cg/convert?coin_id&amp;vs&amp;amount</code></li>
<li><code>GET /cg/history?coin_id&amp;vs&amp;date_from&amp;date_to</code></li>
<li><code>GET /health</code>, <code>GET /metrics</code></li>
</ul>
</body>
</html>
`))

// handleIndex renders the landing page with a coin-id datalist built from
// the default snapshot page. The page renders with an empty datalist when
// the snapshot is unavailable.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var coinIDs []string

	snapshot, err := s.topService.Top(r.Context(), topcoins.TopParams{PerPage: topcoins.MaxPerPage})
	if err != nil {
		log.Printf("Index: snapshot unavailable for datalist: %v", err)
	} else {
		coinIDs = make([]string, 0, len(snapshot.Items))
		for _, item := range snapshot.Items {
			coinIDs = append(coinIDs, item.ID)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ CoinIDs []string }{coinIDs}); err != nil {
		log.Printf("Index: template error: %v", err)
	}
}

package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cgweb/market-proxy/pricehistory"
	"github.com/cgweb/market-proxy/simpleprice"
	"github.com/cgweb/market-proxy/topcoins"
)

// TopService provides market snapshot pages
type TopService interface {
	Top(ctx context.Context, params topcoins.TopParams) (*topcoins.Snapshot, error)
	Healthy() bool
}

// PriceService provides spot prices and conversions
type PriceService interface {
	SimplePrice(ctx context.Context, params simpleprice.PriceParams) (*simpleprice.Quote, error)
	Convert(ctx context.Context, coinID, currency string, amount float64) (*simpleprice.Conversion, error)
	Healthy() bool
}

// HistoryService provides day-aggregated price history
type HistoryService interface {
	HistoryRange(ctx context.Context, params pricehistory.HistoryParams) (*pricehistory.Series, error)
	Healthy() bool
}

type Server struct {
	port           string
	topService     TopService
	priceService   PriceService
	historyService HistoryService
	server         *http.Server
}

func New(port string, topService TopService, priceService PriceService, historyService HistoryService) *Server {
	return &Server{
		port:           port,
		topService:     topService,
		priceService:   priceService,
		historyService: historyService,
	}
}

func (s *Server) Start(ctx context.Context) error {
	router := mux.NewRouter()

	router.HandleFunc("/cg/top", s.handleTop).Methods("GET")
	router.HandleFunc("/cg/top.csv", s.handleTopCSV).Methods("GET")
	router.HandleFunc("/cg/price", s.handlePrice).Methods("GET")
	router.HandleFunc("/cg/convert", s.handleConvert).Methods("GET")
	router.HandleFunc("/cg/history", s.handleHistory).Methods("GET")

	router.HandleFunc("/", s.handleIndex).Methods("GET")
	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: router,
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

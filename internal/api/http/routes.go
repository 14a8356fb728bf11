package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"campusnet-service/internal/domain"
	"campusnet-service/internal/metrics"
	"campusnet-service/internal/stats"
	"campusnet-service/internal/timeline"
)

const defaultSeriesWindow = 24 * time.Hour

// handler contains the HTTP handlers and shared dependencies for the REST API.
type handler struct {
	service  *stats.Service
	timeline *timeline.Store
	counter  domain.MeasurementReader
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Samples int    `json:"samples"`
}

type carrierSummaryResponse struct {
	Carrier           string  `json:"carrier"`
	Samples           int     `json:"samples"`
	AvgSignalStrength float64 `json:"avg_signal_strength_dbm"`
	AvgSignalQuality  float64 `json:"avg_signal_quality_pct"`
	AvgDataSpeed      float64 `json:"avg_data_speed_mbps"`
	AvgSINR           float64 `json:"avg_sinr_db"`
	ReliabilityScore  float64 `json:"reliability_score_pct"`
}

type overviewResponse struct {
	Summaries    []carrierSummaryResponse `json:"summaries"`
	BestCarrier  string                   `json:"best_carrier"`
	WorstCarrier string                   `json:"worst_carrier"`
}

type locationResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Area string  `json:"area"`
}

type carrierCellResponse struct {
	Carrier          string  `json:"carrier"`
	Samples          int     `json:"samples"`
	AvgSignalQuality float64 `json:"avg_signal_quality_pct"`
	AvgDataSpeed     float64 `json:"avg_data_speed_mbps"`
	Level            string  `json:"level"`
}

type locationReportResponse struct {
	Location    locationResponse      `json:"location"`
	BestCarrier string                `json:"best_carrier"`
	Carriers    []carrierCellResponse `json:"carriers"`
}

type bestCarriersResponse struct {
	BestByLocation map[string]string `json:"best_by_location"`
	Coverage       map[string]int    `json:"locations_won"`
}

type reliabilityResponse struct {
	Carrier        string  `json:"carrier"`
	Consistency    float64 `json:"consistency"`
	Coverage       float64 `json:"coverage"`
	SpeedStability float64 `json:"speed_stability"`
	Total          float64 `json:"total"`
}

type timeOfDayResponse struct {
	TimeOfDay        string  `json:"time_of_day"`
	Carrier          string  `json:"carrier"`
	Samples          int     `json:"samples"`
	AvgDataSpeed     float64 `json:"avg_data_speed_mbps"`
	AvgSignalQuality float64 `json:"avg_signal_quality_pct"`
}

type costResponse struct {
	Carrier    string         `json:"carrier"`
	PlanPrices map[string]int `json:"plan_prices_ngn"`
	ValueScore float64        `json:"value_score"`
}

type ratingResponse struct {
	Carrier     string  `json:"carrier"`
	CallQuality float64 `json:"call_quality_stars"`
	DataSpeed   float64 `json:"data_speed_stars"`
	Reliability float64 `json:"reliability_stars"`
	Overall     float64 `json:"overall_stars"`
}

type mapPointResponse struct {
	Location          locationResponse `json:"location"`
	Samples           int              `json:"samples"`
	AvgSignalQuality  float64          `json:"avg_signal_quality_pct"`
	AvgDataSpeed      float64          `json:"avg_data_speed_mbps"`
	AvgSignalStrength float64          `json:"avg_signal_strength_dbm"`
	BestCarrier       string           `json:"best_carrier"`
	Level             string           `json:"level"`
}

type mapResponse struct {
	Center struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Points []mapPointResponse `json:"points"`
}

type seriesPointResponse struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

type seriesResponse struct {
	Metric   string                `json:"metric"`
	Carrier  string                `json:"carrier"`
	Location string                `json:"location"`
	Points   []seriesPointResponse `json:"points"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	samples := 0
	if h.counter != nil {
		count, err := h.counter.Count(r.Context())
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "repository unavailable")
			return
		}
		samples = count
	}
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Samples: samples})
}

func (h *handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := overviewResponse{
		Summaries:    make([]carrierSummaryResponse, 0, len(overview.Summaries)),
		BestCarrier:  string(overview.BestCarrier),
		WorstCarrier: string(overview.WorstCarrier),
	}
	for _, s := range overview.Summaries {
		resp.Summaries = append(resp.Summaries, toCarrierSummaryResponse(s))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleCarrierSummary(w http.ResponseWriter, r *http.Request) {
	carrier, err := domain.ParseCarrier(pathParam(r, "carrier"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, "unknown carrier")
		return
	}

	summary, err := h.service.CarrierSummary(r.Context(), carrier)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCarrierSummaryResponse(summary))
}

func (h *handler) handleLocations(w http.ResponseWriter, _ *http.Request) {
	locations := domain.CampusLocations()
	resp := make([]locationResponse, 0, len(locations))
	for _, loc := range locations {
		resp = append(resp, toLocationResponse(loc))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleLocationReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.LocationReport(r.Context(), pathParam(r, "name"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := locationReportResponse{
		Location:    toLocationResponse(report.Location),
		BestCarrier: string(report.BestCarrier),
		Carriers:    make([]carrierCellResponse, 0, len(report.Cells)),
	}
	for _, cell := range report.Cells {
		resp.Carriers = append(resp.Carriers, carrierCellResponse{
			Carrier:          string(cell.Carrier),
			Samples:          cell.Samples,
			AvgSignalQuality: cell.AvgSignalQuality,
			AvgDataSpeed:     cell.AvgDataSpeed,
			Level:            string(cell.Level),
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleBestCarriers(w http.ResponseWriter, r *http.Request) {
	best, err := h.service.BestCarriers(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	coverage, err := h.service.Coverage(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := bestCarriersResponse{
		BestByLocation: make(map[string]string, len(best)),
		Coverage:       make(map[string]int, len(coverage)),
	}
	for location, carrier := range best {
		resp.BestByLocation[location] = string(carrier)
	}
	for carrier, count := range coverage {
		resp.Coverage[string(carrier)] = count
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleReliability(w http.ResponseWriter, r *http.Request) {
	breakdowns, err := h.service.Reliability(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := make([]reliabilityResponse, 0, len(breakdowns))
	for _, b := range breakdowns {
		resp = append(resp, reliabilityResponse{
			Carrier:        string(b.Carrier),
			Consistency:    b.Consistency,
			Coverage:       b.Coverage,
			SpeedStability: b.SpeedStability,
			Total:          b.Total,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleTimeOfDay(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.TimeOfDayProfile(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := make([]timeOfDayResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, timeOfDayResponse{
			TimeOfDay:        string(p.TimeOfDay),
			Carrier:          string(p.Carrier),
			Samples:          p.Samples,
			AvgDataSpeed:     p.AvgDataSpeed,
			AvgSignalQuality: p.AvgSignalQuality,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleCosts(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.Costs(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := make([]costResponse, 0, len(reports))
	for _, c := range reports {
		resp = append(resp, costResponse{
			Carrier:    string(c.Carrier),
			PlanPrices: c.PlanPrices,
			ValueScore: c.ValueScore,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.Ratings(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := make([]ratingResponse, 0, len(ratings))
	for _, rating := range ratings {
		resp = append(resp, ratingResponse{
			Carrier:     string(rating.Carrier),
			CallQuality: rating.CallQuality,
			DataSpeed:   rating.DataSpeed,
			Reliability: rating.Reliability,
			Overall:     rating.Overall,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleMapPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.MapPoints(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := mapResponse{Points: make([]mapPointResponse, 0, len(points))}
	resp.Center.Lat = domain.CampusCenter.Lat
	resp.Center.Lon = domain.CampusCenter.Lon
	for _, p := range points {
		resp.Points = append(resp.Points, mapPointResponse{
			Location:          toLocationResponse(p.Location),
			Samples:           p.Samples,
			AvgSignalQuality:  p.AvgSignalQuality,
			AvgDataSpeed:      p.AvgDataSpeed,
			AvgSignalStrength: p.AvgSignalStrength,
			BestCarrier:       string(p.BestCarrier),
			Level:             string(p.Level),
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleSeries(w http.ResponseWriter, r *http.Request) {
	if h.timeline == nil {
		h.writeError(w, http.StatusServiceUnavailable, "timeline store not configured")
		return
	}

	params := r.URL.Query()

	metric, err := timeline.ParseMetric(params.Get("metric"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "unknown metric")
		return
	}
	carrier, err := domain.ParseCarrier(params.Get("carrier"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "unknown carrier")
		return
	}
	location, err := domain.LookupLocation(params.Get("location"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "unknown location")
		return
	}

	to := time.Now().UTC()
	from := to.Add(-defaultSeriesWindow)
	if raw := params.Get("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
	}
	if raw := params.Get("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
	}
	if from.After(to) {
		h.writeError(w, http.StatusBadRequest, "from must be before to")
		return
	}

	points, err := h.timeline.Series(metric, carrier, location.Name, from, to)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := seriesResponse{
		Metric:   string(metric),
		Carrier:  string(carrier),
		Location: location.Name,
		Points:   make([]seriesPointResponse, 0, len(points)),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, seriesPointResponse{
			Timestamp: p.Timestamp.Format(time.RFC3339),
			Value:     p.Value,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoData):
		h.writeError(w, http.StatusNotFound, "no measurements match the query")
	case errors.Is(err, domain.ErrUnknownCarrier):
		h.writeError(w, http.StatusNotFound, "unknown carrier")
	case errors.Is(err, domain.ErrUnknownLocation):
		h.writeError(w, http.StatusNotFound, "unknown campus location")
	default:
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, message string) {
	metrics.HTTPRequestErrorsTotal.Inc()
	h.writeJSON(w, status, errorResponse{Error: message, Code: status})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func toCarrierSummaryResponse(s stats.CarrierSummary) carrierSummaryResponse {
	return carrierSummaryResponse{
		Carrier:           string(s.Carrier),
		Samples:           s.Samples,
		AvgSignalStrength: s.AvgSignalStrength,
		AvgSignalQuality:  s.AvgSignalQuality,
		AvgDataSpeed:      s.AvgDataSpeed,
		AvgSINR:           s.AvgSINR,
		ReliabilityScore:  s.ReliabilityScore,
	}
}

func toLocationResponse(loc domain.Location) locationResponse {
	return locationResponse{Name: loc.Name, Lat: loc.Lat, Lon: loc.Lon, Area: string(loc.Area)}
}

// pathParam returns a chi URL parameter with percent-encoding undone, since
// campus location names contain spaces.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

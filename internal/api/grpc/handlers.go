package grpcapi

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"campusnet-service/internal/domain"
	"campusnet-service/internal/stats"
	"campusnet-service/pkg/api"
)

// Handler implements the NetworkStats gRPC interface on top of the stats service.
type Handler struct {
	api.UnimplementedNetworkStatsServer

	service *stats.Service
}

// NewHandler creates a Handler backed by the given stats service.
func NewHandler(service *stats.Service) *Handler {
	return &Handler{service: service}
}

// GetCarrierSummary returns one carrier's campus-wide aggregate.
func (h *Handler) GetCarrierSummary(ctx context.Context, req *api.GetCarrierSummaryRequest) (*api.GetCarrierSummaryResponse, error) {
	if req == nil {
		return nil, status.Errorf(codes.InvalidArgument, "request is required")
	}
	carrier, err := domain.ParseCarrier(req.GetCarrier())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "unknown carrier: %s", req.GetCarrier())
	}
	if h == nil || h.service == nil {
		return nil, status.Errorf(codes.Internal, "stats service is not configured")
	}

	summary, err := h.service.CarrierSummary(ctx, carrier)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			return nil, status.Errorf(codes.NotFound, "no measurements for carrier %s", carrier)
		}
		return nil, status.Errorf(codes.Internal, "carrier summary: %v", err)
	}

	return &api.GetCarrierSummaryResponse{
		Carrier:              string(summary.Carrier),
		Samples:              int64(summary.Samples),
		AvgSignalStrengthDbm: summary.AvgSignalStrength,
		AvgSignalQualityPct:  summary.AvgSignalQuality,
		AvgDataSpeedMbps:     summary.AvgDataSpeed,
		AvgSinrDb:            summary.AvgSINR,
		ReliabilityScorePct:  summary.ReliabilityScore,
		GeneratedAt:          timestamppb.Now(),
	}, nil
}

// GetLocationReport returns the per-carrier breakdown at one campus location.
func (h *Handler) GetLocationReport(ctx context.Context, req *api.GetLocationReportRequest) (*api.GetLocationReportResponse, error) {
	if req == nil {
		return nil, status.Errorf(codes.InvalidArgument, "request is required")
	}
	if req.GetLocation() == "" {
		return nil, status.Errorf(codes.InvalidArgument, "location is required")
	}
	if h == nil || h.service == nil {
		return nil, status.Errorf(codes.Internal, "stats service is not configured")
	}

	report, err := h.service.LocationReport(ctx, req.GetLocation())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownLocation):
			return nil, status.Errorf(codes.NotFound, "unknown campus location: %s", req.GetLocation())
		case errors.Is(err, domain.ErrNoData):
			return nil, status.Errorf(codes.NotFound, "no measurements at %s", req.GetLocation())
		default:
			return nil, status.Errorf(codes.Internal, "location report: %v", err)
		}
	}

	response := &api.GetLocationReportResponse{
		Location:    report.Location.Name,
		Area:        string(report.Location.Area),
		BestCarrier: string(report.BestCarrier),
		Cells:       make([]*api.CarrierCell, 0, len(report.Cells)),
		GeneratedAt: timestamppb.Now(),
	}
	for _, cell := range report.Cells {
		response.Cells = append(response.Cells, &api.CarrierCell{
			Carrier:             string(cell.Carrier),
			Samples:             int64(cell.Samples),
			AvgSignalQualityPct: cell.AvgSignalQuality,
			AvgDataSpeedMbps:    cell.AvgDataSpeed,
			Level:               string(cell.Level),
		})
	}

	return response, nil
}

// Ensure Handler implements the gRPC service interface.
var _ api.NetworkStatsServer = (*Handler)(nil)

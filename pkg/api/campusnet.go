package api

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// NetworkStatsClient defines the gRPC client interface for the campus network stats service.
type NetworkStatsClient interface {
	GetCarrierSummary(ctx context.Context, in *GetCarrierSummaryRequest, opts ...grpc.CallOption) (*GetCarrierSummaryResponse, error)
	GetLocationReport(ctx context.Context, in *GetLocationReportRequest, opts ...grpc.CallOption) (*GetLocationReportResponse, error)
}

type networkStatsClient struct {
	cc grpc.ClientConnInterface
}

// NewNetworkStatsClient creates a new NetworkStats client.
func NewNetworkStatsClient(cc grpc.ClientConnInterface) NetworkStatsClient {
	return &networkStatsClient{cc: cc}
}

func (c *networkStatsClient) GetCarrierSummary(ctx context.Context, in *GetCarrierSummaryRequest, opts ...grpc.CallOption) (*GetCarrierSummaryResponse, error) {
	out := new(GetCarrierSummaryResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/campusnet.NetworkStats/GetCarrierSummary", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *networkStatsClient) GetLocationReport(ctx context.Context, in *GetLocationReportRequest, opts ...grpc.CallOption) (*GetLocationReportResponse, error) {
	out := new(GetLocationReportResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/campusnet.NetworkStats/GetLocationReport", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// NetworkStatsServer defines the gRPC interface for the campus network stats service.
type NetworkStatsServer interface {
	GetCarrierSummary(context.Context, *GetCarrierSummaryRequest) (*GetCarrierSummaryResponse, error)
	GetLocationReport(context.Context, *GetLocationReportRequest) (*GetLocationReportResponse, error)
}

// UnimplementedNetworkStatsServer can be embedded to provide default unimplemented behaviour.
type UnimplementedNetworkStatsServer struct{}

// GetCarrierSummary returns an unimplemented error by default.
func (UnimplementedNetworkStatsServer) GetCarrierSummary(context.Context, *GetCarrierSummaryRequest) (*GetCarrierSummaryResponse, error) {
	return nil, errors.New("method GetCarrierSummary not implemented")
}

// GetLocationReport returns an unimplemented error by default.
func (UnimplementedNetworkStatsServer) GetLocationReport(context.Context, *GetLocationReportRequest) (*GetLocationReportResponse, error) {
	return nil, errors.New("method GetLocationReport not implemented")
}

// RegisterNetworkStatsServer registers the service implementation with the provided registrar.
func RegisterNetworkStatsServer(s grpc.ServiceRegistrar, srv NetworkStatsServer) {
	s.RegisterService(&NetworkStats_ServiceDesc, srv)
}

// NetworkStats_ServiceDesc describes the network stats service for the gRPC server.
var NetworkStats_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "campusnet.NetworkStats",
	HandlerType: (*NetworkStatsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCarrierSummary",
			Handler:    _NetworkStats_GetCarrierSummary_Handler,
		},
		{
			MethodName: "GetLocationReport",
			Handler:    _NetworkStats_GetLocationReport_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proto/campusnet.proto",
}

func _NetworkStats_GetCarrierSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCarrierSummaryRequest)
	if dec != nil {
		if err := dec(in); err != nil {
			return nil, err
		}
	}
	if interceptor == nil {
		return srv.(NetworkStatsServer).GetCarrierSummary(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/campusnet.NetworkStats/GetCarrierSummary",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NetworkStatsServer).GetCarrierSummary(ctx, req.(*GetCarrierSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _NetworkStats_GetLocationReport_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLocationReportRequest)
	if dec != nil {
		if err := dec(in); err != nil {
			return nil, err
		}
	}
	if interceptor == nil {
		return srv.(NetworkStatsServer).GetLocationReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/campusnet.NetworkStats/GetLocationReport",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NetworkStatsServer).GetLocationReport(ctx, req.(*GetLocationReportRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// GetCarrierSummaryRequest asks for one carrier's aggregate across the campus.
type GetCarrierSummaryRequest struct {
	Carrier string
}

// GetCarrier returns the carrier name from the request.
func (x *GetCarrierSummaryRequest) GetCarrier() string {
	if x == nil {
		return ""
	}
	return x.Carrier
}

// GetCarrierSummaryResponse carries a carrier's campus-wide averages.
type GetCarrierSummaryResponse struct {
	Carrier              string
	Samples              int64
	AvgSignalStrengthDbm float64
	AvgSignalQualityPct  float64
	AvgDataSpeedMbps     float64
	AvgSinrDb            float64
	ReliabilityScorePct  float64
	GeneratedAt          *timestamppb.Timestamp
}

// GetGeneratedAt returns the response generation timestamp.
func (x *GetCarrierSummaryResponse) GetGeneratedAt() *timestamppb.Timestamp {
	if x == nil {
		return nil
	}
	return x.GeneratedAt
}

// GetLocationReportRequest asks for the per-carrier breakdown at one campus location.
type GetLocationReportRequest struct {
	Location string
}

// GetLocation returns the location name from the request.
func (x *GetLocationReportRequest) GetLocation() string {
	if x == nil {
		return ""
	}
	return x.Location
}

// CarrierCell is one carrier's aggregate at the requested location.
type CarrierCell struct {
	Carrier             string
	Samples             int64
	AvgSignalQualityPct float64
	AvgDataSpeedMbps    float64
	Level               string
}

// GetLocationReportResponse carries every carrier's aggregate at one location.
type GetLocationReportResponse struct {
	Location    string
	Area        string
	BestCarrier string
	Cells       []*CarrierCell
	GeneratedAt *timestamppb.Timestamp
}

// GetCells returns the per-carrier cells from the response.
func (x *GetLocationReportResponse) GetCells() []*CarrierCell {
	if x == nil {
		return nil
	}
	return x.Cells
}

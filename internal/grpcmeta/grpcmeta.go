// Package grpcmeta defines the request headers that carry caller identity
// and correlation context across the gRPC boundary.
//
// IDs are cheap, stable identifiers used by transport and logs so behavior
// stays observable without leaking domain payloads.
package grpcmeta

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/arathel/wardtable/internal/id"
)

// RequestIDHeader is the gRPC metadata key for request correlation IDs.
const RequestIDHeader = "x-wardtable-request-id"

// UserIDHeader is the gRPC metadata key for the authenticated user's id,
// set by the identity provider in front of this service.
const UserIDHeader = "x-wardtable-user-id"

// CampaignIDHeader is the gRPC metadata key for campaign routing hints.
const CampaignIDHeader = "x-wardtable-campaign-id"

// contextKey stores metadata values in context.
type contextKey string

const requestIDContextKey contextKey = "wardtable-request-id"

// RequestIDFromContext returns the request ID stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey).(string)
	return value
}

// UserIDFromContext returns the acting user's id from incoming metadata.
func UserIDFromContext(ctx context.Context) string {
	return metadataValueFromIncomingContext(ctx, UserIDHeader)
}

// CampaignIDFromContext returns the campaign hint from incoming metadata.
func CampaignIDFromContext(ctx context.Context) string {
	return metadataValueFromIncomingContext(ctx, CampaignIDHeader)
}

// WithRequestID stores the request ID in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// IsPrintableASCII reports whether a string contains only printable ASCII characters.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return false
		}
	}
	return true
}

// FirstMetadataValue returns the first printable ASCII metadata value for a
// key. Printable filtering drops control characters so values are safe to
// log and to propagate downstream.
func FirstMetadataValue(md metadata.MD, key string) string {
	if len(md) == 0 {
		return ""
	}
	for mdKey, values := range md {
		if !strings.EqualFold(mdKey, key) {
			continue
		}
		for _, value := range values {
			if IsPrintableASCII(value) {
				return value
			}
		}
	}
	return ""
}

// UnaryServerInterceptor guarantees every inbound unary call carries a
// request ID, generating one when the client omits it, and echoes it in
// the response headers.
func UnaryServerInterceptor(idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		updatedCtx, requestID, err := ensureRequestMetadata(ctx, idGenerator)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "ensure request metadata: %v", err)
		}
		if err := grpc.SetHeader(updatedCtx, metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		return handler(updatedCtx, req)
	}
}

// StreamServerInterceptor applies the same request ID guarantee to
// streaming calls.
func StreamServerInterceptor(idGenerator func() (string, error)) grpc.StreamServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(srv any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		updatedCtx, requestID, err := ensureRequestMetadata(stream.Context(), idGenerator)
		if err != nil {
			return status.Errorf(codes.Internal, "ensure request metadata: %v", err)
		}
		if err := stream.SetHeader(metadata.Pairs(RequestIDHeader, requestID)); err != nil {
			return status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		return handler(srv, &wrappedServerStream{ServerStream: stream, ctx: updatedCtx})
	}
}

// wrappedServerStream overrides the context for a gRPC stream.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the updated stream context.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

// ensureRequestMetadata ensures a request ID exists and returns the
// updated context carrying it.
func ensureRequestMetadata(ctx context.Context, idGenerator func() (string, error)) (context.Context, string, error) {
	requestID := metadataValueFromIncomingContext(ctx, RequestIDHeader)
	if requestID == "" {
		generatedID, err := idGenerator()
		if err != nil {
			return nil, "", err
		}
		requestID = generatedID
	}
	return WithRequestID(ctx, requestID), requestID, nil
}

func metadataValueFromIncomingContext(ctx context.Context, header string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	return FirstMetadataValue(md, header)
}

package grpc

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name          string
		handlerErr    error
		expectedCode  codes.Code
		expectedLevel logrus.Level
		expectedMsg   string
	}{
		{
			name:          "Success",
			expectedCode:  codes.OK,
			expectedLevel: logrus.DebugLevel,
			expectedMsg:   "rpc completed",
		},
		{
			name:          "Client Error",
			handlerErr:    status.Error(codes.InvalidArgument, "missing asset"),
			expectedCode:  codes.InvalidArgument,
			expectedLevel: logrus.InfoLevel,
			expectedMsg:   "rpc rejected",
		},
		{
			name:          "Failed Precondition",
			handlerErr:    status.Error(codes.FailedPrecondition, "insufficient cash"),
			expectedCode:  codes.FailedPrecondition,
			expectedLevel: logrus.InfoLevel,
			expectedMsg:   "rpc rejected",
		},
		{
			name:          "Server Error",
			handlerErr:    status.Error(codes.Internal, "boom"),
			expectedCode:  codes.Internal,
			expectedLevel: logrus.ErrorLevel,
			expectedMsg:   "rpc failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			log.SetLevel(logrus.DebugLevel)
			interceptor := LoggingInterceptor(log)

			handlerCalled := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				handlerCalled = true
				if tt.handlerErr != nil {
					return nil, tt.handlerErr
				}
				return "response", nil
			}

			info := &grpc.UnaryServerInfo{FullMethod: "/" + ServiceName + "/" + MethodGetWallet}
			resp, err := interceptor(context.Background(), "request", info, handler)

			assert.True(t, handlerCalled)
			assert.Equal(t, tt.expectedCode, status.Code(err))
			if tt.handlerErr == nil {
				assert.Equal(t, "response", resp)
			}

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.expectedLevel, entry.Level)
			assert.Equal(t, tt.expectedMsg, entry.Message)
			assert.Equal(t, info.FullMethod, entry.Data["method"])
			assert.Equal(t, tt.expectedCode.String(), entry.Data["code"])
		})
	}
}

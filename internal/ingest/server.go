package ingest

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"parkfleet/internal/models"
	"parkfleet/internal/observability"
	"parkfleet/internal/repository"
	"parkfleet/internal/telemetry"
)

// RawStore persists inbound payloads before decoding.
type RawStore interface {
	InsertRaw(ctx context.Context, raw *models.RawTelemetry) error
}

// RawHandler decodes a stored payload into a vehicle fix.
type RawHandler interface {
	HandleRaw(ctx context.Context, raw *models.RawTelemetry) (*models.VehicleFix, error)
}

// Server accepts tracker device connections. Protocol: ASCII lines, the
// first line is the device IMEI handshake, every following line is one raw
// record. A malformed record is dropped and logged; the connection stays up.
type Server struct {
	addr    string
	store   RawStore
	handler RawHandler
	logger  *zap.Logger
}

// NewServer builds the listener.
func NewServer(addr string, store RawStore, handler RawHandler, logger *zap.Logger) *Server {
	return &Server{
		addr:    addr,
		store:   store,
		handler: handler,
		logger:  logger,
	}
}

// Run accepts connections until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}
	s.logger.Info("telemetry listener started", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("accept failed", zap.Error(err))
			continue
		}
		observability.IngestConnections.Inc()
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetKeepAlive(true)
		_ = tcpConn.SetKeepAlivePeriod(60 * time.Second)
	}

	var imei string
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if imei == "" {
			imei = line
			s.logger.Info("device connected",
				zap.String("imei", imei),
				zap.String("remote", conn.RemoteAddr().String()),
			)
			continue
		}
		s.handleRecord(ctx, imei, line)
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		s.logger.Warn("device read failed", zap.String("imei", imei), zap.Error(err))
	}
	if imei != "" {
		s.logger.Info("device disconnected", zap.String("imei", imei))
	}
}

// handleRecord persists one raw record and decodes it synchronously.
// Malformed records and unknown devices are dropped, never retried.
func (s *Server) handleRecord(ctx context.Context, imei, data string) {
	observability.RawMessages.Inc()

	raw := &models.RawTelemetry{
		IMEI:       imei,
		Data:       data,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.store.InsertRaw(ctx, raw); err != nil {
		s.logger.Error("raw telemetry store failed", zap.String("imei", imei), zap.Error(err))
		return
	}

	if _, err := s.handler.HandleRaw(ctx, raw); err != nil {
		observability.DecodeErrors.Inc()
		var decodeErr *telemetry.DecodeError
		switch {
		case errors.As(err, &decodeErr):
			s.logger.Warn("telemetry dropped: malformed record",
				zap.Int64("raw_id", raw.ID),
				zap.String("imei", imei),
				zap.Error(err),
			)
		case errors.Is(err, repository.ErrNotFound):
			s.logger.Warn("telemetry dropped: unknown device",
				zap.Int64("raw_id", raw.ID),
				zap.String("imei", imei),
			)
		default:
			s.logger.Error("telemetry handling failed",
				zap.Int64("raw_id", raw.ID),
				zap.String("imei", imei),
				zap.Error(err),
			)
		}
		return
	}
	observability.FixesStored.Inc()
}

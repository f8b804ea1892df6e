// Package api exposes a configured SPECK cipher over HTTP: raw block
// seal/open and identifier encoding.
package api

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"speck-go/pkg/buffers"
	"speck-go/pkg/idobf"
	"speck-go/pkg/log"
	"speck-go/pkg/speck"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BlockRequest is the body of /v1/seal and /v1/open: one hex-encoded block.
type BlockRequest struct {
	Block string `json:"block"`
}

// BlockResponse carries the transformed block, hex encoded.
type BlockResponse struct {
	Variant string `json:"variant"`
	Block   string `json:"block"`
}

// IDResponse is returned by the id and uuid routes. Input and Output are
// decimal for ids and canonical text for UUIDs.
type IDResponse struct {
	Variant string `json:"variant"`
	Input   string `json:"input"`
	Output  string `json:"output"`
}

// Options toggles optional routes.
type Options struct {
	Metrics bool
}

// Server is the HTTP front of one cipher. Echo is exposed for tests and
// embedding.
type Server struct {
	Echo    *echo.Echo
	cipher  speck.BlockCipher
	codec   *idobf.Codec
	pool    *buffers.BufferPool
	metrics *metrics
}

// NewServer wires the routes around c.
func NewServer(c speck.BlockCipher, opts Options) (*Server, error) {
	codec, err := idobf.New(c)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Echo:    e,
		cipher:  c,
		codec:   codec,
		pool:    buffers.BlockPool,
		metrics: newMetrics(c.Variant().Name),
	}

	e.Use(requestLogger)
	e.GET("/healthz", s.health)
	e.POST("/v1/seal", s.seal)
	e.POST("/v1/open", s.open)
	e.GET("/v1/ids/:id/encode", s.encodeID)
	e.GET("/v1/ids/:id/decode", s.decodeID)
	e.GET("/v1/uuids/:uuid/encode", s.encodeUUID)
	e.GET("/v1/uuids/:uuid/decode", s.decodeUUID)
	if opts.Metrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	}
	return s, nil
}

// Start serves on addr until Shutdown.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Str("variant", s.cipher.Variant().Name).Msg("api listening")
	if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully within ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"variant": s.cipher.Variant().Name,
	})
}

func (s *Server) seal(c echo.Context) error {
	return s.transformBlock(c, "seal", s.cipher.SealInPlace)
}

func (s *Server) open(c echo.Context) error {
	return s.transformBlock(c, "open", s.cipher.OpenInPlace)
}

func (s *Server) transformBlock(c echo.Context, op string, fn func([]byte) error) error {
	var req BlockRequest
	if err := c.Bind(&req); err != nil {
		return s.reject(op, "bad_request", "invalid request body")
	}

	buf := s.pool.GetN(hex.DecodedLen(len(req.Block)))
	defer s.pool.Put(buf)

	n, err := hex.Decode(buf, []byte(req.Block))
	if err != nil {
		return s.reject(op, "bad_request", "block is not valid hex")
	}
	if err := fn(buf[:n]); err != nil {
		return s.reject(op, "bad_length", err.Error())
	}
	s.metrics.observe(op, "ok")

	return c.JSON(http.StatusOK, BlockResponse{
		Variant: s.cipher.Variant().Name,
		Block:   hex.EncodeToString(buf[:n]),
	})
}

func (s *Server) encodeID(c echo.Context) error {
	return s.transformID(c, "encode_id", s.codec.EncodeUint64)
}

func (s *Server) decodeID(c echo.Context) error {
	return s.transformID(c, "decode_id", s.codec.DecodeUint64)
}

func (s *Server) transformID(c echo.Context, op string, fn func(uint64) (uint64, error)) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return s.reject(op, "bad_request", "id must be an unsigned 64-bit integer")
	}
	out, err := fn(id)
	if err != nil {
		return s.reject(op, "bad_length", err.Error())
	}
	s.metrics.observe(op, "ok")
	return c.JSON(http.StatusOK, IDResponse{
		Variant: s.cipher.Variant().Name,
		Input:   strconv.FormatUint(id, 10),
		Output:  strconv.FormatUint(out, 10),
	})
}

func (s *Server) encodeUUID(c echo.Context) error {
	return s.transformUUID(c, "encode_uuid", s.codec.EncodeUUID)
}

func (s *Server) decodeUUID(c echo.Context) error {
	return s.transformUUID(c, "decode_uuid", s.codec.DecodeUUID)
}

func (s *Server) transformUUID(c echo.Context, op string, fn func(uuid.UUID) (uuid.UUID, error)) error {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return s.reject(op, "bad_request", "invalid uuid")
	}
	out, err := fn(id)
	if err != nil {
		return s.reject(op, "bad_length", err.Error())
	}
	s.metrics.observe(op, "ok")
	return c.JSON(http.StatusOK, IDResponse{
		Variant: s.cipher.Variant().Name,
		Input:   id.String(),
		Output:  out.String(),
	})
}

// reject counts and logs a refused request and returns the 400 for it.
func (s *Server) reject(op, result, msg string) error {
	s.metrics.observe(op, result)
	log.Warn().Str("op", op).Str("result", result).Msg(msg)
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		log.Info().
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Int("status", c.Response().Status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}
